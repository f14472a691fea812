package sqlstore

import "fmt"

// Column kinds used by the table definitions.
const (
	kindInt       = "int"
	kindFloat     = "float"
	kindText      = "text"
	kindDate      = "date"
	kindTimestamp = "timestamp"
)

type dialect struct {
	driver string // database/sql driver name
	quoteC string
	types  map[string]string
}

var dialects = map[string]dialect{
	"postgres": {
		driver: "postgres",
		quoteC: `"`,
		types: map[string]string{
			kindInt: "BIGINT", kindFloat: "DOUBLE PRECISION", kindText: "TEXT",
			kindDate: "DATE", kindTimestamp: "TIMESTAMP",
		},
	},
	"mysql": {
		driver: "mysql",
		quoteC: "`",
		types: map[string]string{
			kindInt: "BIGINT", kindFloat: "DOUBLE", kindText: "TEXT",
			kindDate: "DATE", kindTimestamp: "DATETIME(6)",
		},
	},
	"sqlite": {
		driver: "sqlite",
		quoteC: `"`,
		types: map[string]string{
			kindInt: "INTEGER", kindFloat: "REAL", kindText: "TEXT",
			kindDate: "DATE", kindTimestamp: "TIMESTAMP",
		},
	},
}

func dialectFor(driver string) (dialect, error) {
	if driver == "" {
		driver = "postgres"
	}
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported sql driver %q", driver)
	}
	return d, nil
}

func (d dialect) quote(ident string) string { return d.quoteC + ident + d.quoteC }
