package sqlstore

import "strings"

type column struct{ name, kind string }

var listingColumns = []column{
	{"id", kindInt},
	{"name", kindText},
	{"room_type", kindText},
	{"accommodates", kindInt},
	{"price", kindFloat},
	{"bedrooms", kindFloat},
	{"beds", kindFloat},
	{"number_of_reviews", kindInt},
	{"date", kindDate},
}

var weatherColumns = []column{
	{"date", kindDate},
	{"temp", kindFloat},
	{"feels_like", kindFloat},
	{"pressure", kindFloat},
	{"humidity", kindFloat},
	{"temp_min", kindFloat},
	{"temp_max", kindFloat},
	{"wind_speed", kindFloat},
	{"clouds", kindFloat},
	{"rain", kindFloat},
	{"city", kindText},
}

var tripColumns = []column{
	{"tpep_pickup_datetime", kindTimestamp},
	{"tpep_dropoff_datetime", kindTimestamp},
	{"passenger_count", kindFloat},
	{"trip_distance", kindFloat},
	{"fare_amount", kindFloat},
	{"tip_amount", kindFloat},
	{"trip_duration_min", kindFloat},
}

func (d dialect) columnList(cols []column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = d.quote(c.name)
	}
	return strings.Join(names, ", ")
}

func (d dialect) dropTableSQL(table string) string {
	return "DROP TABLE IF EXISTS " + d.quote(table)
}

func (d dialect) createTableSQL(table string, cols []column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = d.quote(c.name) + " " + d.types[c.kind]
	}
	return "CREATE TABLE " + d.quote(table) + " (\n  " + strings.Join(defs, ",\n  ") + "\n)"
}

// insertSQL is a named query; sqlx expands its VALUES group once per row.
func (d dialect) insertSQL(table string, cols []column) string {
	params := make([]string, len(cols))
	for i, c := range cols {
		params[i] = ":" + c.name
	}
	return "INSERT INTO " + d.quote(table) + " (" + d.columnList(cols) + ") VALUES (" + strings.Join(params, ", ") + ")"
}

func (d dialect) selectSQL(table string, cols []column) string {
	return "SELECT " + d.columnList(cols) + " FROM " + d.quote(table)
}
