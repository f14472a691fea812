// Package tripfile reads NYC TLC yellow-taxi parquet files.
package tripfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"

	"vienna_etl/internal/domain"
)

const (
	colPickup    = "tpep_pickup_datetime"
	colDropoff   = "tpep_dropoff_datetime"
	colPassenger = "passenger_count"
	colDistance  = "trip_distance"
	colFare      = "fare_amount"
	colTip       = "tip_amount"
)

var columns = []string{colPickup, colDropoff, colPassenger, colDistance, colFare, colTip}

const batchSize = 64 * 1024

// Read loads the six trip columns of every row. Values that are null (or NaN)
// in the file come back as nil.
func Read(ctx context.Context, path string) ([]domain.RawTrip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{BatchSize: batchSize}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := checkSchema(fr); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	leaves := make([]int, len(columns))
	for i, name := range columns {
		leaves[i] = pf.MetaData().Schema.ColumnIndexByName(name)
	}
	rr, err := fr.GetRecordReader(ctx, leaves, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer rr.Release()

	out := make([]domain.RawTrip, 0, pf.NumRows())
	for rr.Next() {
		rec := rr.Record()
		col := func(name string) arrow.Array {
			return rec.Column(rec.Schema().FieldIndices(name)[0])
		}
		pick, drop := col(colPickup), col(colDropoff)
		pass, dist, fare, tip := col(colPassenger), col(colDistance), col(colFare), col(colTip)
		for i := 0; i < int(rec.NumRows()); i++ {
			out = append(out, domain.RawTrip{
				PickupAt:       timeAt(pick, i),
				DropoffAt:      timeAt(drop, i),
				PassengerCount: floatAt(pass, i),
				TripDistance:   floatAt(dist, i),
				FareAmount:     floatAt(fare, i),
				TipAmount:      floatAt(tip, i),
			})
		}
	}
	if err := rr.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func checkSchema(fr *pqarrow.FileReader) error {
	sc, err := fr.Schema()
	if err != nil {
		return err
	}
	for _, name := range columns {
		idx := sc.FieldIndices(name)
		if len(idx) == 0 {
			return fmt.Errorf("missing column %q", name)
		}
		id := sc.Field(idx[0]).Type.ID()
		switch name {
		case colPickup, colDropoff:
			if id != arrow.TIMESTAMP {
				return fmt.Errorf("column %q: want timestamp, got %s", name, sc.Field(idx[0]).Type)
			}
		default:
			switch id {
			case arrow.FLOAT64, arrow.FLOAT32, arrow.INT64, arrow.INT32:
			default:
				return fmt.Errorf("column %q: want number, got %s", name, sc.Field(idx[0]).Type)
			}
		}
	}
	return nil
}

func timeAt(col arrow.Array, i int) *time.Time {
	a, ok := col.(*array.Timestamp)
	if !ok || a.IsNull(i) {
		return nil
	}
	unit := a.DataType().(*arrow.TimestampType).Unit
	t := a.Value(i).ToTime(unit)
	return &t
}

func floatAt(col arrow.Array, i int) *float64 {
	if col.IsNull(i) {
		return nil
	}
	var v float64
	switch a := col.(type) {
	case *array.Float64:
		v = a.Value(i)
	case *array.Float32:
		v = float64(a.Value(i))
	case *array.Int64:
		v = float64(a.Value(i))
	case *array.Int32:
		v = float64(a.Value(i))
	default:
		return nil
	}
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// Reader exposes Read as a domain.TripReader.
type Reader struct{}

var _ domain.TripReader = Reader{}

func (Reader) ReadTrips(ctx context.Context, path string) ([]domain.RawTrip, error) {
	return Read(ctx, path)
}
