package domain

import "time"

// RawTrip mirrors the selected parquet columns; nil means the source value was null.
type RawTrip struct {
	PickupAt       *time.Time
	DropoffAt      *time.Time
	PassengerCount *float64
	TripDistance   *float64
	FareAmount     *float64
	TipAmount      *float64
}

type Trip struct {
	PickupAt        time.Time `db:"tpep_pickup_datetime" json:"tpep_pickup_datetime"`
	DropoffAt       time.Time `db:"tpep_dropoff_datetime" json:"tpep_dropoff_datetime"`
	PassengerCount  float64   `db:"passenger_count" json:"passenger_count"`
	TripDistance    float64   `db:"trip_distance" json:"trip_distance"`
	FareAmount      float64   `db:"fare_amount" json:"fare_amount"`
	TipAmount       float64   `db:"tip_amount" json:"tip_amount"`
	TripDurationMin float64   `db:"trip_duration_min" json:"trip_duration_min"`
}
