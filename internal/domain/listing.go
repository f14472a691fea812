package domain

// RawListing is one row of an Inside Airbnb listings file, restricted to the
// columns the pipeline keeps.
type RawListing struct {
	ID              int64
	Name            string
	RoomType        string
	Accommodates    *int
	Price           string // e.g. "$1,234.00"
	Bedrooms        *float64
	Beds            *float64
	NumberOfReviews *int
	Fingerprint     string // the full source row; identical rows share it
}

type Listing struct {
	ID              int64    `csv:"id" db:"id" json:"id"`
	Name            string   `csv:"name" db:"name" json:"name"`
	RoomType        string   `csv:"room_type" db:"room_type" json:"room_type"`
	Accommodates    *int     `csv:"accommodates" db:"accommodates" json:"accommodates"`
	Price           *float64 `csv:"price" db:"price" json:"price"`
	Bedrooms        *float64 `csv:"bedrooms" db:"bedrooms" json:"bedrooms"`
	Beds            *float64 `csv:"beds" db:"beds" json:"beds"`
	NumberOfReviews *int     `csv:"number_of_reviews" db:"number_of_reviews" json:"number_of_reviews"`
	Date            Date     `csv:"date" db:"date" json:"date"`
}

// Snapshot pairs a listings file with the day it was captured.
type Snapshot struct {
	Date string `yaml:"date"`
	File string `yaml:"file"`
}
