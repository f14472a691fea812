package domain

type Coords struct{ Lat, Lon float64 }

// Weather is one row per (date, city), taken from the first hourly entry of the day.
// City is stored in the table only; the CSV keeps the ten fixed columns.
type Weather struct {
	Date      Date    `csv:"date" db:"date" json:"date"`
	Temp      float64 `csv:"temp" db:"temp" json:"temp"`
	FeelsLike float64 `csv:"feels_like" db:"feels_like" json:"feels_like"`
	Pressure  float64 `csv:"pressure" db:"pressure" json:"pressure"`
	Humidity  float64 `csv:"humidity" db:"humidity" json:"humidity"`
	TempMin   float64 `csv:"temp_min" db:"temp_min" json:"temp_min"`
	TempMax   float64 `csv:"temp_max" db:"temp_max" json:"temp_max"`
	WindSpeed float64 `csv:"wind_speed" db:"wind_speed" json:"wind_speed"`
	Clouds    float64 `csv:"clouds" db:"clouds" json:"clouds"`
	Rain      float64 `csv:"rain" db:"rain" json:"rain"`
	City      string  `csv:"-" db:"city" json:"city"`
}

// DatedPayload is a raw weather API response for one requested day.
type DatedPayload struct {
	Date    string
	Payload map[string]any
}
