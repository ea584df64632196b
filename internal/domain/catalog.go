package domain

import "time"

// Destination is a bookable catalog entry. Price is the display label the
// catalog authors publish (e.g. "275,000 CFA", "$450"); the numeric unit
// price is derived from it at submission time.
type Destination struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Region      *string   `json:"region,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       string    `json:"price"`
	Rating      *float64  `json:"rating,omitempty"`
	Lat         *float64  `json:"lat,omitempty"`
	Lon         *float64  `json:"lon,omitempty"`
	Images      []string  `json:"images,omitempty"`
	UpdatedAt   time.Time `json:"-"`
}

type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Venue       *string   `json:"venue,omitempty"`
	Date        time.Time `json:"date"`
	Price       string    `json:"price"`
	Description *string   `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"-"`
}
