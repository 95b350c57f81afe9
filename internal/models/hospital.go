package models

// Hospital is one entry from the backend's hospital price search. Most fields
// are optional in the upstream response and pass through unmodified.
type Hospital struct {
	Name            string   `json:"name"`
	Address         *string  `json:"address,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	URL             *string  `json:"url,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	DistanceMiles   *float64 `json:"distance_miles,omitempty"`
	PriceUSD        *float64 `json:"price_usd,omitempty"`
	PriceIsEstimate bool     `json:"price_is_estimate"`
	Notes           *string  `json:"notes,omitempty"`
	MapsURL         *string  `json:"maps_url,omitempty"`
	SourceLocality  string   `json:"source_locality,omitempty"`
}
