package dto

import "billchill/internal/models"

type HospitalSearchRequest struct {
	Condition string   `json:"condition"`
	Location  string   `json:"location,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`
}

type HospitalSearchResponse struct {
	Results []models.Hospital `json:"results"`
}
