package dto

import "billchill/internal/models"

type CreateSessionResponse struct {
	SessionID string             `json:"session_id"`
	State     models.UploadState `json:"state"`
}

type SessionStateResponse struct {
	SessionID string             `json:"session_id"`
	State     models.UploadState `json:"state"`
}

type SubmitRequest struct {
	Provider      string `json:"provider"`
	PatientName   string `json:"patient_name"`
	HouseholdSize string `json:"household_size"`
	AnnualIncome  string `json:"annual_income"`
	ZipCode       string `json:"zip_code"`
}

type ProvidersResponse struct {
	Status    string   `json:"status"`
	Providers []string `json:"providers"`
}

type FindingsResponse struct {
	Findings string `json:"findings"`
}
