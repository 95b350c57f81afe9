package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"billchill/internal/models"
	"billchill/pkg/config"

	"go.uber.org/zap"
)

var ErrConditionRequired = errors.New("condition required")

// HospitalService forwards hospital price searches to the backend's
// independent search flow. Unlike bill analysis there is no staging and no
// state; each search is one request and one response.
type HospitalService struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// HospitalSearch is one price lookup: a medical condition plus either a
// free-form location or explicit coordinates.
type HospitalSearch struct {
	Condition string   `json:"condition"`
	Location  string   `json:"location,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`
}

func NewHospitalService(cfg *config.AnalyzerConfig, logger *zap.Logger) *HospitalService {
	return &HospitalService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Search runs one hospital price search and relays the backend's result
// list ordered as received.
func (s *HospitalService) Search(ctx context.Context, search HospitalSearch) ([]models.Hospital, error) {
	if strings.TrimSpace(search.Condition) == "" {
		return nil, ErrConditionRequired
	}

	payload, err := json.Marshal(search)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/hospitals", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach analysis backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Warn("Hospital search returned error status",
			zap.Int("status", resp.StatusCode),
		)
		return nil, &backendError{message: extractBackendError(body)}
	}

	var searchResp struct {
		Results []models.Hospital `json:"results"`
	}
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	s.logger.Info("Hospital search completed",
		zap.String("condition", search.Condition),
		zap.Int("results", len(searchResp.Results)),
	)
	return searchResp.Results, nil
}
