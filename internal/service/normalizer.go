package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"billchill/internal/models"
)

// AnalyzeRawResponse is the analysis backend's reply as it arrives on the
// wire. The narrative ai_result is always present; ai_structured is the
// optional machine-readable sub-object and any of its fields may be missing.
type AnalyzeRawResponse struct {
	AIResult      string            `json:"ai_result"`
	DisputeLetter string            `json:"dispute_letter"`
	AIStructured  *StructuredResult `json:"ai_structured"`
}

type StructuredResult struct {
	StateAbbr                    *string             `json:"state_abbr"`
	TotalEligibleDiscountPercent *float64            `json:"total_eligible_discount_percent"`
	DiscountExplanation          *string             `json:"discount_explanation"`
	Overcharges                  []RawOverchargeItem `json:"overcharges"`
}

// RawOverchargeItem tolerates the backend's loose typing: line numbers and
// amounts have been observed both as JSON numbers and as strings. Values
// that fail numeric coercion become absent rather than decode errors.
type RawOverchargeItem struct {
	LineNumber flexInt   `json:"line_number"`
	Service    *string   `json:"service"`
	Amount     flexFloat `json:"amount"`
	Reason     *string   `json:"reason"`
}

// flexInt decodes a JSON number or numeric string into an optional int.
// Anything else (null, non-numeric text) decodes to absent without error.
type flexInt struct {
	Value *int
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) {
		v := int(n)
		f.Value = &v
	}
	return nil
}

// flexFloat decodes a JSON number or numeric string into an optional float,
// with the same never-fail policy as flexInt.
type flexFloat struct {
	Value *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) {
		f.Value = &n
	}
	return nil
}

// DecodeAnalyzeResponse parses the backend's JSON body.
func DecodeAnalyzeResponse(body []byte) (*AnalyzeRawResponse, error) {
	var raw AnalyzeRawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// Normalize converts a raw backend response into the canonical
// AnalysisResult. Preference is field-by-field, not all-or-nothing: each
// structured field that is present wins over the narrative, and only when
// the structured sub-object is entirely absent are state, discount, the
// explanation, and the overcharge list derived from the legacy text.
func Normalize(raw *AnalyzeRawResponse) *models.AnalysisResult {
	result := &models.AnalysisResult{
		RawText:    sanitizeUTF8(raw.AIResult),
		LetterText: sanitizeUTF8(raw.DisputeLetter),
	}

	if s := raw.AIStructured; s != nil {
		if s.StateAbbr != nil {
			result.StateAbbr = *s.StateAbbr
		}
		if pct := s.TotalEligibleDiscountPercent; pct != nil && !math.IsNaN(*pct) {
			rounded := int(math.Round(*pct))
			result.DiscountPercent = &rounded
		}
		if s.DiscountExplanation != nil {
			result.DiscountExplanation = *s.DiscountExplanation
		}

		// A present-but-empty structured list is a positive "no
		// overcharges found" and must not trigger the legacy fallback.
		items := make([]models.OverchargeItem, 0, len(s.Overcharges))
		for _, rawItem := range s.Overcharges {
			items = append(items, models.OverchargeItem{
				LineNumber: rawItem.LineNumber.Value,
				Service:    rawItem.Service,
				Amount:     rawItem.Amount.Value,
				Reason:     rawItem.Reason,
			})
		}
		result.Overcharges = items
		return result
	}

	legacy := ParseLegacyText(result.RawText)
	result.StateAbbr = legacy.StateAbbr
	result.DiscountPercent = legacy.DiscountPercent
	result.DiscountExplanation = legacy.DiscountExplanation
	result.Overcharges = legacy.Overcharges

	return result
}
