package models

// OverchargeItem is one disputed line on a bill. Every field is optional:
// the analysis backend may omit any of them, and absence is preserved as-is
// instead of being coerced to zero values. Display defaults (such as "Charge"
// for a missing service name) are applied at render time only.
type OverchargeItem struct {
	LineNumber *int     `json:"line_number,omitempty"`
	Service    *string  `json:"service,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Reason     *string  `json:"reason,omitempty"`
}

// AnalysisResult is the canonical normalized output of one bill analysis.
// It is produced only from a successful, parsed backend response and is
// replaced wholesale by the next submission; partial merges never happen.
type AnalysisResult struct {
	// RawText is the full legacy narrative returned by the backend,
	// retained verbatim for copying and as the last-resort display.
	RawText string `json:"raw_text"`

	LetterText          string `json:"letter_text,omitempty"`
	StateAbbr           string `json:"state_abbr,omitempty"`
	DiscountPercent     *int   `json:"discount_percent,omitempty"`
	DiscountExplanation string `json:"discount_explanation,omitempty"`

	// Overcharges keeps the order of appearance in the source. A non-nil
	// empty slice means the analysis explicitly found no overcharges; nil
	// means none could be recovered from the legacy narrative. Both are
	// distinct from "not yet analyzed" (no AnalysisResult at all).
	// In JSON this surfaces as [] versus null respectively.
	Overcharges []OverchargeItem `json:"overcharges"`
}
