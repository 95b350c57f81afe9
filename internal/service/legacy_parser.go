package service

import (
	"regexp"
	"strconv"
	"strings"

	"billchill/internal/models"
)

// LegacyFields holds whatever signals could be recovered from the backend's
// free-form narrative text. Each field is extracted independently; a signal
// that is missing from the text leaves its field at the zero/absent value
// without affecting the others.
type LegacyFields struct {
	StateAbbr           string
	DiscountPercent     *int
	DiscountExplanation string
	OverchargesText     string
	Overcharges         []models.OverchargeItem
}

var (
	// "State: CA". Header matched loosely, but the abbreviation itself
	// must be exactly two uppercase letters.
	legacyStateRe = regexp.MustCompile(`(?:^|\n)\s*-?\s*(?i:State):\s*([A-Z]{2})`)

	// "Total Eligible Discount: 40%"
	legacyDiscountRe = regexp.MustCompile(`(?i)(?:^|\n)\s*-?\s*Total Eligible Discount:\s*([0-9]+)%`)

	// Text between the "Overcharges:" header and the next recognized
	// header, or end of text.
	legacyOverchargesRe = regexp.MustCompile(`(?is)Overcharges:\s*(.*?)(?:\n\s*-?\s*State\s*:|\n\s*-?\s*Total Eligible Discount\s*:|$)`)

	// Everything after the "Total Eligible Discount:" line is treated as
	// the discount explanation.
	legacyExplanationRe = regexp.MustCompile(`(?is)Total Eligible Discount\s*:\s*[^\n\r]*[\r\n]+(.*)`)

	// One overcharge item: "Line 12: X-Ray Fee $245.00 | Reason: Billed twice"
	legacyItemRe = regexp.MustCompile(`(?i)Line\s+(\d+)\s*:\s*(.+?)\s+(\$[0-9,]+(?:\.[0-9]{2})?)\s*\|\s*Reason:\s*(.*)$`)

	nonNumericRe = regexp.MustCompile(`[^0-9.]`)
)

// ParseLegacyText extracts the structured signals from one narrative string.
// All matches are first-occurrence-wins and order-insensitive; failure to
// find one signal never prevents extraction of the others.
func ParseLegacyText(text string) LegacyFields {
	var fields LegacyFields
	if text == "" {
		return fields
	}

	if m := legacyStateRe.FindStringSubmatch(text); m != nil {
		fields.StateAbbr = m[1]
	}

	if m := legacyDiscountRe.FindStringSubmatch(text); m != nil {
		if pct, err := strconv.Atoi(m[1]); err == nil {
			fields.DiscountPercent = &pct
		}
	}

	if m := legacyOverchargesRe.FindStringSubmatch(text); m != nil {
		fields.OverchargesText = strings.TrimSpace(m[1])
	}

	if m := legacyExplanationRe.FindStringSubmatch(text); m != nil {
		fields.DiscountExplanation = strings.TrimSpace(m[1])
	}

	// Item lines live inside the overcharges block when one was found,
	// otherwise anywhere in the text. Commentary lines that don't match
	// the item pattern are skipped silently.
	itemSource := fields.OverchargesText
	if itemSource == "" {
		itemSource = text
	}
	fields.Overcharges = parseLegacyItems(itemSource)

	return fields
}

func parseLegacyItems(block string) []models.OverchargeItem {
	var items []models.OverchargeItem

	for _, line := range strings.Split(block, "\n") {
		m := legacyItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		item := models.OverchargeItem{}

		if lineNo, err := strconv.Atoi(m[1]); err == nil {
			item.LineNumber = &lineNo
		}

		service := strings.TrimSpace(m[2])
		item.Service = &service

		// A malformed money string yields an absent amount, never a
		// discarded item.
		if amount, ok := parseLegacyAmount(m[3]); ok {
			item.Amount = &amount
		}

		reason := strings.TrimSpace(m[4])
		item.Reason = &reason

		items = append(items, item)
	}

	return items
}

// parseLegacyAmount strips currency symbols and separators before numeric
// conversion, mirroring how the backend's narratives format money.
func parseLegacyAmount(raw string) (float64, bool) {
	cleaned := nonNumericRe.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}
