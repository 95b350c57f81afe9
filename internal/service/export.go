package service

import (
	"fmt"
	"strconv"
	"strings"

	"billchill/internal/models"
)

// msgNoOvercharges is the findings text for an analysis that explicitly
// found nothing to dispute.
const msgNoOvercharges = "No overcharges detected"

// RenderFindings produces the plain-text overcharges section clients copy to
// the clipboard. Structured items render one line each; an explicitly empty
// item list renders the no-findings marker; when items were never recovered
// it falls back to the narrative's overcharges block, then to the raw text.
func RenderFindings(result *models.AnalysisResult) string {
	if result == nil {
		return ""
	}

	if len(result.Overcharges) > 0 {
		lines := make([]string, len(result.Overcharges))
		for i, item := range result.Overcharges {
			lines[i] = RenderOverchargeLine(item)
		}
		return strings.Join(lines, "\n")
	}

	if result.Overcharges != nil {
		return msgNoOvercharges
	}

	if block := ParseLegacyText(result.RawText).OverchargesText; block != "" {
		return block
	}
	return result.RawText
}

// RenderOverchargeLine formats one item in the legacy line format, applying
// the render-time defaults for absent fields.
func RenderOverchargeLine(item models.OverchargeItem) string {
	lineNo := "—"
	if item.LineNumber != nil {
		lineNo = strconv.Itoa(*item.LineNumber)
	}

	service := "Charge"
	if item.Service != nil && *item.Service != "" {
		service = *item.Service
	}

	reason := ""
	if item.Reason != nil {
		reason = *item.Reason
	}

	return fmt.Sprintf("- Line %s: %s %s | Reason: %s", lineNo, service, FormatMoney(item.Amount), reason)
}

// LetterFileName builds the download name for a dispute letter from the
// patient name, with whitespace runs collapsed to underscores.
func LetterFileName(patientName string) string {
	name := strings.Join(strings.Fields(patientName), "_")
	if name == "" {
		name = "patient"
	}
	return "dispute_letter_" + name + ".txt"
}
