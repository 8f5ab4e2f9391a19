package strategy

import "stratiq-api/pkg/analysis"

// ValidateSWOT reports whether all four quadrants carry at least one item.
func ValidateSWOT(s analysis.SWOT) bool {
	return s.Complete()
}
