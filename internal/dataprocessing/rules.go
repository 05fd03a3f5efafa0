package dataprocessing

import "regexp"

const (
	// TrueLabel and FalseLabel are the sub-labels of binary summaries
	TrueLabel  = "TRUE"
	FalseLabel = "FALSE"

	// ZeroPercentValue replaces a FALSE-only chunk that reports 100%
	ZeroPercentValue = "0 (0)"
)

// hundredPercentRe matches "(100)", "(100.0)", "(100.00%)" but not "(1000)" or "(100.5)"
var hundredPercentRe = regexp.MustCompile(`\(100(\.0+)?%?\)`)

// ChunkRule rewrites a label's chunk when Match holds.
// Both functions receive the chunk already bisected into sub-labels and values.
type ChunkRule struct {
	Name      string
	Match     func(labels, values []string) bool
	Transform func(labels, values []string) []string
}

// BinaryCollapseRule keeps only the TRUE value of a TRUE/FALSE summary
var BinaryCollapseRule = ChunkRule{
	Name:      "binary_collapse",
	Match:     IsBinarySummary,
	Transform: KeepTrueValues,
}

// DegenerateFalseRule turns a FALSE-only 100% summary into "0 (0)"
var DegenerateFalseRule = ChunkRule{
	Name:  "degenerate_false",
	Match: IsDegenerateFalse,
	Transform: func(_, _ []string) []string {
		return []string{ZeroPercentValue}
	},
}

// DefaultRules returns the rules applied when BuildOptions.Rules is nil
func DefaultRules() []ChunkRule {
	return []ChunkRule{BinaryCollapseRule, DegenerateFalseRule}
}

// Bisect splits chunk into its first half (sub-labels) and second half (values).
// For an odd length the extra element lands in values.
func Bisect(chunk []string) (labels, values []string) {
	half := len(chunk) / 2
	return chunk[:half], chunk[half:]
}

// IsBinarySummary reports whether labels is exactly {TRUE, FALSE} in any order
func IsBinarySummary(labels, _ []string) bool {
	if len(labels) != 2 {
		return false
	}
	return (labels[0] == TrueLabel && labels[1] == FalseLabel) ||
		(labels[0] == FalseLabel && labels[1] == TrueLabel)
}

// KeepTrueValues returns the values paired with a TRUE sub-label
func KeepTrueValues(labels, values []string) []string {
	kept := make([]string, 0, 1)
	for i, label := range labels {
		if label == TrueLabel && i < len(values) {
			kept = append(kept, values[i])
		}
	}
	return kept
}

// IsDegenerateFalse reports whether the only sub-label is FALSE and its value is 100%
func IsDegenerateFalse(labels, values []string) bool {
	return len(labels) == 1 && labels[0] == FalseLabel &&
		len(values) == 1 && IsHundredPercent(values[0])
}

// IsHundredPercent reports whether value carries a "(100)" style percentage
func IsHundredPercent(value string) bool {
	return hundredPercentRe.MatchString(value)
}
