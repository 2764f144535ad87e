package detector

import "strings"

// Tier is the severity bucket a verdict label maps to.
type Tier string

const (
	TierFavorable Tier = "favorable"
	TierCaution   Tier = "caution"
	TierDanger    Tier = "danger"
)

var favorableLabels = map[string]struct{}{
	"Safe":          {},
	"Real":          {},
	"Legit":         {},
	"Genuine":       {},
	"Verified":      {},
	"Reliable":      {},
	"Human-written": {},
	"Buy":           {},
	"Human":         {},
}

var cautionLabels = map[string]struct{}{
	"Suspicious": {},
	"Unverified": {},
	"Mixed":      {},
	"Misleading": {},
	"Be Careful": {},
	"Biased":     {},
}

// Severity maps a verdict label to its tier. The mapping is total:
// any label outside the favorable and caution sets is danger.
func Severity(label string) Tier {
	label = strings.TrimSpace(label)
	if _, ok := favorableLabels[label]; ok {
		return TierFavorable
	}
	if _, ok := cautionLabels[label]; ok {
		return TierCaution
	}
	return TierDanger
}
