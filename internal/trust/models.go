// Package trust computes the CASL Key trust score and the host-facing
// projections derived from it. Everything here is pure; evaluation time is
// injected.
package trust

import "caslkey/contracts/caslapi"

// Level is the trust band a score falls into.
type Level string

const (
	LevelVerified     Level = "verified"
	LevelReview       Level = "review"
	LevelManualReview Level = "manual_review"
	LevelNotEligible  Level = "not_eligible"
)

// Lower bounds of each band, inclusive.
const (
	thresholdVerified     = 85
	thresholdReview       = 70
	thresholdManualReview = 50

	baseScore = 100
	maxScore  = 100
	minScore  = 0
)

// Adjustment is one fired scoring rule.
type Adjustment struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
}

// Result is the outcome of CalculateScore.
type Result struct {
	Score       int          `json:"score"`
	Level       Level        `json:"trustLevel"`
	Adjustments []Adjustment `json:"adjustments"`
}

// TrustPreview is the privacy-preserving projection shown while the guest is
// still filling in the form. It never carries contact details.
type TrustPreview struct {
	CASLKeyID                string        `json:"caslKeyId"`
	TrustLevel               Level         `json:"trustLevel"`
	ScoreRange               string        `json:"scoreRange"`
	PlatformVerified         bool          `json:"platformVerified"`
	BackgroundCheckCompleted bool          `json:"backgroundCheckCompleted"`
	Flags                    caslapi.Flags `json:"flags"`
}

// PendingID stands in for a CASL Key ID not yet assigned.
const PendingID = "Pending"

// Wire converts adjustments to the submission shape.
func (r Result) Wire() []caslapi.Adjustment {
	out := make([]caslapi.Adjustment, 0, len(r.Adjustments))
	for _, a := range r.Adjustments {
		out = append(out, caslapi.Adjustment{Reason: a.Reason, Points: a.Points})
	}
	return out
}
