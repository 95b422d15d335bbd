package advisor

import (
	"fmt"
	"math"

	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

// NormalizeRiskScore maps raw answer scores (1..4 each) onto a 1..5 rating:
// (total / (count*4)) * 4 + 1, rounded half to even and clamped.
func NormalizeRiskScore(responses []models.RiskResponse) (int, error) {
	if len(responses) == 0 {
		return 0, apperrors.NewDegenerateInputError("no risk responses to score")
	}

	total := 0
	for i, r := range responses {
		if r.Score < MinOptionScore || r.Score > MaxOptionScore {
			return 0, apperrors.NewRangeError(fmt.Sprintf("riskResponses[%d].score", i),
				float64(r.Score), MinOptionScore, MaxOptionScore)
		}
		total += r.Score
	}

	maxPossible := float64(len(responses) * MaxOptionScore)
	normalized := (float64(total)/maxPossible)*4 + 1

	return clampInt(int(math.RoundToEven(normalized)), MinRating, MaxRating), nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
