package similarity

import (
	"github.com/agnivade/levenshtein"

	"github.com/clubarchive/matchlinker/internal/platform/textnorm"
)

// Ratio scores how alike two free-text names are on [0,1], where 1 is an
// exact match of the normalized forms. Edit distance is computed over the
// normalized strings and scaled by the longer length.
func Ratio(a, b string) float64 {
	na := textnorm.Normalize(a)
	nb := textnorm.Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	distance := levenshtein.ComputeDistance(na, nb)
	longest := len(na)
	if len(nb) > longest {
		longest = len(nb)
	}

	return 1 - float64(distance)/float64(longest)
}

// Composite folds temporal proximity into a name similarity: each day of
// calendar offset costs 0.05. The result is clamped to [0,1].
func Composite(nameSim float64, dayOffset int) float64 {
	if dayOffset < 0 {
		dayOffset = -dayOffset
	}

	return Clamp(nameSim - 0.05*float64(dayOffset))
}

// Clamp bounds a score to [0,1].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
