package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Generate places p.MineCount mines uniformly at random and returns the
// resulting grid with all adjacency counts filled in. If safe is not nil that
// cell never receives a mine. A nil r falls back to a freshly seeded source.
func Generate(p Params, safe *Point, r *rand.Rand) (*Grid, error) {
	if err := p.Validate(safe); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand()
	}

	height, width, mineCount := p.Unpack()
	grid := make([]bool, height*width)

	/*
	 * Write down the list of possible mine locations, then pick n off the
	 * list at random, moving the last candidate into each hole.
	 */
	candidates := make([]int, 0, height*width)
	for i := range height * width {
		if safe != nil && i == safe.Row*width+safe.Col {
			continue
		}
		candidates = append(candidates, i)
	}

	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		grid[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	Log.WithFields(logrus.Fields{
		"params": p.Seed(),
		"safe":   safe,
	}).Debug("generated grid")

	return newGrid(height, width, grid), nil
}
