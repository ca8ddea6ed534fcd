package player

import (
	"errors"
	"math/rand"
)

// ErrNoRodAvailable is returned when every rod of the session is unavailable.
var ErrNoRodAvailable = errors.New("no rod available")

// nextRod picks the rod to service next.
func (p *Player) nextRod() (int, error) {
	avail := make([]bool, len(p.rods))
	for i, rod := range p.rods {
		avail[i] = rod.Available()
	}
	return selectRod(avail, p.current, p.profile.RandomRodSelection, p.rng)
}

// selectRod chooses among the available rods, excluding current when the
// session has more than one rod. When no other rod is available the current
// one is chosen again, if it still is.
func selectRod(avail []bool, current int, random bool, rng *rand.Rand) (int, error) {
	n := len(avail)
	candidates := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if n > 1 && i == current {
			continue
		}
		if avail[i] {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) == 0 {
		if current >= 0 && current < n && avail[current] {
			return current, nil
		}
		return -1, ErrNoRodAvailable
	}
	if random {
		return candidates[rng.Intn(len(candidates))], nil
	}

	// Sequential: the first candidate after current, wrapping around.
	best, bestDist := candidates[0], n
	for _, i := range candidates {
		dist := ((i-current-1)%n + n) % n
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best, nil
}
