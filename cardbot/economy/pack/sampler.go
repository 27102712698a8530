// Package pack draws rarities and assembles card packs.
package pack

import (
	"math/rand"
	"sync"
)

// Source supplies uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// LockedSource is a seeded math/rand source safe for concurrent use.
type LockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSource(seed int64) *LockedSource {
	return &LockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *LockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

type Weight struct {
	Label  string `toml:"label"`
	Weight int    `toml:"weight"`
}

// WeightTable is ordered. The order decides the fallback label when no
// entry has a positive weight.
type WeightTable []Weight

// Total sums the positive weights.
func (t WeightTable) Total() int {
	total := 0
	for _, w := range t {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	return total
}

// Drawable returns the labels Draw can return.
func (t WeightTable) Drawable() []string {
	if len(t) == 0 {
		return nil
	}
	if t.Total() <= 0 {
		return []string{t[0].Label}
	}
	var labels []string
	for _, w := range t {
		if w.Weight > 0 {
			labels = append(labels, w.Label)
		}
	}
	return labels
}

// Draw picks a label with probability weight/total. Negative weights count as
// zero. When the total is not positive the first label is returned, and an
// empty table yields "".
func Draw(table WeightTable, src Source) string {
	if len(table) == 0 {
		return ""
	}
	total := table.Total()
	if total <= 0 {
		return table[0].Label
	}

	r := src.Intn(total)
	for _, w := range table {
		if w.Weight <= 0 {
			continue
		}
		if r < w.Weight {
			return w.Label
		}
		r -= w.Weight
	}
	// unreachable for a Source honoring [0, n)
	return table[len(table)-1].Label
}
