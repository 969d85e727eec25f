package app

import "math/rand/v2"

// BudgetGenerator picks a catalog entry's MinBudget during seeding.
type BudgetGenerator interface {
	MinBudget(p SeedProfile) int
}

// SeededBudgets draws from the profile's range with a fixed-seed PCG source,
// rounded down to the nearest 100. Not safe for concurrent use.
type SeededBudgets struct{ r *rand.Rand }

func NewSeededBudgets(seed uint64) *SeededBudgets {
	return &SeededBudgets{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (b *SeededBudgets) MinBudget(p SeedProfile) int {
	lo, hi := p.BudgetLow, p.BudgetHigh
	if hi <= lo {
		return lo
	}
	v := lo + b.r.IntN(hi-lo+1)
	return v / 100 * 100
}
