package routing

// PenaltyContext is what a cost modifier may look at besides the edge itself.
type PenaltyContext struct {
	Hour float64
}

// CostModifier adds extra minutes to an edge during a search. Results must be
// non-negative: the heuristic stays admissible only if edges never get cheaper.
type CostModifier interface {
	ExtraMinutes(from, to int, ctx PenaltyContext) float64
}

// ModifierFunc adapts a plain function to CostModifier.
type ModifierFunc func(from, to int, ctx PenaltyContext) float64

func (f ModifierFunc) ExtraMinutes(from, to int, ctx PenaltyContext) float64 {
	return f(from, to, ctx)
}

// NoPenalty is the default modifier.
type NoPenalty struct{}

func (NoPenalty) ExtraMinutes(int, int, PenaltyContext) float64 { return 0.0 }

// Chain sums the contributions of several modifiers.
type Chain []CostModifier

func (c Chain) ExtraMinutes(from, to int, ctx PenaltyContext) float64 {
	total := 0.0
	for _, m := range c {
		total += m.ExtraMinutes(from, to, ctx)
	}
	return total
}
