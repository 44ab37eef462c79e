// Package condor builds short iron condor structures from a spot price,
// a volatility estimate, and a horizon, and evaluates their expiration
// payoff. Strikes are placed one expected move from spot (sigma*sqrt(T)),
// not delta-based; the package deliberately does not depend on the pricing
// package.
package condor

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a build precondition is violated.
var ErrInvalidInput = errors.New("invalid input")

// DefaultWidth is the wing width used by the demo configuration, in the
// unit of the underlying.
const DefaultWidth = 5.0

// Strikes holds the four legs of an iron condor, strictly ordered
// LongPut < ShortPut <= ShortCall < LongCall when the expected move is
// positive.
type Strikes struct {
	LongPut   float64 `json:"long_put"`
	ShortPut  float64 `json:"short_put"`
	ShortCall float64 `json:"short_call"`
	LongCall  float64 `json:"long_call"`
}

// Width returns the wing width of the structure (the two spreads are built
// with equal width).
func (st Strikes) Width() float64 {
	return st.LongCall - st.ShortCall
}

// Build derives iron condor strikes for spot S, annualized volatility sigma,
// and horizon T (years), with the short strikes one expected move
// (S*sigma*sqrt(T)) either side of spot and long wings width further out.
//
// When sigma or T is zero the expected move is zero and the structure
// degenerates to ShortPut == ShortCall == S; that is a documented boundary,
// not an error.
//
// Fails with ErrInvalidInput for S <= 0, sigma < 0, T < 0, or width <= 0.
func Build(S, sigma, T, width float64) (Strikes, error) {
	return BuildWithZ(S, sigma, T, width, 1.0)
}

// BuildWithZ is Build with the expected move scaled by z standard
// deviations. z = 1 reproduces Build; the CLI maps a coverage probability p
// to z via the standard normal quantile of (1+p)/2.
func BuildWithZ(S, sigma, T, width, z float64) (Strikes, error) {
	switch {
	case S <= 0:
		return Strikes{}, fmt.Errorf("%w: spot %.6g <= 0", ErrInvalidInput, S)
	case sigma < 0:
		return Strikes{}, fmt.Errorf("%w: volatility %.6g < 0", ErrInvalidInput, sigma)
	case T < 0:
		return Strikes{}, fmt.Errorf("%w: horizon %.6g < 0", ErrInvalidInput, T)
	case width <= 0:
		return Strikes{}, fmt.Errorf("%w: wing width %.6g <= 0", ErrInvalidInput, width)
	case z <= 0:
		return Strikes{}, fmt.Errorf("%w: z multiplier %.6g <= 0", ErrInvalidInput, z)
	}

	move := z * S * sigma * math.Sqrt(T)

	shortPut := S - move
	shortCall := S + move

	return Strikes{
		LongPut:   shortPut - width,
		ShortPut:  shortPut,
		ShortCall: shortCall,
		LongCall:  shortCall + width,
	}, nil
}

// Payoff evaluates the expiration payoff of a short iron condor that
// collected credit at entry, for terminal underlying price terminal.
//
// It is the exact replication of a short put spread plus a short call
// spread: bounded above by credit and below by credit minus the wing width.
func Payoff(terminal float64, st Strikes, credit float64) float64 {
	payoff := credit

	// Put spread
	payoff -= math.Max(0, st.ShortPut-terminal)
	payoff += math.Max(0, st.LongPut-terminal)

	// Call spread
	payoff -= math.Max(0, terminal-st.ShortCall)
	payoff += math.Max(0, terminal-st.LongCall)

	return payoff
}

// MaxProfit is the best possible expiration outcome: the full credit,
// retained when the underlying finishes between the short strikes.
func MaxProfit(st Strikes, credit float64) float64 {
	return credit
}

// MaxLoss is the worst possible expiration outcome: the credit less the
// wing width, realized beyond either long strike.
func MaxLoss(st Strikes, credit float64) float64 {
	return credit - st.Width()
}

// BreakEvens returns the two terminal prices at which the structure expires
// flat: short put minus credit and short call plus credit.
func BreakEvens(st Strikes, credit float64) (lower, upper float64) {
	return st.ShortPut - credit, st.ShortCall + credit
}

// Point is one sample of an expiration payoff curve.
type Point struct {
	Price  float64 `json:"price"`
	Payoff float64 `json:"payoff"`
}

// Curve sweeps Payoff across n evenly spaced terminal prices in [lo, hi].
// n must be at least 2 so both endpoints are sampled.
func Curve(st Strikes, credit, lo, hi float64, n int) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: curve points %d < 2", ErrInvalidInput, n)
	}
	if hi <= lo {
		return nil, fmt.Errorf("%w: curve range [%.6g, %.6g]", ErrInvalidInput, lo, hi)
	}

	step := (hi - lo) / float64(n-1)
	out := make([]Point, n)
	for i := range out {
		p := lo + step*float64(i)
		out[i] = Point{Price: p, Payoff: Payoff(p, st, credit)}
	}
	return out, nil
}
