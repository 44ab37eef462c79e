package pricing

import (
	"fmt"
	"math"
)

// ImpliedVol backs out the volatility implied by an observed option premium
// using Newton-Raphson on the Black-Scholes price.
//
// Parameters:
//   - kind: option style
//   - S, K: spot and strike
//   - T: time to expiry in years (must be positive)
//   - r: risk-free rate
//   - market: observed option premium
//
// Returns the implied volatility, or an error if the inputs are invalid or
// the iteration fails to converge within tolerance.
func ImpliedVol(kind Kind, S, K, T, r, market float64) (float64, error) {
	if T <= 0 {
		return 0, fmt.Errorf("%w: time to expiry %.6g <= 0", ErrInvalidInput, T)
	}
	if market <= 0 {
		return 0, fmt.Errorf("%w: market premium %.6g <= 0", ErrInvalidInput, market)
	}

	// Initial guess: 20%
	sigma := 0.20

	const (
		maxIter = 100
		tol     = 1e-6
	)

	for i := 0; i < maxIter; i++ {
		g, err := Price(OptionSpec{Spot: S, Strike: K, TimeToExpiry: T, Rate: r, Vol: sigma, Kind: kind})
		if err != nil {
			return 0, err
		}

		diff := g.Price - market
		if math.Abs(diff) < tol {
			return sigma, nil
		}

		if g.Vega < 1e-8 {
			break
		}

		sigma -= diff / g.Vega

		// Guardrails
		if sigma <= 0 {
			sigma = 1e-4
		}
		if sigma > 5 {
			sigma = 5
		}
	}

	return 0, fmt.Errorf("implied vol did not converge for strike %.2f", K)
}
