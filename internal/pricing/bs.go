// Package pricing implements closed-form Black-Scholes-Merton pricing for
// European options, with continuously-compounded dividend yield.
//
// Conventions:
//   - theta is per year (not per calendar day)
//   - vega is per unit of volatility (multiply by 0.01 for a per-vol-point figure)
//
// Both conventions are deliberate and must not be "fixed" without updating
// every downstream consumer.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput is returned when a pricing precondition is violated.
// Callers can detect it with errors.Is; the wrapped message names the
// offending parameter.
var ErrInvalidInput = errors.New("invalid input")

// Kind identifies the option style.
type Kind int

const (
	Call Kind = iota
	Put
)

// String returns "call" or "put".
func (k Kind) String() string {
	if k == Put {
		return "put"
	}
	return "call"
}

// ParseKind resolves a textual option type to a Kind.
// Accepts "call"/"c" and "put"/"p", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return Call, fmt.Errorf("%w: option kind %q", ErrInvalidInput, s)
}

// OptionSpec describes a single European option to price.
// It is a plain value; Price never mutates it.
type OptionSpec struct {
	Spot         float64 // underlying price
	Strike       float64 // exercise price
	TimeToExpiry float64 // years, e.g. 30 days -> 30.0/365.0
	Rate         float64 // risk-free rate (annual, decimal)
	Vol          float64 // volatility (annual, decimal)
	Dividend     float64 // continuous dividend yield (annual, decimal)
	Kind         Kind
}

// Greeks bundles the option price with its sensitivities.
// All six fields are produced together by a single Price call.
type Greeks struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// Price computes the Black-Scholes-Merton price and Greeks for a European
// option.
//
// Three regimes are evaluated, dispatched on (T > 0, sigma > 0):
//
//  1. T == 0: the option is at (or past) expiry. Price is the undiscounted
//     intrinsic value and every other Greek is zero; rate-of-change
//     quantities are discontinuous at the boundary, so they are reported as
//     zero by convention.
//
//  2. sigma == 0: the terminal price is certain (the forward S*e^{-qT}), so
//     the price is the discounted intrinsic value of that forward and the
//     Greeks are zero. A modeling choice: true zero-vol Greeks are degenerate
//     step functions.
//
//  3. T > 0 and sigma > 0: the standard closed-form formulas.
//
// Returns ErrInvalidInput (wrapped with the offending parameter) for a
// negative spot, non-positive strike, negative expiry, or negative
// volatility. Degenerate-but-valid inputs (T == 0, sigma == 0) are not
// errors.
func Price(spec OptionSpec) (Greeks, error) {
	if err := validate(spec); err != nil {
		return Greeks{}, err
	}

	S, K := spec.Spot, spec.Strike
	T, r := spec.TimeToExpiry, spec.Rate
	sigma, q := spec.Vol, spec.Dividend

	// Regime 1: at expiry -> undiscounted intrinsic, Greeks collapse.
	if T == 0 {
		return Greeks{Price: intrinsic(spec.Kind, S, K)}, nil
	}

	// Regime 2: zero volatility -> certain forward, discounted intrinsic.
	// A zero spot is the same degenerate case: the terminal price is known.
	if sigma == 0 || S == 0 {
		forward := S * math.Exp(-q*T)
		return Greeks{Price: math.Exp(-r*T) * intrinsic(spec.Kind, forward, K)}, nil
	}

	// Regime 3: general closed form.
	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	dfDiv := math.Exp(-q * T)  // dividend discount factor
	dfRate := math.Exp(-r * T) // rate discount factor

	g := Greeks{
		Gamma: dfDiv * NormPDF(d1) / (S * sigma * sqrtT),
		Vega:  S * dfDiv * NormPDF(d1) * sqrtT,
	}

	if spec.Kind == Call {
		g.Price = S*dfDiv*NormCDF(d1) - K*dfRate*NormCDF(d2)
		g.Delta = dfDiv * NormCDF(d1)
		g.Rho = K * T * dfRate * NormCDF(d2)
		g.Theta = -(S*sigma*dfDiv*NormPDF(d1))/(2*sqrtT) -
			r*K*dfRate*NormCDF(d2) +
			q*S*dfDiv*NormCDF(d1)
	} else {
		g.Price = K*dfRate*NormCDF(-d2) - S*dfDiv*NormCDF(-d1)
		g.Delta = dfDiv * (NormCDF(d1) - 1.0)
		g.Rho = -K * T * dfRate * NormCDF(-d2)
		g.Theta = -(S*sigma*dfDiv*NormPDF(d1))/(2*sqrtT) +
			r*K*dfRate*NormCDF(-d2) -
			q*S*dfDiv*NormCDF(-d1)
	}

	return g, nil
}

func validate(spec OptionSpec) error {
	switch {
	case spec.Spot < 0:
		return fmt.Errorf("%w: spot %.6g < 0", ErrInvalidInput, spec.Spot)
	case spec.Strike <= 0:
		return fmt.Errorf("%w: strike %.6g <= 0", ErrInvalidInput, spec.Strike)
	case spec.TimeToExpiry < 0:
		return fmt.Errorf("%w: time to expiry %.6g < 0", ErrInvalidInput, spec.TimeToExpiry)
	case spec.Vol < 0:
		return fmt.Errorf("%w: volatility %.6g < 0", ErrInvalidInput, spec.Vol)
	case spec.Kind != Call && spec.Kind != Put:
		return fmt.Errorf("%w: option kind %d", ErrInvalidInput, spec.Kind)
	}
	return nil
}

// intrinsic is the exercise-now payoff, ignoring time value.
func intrinsic(kind Kind, S, K float64) float64 {
	if kind == Call {
		return math.Max(0, S-K)
	}
	return math.Max(0, K-S)
}
