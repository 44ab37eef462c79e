package data

import (
	"math"

	"github.com/montanaflynn/stats"
)

// tradingDaysPerYear annualizes a daily return stdev.
const tradingDaysPerYear = 252.0

// LogReturns computes the daily log-return series ln(c[i]/c[i-1]) of a close
// series. Returns nil for fewer than two closes.
func LogReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out = append(out, math.Log(closes[i]/closes[i-1]))
	}
	return out
}

// AnnualizedVolatility estimates annualized volatility as the sample
// standard deviation of daily log returns scaled by sqrt(252).
//
// With fewer than two closes there is nothing to estimate and a 30% default
// is returned, matching the replay engine's fallback.
func AnnualizedVolatility(closes []float64) float64 {
	rets := LogReturns(closes)
	if len(rets) < 2 {
		return 0.30
	}
	sd, err := stats.StandardDeviationSample(rets)
	if err != nil {
		return 0.30
	}
	return sd * math.Sqrt(tradingDaysPerYear)
}
