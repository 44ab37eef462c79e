// Package data provides historical market data to the pricing and condor
// packages as plain numeric series. Providers fetch daily bars; everything
// downstream of that (volatility estimation, strike placement, payoff
// sweeps) consumes values, never the provider itself.
package data

import "time"

// Provider supplies historical market data.
type Provider interface {
	// GetDailyBars returns daily OHLCV bars for underlying in [fromDate, toDate],
	// oldest first.
	GetDailyBars(underlying string, fromDate, toDate time.Time) ([]Bar, error)
}

// Bar is a simplified daily OHLCV record.
type Bar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
	Vol   float64
}

// Closes extracts the close series from a bar slice, preserving order.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
