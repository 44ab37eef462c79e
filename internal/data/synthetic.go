package data

import (
	"math"
	"math/rand"
	"time"
)

// synthDataProvider implements Provider by generating a seeded random walk.
// Used for offline runs and tests; weekends are skipped like a real
// exchange calendar.
type synthDataProvider struct {
	rng   *rand.Rand
	start float64
}

// NewSyntheticProvider returns a provider generating a reproducible
// random-walk price series. seed 0 selects a time-based seed.
func NewSyntheticProvider(seed int64, startPrice float64) Provider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if startPrice <= 0 {
		startPrice = 100.0
	}
	return &synthDataProvider{rng: rand.New(rand.NewSource(seed)), start: startPrice}
}

func (synthDataProv *synthDataProvider) GetDailyBars(underlying string, fromDate, toDate time.Time) ([]Bar, error) {
	cur := fromDate
	price := synthDataProv.start
	var out []Bar
	for !cur.After(toDate) {
		if cur.Weekday() != time.Saturday && cur.Weekday() != time.Sunday {
			delta := synthDataProv.rng.NormFloat64() * 0.01 * price
			open := price
			close := price + delta
			high := math.Max(open, close) + math.Abs(synthDataProv.rng.NormFloat64()*0.3)
			low := math.Min(open, close) - math.Abs(synthDataProv.rng.NormFloat64()*0.3)
			out = append(out, Bar{
				Date:  cur,
				Open:  open,
				High:  high,
				Low:   low,
				Close: close,
				Vol:   float64(1000 + synthDataProv.rng.Intn(5000)),
			})
			price = close
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return out, nil
}
