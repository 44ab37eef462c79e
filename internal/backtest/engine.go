// Package backtest drives one condor study end to end: fetch a price
// history, estimate volatility, place the structure, and sweep its
// expiration payoff. All mathematics lives in the pricing and condor
// packages; this package is glue.
package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/contactkeval/condor-sim/internal/condor"
	"github.com/contactkeval/condor-sim/internal/data"
	"github.com/contactkeval/condor-sim/internal/logger"
	"github.com/contactkeval/condor-sim/internal/pricing"
)

// Engine runs condor studies for a fixed config and data provider.
type Engine struct {
	cfg  *Config
	prov data.Provider
	now  func() time.Time
}

// Leg is one priced option leg of the structure at entry.
type Leg struct {
	Name   string         `json:"name"` // long_put, short_put, short_call, long_call
	Kind   string         `json:"kind"` // call or put
	Strike float64        `json:"strike"`
	Greeks pricing.Greeks `json:"greeks"`
}

// Result is the full output of a condor study.
type Result struct {
	Underlying   string         `json:"underlying"`
	Spot         float64        `json:"spot"`
	Vol          float64        `json:"vol"`          // annualized entry volatility
	TimeToExpiry float64        `json:"t"`            // years
	Strikes      condor.Strikes `json:"strikes"`
	Credit       float64        `json:"credit"`       // collected per config rule
	ModelCredit  float64        `json:"model_credit"` // net premium per Black-Scholes
	Legs         []Leg          `json:"legs"`
	Curve        []condor.Point `json:"curve"`
	MaxProfit    float64        `json:"max_profit"`
	MaxLoss      float64        `json:"max_loss"`
	BreakEvenLo  float64        `json:"break_even_lo"`
	BreakEvenHi  float64        `json:"break_even_hi"`
}

// NewEngine builds an engine over cfg and prov.
func NewEngine(cfg *Config, prov data.Provider) *Engine {
	return &Engine{cfg: cfg, prov: prov, now: time.Now}
}

// Run executes one study.
func (e *Engine) Run() (*Result, error) {
	cfg := e.cfg

	from, to, err := cfg.window(e.now())
	if err != nil {
		return nil, err
	}

	bars, err := e.prov.GetDailyBars(cfg.Underlying, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars for %s", cfg.Underlying)
	}

	closes := data.Closes(bars)
	spot := closes[len(closes)-1]
	T := float64(*cfg.DaysToExpiry) / 365.0

	sigma := data.AnnualizedVolatility(closes)
	logger.Infof("hist vol = %.2f%% over %d bars", sigma*100, len(bars))

	// An observed ATM premium overrides the historical estimate.
	if cfg.ATMPremium > 0 {
		iv, err := pricing.ImpliedVol(pricing.Call, spot, spot, T, cfg.Rate, cfg.ATMPremium)
		if err != nil {
			return nil, fmt.Errorf("implying entry vol: %w", err)
		}
		logger.Infof("implied vol = %.2f%% from ATM premium %.2f", iv*100, cfg.ATMPremium)
		sigma = iv
	}

	// Coverage p maps to a z multiplier via the normal quantile; zero keeps
	// the one-sigma placement.
	z := 1.0
	if cfg.Coverage > 0 {
		z = pricing.NormInv((1 + cfg.Coverage) / 2)
	}

	strikes, err := condor.BuildWithZ(spot, sigma, T, cfg.Width, z)
	if err != nil {
		return nil, fmt.Errorf("building condor: %w", err)
	}

	move := z * spot * sigma * math.Sqrt(T)
	credit, err := condor.ResolveCredit(cfg.CreditRule, spot, move, cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("resolving credit: %w", err)
	}

	logger.Infof(
		"condor %s spot=%.2f strikes=[%.2f %.2f %.2f %.2f] credit=%.2f",
		cfg.Underlying, spot,
		strikes.LongPut, strikes.ShortPut, strikes.ShortCall, strikes.LongCall,
		credit,
	)

	legs, modelCredit, err := e.priceLegs(spot, sigma, T, strikes)
	if err != nil {
		return nil, err
	}

	lo := spot * (1 - cfg.SweepSpanPct/100)
	hi := spot * (1 + cfg.SweepSpanPct/100)
	curve, err := condor.Curve(strikes, credit, lo, hi, cfg.SweepPoints)
	if err != nil {
		return nil, fmt.Errorf("sweeping payoff: %w", err)
	}

	beLo, beHi := condor.BreakEvens(strikes, credit)

	return &Result{
		Underlying:   cfg.Underlying,
		Spot:         spot,
		Vol:          sigma,
		TimeToExpiry: T,
		Strikes:      strikes,
		Credit:       credit,
		ModelCredit:  modelCredit,
		Legs:         legs,
		Curve:        curve,
		MaxProfit:    condor.MaxProfit(strikes, credit),
		MaxLoss:      condor.MaxLoss(strikes, credit),
		BreakEvenLo:  beLo,
		BreakEvenHi:  beHi,
	}, nil
}

// priceLegs evaluates the four legs at entry and the net credit the model
// would assign to the structure (shorts received, longs paid).
func (e *Engine) priceLegs(spot, sigma, T float64, st condor.Strikes) ([]Leg, float64, error) {
	cfg := e.cfg

	specs := []struct {
		name   string
		kind   pricing.Kind
		strike float64
		sign   float64
	}{
		{"long_put", pricing.Put, st.LongPut, -1},
		{"short_put", pricing.Put, st.ShortPut, +1},
		{"short_call", pricing.Call, st.ShortCall, +1},
		{"long_call", pricing.Call, st.LongCall, -1},
	}

	legs := make([]Leg, 0, len(specs))
	modelCredit := 0.0

	for _, s := range specs {
		g, err := pricing.Price(pricing.OptionSpec{
			Spot:         spot,
			Strike:       s.strike,
			TimeToExpiry: T,
			Rate:         cfg.Rate,
			Vol:          sigma,
			Dividend:     cfg.Dividend,
			Kind:         s.kind,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("pricing %s: %w", s.name, err)
		}

		logger.Debugf(
			"leg %s strike=%.2f price=%.4f delta=%.4f",
			s.name, s.strike, g.Price, g.Delta,
		)

		legs = append(legs, Leg{Name: s.name, Kind: s.kind.String(), Strike: s.strike, Greeks: g})
		modelCredit += s.sign * g.Price
	}

	return legs, modelCredit, nil
}
