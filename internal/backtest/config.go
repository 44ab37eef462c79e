package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/contactkeval/condor-sim/internal/condor"
)

// Config describes one condor study: which price history to use, how the
// structure is placed, and how the payoff curve is swept.
type Config struct {
	Underlying string `json:"underlying" validate:"required"` // e.g. "AAPL"

	// Price history window. When From/To are empty the engine looks back
	// LookbackDays from today.
	From         string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To           string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LookbackDays int    `json:"lookback_days,omitempty" validate:"omitempty,min=2"` // default 365

	BarsFile string `json:"bars_file,omitempty"` // CSV export; overrides the HTTP provider

	DaysToExpiry *int    `json:"dte,omitempty" validate:"omitempty,min=0"`             // default 30; 0 = same-day study
	Rate         float64 `json:"rate,omitempty"`                                       // risk-free rate
	Dividend     float64 `json:"dividend,omitempty"`                                   // continuous yield
	Width        float64 `json:"width,omitempty" validate:"omitempty,gt=0"`            // wing width, default 5.0
	CreditRule   string  `json:"credit_rule,omitempty"`                                // number or SPOT/MOVE/WIDTH expression
	Coverage     float64 `json:"coverage,omitempty" validate:"omitempty,gt=0,lt=1"`    // prob. mass between shorts; 0 = one sigma
	ATMPremium   float64 `json:"atm_premium,omitempty" validate:"omitempty,gt=0"`      // observed ATM call premium; implies entry vol
	SweepSpanPct float64 `json:"sweep_span_pct,omitempty" validate:"omitempty,gt=0"`   // default 20 (0.8S..1.2S)
	SweepPoints  int     `json:"sweep_points,omitempty" validate:"omitempty,min=2"`    // default 200

	Seed      int64  `json:"seed,omitempty"`       // synthetic provider seed
	Verbosity int    `json:"verbosity,omitempty"`  // 0=errors,1=info,2=debug,3=trace
	ReportDir string `json:"report_dir,omitempty"` // default "./out"
}

// LoadConfig reads, parses, validates, and defaults a JSON config file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.LookbackDays == 0 {
		cfg.LookbackDays = 365
	}
	if cfg.DaysToExpiry == nil {
		dte := 30
		cfg.DaysToExpiry = &dte
	}
	if cfg.Width == 0 {
		cfg.Width = condor.DefaultWidth
	}
	if cfg.CreditRule == "" {
		cfg.CreditRule = "2.0"
	}
	if cfg.SweepSpanPct == 0 {
		cfg.SweepSpanPct = 20
	}
	if cfg.SweepPoints == 0 {
		cfg.SweepPoints = 200
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "./out"
	}
}

// window resolves the bar-fetch window from the config.
func (cfg *Config) window(now time.Time) (from, to time.Time, err error) {
	if (cfg.From != "") != (cfg.To != "") {
		return from, to, fmt.Errorf("window needs both from and to dates (got from=%q to=%q)", cfg.From, cfg.To)
	}
	if cfg.From != "" && cfg.To != "" {
		from, err = time.Parse("2006-01-02", cfg.From)
		if err != nil {
			return from, to, fmt.Errorf("parsing from date: %w", err)
		}
		to, err = time.Parse("2006-01-02", cfg.To)
		if err != nil {
			return from, to, fmt.Errorf("parsing to date: %w", err)
		}
		if !to.After(from) {
			return from, to, fmt.Errorf("window to %s not after from %s", cfg.To, cfg.From)
		}
		return from, to, nil
	}
	to = now
	from = now.AddDate(0, 0, -cfg.LookbackDays)
	return from, to, nil
}
