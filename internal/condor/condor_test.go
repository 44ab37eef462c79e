package condor

import (
	"errors"
	"math"
	"testing"

	"github.com/contactkeval/condor-sim/internal/testutil"
)

func TestBuildGoldenScenario(t *testing.T) {
	st, err := Build(100, 0.2, 30.0/365.0, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.WithinAbs(t, "short_put", st.ShortPut, 94.27, 1e-2)
	testutil.WithinAbs(t, "long_put", st.LongPut, 89.27, 1e-2)
	testutil.WithinAbs(t, "short_call", st.ShortCall, 105.73, 1e-2)
	testutil.WithinAbs(t, "long_call", st.LongCall, 110.73, 1e-2)

	// Inside both short strikes the full credit is retained.
	if got := Payoff(100, st, 2.0); got != 2.0 {
		t.Fatalf("payoff at spot: got %f, want 2.0", got)
	}
}

func TestBuildOrdering(t *testing.T) {
	cases := []struct {
		name              string
		S, sigma, T, width float64
	}{
		{"golden", 100, 0.2, 30.0 / 365.0, 5},
		{"high_vol", 50, 0.8, 0.25, 2.5},
		{"long_dated", 400, 0.15, 1.0, 10},
		{"tiny_width", 10, 0.3, 0.1, 0.25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := Build(tc.S, tc.sigma, tc.T, tc.width)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !(st.LongPut < st.ShortPut && st.ShortPut < st.ShortCall && st.ShortCall < st.LongCall) {
				t.Fatalf("strikes not strictly ordered: %+v", st)
			}
			testutil.WithinAbs(t, "put wing", st.ShortPut-st.LongPut, tc.width, 1e-12)
			testutil.WithinAbs(t, "call wing", st.LongCall-st.ShortCall, tc.width, 1e-12)
		})
	}
}

func TestBuildDegenerateMove(t *testing.T) {
	// Zero vol or zero horizon collapses the inner width to zero. The
	// structure is still returned, not rejected.
	for _, tc := range []struct {
		name     string
		sigma, T float64
	}{
		{"zero_vol", 0, 0.25},
		{"zero_horizon", 0.2, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			st, err := Build(100, tc.sigma, tc.T, 5)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if st.ShortPut != 100 || st.ShortCall != 100 {
				t.Fatalf("expected collapsed shorts at spot, got %+v", st)
			}
			if st.LongPut != 95 || st.LongCall != 105 {
				t.Fatalf("wings misplaced: %+v", st)
			}
		})
	}
}

func TestBuildWithZ(t *testing.T) {
	one, err := BuildWithZ(100, 0.2, 0.25, 5, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	two, err := BuildWithZ(100, 0.2, 0.25, 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	moveOne := 100 - one.ShortPut
	moveTwo := 100 - two.ShortPut
	testutil.WithinAbs(t, "z scaling", moveTwo, 2*moveOne, 1e-12)
}

func TestBuildInvalidInput(t *testing.T) {
	cases := []struct {
		name                  string
		S, sigma, T, width, z float64
	}{
		{"zero_spot", 0, 0.2, 0.25, 5, 1},
		{"negative_spot", -100, 0.2, 0.25, 5, 1},
		{"negative_vol", 100, -0.2, 0.25, 5, 1},
		{"negative_horizon", 100, 0.2, -0.25, 5, 1},
		{"zero_width", 100, 0.2, 0.25, 0, 1},
		{"negative_width", 100, 0.2, 0.25, -5, 1},
		{"zero_z", 100, 0.2, 0.25, 5, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildWithZ(tc.S, tc.sigma, tc.T, tc.width, tc.z); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPayoffRegions(t *testing.T) {
	st := Strikes{LongPut: 89.27, ShortPut: 94.27, ShortCall: 105.73, LongCall: 110.73}
	credit := 2.0
	width := st.Width()

	cases := []struct {
		name     string
		terminal float64
		want     float64
	}{
		{"deep_below", 50, credit - width},
		{"at_long_put", st.LongPut, credit - width},
		{"at_short_put", st.ShortPut, credit},
		{"between_shorts", 100, credit},
		{"at_short_call", st.ShortCall, credit},
		{"at_long_call", st.LongCall, credit - width},
		{"deep_above", 200, credit - width},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.WithinAbs(t, "payoff", Payoff(tc.terminal, st, credit), tc.want, 1e-12)
		})
	}
}

func TestPayoffBound(t *testing.T) {
	st, err := Build(100, 0.25, 45.0/365.0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	credit := 1.35
	width := st.Width()

	for terminal := 0.0; terminal <= 250.0; terminal += 0.5 {
		p := Payoff(terminal, st, credit)
		if p > credit+1e-12 || p < credit-width-1e-12 {
			t.Fatalf("payoff %f at terminal %f escapes [%f, %f]", p, terminal, credit-width, credit)
		}
	}
}

func TestOutcomeHelpers(t *testing.T) {
	st, err := Build(100, 0.2, 30.0/365.0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	credit := 2.0

	if got := MaxProfit(st, credit); got != credit {
		t.Fatalf("max profit: got %f, want %f", got, credit)
	}
	testutil.WithinAbs(t, "max loss", MaxLoss(st, credit), credit-st.Width(), 1e-12)

	lo, hi := BreakEvens(st, credit)
	testutil.WithinAbs(t, "lower break-even payoff", Payoff(lo, st, credit), 0, 1e-12)
	testutil.WithinAbs(t, "upper break-even payoff", Payoff(hi, st, credit), 0, 1e-12)
	if !(lo < hi) {
		t.Fatalf("break-evens out of order: %f >= %f", lo, hi)
	}
}

func TestCurve(t *testing.T) {
	st, err := Build(100, 0.2, 30.0/365.0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pts, err := Curve(st, 2.0, 80, 120, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 200 {
		t.Fatalf("expected 200 points, got %d", len(pts))
	}
	if pts[0].Price != 80 || pts[len(pts)-1].Price != 120 {
		t.Fatalf("endpoints not sampled: first=%f last=%f", pts[0].Price, pts[len(pts)-1].Price)
	}

	// Max profit appears on the curve since the flat top is inside the sweep.
	best := math.Inf(-1)
	for _, p := range pts {
		if p.Payoff > best {
			best = p.Payoff
		}
	}
	testutil.WithinAbs(t, "curve max", best, 2.0, 1e-12)

	if _, err := Curve(st, 2.0, 80, 120, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for n=1, got %v", err)
	}
	if _, err := Curve(st, 2.0, 120, 80, 10); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted range, got %v", err)
	}
}
