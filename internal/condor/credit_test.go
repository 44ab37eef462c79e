package condor

import (
	"errors"
	"testing"

	"github.com/contactkeval/condor-sim/internal/testutil"
)

func TestResolveCredit(t *testing.T) {
	cases := []struct {
		name              string
		rule              string
		spot, move, width float64
		want              float64
	}{
		{"constant", "2.0", 100, 5.73, 5, 2.0},
		{"integer_constant", "3", 100, 5.73, 5, 3.0},
		{"width_fraction", "0.35 * WIDTH", 100, 5.73, 5, 1.75},
		{"move_based", "MOVE / 10 + 0.5", 100, 6.0, 5, 1.1},
		{"spot_based", "SPOT * 0.01", 250, 5, 5, 2.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveCredit(tc.rule, tc.spot, tc.move, tc.width)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.WithinAbs(t, "credit", got, tc.want, 1e-12)
		})
	}
}

func TestResolveCreditInvalid(t *testing.T) {
	for _, rule := range []string{"0.35 *", "WIDTH +* 2", "NOPE(", `"text"`} {
		if _, err := ResolveCredit(rule, 100, 5, 5); !errors.Is(err, ErrInvalidCreditRule) {
			t.Fatalf("rule %q: expected ErrInvalidCreditRule, got %v", rule, err)
		}
	}
}
