package condor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Knetic/govaluate"
)

// ErrInvalidCreditRule is returned when a credit rule cannot be parsed or
// does not evaluate to a number.
var ErrInvalidCreditRule = errors.New("invalid credit rule")

// ResolveCredit evaluates a credit rule into the net premium collected at
// entry.
//
// A rule is either a plain number ("2.0") or an expression over the
// variables SPOT, MOVE, and WIDTH, e.g. "0.35 * WIDTH" or
// "MOVE / 10 + 0.5". Expressions are evaluated with govaluate.
//
// Parameters:
//   - rule: credit rule string
//   - spot: underlying price at entry
//   - move: expected move used to place the short strikes
//   - width: wing width
//
// Returns the resolved credit, or ErrInvalidCreditRule (wrapped) if the
// rule cannot be evaluated.
func ResolveCredit(rule string, spot, move, width float64) (float64, error) {
	if v, err := strconv.ParseFloat(rule, 64); err == nil {
		return v, nil
	}

	expr, err := govaluate.NewEvaluableExpression(rule)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidCreditRule, rule, err)
	}

	result, err := expr.Evaluate(map[string]interface{}{
		"SPOT":  spot,
		"MOVE":  move,
		"WIDTH": width,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidCreditRule, rule, err)
	}

	f, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q: non-numeric result", ErrInvalidCreditRule, rule)
	}

	return f, nil
}
