// Package report writes condor study results as JSON, CSV, and a plain-text
// summary table.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/contactkeval/condor-sim/internal/backtest"
)

// money formats a float as a currency amount rounded to cents.
func money(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

// WriteJSON writes the full result to <dir>/result.json.
func WriteJSON(res *backtest.Result, dir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "result.json"), b, 0644)
}

// WriteCSV writes the payoff curve to <dir>/payoff.csv and the priced legs
// to <dir>/legs.csv.
func WriteCSV(res *backtest.Result, dir string) error {
	if err := writeCurveCSV(res, filepath.Join(dir, "payoff.csv")); err != nil {
		return err
	}
	return writeLegsCSV(res, filepath.Join(dir, "legs.csv"))
}

func writeCurveCSV(res *backtest.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"terminal_price", "payoff"}); err != nil {
		return err
	}
	for _, p := range res.Curve {
		if err := w.Write([]string{money(p.Price), money(p.Payoff)}); err != nil {
			return err
		}
	}
	return nil
}

func writeLegsCSV(res *backtest.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"leg", "kind", "strike", "price", "delta", "gamma", "vega", "theta", "rho"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, leg := range res.Legs {
		row := []string{
			leg.Name,
			leg.Kind,
			money(leg.Strike),
			fmt.Sprintf("%.4f", leg.Greeks.Price),
			fmt.Sprintf("%.4f", leg.Greeks.Delta),
			fmt.Sprintf("%.6f", leg.Greeks.Gamma),
			fmt.Sprintf("%.4f", leg.Greeks.Vega),
			fmt.Sprintf("%.4f", leg.Greeks.Theta),
			fmt.Sprintf("%.4f", leg.Greeks.Rho),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// PrintSummary writes the strikes/outcome table the demo prints after a run.
func PrintSummary(w io.Writer, res *backtest.Result) {
	fmt.Fprintf(w, "Iron Condor: %s\n", res.Underlying)
	fmt.Fprintf(w, "  spot:        %s\n", money(res.Spot))
	fmt.Fprintf(w, "  vol:         %.2f%%\n", res.Vol*100)
	fmt.Fprintf(w, "  long_put:    %s\n", money(res.Strikes.LongPut))
	fmt.Fprintf(w, "  short_put:   %s\n", money(res.Strikes.ShortPut))
	fmt.Fprintf(w, "  short_call:  %s\n", money(res.Strikes.ShortCall))
	fmt.Fprintf(w, "  long_call:   %s\n", money(res.Strikes.LongCall))
	fmt.Fprintf(w, "  credit:      %s (model: %s)\n", money(res.Credit), money(res.ModelCredit))
	fmt.Fprintf(w, "  max profit:  %s\n", money(res.MaxProfit))
	fmt.Fprintf(w, "  max loss:    %s\n", money(res.MaxLoss))
	fmt.Fprintf(w, "  break-evens: %s / %s\n", money(res.BreakEvenLo), money(res.BreakEvenHi))
}
