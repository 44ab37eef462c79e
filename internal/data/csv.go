package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/contactkeval/condor-sim/internal/logger"
)

// csvDataProvider implements Provider from a local CSV export of daily bars.
// Expected columns: date,open,high,low,close,volume with a header row.
// Rows outside the requested range are skipped; malformed rows are logged
// and skipped.
type csvDataProvider struct {
	path string
}

// NewCSVDataProvider returns a provider reading bars from the given file.
// The underlying symbol is ignored: one file holds one series.
func NewCSVDataProvider(path string) Provider {
	return &csvDataProvider{path: path}
}

func (csvDataProv *csvDataProvider) GetDailyBars(underlying string, fromDate, toDate time.Time) ([]Bar, error) {
	f, err := os.Open(csvDataProv.path)
	if err != nil {
		return nil, fmt.Errorf("open bars file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	var out []Bar
	for i, row := range records {
		if i == 0 {
			continue // header
		}
		if len(row) < 6 {
			logger.Debugf("skipping short row %d in %s", i+1, csvDataProv.path)
			continue
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			logger.Debugf("skipping row %d: bad date %q", i+1, row[0])
			continue
		}
		if date.Before(fromDate) || date.After(toDate) {
			continue
		}

		vals := make([]float64, 5)
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j+1]), 64)
			if err != nil {
				logger.Debugf("skipping row %d: bad number %q", i+1, row[j+1])
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		out = append(out, Bar{
			Date:  date,
			Open:  vals[0],
			High:  vals[1],
			Low:   vals[2],
			Close: vals[3],
			Vol:   vals[4],
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no bars in %s within requested range", csvDataProv.path)
	}

	return out, nil
}
