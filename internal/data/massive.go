// Massive-backed Provider implementation. Retrieves daily aggregate bars via
// the Massive HTTP API (Polygon-compatible), with pagination and bearer
// authentication handled by resty.
package data

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/contactkeval/condor-sim/internal/logger"
)

const massiveBaseURL = "https://api.massive.com"

// massiveDataProvider implements Provider using Massive aggregate APIs.
type massiveDataProvider struct {
	apiKey string
	client *resty.Client
}

// massiveAgg is a single aggregate window in a Massive bars response.
type massiveAgg struct {
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
	Trades    int64   `json:"n"`
	Timestamp int64   `json:"t"` // epoch millis
}

// massiveAggsResp models the paginated bars response.
type massiveAggsResp struct {
	Ticker    string       `json:"ticker"`
	Results   []massiveAgg `json:"results"`
	Status    string       `json:"status"`
	RequestID string       `json:"request_id"`
	NextURL   string       `json:"next_url"`
}

// massiveErrResp is the error envelope Massive returns on non-200 statuses.
type massiveErrResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewMassiveDataProvider constructs a Massive-backed data provider.
//
// Parameters:
//   - apiKey: Massive API key for authentication
func NewMassiveDataProvider(apiKey string) Provider {
	logger.Infof("initializing Massive data provider")

	client := resty.New().
		SetBaseURL(massiveBaseURL).
		SetTimeout(60 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "condor-sim/1.0")

	return &massiveDataProvider{apiKey: apiKey, client: client}
}

// newMassiveDataProviderForTest constructs a provider pointed at a test
// server.
func newMassiveDataProviderForTest(apiKey, baseURL string) Provider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Accept", "application/json")
	return &massiveDataProvider{apiKey: apiKey, client: client}
}

// GetDailyBars retrieves daily OHLCV bars for the given symbol and range,
// following next_url pagination until exhausted.
func (massiveDataProv *massiveDataProvider) GetDailyBars(
	underlying string,
	fromDate, toDate time.Time,
) ([]Bar, error) {

	logger.Debugf(
		"fetching bars: %s from=%s to=%s",
		underlying,
		fromDate.Format("2006-01-02"),
		toDate.Format("2006-01-02"),
	)

	reqURL := fmt.Sprintf(
		"/v2/aggs/ticker/%s/range/1/day/%s/%s",
		underlying,
		fromDate.Format("2006-01-02"),
		toDate.Format("2006-01-02"),
	)

	out := []Bar{}
	page := 0

	for reqURL != "" {
		page++
		logger.Tracef("bars request page=%d url=%s", page, reqURL)

		var body massiveAggsResp
		var apiErr massiveErrResp

		req := massiveDataProv.client.R().
			SetResult(&body).
			SetError(&apiErr).
			// The API always speaks JSON; decode the body even when a proxy
			// mislabels the content type.
			ForceContentType("application/json")

		// Query params only apply to the first request; next_url already
		// carries them.
		if page == 1 {
			req.SetQueryParams(map[string]string{
				"adjusted": "true",
				"sort":     "asc",
				"limit":    "50000",
			})
		}

		resp, err := req.Get(reqURL)
		if err != nil {
			logger.Errorf("bars request failed: %v", err)
			return nil, fmt.Errorf("massive api request failed: %w", err)
		}

		if resp.StatusCode() != http.StatusOK {
			logger.Errorf(
				"massive bars API error status=%d message=%s",
				resp.StatusCode(),
				apiErr.Message,
			)
			return nil, fmt.Errorf(
				"massive returned status %d: %s",
				resp.StatusCode(),
				apiErr.Message,
			)
		}

		logger.Tracef("bars received: %d records", len(body.Results))

		for _, r := range body.Results {
			out = append(out, Bar{
				Date:  time.UnixMilli(r.Timestamp).UTC(),
				Open:  r.Open,
				High:  r.High,
				Low:   r.Low,
				Close: r.Close,
				Vol:   r.Volume,
			})
		}

		reqURL = body.NextURL
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no bars returned for %s", underlying)
	}

	return out, nil
}
