package data

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMassiveProviderHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"ERROR","message":"internal error"}`))
	}))
	defer srv.Close()

	p := newMassiveDataProviderForTest("test", srv.URL)

	fromDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	if _, err := p.GetDailyBars("AAPL", fromDate, toDate); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestMassiveProviderPagination(t *testing.T) {
	callCount := 0

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		callCount++

		if callCount == 1 {
			w.Write([]byte(`{
				"ticker": "AAPL",
				"results": [
					{"t": 1735689600000, "o":1,"h":1,"l":1,"c":1,"v":100}
				],
				"next_url": "` + srv.URL + `/page2"
			}`))
			return
		}

		w.Write([]byte(`{
				"ticker": "AAPL",
				"results": [
					{"t": 1735776000000, "o":1,"h":1,"l":1,"c":2,"v":100}
				]
			}`))
	}))
	defer srv.Close()

	p := newMassiveDataProviderForTest("test", srv.URL)

	fromDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	bars, err := p.GetDailyBars("AAPL", fromDate, toDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if callCount != 2 {
		t.Fatalf("expected 2 requests, got %d", callCount)
	}
	if bars[1].Close != 2 {
		t.Fatalf("second page bar not decoded: %+v", bars[1])
	}
}

func TestMassiveProviderAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekret" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ticker":"AAPL","results":[{"t":1735689600000,"o":1,"h":1,"l":1,"c":1,"v":100}]}`))
	}))
	defer srv.Close()

	p := newMassiveDataProviderForTest("sekret", srv.URL)

	fromDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	if _, err := p.GetDailyBars("AAPL", fromDate, toDate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMassiveProviderEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ticker":"AAPL","results":[],"status":"OK"}`))
	}))
	defer srv.Close()

	p := newMassiveDataProviderForTest("test", srv.URL)

	fromDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	if _, err := p.GetDailyBars("AAPL", fromDate, toDate); err == nil {
		t.Fatal("expected error for empty result set, got nil")
	}
}

func TestMassiveProviderMislabeledContentType(t *testing.T) {
	// A JSON body served as text/plain must still decode instead of
	// silently yielding an empty result set.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`{"ticker":"AAPL","results":[{"t":1735689600000,"o":1,"h":1,"l":1,"c":1,"v":100}]}`))
	}))
	defer srv.Close()

	p := newMassiveDataProviderForTest("test", srv.URL)

	fromDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	bars, err := p.GetDailyBars("AAPL", fromDate, toDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(bars))
	}
}
