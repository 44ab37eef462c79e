package pricing

import (
	"errors"
	"testing"

	"github.com/contactkeval/condor-sim/internal/testutil"
)

func TestImpliedVolRecoversInput(t *testing.T) {
	// Price a call at a known vol, then back the vol out of the premium.
	const premium = 6.779490734346545 // Price(100, 105, 0.5, 0.02, 0.30, call)

	iv, err := ImpliedVol(Call, 100, 105, 0.5, 0.02, premium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.WithinAbs(t, "implied vol", iv, 0.30, 1e-4)
}

func TestImpliedVolInvalidInput(t *testing.T) {
	if _, err := ImpliedVol(Call, 100, 105, 0, 0.02, 5.0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero expiry, got %v", err)
	}
	if _, err := ImpliedVol(Put, 100, 105, 0.5, 0.02, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative premium, got %v", err)
	}
}
