// Package testutil holds shared test helpers.
package testutil

import (
	"math"
	"testing"
)

// WithinAbs fails the test if got is not within tol of want.
func WithinAbs(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: got %.10f, want %.10f (abs tol %g)", name, got, want, tol)
	}
}

// WithinRel fails the test if got is not within relative tolerance tol of
// want. Falls back to absolute comparison when want is zero.
func WithinRel(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if want == 0 {
		WithinAbs(t, name, got, want, tol)
		return
	}
	if math.Abs(got-want)/math.Abs(want) > tol {
		t.Fatalf("%s: got %.10f, want %.10f (rel tol %g)", name, got, want, tol)
	}
}
