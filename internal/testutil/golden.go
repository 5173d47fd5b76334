// Package testutil provides shared test helpers.
package testutil

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Golden returns a goldie instance configured for this repository's
// conventions: fixtures live in testdata/golden next to the test package,
// with a .golden suffix.
//
// To regenerate golden files, run:
//
//	go test ./... -update
func Golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}
