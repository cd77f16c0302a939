// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/rational-approx/internal/conversion"
)

// FindConversion finds a conversion by target name in the results slice.
// Returns a pointer to the conversion if found, nil otherwise.
func FindConversion(results []conversion.Conversion, name string) *conversion.Conversion {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
