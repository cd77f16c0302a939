// Package constants provides shared constants for the rational-approx application.
package constants

// Approximation constants
const (
	// Float32Epsilon is the machine epsilon of a 32-bit float and the
	// default tolerance when approximating from a float32.
	Float32Epsilon = 0x1p-23

	// Float64Epsilon is the machine epsilon of a 64-bit float and the
	// default tolerance when approximating from a float64.
	Float64Epsilon = 0x1p-52

	// PracticalPrecisionLimit is the finest tolerance that terminates
	// without pathological numerator/denominator growth for 64-bit
	// widths. Finer tolerances are allowed but typically end in a
	// width-limited result.
	PracticalPrecisionLimit = 1e-13

	// MaxIterations caps the search loop. The total denominator at least
	// doubles per iteration, so any tolerance a 64-bit width can express
	// is met well inside the cap; it only matters for degenerate
	// floating-point inputs.
	MaxIterations = 64
)

// Integer width constants
const (
	// Width16 selects 16-bit signed numerators and denominators
	Width16 = 16

	// Width32 selects 32-bit signed numerators and denominators
	Width32 = 32

	// Width64 selects 64-bit signed numerators and denominators
	Width64 = 64

	// DefaultWidth is the width used when a target does not specify one
	DefaultWidth = Width64
)

// DefaultPrecision is the tolerance used when approximating a float64
// without an explicit tolerance.
const DefaultPrecision = Float64Epsilon

// DefaultTargetPrecision is the tolerance applied to configured targets
// that do not set their own. It is coarser than DefaultPrecision so that
// 16- and 32-bit targets converge instead of stopping width-limited.
const DefaultTargetPrecision = 1e-9

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Survey defaults
const (
	// DefaultSurveySamples is the number of random samples a survey draws
	// when the caller does not specify a count.
	DefaultSurveySamples = 100000

	// DefaultSurveyBins is the number of buckets in the survey's
	// iteration histogram.
	DefaultSurveyBins = 10
)
