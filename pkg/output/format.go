// Package output provides utilities for formatting and displaying conversion results.
package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/iwvelando/rational-approx/internal/conversion"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []conversion.Conversion) {
	p := message.NewPrinter(language.English)

	nameWidth := len("Name")
	fractionWidth := len("Fraction")
	for _, result := range results {
		if len(result.Name) > nameWidth {
			nameWidth = len(result.Name)
		}
		if frac := p.Sprintf("%d/%d", result.Numerator, result.Denominator); len(frac) > fractionWidth {
			fractionWidth = len(frac)
		}
	}

	fmt.Printf("%-*s | %-18s | %-*s | %-18s | %-11s | %-10s | %s\n",
		nameWidth, "Name", "Value", fractionWidth, "Fraction", "Float", "Residual", "Iterations", "Status")
	fmt.Printf("%s | %s | %s | %s | %s | %s | %s\n",
		strings.Repeat("_", nameWidth), strings.Repeat("_", 18),
		strings.Repeat("_", fractionWidth), strings.Repeat("_", 18),
		strings.Repeat("_", 11), strings.Repeat("_", 10), strings.Repeat("_", 6))

	for _, result := range results {
		frac := p.Sprintf("%d/%d", result.Numerator, result.Denominator)
		fmt.Printf("%-*s | %-18.12g | %-*s | %-18.12g | %-11.3g | %-10d | %s\n",
			nameWidth, result.Name, result.Value,
			fractionWidth, frac,
			result.Float, result.Residual, result.Iterations, statusText(result))
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []conversion.Conversion) {
	fmt.Print(CsvString(results))
}

// CsvString returns the CSV rendering of the results as a string so the
// HTTP server can ship it in a JSON response.
func CsvString(results []conversion.Conversion) string {
	var builder strings.Builder
	builder.WriteString(`"name","value","precision","width","numerator","denominator","float","residual","lowestTerms","iterations","converged"`)
	builder.WriteString("\n")
	for _, result := range results {
		fmt.Fprintf(&builder, `"%s","%.17g","%g","%d","%d","%d","%.17g","%.3g","%t","%d","%t"`,
			result.Name, result.Value, result.Precision, result.Width,
			result.Numerator, result.Denominator,
			result.Float, result.Residual, result.InLowestTerms, result.Iterations, result.Converged)
		builder.WriteString("\n")
	}
	return builder.String()
}

func statusText(result conversion.Conversion) string {
	if result.Converged {
		return color.GreenString("converged")
	}
	return color.YellowString("width-limited")
}
