// Package output provides utilities for formatting and displaying valuation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/dcf-valuation/internal/valuation"
	"github.com/iwvelando/dcf-valuation/pkg/constants"
	"github.com/iwvelando/dcf-valuation/pkg/format"
	"github.com/iwvelando/dcf-valuation/pkg/units"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var indianEnglish = language.MustParse("en-IN")

// Render writes result to w in the named output format.
func Render(w io.Writer, outputFormat, company string, result *valuation.Result) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, company, result)
	case constants.OutputFormatCSV:
		return CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
// Per-year amounts are shown in crores.
func PrettyFormat(w io.Writer, company string, result *valuation.Result) error {
	if result == nil {
		return fmt.Errorf("no valuation result to format")
	}
	p := message.NewPrinter(indianEnglish)

	if company == "" {
		company = "unnamed company"
	}
	_, _ = fmt.Fprintf(w, "--- DCF valuation for %s ---\n", company)
	_, _ = fmt.Fprintf(w, "Cost of equity          | %s\n", format.Percent(result.CostOfEquity))
	_, _ = fmt.Fprintf(w, "After-tax cost of debt  | %s\n", format.Percent(result.AfterTaxCostOfDebt))
	_, _ = fmt.Fprintf(w, "WACC                    | %s\n", format.Percent(result.WACC))
	_, _ = fmt.Fprintf(w, "Sum of PV(FCFF)         | %s\n", format.Crores(result.SumPVFCFF))
	_, _ = fmt.Fprintf(w, "Terminal value          | %s\n", format.Crores(result.TerminalValue))
	_, _ = fmt.Fprintf(w, "PV of terminal value    | %s\n", format.Crores(result.PresentValueTerminalValue))
	_, _ = fmt.Fprintf(w, "Enterprise value        | %s\n", format.Crores(result.EnterpriseValue))
	_, _ = fmt.Fprintf(w, "Equity value            | %s\n", format.Crores(result.EquityValue))
	_, _ = fmt.Fprintf(w, "Intrinsic share price   | %s\n", format.Rupees(result.SharePrice))
	_, _ = fmt.Fprintf(w, "\n")

	_, _ = fmt.Fprintf(w, "Year | Revenue (Cr) | Margin | EBIT (Cr) | NOPAT (Cr) | Reinvestment (Cr) | FCFF (Cr) | PV FCFF (Cr)\n")
	_, _ = fmt.Fprintf(w, "____ | ____________ | ______ | _________ | __________ | _________________ | _________ | ____________\n")
	for _, y := range result.Projections {
		_, err := p.Fprintf(w, "%4d | %.2f | %s | %.2f | %.2f | %.2f | %.2f | %.2f\n",
			y.Year,
			units.RupeesToCrores(y.Revenue),
			format.Percent(y.OperatingMargin),
			units.RupeesToCrores(y.EBIT),
			units.RupeesToCrores(y.NOPAT),
			units.RupeesToCrores(y.Reinvestment),
			units.RupeesToCrores(y.FCFF),
			units.RupeesToCrores(y.PresentValueFCFF),
		)
		if err != nil {
			return fmt.Errorf("failed to write projection for year %d: %w", y.Year, err)
		}
	}

	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintf(w, "\nWarnings:\n")
		for _, warning := range result.Warnings {
			_, _ = fmt.Fprintf(w, "  [%s] %s\n", warning.Code, warning.Message)
		}
	}
	return nil
}

// CsvFormat outputs the per-year projections in comma-separated value format.
// Amounts are absolute rupees and rates are decimal fractions.
func CsvFormat(w io.Writer, result *valuation.Result) error {
	if result == nil {
		return fmt.Errorf("no valuation result to format")
	}
	cw := csv.NewWriter(w)
	header := []string{
		"year", "revenue", "operating_margin", "ebit", "tax_on_ebit", "nopat",
		"reinvestment", "fcff", "discount_factor", "present_value_fcff",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, y := range result.Projections {
		record := []string{
			strconv.Itoa(y.Year),
			formatAmount(y.Revenue),
			formatRate(y.OperatingMargin),
			formatAmount(y.EBIT),
			formatAmount(y.TaxOnEBIT),
			formatAmount(y.NOPAT),
			formatAmount(y.Reinvestment),
			formatAmount(y.FCFF),
			formatRate(y.DiscountFactor),
			formatAmount(y.PresentValueFCFF),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for year %d: %w", y.Year, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the full result as indented JSON.
func JSONFormat(w io.Writer, result *valuation.Result) error {
	if result == nil {
		return fmt.Errorf("no valuation result to format")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// YAMLFormat writes v as YAML. The CLI uses it to echo the resolved inputs.
func YAMLFormat(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
