package compatibility

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Reporter formats validation results for the terminal or as JSON.
type Reporter struct {
	jsonOutput bool
	verbose    bool
	writer     io.Writer
}

// ReporterOption is a functional option for configuring a Reporter
type ReporterOption func(*Reporter)

// WithJSONOutput enables JSON output format
func WithJSONOutput(jsonOutput bool) ReporterOption {
	return func(r *Reporter) {
		r.jsonOutput = jsonOutput
	}
}

// WithVerboseOutput lists the discovered image models in text output
func WithVerboseOutput(verbose bool) ReporterOption {
	return func(r *Reporter) {
		r.verbose = verbose
	}
}

// NewReporter creates a new reporter writing to writer.
func NewReporter(writer io.Writer, opts ...ReporterOption) *Reporter {
	r := &Reporter{writer: writer}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DiagnosticOutput represents the structured output for JSON format
type DiagnosticOutput struct {
	Profile              string        `json:"profile,omitempty"`
	Provider             string        `json:"provider"`
	ConnectionStatus     string        `json:"connectionStatus"`
	AuthenticationStatus string        `json:"authenticationStatus"`
	ImageModels          []string      `json:"imageModels,omitempty"`
	Level                string        `json:"level"`
	Checks               []CheckResult `json:"checks"`
	ResponseTimeMs       int64         `json:"responseTimeMs"`
	Error                string        `json:"error,omitempty"`
}

// Report outputs the result for the named profile in the configured format.
func (r *Reporter) Report(profile string, result *Result) error {
	if r.jsonOutput {
		return r.writeJSON(r.buildDiagnosticOutput(profile, result))
	}
	return r.reportText(profile, result)
}

func (r *Reporter) buildDiagnosticOutput(profile string, result *Result) DiagnosticOutput {
	return DiagnosticOutput{
		Profile:              profile,
		Provider:             result.Provider,
		ConnectionStatus:     checkStatus(result, CheckConnection, "connected", "failed", "skipped"),
		AuthenticationStatus: checkStatus(result, CheckAuthentication, "authenticated", "failed", "skipped"),
		ImageModels:          result.Models,
		Level:                result.Level,
		Checks:               result.Checks,
		ResponseTimeMs:       result.ResponseTime.Milliseconds(),
		Error:                result.Error,
	}
}

func (r *Reporter) writeJSON(output interface{}) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func (r *Reporter) reportText(profile string, result *Result) error {
	var sb strings.Builder

	sb.WriteString(verdict(result))
	if profile != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", profile))
	}
	sb.WriteString("\n\n")

	sb.WriteString("Summary:\n")
	sb.WriteString(fmt.Sprintf("  Provider:       %s\n", result.Provider))
	sb.WriteString(fmt.Sprintf("  Connection:     %s\n", checkStatus(result, CheckConnection, "✅ Connected", "❌ Failed", "➖ Not needed")))
	sb.WriteString(fmt.Sprintf("  Authentication: %s\n", checkStatus(result, CheckAuthentication, "✅ Authenticated", "❌ Failed", "➖ Not needed")))
	sb.WriteString(fmt.Sprintf("  Response Time:  %dms\n", result.ResponseTime.Milliseconds()))
	sb.WriteString("\n")

	sb.WriteString("Checks:\n")
	for _, check := range result.Checks {
		emoji := "✅"
		if !check.Passed {
			emoji = "⚠️"
			if check.Critical {
				emoji = "❌"
			}
		}
		sb.WriteString(fmt.Sprintf("  %s %s: %s\n", emoji, check.Name, check.Message))
	}

	if result.Error != "" {
		sb.WriteString(fmt.Sprintf("\nError: %s\n", result.Error))
	}

	if r.verbose && len(result.Models) > 0 {
		sb.WriteString("\nImage models:\n")
		for _, m := range result.Models {
			sb.WriteString("  - " + m + "\n")
		}
	}

	_, err := io.WriteString(r.writer, sb.String())
	return err
}

func verdict(result *Result) string {
	switch result.Level {
	case LevelFull:
		return "✅ Credentials are valid"
	case LevelPartial:
		return "⚠️ Credentials are valid with warnings"
	case LevelNone:
		return "❌ Credentials are NOT valid"
	default:
		return "❓ Unknown validation status"
	}
}

func checkStatus(result *Result, name, passed, failed, missing string) string {
	c, ok := result.Check(name)
	switch {
	case !ok:
		return missing
	case c.Passed:
		return passed
	default:
		return failed
	}
}

// ReportError outputs an error that prevented validation from running.
func (r *Reporter) ReportError(err error, category string) error {
	if r.jsonOutput {
		return r.writeJSON(map[string]string{
			"error":    err.Error(),
			"category": category,
		})
	}
	_, writeErr := fmt.Fprintf(r.writer, "❌ Error [%s]: %s\n", category, err.Error())
	return writeErr
}

// IsJSONOutput returns whether JSON output is enabled
func (r *Reporter) IsJSONOutput() bool {
	return r.jsonOutput
}
