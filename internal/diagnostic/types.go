package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"dispatch-generator/internal/common"
)

// Stable diagnostic codes. Codes are part of the tool's external surface;
// never renumber an existing one.
const (
	// CodeNotMultiPart: container's entry-point stubs are not gated behind the
	// generator build tag, so the generated file would collide with them.
	CodeNotMultiPart = "DG001"
	// CodeNestedContainer: container type is declared in a non-package scope.
	CodeNestedContainer = "DG002"
	// CodeUnresolvedSymbol: a tagged method's declared symbol could not be
	// resolved from the loaded type information.
	CodeUnresolvedSymbol = "DG003"
	// CodeOverlappingSets: two specific handlers claim intersecting error
	// type sets; resolution stays declaration-ordered.
	CodeOverlappingSets = "DG004"
	// CodeNarrowingMismatch: a specific handler's first parameter cannot
	// receive the value its case clause would bind, so the synthesized
	// dispatch would not compile.
	CodeNarrowingMismatch = "DG005"
)

// Diagnostics holds all diagnostic information produced while analyzing
// one or more containers.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Container names the container type this relates to (if any).
	Container string
	// Method names the method this relates to (if any).
	Method string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, container, method string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:  SeverityError,
		Code:      code,
		Message:   message,
		Container: container,
		Method:    method,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, container, method string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  SeverityWarning,
		Code:      code,
		Message:   message,
		Container: container,
		Method:    method,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, container, method string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:  SeverityInfo,
		Code:      code,
		Message:   message,
		Container: container,
		Method:    method,
	})
}

// Add files a prebuilt diagnostic under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	return out
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Container != "" {
		prefix = append(prefix, "["+d.Container+"]")
	}

	if d.Method != "" {
		prefix = append(prefix, d.Method)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
