package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"dispatch-generator/internal/analyze"
	"dispatch-generator/internal/common"
	"dispatch-generator/internal/config"
	"dispatch-generator/internal/plan"
)

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in (the container's package dir).
	Dir string
	// Filename is the base name (e.g. "payments_dispatch.gen.go").
	Filename string
	// Content is the formatted Go source.
	Content []byte
}

// templateData holds everything the dispatch file template needs.
type templateData struct {
	BuildTag    string
	PackageName string
	Imports     []importSpec
	Methods     []methodData
}

// importSpec represents one import statement.
type importSpec struct {
	Alias string
	Path  string
}

// methodData is one synthesized entry-point method. All expressions are
// pre-rendered strings; the template only lays them out.
type methodData struct {
	Recv      string // e.g. "h *Payments"
	Name      string
	Params    string // e.g. "err error, msg string"
	Results   string // e.g. " int", " (int, error)", or ""
	SwitchVar string
	Operand   string
	Cases     []caseData
	Default   string
	// Direct replaces the switch entirely when the plan has no specific
	// entries, so the switch variable never ends up unused.
	Direct string
}

// caseData is one case clause of the synthesized type switch.
type caseData struct {
	Types string
	Call  string
}

var dispatchTemplate = template.Must(template.New("dispatch").Parse(
	`// Code generated by dispatch-generator. DO NOT EDIT.

//go:build !{{.BuildTag}}

package {{.PackageName}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{end}}
{{- range .Methods}}
func ({{.Recv}}) {{.Name}}({{.Params}}){{.Results}} {
{{- if .Direct}}
	{{.Direct}}
{{- else}}
	switch {{.SwitchVar}} := {{.Operand}}.(type) {
{{- range .Cases}}
	case {{.Types}}:
		{{.Call}}
{{- end}}
	default:
		{{.Default}}
	}
{{- end}}
}
{{end}}`))

// renderer renders one container's plans, accumulating imports as it
// qualifies type references relative to the container's package.
type renderer struct {
	pkg     *types.Package
	imports map[string]importSpec
}

// renderContainer renders all dispatch plans of one container into a single
// formatted source file.
func renderContainer(c *analyze.ContainerInfo, plans []plan.Plan, cfg config.Config) (*GeneratedFile, error) {
	r := &renderer{
		pkg:     c.Pkg,
		imports: make(map[string]importSpec),
	}

	data := &templateData{
		BuildTag:    cfg.Output.BuildTag,
		PackageName: c.Pkg.Name(),
	}

	for i := range plans {
		data.Methods = append(data.Methods, r.methodData(c, &plans[i]))
	}

	for _, imp := range r.imports {
		data.Imports = append(data.Imports, imp)
	}

	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	var buf bytes.Buffer
	if err := dispatchTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return &GeneratedFile{
			Dir:      c.Dir,
			Filename: outputFileName(c.Name, cfg),
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Dir:      c.Dir,
		Filename: outputFileName(c.Name, cfg),
		Content:  formatted,
	}, nil
}

// methodData builds the template data for one entry point's synthesized body.
func (r *renderer) methodData(c *analyze.ContainerInfo, p *plan.Plan) methodData {
	entry := p.Entry

	recvName := entry.RecvName
	if recvName == "" {
		recvName = strings.ToLower(c.Name[:1])
	}

	md := methodData{
		Recv:    r.receiver(c, recvName, entry),
		Name:    entry.Name,
		Params:  r.paramList(entry),
		Results: r.resultList(entry),
	}

	md.SwitchVar = switchVarName(entry)

	operand := entry.Params[0].Name
	if !isInterface(entry.Params[0].Type) {
		// Type switches need an interface operand; classification guarantees
		// the parameter is error-assignable.
		operand = "error(" + operand + ")"
	}
	md.Operand = operand

	hasResults := len(entry.Results) > 0

	for i := range p.Specifics {
		md.Cases = append(md.Cases, caseData{
			Types: r.typeList(p.Specifics[i].Types),
			Call:  renderCall(entry, &p.Specifics[i], recvName, md.SwitchVar, hasResults),
		})
	}

	md.Default = defaultBranch(entry, p, recvName, md.SwitchVar, hasResults)

	if common.IsEmpty(md.Cases) {
		// Use the untouched first parameter; there is no narrowing to do.
		md.Direct = defaultBranch(entry, p, recvName, entry.Params[0].Name, hasResults)
	}

	return md
}

// defaultBranch renders what runs when no specific entry matched: the
// fallback call, or propagation of the unhandled error. Nothing is ever
// silently suppressed and no default result is fabricated.
func defaultBranch(entry *analyze.MethodInfo, p *plan.Plan, recvName, errVar string, hasResults bool) string {
	if p.Fallback == nil {
		return "panic(" + errVar + ")"
	}

	// The fallback receives the entry point's own parameters unnarrowed,
	// position 0 included.
	args := make([]string, 0, len(p.Fallback.Args))
	for _, a := range p.Fallback.Args {
		args = append(args, entry.Params[a.Index].Name)
	}

	call := fmt.Sprintf("%s.%s(%s)", recvName, p.Fallback.Method.Name, strings.Join(args, ", "))
	if hasResults {
		return "return " + call
	}

	return call
}

// renderCall renders the handler invocation for one matched case: the
// narrowed error value first, then the projected entry-point parameters.
func renderCall(entry *analyze.MethodInfo, e *plan.Entry, recvName, switchVar string, hasResults bool) string {
	args := []string{switchVar}
	for _, a := range e.Args {
		args = append(args, entry.Params[a.Index].Name)
	}

	call := fmt.Sprintf("%s.%s(%s)", recvName, e.Method.Name, strings.Join(args, ", "))
	if hasResults {
		return "return " + call
	}

	return call
}

// receiver renders the receiver clause of the synthesized method, reusing
// the stub's receiver name and pointer-ness.
func (r *renderer) receiver(c *analyze.ContainerInfo, recvName string, entry *analyze.MethodInfo) string {
	typ := c.Name
	if entry.RecvPointer {
		typ = "*" + typ
	}

	return recvName + " " + typ
}

// paramList renders the entry point's parameter list.
func (r *renderer) paramList(entry *analyze.MethodInfo) string {
	parts := make([]string, 0, len(entry.Params))
	for _, p := range entry.Params {
		parts = append(parts, p.Name+" "+r.typeString(p.Type))
	}

	return strings.Join(parts, ", ")
}

// resultList renders the entry point's result list, with a leading space
// when non-empty.
func (r *renderer) resultList(entry *analyze.MethodInfo) string {
	switch len(entry.Results) {
	case 0:
		return ""
	case 1:
		return " " + r.typeString(entry.Results[0])
	default:
		parts := make([]string, 0, len(entry.Results))
		for _, t := range entry.Results {
			parts = append(parts, r.typeString(t))
		}

		return " (" + strings.Join(parts, ", ") + ")"
	}
}

// typeList renders an error type set as a case expression list, preserving
// the set's order.
func (r *renderer) typeList(set analyze.ExceptionTypeSet) string {
	parts := make([]string, 0, len(set))
	for _, t := range set {
		parts = append(parts, r.typeString(t))
	}

	return strings.Join(parts, ", ")
}

// typeString renders a type relative to the container's package, recording
// any cross-package references for the import block.
func (r *renderer) typeString(t types.Type) string {
	return types.TypeString(t, func(other *types.Package) string {
		if other == r.pkg {
			return ""
		}

		r.imports[other.Path()] = importSpec{Path: other.Path()}

		return other.Name()
	})
}

// switchVarName picks the narrowed-value variable name, avoiding the entry
// point's parameter and receiver names.
func switchVarName(entry *analyze.MethodInfo) string {
	taken := map[string]bool{entry.RecvName: true}
	for _, p := range entry.Params {
		taken[p.Name] = true
	}

	name := "ex"
	for taken[name] {
		name += "x"
	}

	return name
}

// isInterface reports whether t's underlying type is an interface.
func isInterface(t types.Type) bool {
	_, ok := t.Underlying().(*types.Interface)

	return ok
}

// outputFileName derives the generated file name from the container name.
func outputFileName(container string, cfg config.Config) string {
	return snakeCase(container) + cfg.Output.Suffix
}

// snakeCase converts a CamelCase type name to snake_case. Runs of capitals
// stay together ("HTTPRelay" becomes "http_relay").
func snakeCase(s string) string {
	runes := []rune(s)

	var sb strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if i > 0 && (prevLower || nextLower) {
				sb.WriteByte('_')
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}
