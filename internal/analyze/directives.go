package analyze

import (
	"go/ast"
	"strings"
)

// Directive vocabulary. Directives are comment lines of the form
// "//dispatchgen:<kind> [args...]" attached to a type or method declaration.
const (
	directivePrefix = "//dispatchgen:"

	dirContainer  = "container"
	dirEntryPoint = "entrypoint"
	dirHandle     = "handle"
	dirFallback   = "fallback"
)

// directive is one parsed dispatchgen comment line.
type directive struct {
	kind string
	args []string
}

// parseDirectives extracts all dispatchgen directives from a comment group.
// Returns nil when the group is nil or carries none.
func parseDirectives(doc *ast.CommentGroup) []directive {
	if doc == nil {
		return nil
	}

	var out []directive

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, directivePrefix)
		if !ok {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}

		out = append(out, directive{kind: fields[0], args: fields[1:]})
	}

	return out
}

// roleOf maps a directive kind to its method role.
func roleOf(kind string) Role {
	switch kind {
	case dirEntryPoint:
		return RoleEntryPoint
	case dirHandle:
		return RoleSpecific
	case dirFallback:
		return RoleFallback
	default:
		return RoleNone
	}
}

// firstRoleDirective returns the first directive that names a method role,
// or false when the group carries none.
func firstRoleDirective(doc *ast.CommentGroup) (directive, bool) {
	for _, d := range parseDirectives(doc) {
		if roleOf(d.kind) != RoleNone {
			return d, true
		}
	}

	return directive{}, false
}

// hasContainerDirective reports whether the comment group marks a container.
func hasContainerDirective(doc *ast.CommentGroup) bool {
	for _, d := range parseDirectives(doc) {
		if d.kind == dirContainer {
			return true
		}
	}

	return false
}
