package analyze

import (
	"go/ast"
	"go/types"

	"dispatch-generator/internal/diagnostic"
)

// Role identifies which dispatch role a tagged method plays.
type Role int

const (
	RoleNone Role = iota
	RoleEntryPoint
	RoleSpecific
	RoleFallback
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleEntryPoint:
		return "entrypoint"
	case RoleSpecific:
		return "specific"
	case RoleFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Param is a single method parameter.
type Param struct {
	Name string
	Type types.Type
}

// MethodInfo describes one tagged method of a container type.
// All fields are derived per generation pass; instances carry no identity
// beyond the pass that built them.
type MethodInfo struct {
	// Role assigned from the method's directive.
	Role Role
	// Name is the declared method name.
	Name string
	// Params are the declared parameters in order, receiver excluded.
	Params []Param
	// Results are the declared result types in order.
	Results []types.Type
	// IsStub is true when the method lives in a file gated behind the
	// generator build tag, i.e. it is a declaration-only stub whose
	// implementation is synthesized.
	IsStub bool
	// Order is the method's declaration index within its container.
	// Eligibility ties are broken by the lowest order.
	Order int
	// ExplicitTypes holds the resolved type arguments of the handle
	// directive, in the order written. Empty when none were given.
	ExplicitTypes []types.Type
	// Pkg is the package the method is declared in.
	Pkg *types.Package
	// RecvName is the declared receiver name, used when rendering the
	// synthesized body. Empty for hand-built descriptors.
	RecvName string
	// RecvPointer is true when the receiver is a pointer receiver.
	RecvPointer bool
}

// ParamCount returns the number of declared parameters.
func (m *MethodInfo) ParamCount() int {
	return len(m.Params)
}

// ExceptionParam returns the type of the first parameter, or nil if the
// method has no parameters.
func (m *MethodInfo) ExceptionParam() types.Type {
	if len(m.Params) == 0 {
		return nil
	}

	return m.Params[0].Type
}

// Exported reports whether the method name is exported.
func (m *MethodInfo) Exported() bool {
	return ast.IsExported(m.Name)
}

// ContainerInfo describes one container type and its tagged methods.
type ContainerInfo struct {
	// Name is the container type name.
	Name string
	// Pkg is the package declaring the container.
	Pkg *types.Package
	// Type is the named container type.
	Type types.Type
	// Dir is the directory holding the container's source, where the
	// generated file is written.
	Dir string
	// MultiPart is true when every entry-point stub lives in a file gated
	// behind the generator build tag, so a sibling generated file can carry
	// the synthesized implementations without colliding.
	MultiPart bool
	// Nested is true when the container type is declared in a non-package
	// scope. Methods cannot be attached to such types from another file.
	Nested bool
	// Methods are the tagged methods in declaration order.
	Methods []MethodInfo
	// Problems holds extraction failures found while loading this container.
	// A container with problems is skipped; sibling containers are not.
	Problems []diagnostic.Diagnostic
}

var errorIface = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

// IsErrorType reports whether t is assignable to the built-in error
// interface, i.e. whether t is an exception type in this host model.
func IsErrorType(t types.Type) bool {
	return t != nil && types.AssignableTo(t, errorIface)
}

// Provider is the narrow seam to the host symbol model. Anything that can
// enumerate container types with their tagged methods can drive the engine:
// the go/packages Loader, a language server, or a hand-built type table.
type Provider interface {
	Containers(patterns ...string) ([]*ContainerInfo, error)
}
