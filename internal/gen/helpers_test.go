package gen

import (
	"go/token"
	"go/types"

	"dispatch-generator/internal/analyze"
)

// errType is the built-in error interface type.
var errType = types.Universe.Lookup("error").Type()

// newErrorType declares a named struct with a pointer Error method in pkg
// and returns the pointer type, which implements error.
func newErrorType(pkg *types.Package, name string) types.Type {
	obj := types.NewTypeName(token.NoPos, pkg, name, nil)
	named := types.NewNamed(obj, types.NewStruct(nil, nil), nil)

	recv := types.NewVar(token.NoPos, pkg, "e", types.NewPointer(named))
	sig := types.NewSignatureType(recv, nil, nil, types.NewTuple(),
		types.NewTuple(types.NewVar(token.NoPos, pkg, "", types.Typ[types.String])), false)
	named.AddMethod(types.NewFunc(token.NoPos, pkg, "Error", sig))

	pkg.Scope().Insert(obj)

	return types.NewPointer(named)
}

// fixture bundles a ready-to-render container with its error types.
type fixture struct {
	pkg       *types.Package
	valErr    types.Type
	timeout   types.Type
	rateLimit types.Type
	container *analyze.ContainerInfo
}

// newFixture builds a processor container with one entry point, two specific
// handlers, and a fallback, mirroring the examples/payments package.
func newFixture() *fixture {
	pkg := types.NewPackage("example.com/payments", "payments")

	f := &fixture{
		pkg:       pkg,
		valErr:    newErrorType(pkg, "ValidationError"),
		timeout:   newErrorType(pkg, "TimeoutError"),
		rateLimit: newErrorType(pkg, "RateLimitError"),
	}

	f.container = &analyze.ContainerInfo{
		Name:      "Processor",
		Pkg:       pkg,
		Dir:       "payments",
		MultiPart: true,
		Methods: []analyze.MethodInfo{
			{
				Role: analyze.RoleSpecific, Name: "HandleValidation", Order: 0, Pkg: pkg,
				Params: []analyze.Param{
					{Name: "err", Type: f.valErr},
					{Name: "ref", Type: types.Typ[types.String]},
				},
				Results: []types.Type{types.Typ[types.Int]},
			},
			{
				Role: analyze.RoleSpecific, Name: "HandleTransient", Order: 1, Pkg: pkg,
				Params: []analyze.Param{
					{Name: "err", Type: errType},
				},
				Results:       []types.Type{types.Typ[types.Int]},
				ExplicitTypes: []types.Type{f.timeout, f.rateLimit},
			},
			{
				Role: analyze.RoleFallback, Name: "HandleAny", Order: 2, Pkg: pkg,
				Params: []analyze.Param{
					{Name: "err", Type: errType},
					{Name: "ref", Type: types.Typ[types.String]},
				},
				Results: []types.Type{types.Typ[types.Int]},
			},
			{
				Role: analyze.RoleEntryPoint, Name: "Submit", Order: 3, IsStub: true, Pkg: pkg,
				Params: []analyze.Param{
					{Name: "err", Type: errType},
					{Name: "ref", Type: types.Typ[types.String]},
				},
				Results:     []types.Type{types.Typ[types.Int]},
				RecvName:    "p",
				RecvPointer: true,
			},
		},
	}

	return f
}
