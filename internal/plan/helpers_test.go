package plan

import (
	"go/token"
	"go/types"

	"dispatch-generator/internal/analyze"
)

// errType is the built-in error interface type.
var errType = types.Universe.Lookup("error").Type()

func newFixturePkg() *types.Package {
	return types.NewPackage("example.com/fixture", "fixture")
}

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

// scenario is the hand-built fixture shared across builder tests: an entry
// point with two specific handlers (one defaulted set, one explicit
// two-type set) and one fallback.
type scenario struct {
	pkg *types.Package

	argNull    types.Type
	nilDeref   types.Type
	arithmetic types.Type
	ioFailure  types.Type

	entry    *analyze.MethodInfo
	single   *analyze.MethodInfo
	multiple *analyze.MethodInfo
	fallback *analyze.MethodInfo
}

func newScenario() *scenario {
	pkg := newFixturePkg()

	s := &scenario{
		pkg:        pkg,
		argNull:    newErrorType(pkg, "ArgumentNullError"),
		nilDeref:   newErrorType(pkg, "NilDerefError"),
		arithmetic: newErrorType(pkg, "ArithmeticError"),
		ioFailure:  newErrorType(pkg, "IOFailureError"),
	}

	s.entry = &analyze.MethodInfo{
		Role: analyze.RoleEntryPoint, Name: "Handle", Order: 0, IsStub: true, Pkg: pkg,
		Params: []analyze.Param{
			{Name: "err", Type: errType},
			{Name: "message", Type: types.Typ[types.String]},
		},
		Results: []types.Type{types.Typ[types.Int]},
	}

	s.single = &analyze.MethodInfo{
		Role: analyze.RoleSpecific, Name: "HandleSingle", Order: 1, Pkg: pkg,
		Params: []analyze.Param{
			{Name: "err", Type: s.argNull},
			{Name: "message", Type: types.Typ[types.String]},
		},
		Results: []types.Type{types.Typ[types.Int]},
	}

	s.multiple = &analyze.MethodInfo{
		Role: analyze.RoleSpecific, Name: "HandleMultiple", Order: 2, Pkg: pkg,
		Params: []analyze.Param{
			{Name: "err", Type: errType},
		},
		Results:       []types.Type{types.Typ[types.Int]},
		ExplicitTypes: []types.Type{s.nilDeref, s.arithmetic},
	}

	s.fallback = &analyze.MethodInfo{
		Role: analyze.RoleFallback, Name: "HandleFallback", Order: 3, Pkg: pkg,
		Params: []analyze.Param{
			{Name: "err", Type: errType},
		},
		Results: []types.Type{types.Typ[types.Int]},
	}

	return s
}
