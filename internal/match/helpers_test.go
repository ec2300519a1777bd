package match

import (
	"go/token"
	"go/types"

	"dispatch-generator/internal/analyze"
)

// errType is the built-in error interface type.
var errType = types.Universe.Lookup("error").Type()

func newFixturePkg(path, name string) *types.Package {
	return types.NewPackage(path, name)
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

// newMethod builds a MethodInfo declared in pkg. Each param is (name, type)
// in order; results follow.
func newMethod(pkg *types.Package, role analyze.Role, name string, params []analyze.Param, results ...types.Type) *analyze.MethodInfo {
	return &analyze.MethodInfo{
		Role:    role,
		Name:    name,
		Params:  params,
		Results: results,
		Pkg:     pkg,
		IsStub:  role == analyze.RoleEntryPoint,
	}
}
