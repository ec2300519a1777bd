package analyze

import (
	"go/token"
	"go/types"
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

// newMethod builds a MethodInfo for classifier and resolver tests.
func newMethod(role Role, name string, order int, stub bool, params ...Param) MethodInfo {
	return MethodInfo{
		Role:   role,
		Name:   name,
		Order:  order,
		IsStub: stub,
		Params: params,
	}
}
