package analyze

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"dispatch-generator/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// DefaultBuildTag is the build tag gating entry-point stub files. Packages
// are loaded with this tag enabled, so stubs are visible and previously
// generated files (gated behind its negation) are excluded from the load.
const DefaultBuildTag = "dispatchgen"

// Loader discovers container types and their tagged methods from Go source.
// It implements Provider.
type Loader struct {
	buildTag string
}

// NewLoader creates a Loader using the given stub build tag, falling back to
// DefaultBuildTag when empty.
func NewLoader(buildTag string) *Loader {
	if buildTag == "" {
		buildTag = DefaultBuildTag
	}

	return &Loader{buildTag: buildTag}
}

// Containers loads the given package patterns and returns every container
// type found, sorted by package path and name for deterministic output.
// Extraction failures inside a single container are recorded on that
// container's Problems rather than failing the whole load.
func (l *Loader) Containers(patterns ...string) ([]*ContainerInfo, error) {
	cfg := &packages.Config{
		Mode:       LoadMode,
		BuildFlags: []string{"-tags", l.buildTag},
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	var containers []*ContainerInfo
	for _, pkg := range pkgs {
		containers = append(containers, l.collect(pkg)...)
	}

	sort.Slice(containers, func(i, j int) bool {
		if containers[i].Pkg.Path() != containers[j].Pkg.Path() {
			return containers[i].Pkg.Path() < containers[j].Pkg.Path()
		}

		return containers[i].Name < containers[j].Name
	})

	return containers, nil
}

// collect extracts all containers declared in one loaded package.
func (l *Loader) collect(pkg *packages.Package) []*ContainerInfo {
	byName := make(map[string]*ContainerInfo)

	var order []string

	// Pass 1: container type declarations, including function-local ones
	// (those are flagged as nested and skipped later).
	for _, file := range pkg.Syntax {
		ast.Inspect(file, func(n ast.Node) bool {
			decl, ok := n.(*ast.GenDecl)
			if !ok {
				return true
			}

			for _, spec := range decl.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil {
					doc = decl.Doc
				}
				if doc == nil {
					doc = commentAbove(file, pkg.Fset, decl.Pos())
				}

				if !hasContainerDirective(doc) {
					continue
				}

				c := &ContainerInfo{
					Name:      ts.Name.Name,
					Pkg:       pkg.Types,
					Dir:       filepath.Dir(pkg.Fset.Position(ts.Pos()).Filename),
					MultiPart: true,
				}

				if obj := pkg.TypesInfo.Defs[ts.Name]; obj != nil {
					c.Type = obj.Type()
					c.Nested = obj.Parent() != pkg.Types.Scope()
				} else {
					c.Problems = append(c.Problems, diagnostic.Diagnostic{
						Severity:  diagnostic.SeverityError,
						Code:      diagnostic.CodeUnresolvedSymbol,
						Message:   "container type has no resolved symbol; further container checks skipped",
						Container: c.Name,
					})
				}

				if _, seen := byName[c.Name]; !seen {
					byName[c.Name] = c
					order = append(order, c.Name)
				}
			}

			return true
		})
	}

	if len(order) == 0 {
		return nil
	}

	// Pass 2: tagged methods, in declaration order across the package's
	// files. Syntax order follows CompiledGoFiles, which is deterministic.
	for _, file := range pkg.Syntax {
		gated := fileIsTagGated(file, l.buildTag)

		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
				continue
			}

			recvName, recvType, pointer := receiverOf(fd)

			c := byName[recvType]
			if c == nil {
				continue
			}

			d, ok := firstRoleDirective(fd.Doc)
			if !ok {
				continue
			}

			obj, _ := pkg.TypesInfo.Defs[fd.Name].(*types.Func)
			if obj == nil {
				c.Problems = append(c.Problems, diagnostic.Diagnostic{
					Severity:  diagnostic.SeverityError,
					Code:      diagnostic.CodeUnresolvedSymbol,
					Message:   "method has no resolved symbol; further container checks skipped",
					Container: c.Name,
					Method:    fd.Name.Name,
				})

				continue
			}

			m := l.buildMethod(fd, d, obj, gated, file, pkg)
			m.Order = len(c.Methods)
			m.RecvName = recvName
			m.RecvPointer = pointer

			if m.Role == RoleEntryPoint && !gated {
				c.MultiPart = false
			}

			c.Methods = append(c.Methods, m)
		}
	}

	containers := make([]*ContainerInfo, 0, len(order))
	for _, name := range order {
		containers = append(containers, byName[name])
	}

	return containers
}

// buildMethod turns one tagged method declaration into a MethodInfo.
func (l *Loader) buildMethod(
	fd *ast.FuncDecl,
	d directive,
	obj *types.Func,
	gated bool,
	file *ast.File,
	pkg *packages.Package,
) MethodInfo {
	m := MethodInfo{
		Role:   roleOf(d.kind),
		Name:   fd.Name.Name,
		IsStub: gated,
		Pkg:    pkg.Types,
	}

	sig := obj.Type().(*types.Signature)

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)

		name := v.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("p%d", i)
		}

		m.Params = append(m.Params, Param{Name: name, Type: v.Type()})
	}

	results := sig.Results()
	for i := 0; i < results.Len(); i++ {
		m.Results = append(m.Results, results.At(i).Type())
	}

	if m.Role == RoleSpecific {
		for _, arg := range d.args {
			// Only well-formed, resolvable type references are kept.
			if t := resolveTypeRef(arg, file, pkg); t != nil {
				m.ExplicitTypes = append(m.ExplicitTypes, t)
			}
		}
	}

	return m
}

// receiverOf extracts the receiver name, base type name, and pointer-ness of
// a method declaration.
func receiverOf(fd *ast.FuncDecl) (name, typeName string, pointer bool) {
	f := fd.Recv.List[0]
	if len(f.Names) > 0 {
		name = f.Names[0].Name
	}

	t := f.Type
	if star, ok := t.(*ast.StarExpr); ok {
		pointer = true
		t = star.X
	}

	switch e := t.(type) {
	case *ast.Ident:
		typeName = e.Name
	case *ast.IndexExpr:
		if id, ok := e.X.(*ast.Ident); ok {
			typeName = id.Name
		}
	case *ast.IndexListExpr:
		if id, ok := e.X.(*ast.Ident); ok {
			typeName = id.Name
		}
	}

	return name, typeName, pointer
}

// commentAbove finds the comment group ending on the line directly above
// pos. The parser does not attach doc comments to declarations inside
// function bodies, so nested container markers are found positionally.
func commentAbove(file *ast.File, fset *token.FileSet, pos token.Pos) *ast.CommentGroup {
	target := fset.Position(pos).Line

	for _, cg := range file.Comments {
		if fset.Position(cg.End()).Line == target-1 {
			return cg
		}
	}

	return nil
}

// fileIsTagGated reports whether the file carries a build constraint that
// includes it only when the given tag is set.
func fileIsTagGated(file *ast.File, tag string) bool {
	for _, cg := range file.Comments {
		if cg.Pos() >= file.Package {
			break
		}

		for _, c := range cg.List {
			if !constraint.IsGoBuild(c.Text) {
				continue
			}

			expr, err := constraint.Parse(c.Text)
			if err != nil {
				continue
			}

			with := expr.Eval(func(t string) bool { return t == tag })
			without := expr.Eval(func(string) bool { return false })

			if with && !without {
				return true
			}
		}
	}

	return false
}

// resolveTypeRef resolves a directive type argument such as "TimeoutError",
// "*ValidationError" or "*fs.PathError" against the file's imports and the
// package scope. Returns nil for anything that does not name a type.
func resolveTypeRef(arg string, file *ast.File, pkg *packages.Package) types.Type {
	ptr := 0
	for strings.HasPrefix(arg, "*") {
		ptr++
		arg = arg[1:]
	}

	var obj types.Object

	if alias, name, qualified := strings.Cut(arg, "."); qualified {
		imported := importedPackage(alias, file, pkg)
		if imported == nil {
			return nil
		}

		obj = imported.Scope().Lookup(name)
	} else {
		obj = pkg.Types.Scope().Lookup(arg)
	}

	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil
	}

	t := tn.Type()
	for i := 0; i < ptr; i++ {
		t = types.NewPointer(t)
	}

	return t
}

// importedPackage resolves a package alias used in a directive argument to
// the imported package it names within the given file.
func importedPackage(alias string, file *ast.File, pkg *packages.Package) *types.Package {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		dep := pkg.Imports[path]
		if dep == nil || dep.Types == nil {
			continue
		}

		name := dep.Types.Name()
		if imp.Name != nil {
			name = imp.Name.Name
		}

		if name == alias {
			return dep.Types
		}
	}

	return nil
}
