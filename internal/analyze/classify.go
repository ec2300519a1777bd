package analyze

// Classified partitions a container's tagged methods into the three role
// buckets. Buckets preserve declaration order.
type Classified struct {
	EntryPoints []*MethodInfo
	Specifics   []*MethodInfo
	Fallbacks   []*MethodInfo
}

// Classify partitions methods by role. A method qualifies only if it has at
// least one parameter and that parameter is an error type; entry points must
// additionally be declaration-only stubs. Methods that do not qualify are
// skipped silently, so an untagged or malformed method never fails
// classification.
func Classify(methods []MethodInfo) Classified {
	var c Classified

	for i := range methods {
		m := &methods[i]
		if !hasHandlerShape(m) {
			continue
		}

		switch m.Role {
		case RoleEntryPoint:
			if m.IsStub {
				c.EntryPoints = append(c.EntryPoints, m)
			}

		case RoleSpecific:
			c.Specifics = append(c.Specifics, m)

		case RoleFallback:
			c.Fallbacks = append(c.Fallbacks, m)
		}
	}

	return c
}

// hasHandlerShape checks the minimal shape shared by all roles: at least one
// parameter, and the first parameter is an error type.
func hasHandlerShape(m *MethodInfo) bool {
	return m.ParamCount() >= 1 && IsErrorType(m.ExceptionParam())
}
