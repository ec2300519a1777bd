package gen

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch-generator/internal/analyze"
	"dispatch-generator/internal/config"
	"dispatch-generator/internal/plan"
)

func renderFixture(t *testing.T, f *fixture) string {
	t.Helper()

	res := plan.Resolve(f.container, plan.Config{})
	require.False(t, res.Skipped())
	require.NotEmpty(t, res.Plans)

	file, err := renderContainer(f.container, res.Plans, config.Default())
	require.NoError(t, err)
	require.NotNil(t, file)

	return string(file.Content)
}

func TestRenderContainer_DispatchBody(t *testing.T) {
	f := newFixture()
	src := renderFixture(t, f)

	assert.Contains(t, src, "// Code generated by dispatch-generator. DO NOT EDIT.")
	assert.Contains(t, src, "//go:build !dispatchgen")
	assert.Contains(t, src, "package payments")

	assert.Contains(t, src, "func (p *Processor) Submit(err error, ref string) int {")
	assert.Contains(t, src, "switch ex := err.(type) {")
	assert.Contains(t, src, "case *ValidationError:")
	assert.Contains(t, src, "return p.HandleValidation(ex, ref)")
	assert.Contains(t, src, "case *TimeoutError, *RateLimitError:")
	assert.Contains(t, src, "return p.HandleTransient(ex)")
	assert.Contains(t, src, "return p.HandleAny(err, ref)")
}

func TestRenderContainer_FileName(t *testing.T) {
	f := newFixture()

	res := plan.Resolve(f.container, plan.Config{})
	file, err := renderContainer(f.container, res.Plans, config.Default())
	require.NoError(t, err)

	assert.Equal(t, "processor_dispatch.gen.go", file.Filename)
	assert.Equal(t, "payments", file.Dir)
}

func TestRenderContainer_NoFallbackPropagates(t *testing.T) {
	f := newFixture()

	// Drop the fallback; unmatched errors must propagate, never be
	// swallowed or faked into a zero result.
	var kept []analyze.MethodInfo
	for _, m := range f.container.Methods {
		if m.Role != analyze.RoleFallback {
			kept = append(kept, m)
		}
	}
	f.container.Methods = kept

	src := renderFixture(t, f)

	assert.Contains(t, src, "panic(ex)")
	assert.NotContains(t, src, "HandleAny")
}

func TestRenderContainer_NoSpecificsSkipsSwitch(t *testing.T) {
	f := newFixture()

	var kept []analyze.MethodInfo
	for _, m := range f.container.Methods {
		if m.Role != analyze.RoleSpecific {
			kept = append(kept, m)
		}
	}
	f.container.Methods = kept

	src := renderFixture(t, f)

	assert.NotContains(t, src, "switch")
	assert.Contains(t, src, "return p.HandleAny(err, ref)")
}

func TestRenderContainer_CrossPackageTypesAreImported(t *testing.T) {
	f := newFixture()

	other := types.NewPackage("example.com/faults", "faults")
	remote := newErrorType(other, "RemoteError")

	f.container.Methods[1].ExplicitTypes = []types.Type{remote}

	src := renderFixture(t, f)

	assert.Contains(t, src, `"example.com/faults"`)
	assert.Contains(t, src, "case *faults.RemoteError:")
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Processor", "processor"},
		{"PaymentProcessor", "payment_processor"},
		{"HTTPRelay", "http_relay"},
		{"relay", "relay"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := snakeCase(tt.in); got != tt.want {
				t.Errorf("snakeCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
