package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_PaymentsContainer(t *testing.T) {
	loader := NewLoader("")
	containers, err := loader.Containers("dispatch-generator/examples/payments")
	require.NoError(t, err)
	require.Len(t, containers, 1)

	c := containers[0]
	assert.Equal(t, "Processor", c.Name)
	assert.True(t, c.MultiPart)
	assert.False(t, c.Nested)
	assert.Empty(t, c.Problems)

	require.Len(t, c.Methods, 4)

	// Declaration order across files: processor.go then processor_stub.go.
	assert.Equal(t, "HandleValidation", c.Methods[0].Name)
	assert.Equal(t, RoleSpecific, c.Methods[0].Role)
	assert.False(t, c.Methods[0].IsStub)

	assert.Equal(t, "HandleTransient", c.Methods[1].Name)
	assert.Equal(t, RoleSpecific, c.Methods[1].Role)
	assert.Len(t, c.Methods[1].ExplicitTypes, 2)

	assert.Equal(t, "HandleAny", c.Methods[2].Name)
	assert.Equal(t, RoleFallback, c.Methods[2].Role)

	assert.Equal(t, "Submit", c.Methods[3].Name)
	assert.Equal(t, RoleEntryPoint, c.Methods[3].Role)
	assert.True(t, c.Methods[3].IsStub)

	for i, m := range c.Methods {
		assert.Equal(t, i, m.Order)
	}
}

func TestLoader_MethodShape(t *testing.T) {
	loader := NewLoader("")
	containers, err := loader.Containers("dispatch-generator/examples/payments")
	require.NoError(t, err)
	require.Len(t, containers, 1)

	c := containers[0]

	entry := c.Methods[3]
	require.Equal(t, "Submit", entry.Name)
	require.Len(t, entry.Params, 2)
	assert.Equal(t, "err", entry.Params[0].Name)
	assert.Equal(t, "ref", entry.Params[1].Name)
	assert.True(t, IsErrorType(entry.Params[0].Type))
	require.Len(t, entry.Results, 1)
	assert.Equal(t, "int", entry.Results[0].String())
	assert.Equal(t, "p", entry.RecvName)
	assert.True(t, entry.RecvPointer)

	transient := c.Methods[1]
	require.Len(t, transient.ExplicitTypes, 2)
	assert.Contains(t, transient.ExplicitTypes[0].String(), "TimeoutError")
	assert.Contains(t, transient.ExplicitTypes[1].String(), "RateLimitError")
}

func TestLoader_UntaggedStubDisablesMultiPart(t *testing.T) {
	loader := NewLoader("")
	containers, err := loader.Containers("dispatch-generator/examples/untagged")
	require.NoError(t, err)
	require.Len(t, containers, 1)

	c := containers[0]
	assert.Equal(t, "Mailer", c.Name)
	assert.False(t, c.MultiPart)
	assert.False(t, c.Nested)
}

func TestLoader_NestedContainer(t *testing.T) {
	loader := NewLoader("")
	containers, err := loader.Containers("dispatch-generator/examples/nested")
	require.NoError(t, err)
	require.Len(t, containers, 1)

	c := containers[0]
	assert.Equal(t, "relay", c.Name)
	assert.True(t, c.Nested)
}

func TestLoader_SortsAcrossPackages(t *testing.T) {
	loader := NewLoader("")
	containers, err := loader.Containers(
		"dispatch-generator/examples/untagged",
		"dispatch-generator/examples/payments",
	)
	require.NoError(t, err)
	require.Len(t, containers, 2)

	// Sorted by package path regardless of pattern order.
	assert.Equal(t, "Processor", containers[0].Name)
	assert.Equal(t, "Mailer", containers[1].Name)
}
