package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_RegistersCanonicalAndAliases(t *testing.T) {
	cat, err := NewCatalog([]FieldSpec{
		{
			CanonicalName: "Adult_Dependents",
			Type:          TypeInt,
			Aliases:       []string{"adults", "nb adults"},
		},
	})
	require.NoError(t, err)

	for _, key := range []string{
		"Adult_Dependents", "adult_dependents", "adult dependents", "adults", "NB ADULTS",
	} {
		name, ok := cat.Resolve(key)
		assert.True(t, ok, "alias %q", key)
		assert.Equal(t, "Adult_Dependents", name)
	}

	_, ok := cat.Resolve("children")
	assert.False(t, ok)
}

func TestNewCatalog_AliasCollisionIsAnError(t *testing.T) {
	_, err := NewCatalog([]FieldSpec{
		{CanonicalName: "Broker_ID", Type: TypeString, Aliases: []string{"agent"}},
		{CanonicalName: "Employer_ID", Type: TypeString, Aliases: []string{"agent"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent")
}

func TestNewCatalog_DuplicateCanonicalNameIsAnError(t *testing.T) {
	_, err := NewCatalog([]FieldSpec{
		{CanonicalName: "Broker_ID", Type: TypeString},
		{CanonicalName: "Broker_ID", Type: TypeString},
	})
	require.Error(t, err)
}

func TestDefault_FullCatalog(t *testing.T) {
	cat := Default()
	assert.Equal(t, 27, cat.Size())
	assert.Len(t, cat.Names(), 27)

	// Same instance every call, names in registration order.
	assert.Same(t, cat, Default())
	assert.Equal(t, "Adult_Dependents", cat.Names()[0])
	assert.Equal(t, "Policy_Start_Day", cat.Names()[len(cat.Names())-1])

	spec, ok := cat.Field("Employment_Status")
	require.True(t, ok)
	assert.Equal(t, TypeString, spec.Type)
	assert.Contains(t, spec.ValidValues, "Self-Employed")
}

func TestAliases_DeterministicOrder(t *testing.T) {
	a := Default().Aliases()
	b := Default().Aliases()
	require.Equal(t, a, b)
	assert.Equal(t, "adult_dependents", a[0]) // canonical lowered registers first
}
