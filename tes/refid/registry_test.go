package refid

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	namedObject string
	mapTable    map[uint32]Object
)

func (n namedObject) Name() string {
	return string(n)
}

func (m mapTable) Lookup(formID uint32) (Object, bool) {
	object, ok := m[formID]
	return object, ok
}

func TestRegistry_EmptyResolvesUnknown(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Freeze()

	ref := RefID{Namespace: NamespaceDefault, Value: 0x12345}
	_, ok := registry.Resolve(ref)
	assert.False(t, ok)
	assert.Equal(t, UnknownName, registry.ResolveName(ref))
	assert.Equal(t, UnknownName, registry.ResolveName(RefID{Namespace: NamespaceUnknown, Value: 1}))
}

func TestRegistry_Phases(t *testing.T) {
	defaults := mapTable{
		0x0006BC02: namedObject("Wheat"),
		0x00000F:   namedObject("Gold"),
	}
	registry := NewRegistry(defaults)

	created := RefID{Namespace: NamespaceCreated, Value: 0x000801}
	require.NoError(t, registry.RegisterCreated(created, namedObject("Potion of Healing")))
	require.NoError(t, registry.IndexFormIDs([]uint32{
		0x0006BC02,
		0xFF000801,
		0x00ABCDEF,
	}))

	err := registry.RegisterCreated(created, namedObject("late"))
	var frozen ErrRegistryFrozen
	require.True(t, errors.As(err, &frozen))
	assert.Equal(t, "form ids indexed", frozen.Phase)

	registry.Freeze()
	assert.True(t, registry.Frozen())
	err = registry.IndexFormIDs(nil)
	require.True(t, errors.As(err, &frozen))
	assert.Equal(t, "frozen", frozen.Phase)

	testCases := map[RefID]string{
		{Namespace: NamespaceFormIndex, Value: 1}:    "Wheat",
		{Namespace: NamespaceFormIndex, Value: 2}:    "Potion of Healing",
		{Namespace: NamespaceFormIndex, Value: 3}:    UnknownName,
		{Namespace: NamespaceFormIndex, Value: 4}:    UnknownName,
		{Namespace: NamespaceDefault, Value: 0x00F}:  "Gold",
		{Namespace: NamespaceCreated, Value: 0x0801}: "Potion of Healing",
		{Namespace: NamespaceUnknown, Value: 0x00F}:  UnknownName,
	}
	for ref, name := range testCases {
		assert.Equal(t, name, registry.ResolveName(ref), ref.String())
	}
	assert.Equal(t, 1, registry.CreatedCount())
}

func TestRegistry_IndexTwice(t *testing.T) {
	registry := NewRegistry(nil)
	require.NoError(t, registry.IndexFormIDs([]uint32{1}))
	var frozen ErrRegistryFrozen
	assert.True(t, errors.As(registry.IndexFormIDs([]uint32{1}), &frozen))
}
