package ident

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomGenerator_Unique(t *testing.T) {
	g := NewRandomGenerator()
	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 1000; i++ {
		id, err := g.NewID()
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), id.Version())
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSeededGenerator_Reproducible(t *testing.T) {
	a := NewSeededGenerator(99)
	b := NewSeededGenerator(99)
	for i := 0; i < 5; i++ {
		x, err := a.NewID()
		require.NoError(t, err)
		y, err := b.NewID()
		require.NoError(t, err)
		assert.Equal(t, x, y)
		assert.Equal(t, uuid.Version(4), x.Version())
	}

	first, _ := NewSeededGenerator(1).NewID()
	other, _ := NewSeededGenerator(2).NewID()
	assert.NotEqual(t, first, other)
}

func TestFromName(t *testing.T) {
	assert.Equal(t, FromName("phrase"), FromName("phrase"))
	assert.NotEqual(t, FromName("phrase"), FromName("exemple"))
	assert.Equal(t, uuid.Version(5), FromName("phrase").Version())
}
