package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHashIsStable(t *testing.T) {
	a := ContentHash("1", "lever", "Backend Engineer", "desc", "acme")
	b := ContentHash("1", "lever", "Backend Engineer", "desc", "acme")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestContentHashChangesWithContent(t *testing.T) {
	base := ContentHash("1", "lever", "Backend Engineer", "desc", "acme")
	assert.NotEqual(t, base, ContentHash("2", "lever", "Backend Engineer", "desc", "acme"))
	assert.NotEqual(t, base, ContentHash("1", "greenhouse", "Backend Engineer", "desc", "acme"))
	assert.NotEqual(t, base, ContentHash("1", "lever", "Staff Engineer", "desc", "acme"))
}

func TestContentHashFieldBoundaries(t *testing.T) {
	// Field contents must not bleed into each other when concatenated
	assert.NotEqual(t,
		ContentHash("ab", "c", "t", "d", "co"),
		ContentHash("a", "bc", "t", "d", "co"),
	)
}
