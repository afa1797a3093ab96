package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello...", Truncate("hello world", 5))
	assert.Equal(t, "x", Truncate("x", 0))
	assert.Equal(t, "déjà...", Truncate("déjà vu", 4))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"Ceci", "est", "un", "exemple"}, Words("  Ceci est\tun\nexemple "))
	assert.Empty(t, Words("   "))
}
