package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashVerifier(t *testing.T) {
	v := NewHashVerifier()

	assert.True(t, v.Verify("H", "H"))
	assert.True(t, v.Verify("a1b2c3", "a1b2c3"))
	assert.False(t, v.Verify("H", "X"))
	assert.False(t, v.Verify("H", "HH"))
	assert.False(t, v.Verify("", "H"))
	assert.True(t, v.Verify("", ""))
}

func TestStaticVerifier(t *testing.T) {
	assert.True(t, StaticVerifier{Result: true}.Verify("a", "b"))
	assert.False(t, StaticVerifier{Result: false}.Verify("a", "a"))
}
