package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	a, b := NewULID(), NewULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	_, err := ulid.Parse(a)
	require.NoError(t, err)
}

func TestNewRequestRand_Independent(t *testing.T) {
	r1, r2 := NewRequestRand(), NewRequestRand()
	require.NotSame(t, r1, r2)

	same := true
	for i := 0; i < 4; i++ {
		if r1.Int63() != r2.Int63() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestStringToNullString(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	ns := StringToNullString("text")
	assert.True(t, ns.Valid)
	assert.Equal(t, "text", ns.String)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "hello", TruncateRunes("hello", 10))
	assert.Equal(t, "hel", TruncateRunes("hello", 3))
	assert.Equal(t, "café", TruncateRunes("café au lait", 4))
	assert.Equal(t, "hello", TruncateRunes("hello", 0))
	assert.Equal(t, "", TruncateRunes("", 3))
}
