package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreIsolatesSessions(t *testing.T) {
	s := NewStore()

	s.Get("a").Append(Entry{Input: "rice"})
	s.Get("a").Append(Entry{Input: "eggs"})
	s.Get("b").Append(Entry{Input: "bread"})

	assert.Equal(t, 2, s.Get("a").Len())
	assert.Equal(t, 1, s.Get("b").Len())
	assert.Equal(t, 0, s.Get("c").Len())
	assert.Equal(t, 3, s.Len())
}

func TestStoreReturnsSameHistory(t *testing.T) {
	s := NewStore()
	assert.Same(t, s.Get("a"), s.Get("a"))
}
