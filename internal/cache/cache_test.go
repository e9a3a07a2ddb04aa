package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetReturnsValueBeforeExpiry(t *testing.T) {
	m := New()
	m.Set("campaigns", []string{"a", "b"}, 5*time.Second)

	v, ok := m.Get("campaigns")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, v)
}

func TestGetDropsExpiredEntry(t *testing.T) {
	m := New()
	base := time.Now()
	m.now = func() time.Time { return base }
	m.Set("history:1", "old", 5*time.Second)

	m.now = func() time.Time { return base.Add(6 * time.Second) }
	_, ok := m.Get("history:1")
	require.False(t, ok)
	require.Zero(t, m.Len())
}

func TestInvalidateDropsEverything(t *testing.T) {
	m := New()
	m.Set("a", 1, time.Minute)
	m.Set("b", 2, time.Minute)

	m.Invalidate()

	_, ok := m.Get("a")
	require.False(t, ok)
	_, ok = m.Get("b")
	require.False(t, ok)
}

func TestNonPositiveTTLStoresNothing(t *testing.T) {
	m := New()
	m.Set("a", 1, 0)
	_, ok := m.Get("a")
	require.False(t, ok)
}
