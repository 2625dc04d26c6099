// internal/services/notices_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticesDefaultTTL(t *testing.T) {
	assert.Equal(t, 5*time.Second, NewNotices(0).ttl)
}

func TestNoticesReplaceAndDismiss(t *testing.T) {
	n := NewNotices(time.Minute)

	_, ok := n.Current()
	assert.False(t, ok)

	n.Success("Product added to featured products")
	n.Error("Failed to add product")

	current, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, NoticeError, current.Kind)
	assert.Equal(t, "Failed to add product", current.Message)

	n.Dismiss()
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNoticesExpire(t *testing.T) {
	n := NewNotices(20 * time.Millisecond)
	n.Success("Banner created successfully")

	_, ok := n.Current()
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNoticesStaleTimerKeepsNewerNotice(t *testing.T) {
	n := NewNotices(time.Minute)
	n.Success("first")
	first := n.seq
	n.Success("second")

	n.expire(first)

	current, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "second", current.Message)
}
