// internal/services/scheduler_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshSchedulerRejectsBadSchedule(t *testing.T) {
	console := NewConsole(Dependencies{API: newFakeAPI(), Tokens: StaticToken("t")}, ConsoleOptions{})

	_, err := NewRefreshScheduler(console, "every tuesday", time.Second)
	assert.Error(t, err)
}

func TestRefreshSchedulerRunsSilentRefresh(t *testing.T) {
	api := newFakeAPI()
	console := NewConsole(Dependencies{API: api, Tokens: StaticToken("t")}, ConsoleOptions{})

	sched, err := NewRefreshScheduler(console, "@every 1s", time.Second)
	require.NoError(t, err)
	require.Len(t, sched.Entries(), 1)

	sched.Entries()[0].Job.Run()

	assert.Equal(t, StatusReady, console.Featured.Status())
	assert.Equal(t, StatusReady, console.Offers.Status())
	assert.Equal(t, StatusReady, console.Banners.Status())
}
