package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManual_FiresInDeadlineOrder(t *testing.T) {
	clk := NewManual(epoch)

	var fired []string
	clk.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	clk.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	clk.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "b") })
	clk.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a2") })

	clk.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a", "a2"}, fired)
	assert.Equal(t, epoch.Add(15*time.Millisecond), clk.Now())

	clk.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a", "a2", "b", "c"}, fired)
	assert.Equal(t, 0, clk.Pending())
}

func TestManual_NowDuringCallback(t *testing.T) {
	clk := NewManual(epoch)

	var at time.Time
	clk.AfterFunc(40*time.Millisecond, func() { at = clk.Now() })
	clk.Advance(time.Second)

	assert.Equal(t, epoch.Add(40*time.Millisecond), at)
	assert.Equal(t, epoch.Add(time.Second), clk.Now())
}

func TestManual_Stop(t *testing.T) {
	clk := NewManual(epoch)

	called := false
	h := clk.AfterFunc(10*time.Millisecond, func() { called = true })

	assert.True(t, h.Stop())
	assert.False(t, h.Stop(), "second Stop must report false")

	clk.Advance(time.Second)
	assert.False(t, called)
}

func TestManual_StopAfterFire(t *testing.T) {
	clk := NewManual(epoch)

	h := clk.AfterFunc(10*time.Millisecond, func() {})
	clk.Advance(10 * time.Millisecond)

	assert.False(t, h.Stop())
}

func TestManual_RescheduleFromCallback(t *testing.T) {
	clk := NewManual(epoch)

	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			clk.AfterFunc(10*time.Millisecond, tick)
		}
	}
	clk.AfterFunc(10*time.Millisecond, tick)

	clk.Advance(25 * time.Millisecond)
	assert.Equal(t, 2, count)

	clk.Advance(25 * time.Millisecond)
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, clk.Pending())
}

func TestReal_AfterFunc(t *testing.T) {
	clk := Real()

	done := make(chan struct{})
	clk.AfterFunc(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("real clock callback did not fire")
	}

	h := clk.AfterFunc(time.Hour, func() {})
	require.True(t, h.Stop())
}
