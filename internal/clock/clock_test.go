package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockSampleBeforeStart(t *testing.T) {
	src := NewManual(time.Unix(100, 0))
	c := New(src)
	src.Advance(5 * time.Second)
	assert.False(t, c.Started())
	assert.Zero(t, c.Sample())
}

func TestClockSampleRecomputesFromStart(t *testing.T) {
	src := NewManual(time.Unix(100, 0))
	c := New(src)
	c.Start()
	for i := 0; i < 25; i++ {
		src.Advance(PollInterval)
	}
	assert.Equal(t, 2500*time.Millisecond, c.Sample())
}

func TestClockStartIsOneShot(t *testing.T) {
	src := NewManual(time.Unix(100, 0))
	c := New(src)
	first := c.Start()
	src.Advance(time.Second)
	second := c.Start()
	assert.Equal(t, first, second)
	assert.Equal(t, time.Second, c.Sample())
}

func TestClockElapsedNeverNegative(t *testing.T) {
	src := NewManual(time.Unix(100, 0))
	c := New(src)
	c.Start()
	assert.Zero(t, c.Elapsed(time.Unix(99, 0)))
}

func TestNewDefaultsToSystem(t *testing.T) {
	c := New(nil)
	before := time.Now()
	c.Start()
	assert.False(t, c.StartedAt().Before(before))
}
