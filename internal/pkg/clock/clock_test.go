package clock_test

import (
	"testing"
	"time"

	"takeout/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock(t *testing.T) {
	t.Run("defaults_to_utc", func(t *testing.T) {
		now := clock.NewSystem(nil).Now()

		assert.Equal(t, time.UTC, now.Location())
		assert.WithinDuration(t, time.Now(), now, time.Second)
	})

	t.Run("reports_in_configured_location", func(t *testing.T) {
		loc := time.FixedZone("UTC+8", 8*60*60)

		now := clock.NewSystem(loc).Now()

		assert.Equal(t, loc, now.Location())
	})
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	c := clock.NewFixed(instant)

	assert.Equal(t, instant, c.Now())
	assert.Equal(t, instant, c.Now())
}
