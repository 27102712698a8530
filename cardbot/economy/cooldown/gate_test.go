package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanOpen(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		lastOpened time.Time
		want       Decision
	}{
		{
			name: "never opened",
			want: Decision{Allowed: true},
		},
		{
			name:       "just past cooldown",
			lastOpened: now.Add(-24*time.Hour - time.Millisecond),
			want:       Decision{Allowed: true},
		},
		{
			name:       "exactly at cooldown",
			lastOpened: now.Add(-24 * time.Hour),
			want:       Decision{Allowed: true},
		},
		{
			name:       "one second ago",
			lastOpened: now.Add(-time.Second),
			want:       Decision{Remaining: 86399 * time.Second},
		},
		{
			name:       "half way",
			lastOpened: now.Add(-12*time.Hour - 30*time.Minute),
			want:       Decision{Remaining: 11*time.Hour + 30*time.Minute},
		},
		{
			name:       "clock skew in the future",
			lastOpened: now.Add(time.Minute),
			want:       Decision{Remaining: 24 * time.Hour},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanOpen(tt.lastOpened, now, DefaultCooldown))
		})
	}
}

func TestCanOpenCustomCooldown(t *testing.T) {
	now := time.Now()
	d := CanOpen(now.Add(-time.Minute), now, 90*time.Second)
	assert.False(t, d.Allowed)
	assert.Equal(t, 30*time.Second, d.Remaining)
}
