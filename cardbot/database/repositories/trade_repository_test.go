package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeIDPrefix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Dragon Rider", "DR"},
		{"dragon", "DR"},
		{"Q", "QX"},
		{"", "XX"},
		{"  élan  vital ", "ÉV"},
		{"7 Seas", "7S"},
		{"-- ok", "OK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tradeIDPrefix(tt.name))
		})
	}
}

func TestNewTradeID(t *testing.T) {
	ctx := context.Background()

	t.Run("first free code", func(t *testing.T) {
		id, err := newTradeID(ctx, "Dragon Rider", func(context.Context, string) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		assert.Regexp(t, `^TDR\d{4}$`, id)
	})

	t.Run("retries after lookup error", func(t *testing.T) {
		calls := 0
		id, err := newTradeID(ctx, "Dragon Rider", func(context.Context, string) (bool, error) {
			calls++
			if calls == 1 {
				return false, errors.New("timeout")
			}
			return false, nil
		})
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, 2, calls)
	})

	t.Run("lookup error is kept", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		calls := 0
		_, err := newTradeID(ctx, "Dragon Rider", func(context.Context, string) (bool, error) {
			calls++
			return false, dbErr
		})
		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, maxTradeIDAttempts, calls)
	})

	t.Run("every code taken", func(t *testing.T) {
		_, err := newTradeID(ctx, "Dragon Rider", func(context.Context, string) (bool, error) {
			return true, nil
		})
		assert.Error(t, err)
	})
}
