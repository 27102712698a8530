package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowList(t *testing.T) {
	l := NewAllowList("1", " 2 ", "")

	assert.True(t, l.IsAdmin("1"))
	assert.True(t, l.IsAdmin("2"))
	assert.False(t, l.IsAdmin(""))
	assert.False(t, l.IsAdmin("3"))

	var none AllowList
	assert.False(t, none.IsAdmin("1"))
}
