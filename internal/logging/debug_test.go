package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	t.Run("should be disabled when TP_DEBUG is unset", func(t *testing.T) {
		t.Setenv("TP_DEBUG", "")
		assert.False(t, DebugEnabled())
	})

	t.Run("should be enabled when TP_DEBUG has any value", func(t *testing.T) {
		t.Setenv("TP_DEBUG", "1")
		assert.True(t, DebugEnabled())
	})
}
