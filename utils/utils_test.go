package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "✅✅", Truncate("✅✅✅", 2))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitAndTrim(" a, ,b ,"))
	assert.Empty(t, SplitAndTrim(""))
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("marketplace", "test", "debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger("marketplace", "test", "loud")
	assert.Error(t, err)
}
