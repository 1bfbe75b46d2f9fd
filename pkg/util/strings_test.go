package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStr2List(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Str2List("a, b ,c", ","))
	assert.Equal(t, []string{"a", "b"}, Str2List("a,b,a,,b", ","))
	assert.Empty(t, Str2List("", ","))
	assert.Empty(t, Str2List(" , , ", ","))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("666"))
	assert.False(t, IsNumeric("66a"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("6.6"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "你好世界", TruncateRunes("你好世界", 4))
	assert.Equal(t, "你好…", TruncateRunes("你好世界", 2))
	assert.Equal(t, "abc", TruncateRunes("abc", 0))
}
