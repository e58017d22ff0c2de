package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_TaggedBlock(t *testing.T) {
	text := "Here you go:\n```lua\nprint('hi')\n```\nEnjoy!"
	code, ok := Extract(text, "lua")
	assert.True(t, ok)
	assert.Equal(t, "\nprint('hi')\n", code)
}

func TestExtract_PrefersTaggedOverUntagged(t *testing.T) {
	text := "```\nnot this one\n```\nsome prose\n```lua\nlocal x = 1\n```"
	code, ok := Extract(text, "lua")
	assert.True(t, ok)
	assert.Equal(t, "\nlocal x = 1\n", code)
	assert.NotContains(t, code, "```")
}

func TestExtract_FallbackToAnyFence(t *testing.T) {
	text := "Script:\n```\napp.refresh()\n```"
	code, ok := Extract(text, "lua")
	assert.True(t, ok)
	assert.Equal(t, "\napp.refresh()\n", code)
}

func TestExtract_PlainTextIsAbsent(t *testing.T) {
	// Already-unwrapped code must not be re-extracted
	code, ok := Extract("local x = 1\napp.refresh()", "lua")
	assert.False(t, ok)
	assert.Empty(t, code)
}

func TestExtract_UnclosedFenceIsAbsent(t *testing.T) {
	_, ok := Extract("```lua\nprint('never closed')", "lua")
	assert.False(t, ok)
}

func TestExtract_EmptyText(t *testing.T) {
	_, ok := Extract("", "lua")
	assert.False(t, ok)
}
