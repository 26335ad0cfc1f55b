package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestFindRegions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Region
	}{
		{"inline and display", "a $x$ b $$y$$", []Region{{3, 4, "x"}, {10, 11, "y"}}},
		{"brackets and parens", `\(a\) and \[b\]`, []Region{{2, 3, "a"}, {12, 13, "b"}}},
		{"escaped dollar", `costs \$5 and $x$`, []Region{{15, 16, "x"}}},
		{"unterminated", "see $x+1", []Region{{5, 8, "x+1"}}},
		{"one formula per line", "x+1\n\n  y  \n", []Region{{0, 3, "x+1"}, {7, 8, "y"}}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindRegions(tt.text))
		})
	}
}

func TestPositions(t *testing.T) {
	text := "a\n😀b"
	pos := positionAt(text, 6)
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, pos)
	assert.Equal(t, 6, offsetAt(text, pos))

	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, positionAt(text, -3))
	assert.Equal(t, len(text), offsetAt(text, protocol.Position{Line: 5, Character: 0}))
	assert.Equal(t, 1, offsetAt(text, protocol.Position{Line: 0, Character: 9}), "past the end of a line")
}

func TestRegionAt(t *testing.T) {
	regions := FindRegions("a $x$ b $$y$$")
	r, ok := regionAt(regions, 10)
	assert.True(t, ok)
	assert.Equal(t, "y", r.Latex)

	_, ok = regionAt(regions, 6)
	assert.False(t, ok)
}
