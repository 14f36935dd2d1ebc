package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Placement
	}{
		{"bottom-start", BottomStart},
		{"", Default},
		{"LEFT", Left},
		{" right-end ", RightEnd},
		{"auto", Auto},
		{"top-start", TopStart},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("sideways")
	assert.ErrorIs(t, err, ErrUnknownPlacement)
}

func TestPlacement_StringRoundTrip(t *testing.T) {
	for _, p := range All() {
		parsed, err := Parse(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
}

func TestPlacement_IsDefault(t *testing.T) {
	assert.True(t, BottomStart.IsDefault())
	assert.False(t, Left.IsDefault())
	assert.False(t, Bottom.IsDefault())
}

func TestPlacement_Opposite(t *testing.T) {
	assert.Equal(t, TopStart, BottomStart.Opposite())
	assert.Equal(t, LeftEnd, RightEnd.Opposite())
	assert.Equal(t, Auto, Auto.Opposite())
}

func TestPlacement_UnmarshalText(t *testing.T) {
	var p Placement
	require.NoError(t, p.UnmarshalText([]byte("left-start")))
	assert.Equal(t, LeftStart, p)

	assert.Error(t, p.UnmarshalText([]byte("nowhere")))
}

func TestCompute(t *testing.T) {
	anchor := NewRect(10, 5, 8, 1)
	content := Size{Width: 20, Height: 4}

	tests := []struct {
		placement Placement
		expected  Point
	}{
		{BottomStart, Point{10, 6}},
		{BottomEnd, Point{-2, 6}},
		{Bottom, Point{4, 6}},
		{TopStart, Point{10, 1}},
		{RightStart, Point{18, 5}},
		{Right, Point{18, 4}},
		{LeftStart, Point{-10, 5}},
		{LeftEnd, Point{-10, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.placement.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Compute(anchor, content, tt.placement))
		})
	}
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	assert.True(t, r.Contains(2, 3))
	assert.True(t, r.Contains(5, 4))
	assert.False(t, r.Contains(6, 4))
	assert.False(t, r.Contains(2, 5))
	assert.False(t, r.Contains(1, 3))
	assert.False(t, NewRect(0, 0, 0, 0).Contains(0, 0))
}

func TestPlacement_ZeroValueIsDefault(t *testing.T) {
	var p Placement
	assert.Equal(t, Default, p)
	assert.Equal(t, "bottom-start", p.String())
}
