package shortcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpan_Classify(t *testing.T) {
	span := Span{Start: 10, End: 20}

	tests := []struct {
		name string
		pos  int
		want Relation
	}{
		{"well before", 0, Before},
		{"just before", 9, Before},
		{"at start", 10, Within},
		{"inside", 15, Within},
		{"last byte", 19, Within},
		{"at end", 20, After},
		{"well after", 100, After},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, span.Classify(tt.pos))
		})
	}
}

func TestSpan_Shift(t *testing.T) {
	span := Span{Start: 10, End: 20}

	right, err := span.Shift(5)
	require.NoError(t, err)
	assert.Equal(t, Span{15, 25}, right)

	left, err := span.Shift(-10)
	require.NoError(t, err)
	assert.Equal(t, Span{0, 10}, left)

	_, err = span.Shift(-11)
	assert.Error(t, err, "start must not underflow zero")
}

func TestDirective_UpdateOnEdit(t *testing.T) {
	d := Directive{Span: Span{Start: 10, End: 20}}

	// Growth before the span shifts it right.
	require.NoError(t, d.UpdateOnEdit(2, 8, 10))
	assert.Equal(t, Span{12, 22}, d.Span)

	// An edit after the span leaves it untouched.
	require.NoError(t, d.UpdateOnEdit(24, 3, 30))
	assert.Equal(t, Span{12, 22}, d.Span)

	// Shrinkage before the span shifts it left.
	require.NoError(t, d.UpdateOnEdit(5, 11, 6))
	assert.Equal(t, Span{7, 17}, d.Span)
}

func TestDirective_UpdateOnEdit_WithinIsUntouched(t *testing.T) {
	// Editing inside the placeholder's own span is out of contract: the
	// span is left stale rather than guessed at.
	d := Directive{Span: Span{Start: 10, End: 20}}
	require.NoError(t, d.UpdateOnEdit(15, 2, 9))
	assert.Equal(t, Span{10, 20}, d.Span)
}
