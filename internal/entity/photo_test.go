package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhotoCountMatchesOrientations(t *testing.T) {
	require.Equal(t, 3, PhotoCount)

	seen := map[PhotoOrientation]bool{}
	for order := 1; order <= PhotoCount; order++ {
		orientation, ok := OrientationByOrder[order]
		require.True(t, ok, "order %d has no orientation", order)
		require.False(t, seen[orientation], "orientation %s is used twice", orientation)
		seen[orientation] = true
	}
}
