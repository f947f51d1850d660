package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewZapLogger(t *testing.T) {
	l, err := NewZapLogger("debug", true)
	require.NoError(t, err)
	l.Debugf("debug %d", 1)

	_, err = NewZapLogger("verbose", false)
	require.Error(t, err)
}
