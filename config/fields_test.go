package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGet_AllEditableFields(t *testing.T) {
	cfg := DefaultConfig()
	for _, f := range EditableFields {
		v, err := cfg.Get(f.Key)
		require.NoError(t, err, f.Key)
		require.NoError(t, cfg.Set(f.Key, v), f.Key)
	}
	require.Equal(t, DefaultConfig(), cfg, "get/set of current values must be a no-op")
}

func TestSetPair(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.SetPair("toast_millis= 900"))
	require.NoError(t, cfg.SetPair("debug=yes"))
	require.NoError(t, cfg.SetPair("viewport_width_ratio=0.5"))
	require.Equal(t, 900, cfg.ToastMillis)
	require.True(t, cfg.Debug)
	require.Equal(t, 0.5, cfg.ViewportWidthRatio)

	require.ErrorIs(t, cfg.SetPair("nope=1"), ErrUnknownField)
	require.Error(t, cfg.SetPair("toast_millis"))
	require.Error(t, cfg.SetPair("toast_millis=abc"))
	require.Error(t, cfg.SetPair("debug=maybe"))
}
