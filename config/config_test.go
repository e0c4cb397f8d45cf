package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSONOverridesAndValidates(t *testing.T) {
	p := write(t, "cfg.json", `{"debug": true, "server_url": "http://h:9000/", "toast_millis": -4, "viewport_width_ratio": 3}`)
	cfg, err := Load(p)
	require.NoError(t, err)
	require.True(t, cfg.Debug)
	require.Equal(t, "http://h:9000", cfg.ServerURL)
	require.Equal(t, 1800, cfg.ToastMillis)
	require.Equal(t, 0.88, cfg.ViewportWidthRatio)
	require.Equal(t, 1600, cfg.ViewportMaxWidth, "absent keys keep defaults")
}

func TestLoad_HCL(t *testing.T) {
	p := write(t, "rectsel.hcl", `
debug      = true
server_url = "http://10.0.0.2:8188"
viewport_max_width = 1200
close_delay_millis = 0
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	require.True(t, cfg.Debug)
	require.Equal(t, "http://10.0.0.2:8188", cfg.ServerURL)
	require.Equal(t, 1200, cfg.ViewportMaxWidth)
	require.Equal(t, 0, cfg.CloseDelayMillis)
	require.Equal(t, 900, cfg.ViewportMaxHeight)
}

func TestLoad_ParseErrors(t *testing.T) {
	for _, name := range []string{"bad.json", "bad.hcl"} {
		p := write(t, name, `{{{ not valid`)
		cfg, err := Load(p)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "%s: expected ParseError, got %v", name, err)
		require.Equal(t, p, pe.Path)
		require.NotNil(t, cfg, "defaults returned alongside the error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.DefaultRectW = 64
	p := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, cfg.Save(p))
	got, err := Load(p)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestViewport(t *testing.T) {
	cfg := DefaultConfig()
	w, h := cfg.Viewport(1000, 1000)
	require.InDelta(t, 880, w, 1e-9)
	require.InDelta(t, 650, h, 1e-9)
	w, h = cfg.Viewport(4000, 4000)
	require.Equal(t, 1600.0, w)
	require.Equal(t, 900.0, h)
}
