package source

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestViewURL(t *testing.T) {
	cases := []struct {
		name, in                    string
		filename, subfolder, format string
	}{
		{"plain png", "cat.png", "cat.png", "", "png"},
		{"jpg", "shots/Cat.JPG", "Cat.JPG", "shots", "jpeg"},
		{"jpeg backslashes", `a\b\c.jpeg`, "c.jpeg", "a/b", "jpeg"},
		{"webp falls back to png", "x/y.webp", "y.webp", "x", "png"},
		{"no extension", "noext", "noext", "", "png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := ViewURL("http://127.0.0.1:8188/", tc.in)
			require.NoError(t, err)
			u, err := url.Parse(raw)
			require.NoError(t, err)
			require.Equal(t, "/view", u.Path)
			require.Equal(t, "127.0.0.1:8188", u.Host)
			q := u.Query()
			require.Equal(t, "input", q.Get("type"))
			require.Equal(t, tc.filename, q.Get("filename"))
			require.Equal(t, tc.subfolder, q.Get("subfolder"))
			require.Equal(t, tc.format, q.Get("format"))
		})
	}
}

func TestViewURL_HostRelative(t *testing.T) {
	raw, err := ViewURL("", "a.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "/view?"), raw)
}

func TestSplitName_Property(t *testing.T) {
	seg := rapid.StringMatching(`[a-zA-Z0-9_.-]{1,12}`)
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(t, "segments")
		parts := make([]string, n)
		for i := range parts {
			parts[i] = seg.Draw(t, "segment")
		}
		sep := rapid.SampledFrom([]string{"/", `\`}).Draw(t, "sep")
		sub, file := SplitName(strings.Join(parts, sep))
		if file != parts[n-1] {
			t.Fatalf("filename %q, want %q", file, parts[n-1])
		}
		if sub != strings.Join(parts[:n-1], "/") {
			t.Fatalf("subfolder %q, want %q", sub, strings.Join(parts[:n-1], "/"))
		}
	})
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func TestHTTPLoader_LoadsPNG(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, testImage(40, 30))
	}))
	defer srv.Close()

	raw, err := ViewURL(srv.URL, "sub/pic.png")
	require.NoError(t, err)
	l := NewHTTPLoaderWithClient(srv.Client(), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := l.Load(ctx, raw).Wait(ctx)
	require.NoError(t, err)
	require.True(t, res.Loaded(), "err=%v", res.Err)
	w, h := res.Size()
	require.Equal(t, 40, w)
	require.Equal(t, 30, h)
	require.Equal(t, "pic.png", gotQuery.Get("filename"))
	require.Equal(t, "sub", gotQuery.Get("subfolder"))
	require.Equal(t, uint64(1), l.Stats().Loads)
}

func TestHTTPLoader_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filename") == "missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	l := NewHTTPLoaderWithClient(srv.Client(), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, name := range []string{"missing.png", "garbage.png"} {
		raw, err := ViewURL(srv.URL, name)
		require.NoError(t, err)
		res, err := l.Load(ctx, raw).Wait(ctx)
		require.NoError(t, err)
		require.False(t, res.Loaded())
		require.True(t, errors.Is(res.Err, ErrImageLoad), "got %v", res.Err)
	}
	require.Equal(t, uint64(2), l.Stats().Failures)
}

func TestDirLoader(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "shots"), 0o755))
	fh, err := os.Create(filepath.Join(root, "shots", "a.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(fh, testImage(8, 6)))
	require.NoError(t, fh.Close())

	l := NewDirLoader(root, nil)
	ctx := context.Background()
	raw, _ := ViewURL("", `shots\a.png`)
	res, err := l.Load(ctx, raw).Wait(ctx)
	require.NoError(t, err)
	require.True(t, res.Loaded(), "err=%v", res.Err)

	raw, _ = ViewURL("", "../../etc/passwd")
	res, err = l.Load(ctx, raw).Wait(ctx)
	require.NoError(t, err)
	require.ErrorIs(t, res.Err, ErrImageLoad)
}

func TestFuture_Poll(t *testing.T) {
	f, done := Pending()
	if _, ok := f.Poll(); ok {
		t.Fatalf("pending future reported done")
	}
	done(Result{Image: testImage(2, 2)})
	done(Result{Err: errors.New("ignored")})
	r, ok := f.Poll()
	if !ok || !r.Loaded() {
		t.Fatalf("expected loaded result, got ok=%v r=%+v", ok, r)
	}
	// cached after the first successful poll
	if r2, ok := f.Poll(); !ok || r2.Image != r.Image {
		t.Fatalf("poll not stable")
	}
	if r, ok := Failed(ErrImageLoad).Poll(); !ok || r.Loaded() {
		t.Fatalf("failed future should be done and not loaded")
	}
}
