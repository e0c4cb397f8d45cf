package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	// Registered decoders for upstream images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrImageLoad wraps every network, status or decode failure of a load.
var ErrImageLoad = errors.New("could not load image")

// Loader starts an asynchronous image load and returns its Future.
type Loader interface {
	Load(ctx context.Context, rawURL string) *Future
}

// LoadStats summarises loader behaviour for instrumentation.
type LoadStats struct {
	Loads    uint64
	Failures uint64
	AvgLoad  time.Duration
	LastLoad time.Time
}

type stats struct {
	loads     atomic.Uint64
	failures  atomic.Uint64
	loadNanos atomic.Uint64
	last      atomic.Int64
}

func (s *stats) record(start time.Time, err error) {
	s.loads.Add(1)
	if err != nil {
		s.failures.Add(1)
	}
	s.loadNanos.Add(uint64(time.Since(start).Nanoseconds()))
	s.last.Store(time.Now().UnixNano())
}

func (s *stats) snapshot() LoadStats {
	loads := s.loads.Load()
	var avg time.Duration
	if loads > 0 {
		avg = time.Duration(s.loadNanos.Load() / loads)
	}
	var last time.Time
	if ns := s.last.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return LoadStats{Loads: loads, Failures: s.failures.Load(), AvgLoad: avg, LastLoad: last}
}

// HTTPLoader fetches images with a single GET and decodes them off the UI
// goroutine. The decoded image is handed back through the Future only.
type HTTPLoader struct {
	client *http.Client
	logger *slog.Logger
	stats  stats
}

// NewHTTPLoader returns a loader using a client with the given timeout.
func NewHTTPLoader(timeout time.Duration, logger *slog.Logger) *HTTPLoader {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:    4,
			IdleConnTimeout: 90 * time.Second,
		},
	}
	return &HTTPLoader{client: client, logger: logger}
}

// NewHTTPLoaderWithClient is used when the caller owns the client (tests).
func NewHTTPLoaderWithClient(client *http.Client, logger *slog.Logger) *HTTPLoader {
	return &HTTPLoader{client: client, logger: logger}
}

func (l *HTTPLoader) Load(ctx context.Context, rawURL string) *Future {
	f := newFuture()
	go func() {
		defer recoverLog(l.logger, "image load panic", f)
		start := time.Now()
		img, err := l.fetch(ctx, rawURL)
		l.stats.record(start, err)
		if err != nil {
			if l.logger != nil {
				l.logger.Error("image load failed", "url", rawURL, "error", err)
			}
			f.resolve(Result{Err: err})
			return
		}
		if l.logger != nil {
			b := img.Bounds()
			l.logger.Debug("image loaded", "url", rawURL, "width", b.Dx(), "height", b.Dy(), "elapsed", time.Since(start))
		}
		f.resolve(Result{Image: img})
	}()
	return f
}

func (l *HTTPLoader) fetch(ctx context.Context, rawURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrImageLoad, resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrImageLoad, err)
	}
	return img, nil
}

// Stats returns load counters.
func (l *HTTPLoader) Stats() LoadStats { return l.stats.snapshot() }

// Close releases idle connections.
func (l *HTTPLoader) Close() { l.client.CloseIdleConnections() }

// DirLoader serves view URLs from a local input directory instead of a server:
// the filename and subfolder query parameters are resolved under Root.
type DirLoader struct {
	Root   string
	logger *slog.Logger
	stats  stats
}

// NewDirLoader returns a loader reading from root.
func NewDirLoader(root string, logger *slog.Logger) *DirLoader {
	return &DirLoader{Root: root, logger: logger}
}

func (l *DirLoader) Load(ctx context.Context, rawURL string) *Future {
	f := newFuture()
	go func() {
		defer recoverLog(l.logger, "image load panic", f)
		start := time.Now()
		img, err := l.open(ctx, rawURL)
		l.stats.record(start, err)
		if err != nil && l.logger != nil {
			l.logger.Error("image load failed", "url", rawURL, "error", err)
		}
		f.resolve(Result{Image: img, Err: err})
	}()
	return f
}

func (l *DirLoader) open(ctx context.Context, rawURL string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	p, err := l.Path(rawURL)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer fh.Close()
	img, _, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrImageLoad, err)
	}
	return img, nil
}

// Path maps a view URL to a file under Root. Names escaping Root are rejected.
func (l *DirLoader) Path(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	q := u.Query()
	name := q.Get("filename")
	if name == "" {
		return "", fmt.Errorf("%w: missing filename", ErrImageLoad)
	}
	rel := filepath.Join(filepath.FromSlash(q.Get("subfolder")), name)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q escapes input directory", ErrImageLoad, rel)
	}
	return filepath.Join(l.Root, rel), nil
}

// Stats returns load counters.
func (l *DirLoader) Stats() LoadStats { return l.stats.snapshot() }

func recoverLog(logger *slog.Logger, msg string, f *Future) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r)
		}
		f.resolve(Result{Err: fmt.Errorf("%w: %v", ErrImageLoad, r)})
	}
}
