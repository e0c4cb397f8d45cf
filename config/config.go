package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config holds runtime configuration for the selection overlay and the host
// connection. Fields may be loaded from a JSON or HCL file and overridden by
// command-line flags.
type Config struct {
	Debug bool `json:"debug" hcl:"debug,optional"`
	// Host server the upstream image is fetched from
	ServerURL          string `json:"server_url" hcl:"server_url,optional"`
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds" hcl:"http_timeout_seconds,optional"`

	// Viewport fit: the canvas may use up to ratio*screen, capped by max.
	ViewportMaxWidth    int     `json:"viewport_max_width" hcl:"viewport_max_width,optional"`
	ViewportMaxHeight   int     `json:"viewport_max_height" hcl:"viewport_max_height,optional"`
	ViewportWidthRatio  float64 `json:"viewport_width_ratio" hcl:"viewport_width_ratio,optional"`
	ViewportHeightRatio float64 `json:"viewport_height_ratio" hcl:"viewport_height_ratio,optional"`

	// Overlay timing
	ToastMillis         int `json:"toast_millis" hcl:"toast_millis,optional"`
	FrameIntervalMillis int `json:"frame_interval_millis" hcl:"frame_interval_millis,optional"`
	CloseDelayMillis    int `json:"close_delay_millis" hcl:"close_delay_millis,optional"`

	// Rectangle a fresh RectSelect node starts with
	DefaultRectW int `json:"default_rect_w" hcl:"default_rect_w,optional"`
	DefaultRectH int `json:"default_rect_h" hcl:"default_rect_h,optional"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		ServerURL:           "http://127.0.0.1:8188",
		HTTPTimeoutSeconds:  15,
		ViewportMaxWidth:    1600,
		ViewportMaxHeight:   900,
		ViewportWidthRatio:  0.88,
		ViewportHeightRatio: 0.65,
		ToastMillis:         1800,
		FrameIntervalMillis: 16,
		CloseDelayMillis:    250,
		DefaultRectW:        256,
		DefaultRectH:        256,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	if c.HTTPTimeoutSeconds <= 0 {
		c.HTTPTimeoutSeconds = d.HTTPTimeoutSeconds
	}
	if c.ViewportMaxWidth <= 0 {
		c.ViewportMaxWidth = d.ViewportMaxWidth
	}
	if c.ViewportMaxHeight <= 0 {
		c.ViewportMaxHeight = d.ViewportMaxHeight
	}
	if c.ViewportWidthRatio <= 0 || c.ViewportWidthRatio > 1 {
		c.ViewportWidthRatio = d.ViewportWidthRatio
	}
	if c.ViewportHeightRatio <= 0 || c.ViewportHeightRatio > 1 {
		c.ViewportHeightRatio = d.ViewportHeightRatio
	}
	if c.ToastMillis <= 0 {
		c.ToastMillis = d.ToastMillis
	}
	if c.FrameIntervalMillis <= 0 {
		c.FrameIntervalMillis = d.FrameIntervalMillis
	}
	if c.FrameIntervalMillis > 1000 {
		c.FrameIntervalMillis = 1000
	}
	if c.CloseDelayMillis < 0 {
		c.CloseDelayMillis = 0
	}
	if c.DefaultRectW < 1 {
		c.DefaultRectW = d.DefaultRectW
	}
	if c.DefaultRectH < 1 {
		c.DefaultRectH = d.DefaultRectH
	}
	return nil
}

// Viewport returns the canvas limits for a screen of screenW x screenH:
// min(screen*ratio, max) per axis.
func (c *Config) Viewport(screenW, screenH int) (maxW, maxH float64) {
	maxW = min(float64(screenW)*c.ViewportWidthRatio, float64(c.ViewportMaxWidth))
	maxH = min(float64(screenH)*c.ViewportHeightRatio, float64(c.ViewportMaxHeight))
	return maxW, maxH
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// isHCL reports whether path names an HCL file.
func isHCL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".hcl")
}

// Load attempts to read configuration from the given file path. Files ending
// in .hcl are decoded as HCL, everything else as JSON. If the file does not
// exist it returns DefaultConfig(). On a decode error it returns defaults with
// a *ParseError.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	parsed := DefaultConfig()
	if isHCL(path) {
		err = decodeHCL(data, path, parsed)
	} else {
		err = json.Unmarshal(data, parsed)
	}
	if err != nil {
		return cfg, &ParseError{Path: path, Err: err}
	}
	_ = parsed.Validate()
	return parsed, nil
}

func decodeHCL(data []byte, path string, into *Config) error {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return diags
	}
	if diags := gohcl.DecodeBody(f.Body, nil, into); diags.HasErrors() {
		return diags
	}
	return nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
