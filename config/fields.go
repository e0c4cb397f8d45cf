package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownField = errors.New("unknown config field")

// Field describes one user-editable setting.
type Field struct {
	Key   string // JSON/HCL name
	Label string
}

// EditableFields lists the settings exposed in the settings panel and via
// --set, in display order.
var EditableFields = []Field{
	{"server_url", "Server URL"},
	{"viewport_max_width", "Max Canvas Width"},
	{"viewport_max_height", "Max Canvas Height"},
	{"viewport_width_ratio", "Width Ratio (0-1)"},
	{"viewport_height_ratio", "Height Ratio (0-1)"},
	{"toast_millis", "Notice Millis"},
	{"frame_interval_millis", "Frame Interval Millis"},
	{"close_delay_millis", "Close Delay Millis"},
	{"http_timeout_seconds", "HTTP Timeout Seconds"},
	{"default_rect_w", "Default Rect W"},
	{"default_rect_h", "Default Rect H"},
	{"debug", "Debug (true/false)"},
}

// Get returns the textual value of key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "debug":
		return strconv.FormatBool(c.Debug), nil
	case "server_url":
		return c.ServerURL, nil
	case "viewport_width_ratio":
		return strconv.FormatFloat(c.ViewportWidthRatio, 'f', 2, 64), nil
	case "viewport_height_ratio":
		return strconv.FormatFloat(c.ViewportHeightRatio, 'f', 2, 64), nil
	}
	if p := c.intField(key); p != nil {
		return strconv.Itoa(*p), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownField, key)
}

// Set parses value into key. Range checks are left to Validate.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "debug":
		b, ok := parseBoolLoose(value)
		if !ok {
			return fmt.Errorf("%s: invalid bool %q", key, value)
		}
		c.Debug = b
		return nil
	case "server_url":
		c.ServerURL = value
		return nil
	case "viewport_width_ratio", "viewport_height_ratio":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == "viewport_width_ratio" {
			c.ViewportWidthRatio = f
		} else {
			c.ViewportHeightRatio = f
		}
		return nil
	}
	p := c.intField(key)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*p = i
	return nil
}

// SetPair applies a "key=value" assignment.
func (c *Config) SetPair(kv string) error {
	key, value, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", kv)
	}
	return c.Set(strings.TrimSpace(key), value)
}

func (c *Config) intField(key string) *int {
	switch key {
	case "http_timeout_seconds":
		return &c.HTTPTimeoutSeconds
	case "viewport_max_width":
		return &c.ViewportMaxWidth
	case "viewport_max_height":
		return &c.ViewportMaxHeight
	case "toast_millis":
		return &c.ToastMillis
	case "frame_interval_millis":
		return &c.FrameIntervalMillis
	case "close_delay_millis":
		return &c.CloseDelayMillis
	case "default_rect_w":
		return &c.DefaultRectW
	case "default_rect_h":
		return &c.DefaultRectH
	}
	return nil
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
