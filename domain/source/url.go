package source

import (
	"net/url"
	"strings"
)

// ViewPath is the host-relative endpoint serving stored input images.
const ViewPath = "/view"

// SplitName normalizes backslashes and splits an upstream image name into its
// subfolder (every segment but the last) and filename (the last segment).
func SplitName(nameOrPath string) (subfolder, filename string) {
	p := strings.ReplaceAll(nameOrPath, `\`, "/")
	parts := strings.Split(p, "/")
	filename = parts[len(parts)-1]
	subfolder = strings.Join(parts[:len(parts)-1], "/")
	return subfolder, filename
}

// FormatFor derives the format token from a filename: jpeg for .jpg/.jpeg,
// png for anything else.
func FormatFor(filename string) string {
	parts := strings.Split(filename, ".")
	switch strings.ToLower(parts[len(parts)-1]) {
	case "jpg", "jpeg":
		return "jpeg"
	default:
		return "png"
	}
}

// ViewURL builds the GET URL for an upstream input image. base is the server
// origin (e.g. "http://127.0.0.1:8188"); an empty base yields a host-relative URL.
func ViewURL(base, nameOrPath string) (string, error) {
	subfolder, filename := SplitName(nameOrPath)
	u, err := url.Parse(strings.TrimRight(base, "/") + ViewPath)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("type", "input")
	q.Set("filename", filename)
	q.Set("subfolder", subfolder)
	q.Set("format", FormatFor(filename))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
