package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

var (
	ErrBadScheme        = errors.New("blobstore: only http and https URLs are allowed")
	ErrBlockedExtension = errors.New("blobstore: file extension is not allowed")
)

// Executable and script extensions are refused for upload-from-URL.
var blockedExtensions = map[string]struct{}{
	".exe": {},
	".bat": {},
	".cmd": {},
	".com": {},
	".msi": {},
	".dll": {},
	".scr": {},
	".sh":  {},
	".js":  {},
}

var fetchClient = &http.Client{Timeout: 60 * time.Second}

// ValidateURL checks scheme and extension without touching the network and
// returns the file name the blob would be stored under.
func ValidateURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("blobstore: invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrBadScheme
	}
	if u.Host == "" {
		return "", fmt.Errorf("blobstore: invalid URL: missing host")
	}

	name := path.Base(u.Path)
	if name == "/" || name == "." || name == "" {
		name = "upload-from-web"
	}

	if _, blocked := blockedExtensions[strings.ToLower(path.Ext(name))]; blocked {
		return "", ErrBlockedExtension
	}

	return name, nil
}

// FetchFromURL validates first, then downloads. The caller owns the body.
func FetchFromURL(ctx context.Context, rawURL string) (string, io.ReadCloser, error) {
	name, err := ValidateURL(rawURL)
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(rawURL), nil)
	if err != nil {
		return "", nil, fmt.Errorf("blobstore: build request: %w", err)
	}

	resp, err := fetchClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("blobstore: fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return "", nil, fmt.Errorf("blobstore: fetch URL: %s", resp.Status)
	}

	return name, resp.Body, nil
}
