package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/lexscan/internal/textproc"
)

// ErrInvalidEncoding is returned for input that is not UTF-8 text
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is loaded input text plus where it came from
type Document struct {
	Text        string
	Source      string
	ContentType string
}

// Loader reads documents from local files or http(s) URLs.
// HTML input is reduced to its visible text.
type Loader struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// NewLoader creates a loader; maxBytes bounds both files and responses
func NewLoader(timeout time.Duration, maxBytes int64) *Loader {
	return &Loader{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: "lexscan/1.0",
		maxBytes:  maxBytes,
	}
}

// Load reads source, which is a file path or an http(s) URL
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.loadURL(ctx, source)
	}
	return l.loadFile(source)
}

func (l *Loader) loadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	defer func() { _ = f.Close() }()

	body, err := l.readLimited(f)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	text, err := decode(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	return &Document{Text: text, Source: path, ContentType: contentType}, nil
}

func (l *Loader) loadURL(ctx context.Context, rawURL string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := l.readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	text, err := decode(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return &Document{Text: text, Source: resp.Request.URL.String(), ContentType: contentType}, nil
}

func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	if l.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > l.maxBytes {
		return nil, fmt.Errorf("input exceeds %d bytes", l.maxBytes)
	}
	return body, nil
}

// decode validates the encoding and strips markup from HTML
func decode(body []byte, contentType string) (string, error) {
	body = bytes.TrimPrefix(body, utf8BOM)
	if !utf8.Valid(body) {
		return "", ErrInvalidEncoding
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "text/html" || mediaType == "application/xhtml+xml" {
		return textproc.HTMLToText(bytes.NewReader(body))
	}
	return string(body), nil
}
