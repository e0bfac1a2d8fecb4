package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lease.txt")
	if err := os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, "Plain lease text."...), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewLoader(time.Second, 1<<20).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if doc.Text != "Plain lease text." {
		t.Errorf("Expected BOM stripped, got %q", doc.Text)
	}
}

func TestLoader_HTMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lease.html")
	html := `<html><head><title>Lease</title><script>var x = 1;</script></head>
<body><h1>Lease</h1><p>The tenant shall pay rent.</p></body></html>`
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewLoader(time.Second, 1<<20).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(doc.Text, "The tenant shall pay rent.") {
		t.Errorf("Expected visible text, got %q", doc.Text)
	}
	if strings.Contains(doc.Text, "var x") || strings.Contains(doc.Text, "<p>") {
		t.Errorf("Expected markup and scripts removed, got %q", doc.Text)
	}
}

func TestLoader_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("a", 101)), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader(time.Second, 100).Load(context.Background(), path)
	if err == nil || !strings.Contains(err.Error(), "exceeds 100 bytes") {
		t.Errorf("Expected size error, got %v", err)
	}
}

func TestLoader_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected User-Agent header")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>Notice shall be given in writing.</p></body></html>"))
	}))
	defer server.Close()

	doc, err := NewLoader(time.Second, 1<<20).Load(context.Background(), server.URL+"/lease")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(doc.Text) != "Notice shall be given in writing." {
		t.Errorf("Unexpected text: %q", doc.Text)
	}
	if doc.Source != server.URL+"/lease" {
		t.Errorf("Unexpected source: %s", doc.Source)
	}
}

func TestLoader_URLStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := NewLoader(time.Second, 1<<20).Load(context.Background(), server.URL); err == nil {
		t.Error("Expected error for 404")
	}
}
