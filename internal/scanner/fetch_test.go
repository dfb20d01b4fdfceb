package scanner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	consts "github.com/khanhnv2901/webint/internal/shared/constants"
	errs "github.com/khanhnv2901/webint/internal/shared/errors"
)

func mustParseTarget(t *testing.T, raw string) *Target {
	t.Helper()
	target, err := ParseTarget(raw)
	if err != nil {
		t.Fatalf("ParseTarget(%q) returned error: %v", raw, err)
	}
	return target
}

func TestFetchProber_CapturesResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Powered-By", "PHP/8.2")
		w.Header().Set("Cache-Control", "max-age=600")
		fmt.Fprint(w, `<html><body>wp-content</body></html>`)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	prober := &FetchProber{Timeout: 5 * time.Second}
	result, err := prober.Fetch(context.Background(), mustParseTarget(t, server.URL))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if result.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", result.StatusCode)
	}
	if !strings.Contains(string(result.Body), "wp-content") {
		t.Errorf("Expected body to contain marker, got %q", string(result.Body))
	}
	if result.Headers.Get("X-Powered-By") != "PHP/8.2" {
		t.Errorf("Expected X-Powered-By header, got %q", result.Headers.Get("X-Powered-By"))
	}
	if result.FinalURL != server.URL+"/" {
		t.Errorf("Expected final URL %s/, got %s", server.URL, result.FinalURL)
	}
	if result.Duration <= 0 {
		t.Errorf("Expected positive duration, got %v", result.Duration)
	}
}

func TestFetchProber_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/landing", http.StatusFound)
	})
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "arrived")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	prober := &FetchProber{Timeout: 5 * time.Second}
	result, err := prober.Fetch(context.Background(), mustParseTarget(t, server.URL))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if result.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 after redirect, got %d", result.StatusCode)
	}
	if result.FinalURL != server.URL+"/landing" {
		t.Errorf("Expected final URL to end at /landing, got %s", result.FinalURL)
	}
	if string(result.Body) != "arrived" {
		t.Errorf("Expected redirected body, got %q", string(result.Body))
	}
}

func TestFetchProber_CapsBodySize(t *testing.T) {
	oversized := strings.Repeat("a", int(consts.BodyCaptureLimitBytes)+1024)
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, oversized)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	prober := &FetchProber{Timeout: 5 * time.Second}
	result, err := prober.Fetch(context.Background(), mustParseTarget(t, server.URL))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if int64(len(result.Body)) != consts.BodyCaptureLimitBytes {
		t.Errorf("Expected body capped at %d bytes, got %d", consts.BodyCaptureLimitBytes, len(result.Body))
	}
}

func TestFetchProber_Timeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	prober := &FetchProber{Timeout: 30 * time.Millisecond}
	_, err := prober.Fetch(context.Background(), mustParseTarget(t, server.URL))
	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
}

func TestFetchProber_SetsUserAgent(t *testing.T) {
	var seen string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("User-Agent")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	prober := &FetchProber{Timeout: 5 * time.Second, UserAgent: "webint-test/1.0"}
	if _, err := prober.Fetch(context.Background(), mustParseTarget(t, server.URL)); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if seen != "webint-test/1.0" {
		t.Errorf("Expected custom user agent, got %q", seen)
	}
}

func TestFetchProber_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := &FetchProber{Timeout: 5 * time.Second}
	if _, err := prober.Fetch(ctx, mustParseTarget(t, server.URL)); err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}
}

func TestFetchProber_Favicon(t *testing.T) {
	icon := []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00}
	mux := http.NewServeMux()
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(icon)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	prober := &FetchProber{Timeout: 5 * time.Second}
	data, err := prober.Favicon(context.Background(), server.URL+"/some/page")
	if err != nil {
		t.Fatalf("Favicon returned error: %v", err)
	}
	if len(data) != len(icon) {
		t.Errorf("Expected %d favicon bytes, got %d", len(icon), len(data))
	}
}

func TestFetchProber_FaviconMissing(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	prober := &FetchProber{Timeout: 5 * time.Second}
	if _, err := prober.Favicon(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for missing favicon, got nil")
	}
}

func TestFetchProber_FaviconEmptyBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	prober := &FetchProber{Timeout: 5 * time.Second}
	_, err := prober.Favicon(context.Background(), server.URL)
	if !errors.Is(err, errs.ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}
