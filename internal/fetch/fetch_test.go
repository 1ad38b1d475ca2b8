package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "seolens-test/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, "seolens-test/1.0", 1<<20)
	res := c.Fetch(context.Background(), srv.URL)

	if !res.OK() {
		t.Fatalf("unexpected error: %s", res.ErrorMessage)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
	if !strings.Contains(string(res.Body), "hello") {
		t.Errorf("Body = %q", res.Body)
	}
	if res.Headers.Get("Content-Type") != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", res.Headers.Get("Content-Type"))
	}
	if res.Elapsed <= 0 {
		t.Error("Elapsed should be positive")
	}
}

func TestFetchDoesNotFollowRedirects(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/old":
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		case "/new":
			t.Error("redirect target should not be fetched")
		}
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, "seolens-test/1.0", 1<<20)
	res := c.Fetch(context.Background(), srv.URL+"/old")

	if !res.OK() {
		t.Fatalf("unexpected error: %s", res.ErrorMessage)
	}
	if res.StatusCode != http.StatusMovedPermanently {
		t.Errorf("StatusCode = %d, want 301", res.StatusCode)
	}
	if !res.IsRedirect() {
		t.Fatal("IsRedirect() = false, want true")
	}
	if res.RedirectLocation != "/new" {
		t.Errorf("RedirectLocation = %q, want /new", res.RedirectLocation)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	t.Parallel()

	c := NewClient(100*time.Millisecond, "seolens-test/1.0", 1<<20)
	res := c.Fetch(context.Background(), "http://127.0.0.1:1/")

	if res.OK() {
		t.Fatal("expected a transport failure")
	}
	if res.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", res.StatusCode)
	}
	if res.ErrorMessage == "" {
		t.Error("ErrorMessage should be set")
	}
}

func TestFetchBodyCap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, "seolens-test/1.0", 1024)
	res := c.Fetch(context.Background(), srv.URL)

	if !res.OK() {
		t.Fatalf("unexpected error: %s", res.ErrorMessage)
	}
	if len(res.Body) != 1024 {
		t.Errorf("len(Body) = %d, want 1024", len(res.Body))
	}
}

func TestFetchContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	c := NewClient(10*time.Second, "seolens-test/1.0", 1<<20)
	res := c.Fetch(ctx, srv.URL)

	if res.OK() {
		t.Fatal("expected cancellation to surface as a transport failure")
	}
}
