package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prompt-collector/api"
	"prompt-collector/prompt"
	"prompt-collector/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, _ := newNotifyingTestServer(t)
	return srv
}

func newNotifyingTestServer(t *testing.T) (*httptest.Server, *storage.Notifier) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir() + "/prompts.json")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	notifier := storage.NewNotifier(store)
	srv := httptest.NewServer(api.RegisterRoutes(prompt.NewManager(notifier), notifier, false))
	t.Cleanup(srv.Close)
	return srv, notifier
}

// do sends a request with an optional JSON body and returns the response.
func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: expected %d, got %d: %s",
			resp.Request.Method, resp.Request.URL.Path, want, resp.StatusCode, body)
	}
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("expected json content-type, got %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
