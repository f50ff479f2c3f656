package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestSearchWithoutKeyIsSilentNoOp(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(srv.Close)

	client := NewUnsplashClient("", "parkk_blog", nil)
	client.searchURL = srv.URL

	acq := client.Search(context.Background(), "fraud detection", 3)
	if len(acq.Images) != 0 || len(acq.Degraded) != 0 {
		t.Fatalf("expected empty acquisition, got %+v", acq)
	}
	if calls.Load() != 0 {
		t.Fatal("no network call may happen without an access key")
	}
}

func TestSearchDownloadsPhotosWithAttribution(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	var tracked atomic.Int32
	mux.HandleFunc("/track", func(w http.ResponseWriter, r *http.Request) {
		tracked.Add(1)
	})
	mux.HandleFunc("/photo.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegbytes"))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if got := r.URL.Query().Get("orientation"); got != "landscape" {
			t.Errorf("missing landscape orientation, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{
				"id":    "ph1",
				"urls":  map[string]string{"regular": srv.URL + "/photo.jpg"},
				"links": map[string]string{"download_location": srv.URL + "/track"},
				"user": map[string]any{
					"name":  "Ada Example",
					"links": map[string]string{"html": "https://unsplash.com/@ada"},
				},
			}},
		})
	})

	client := NewUnsplashClient("test-key", "parkk_blog", nil)
	client.searchURL = srv.URL + "/search"

	acq := client.Search(context.Background(), "machine learning", 3)
	if len(acq.Images) != 1 {
		t.Fatalf("expected 1 image, got %d (degraded: %v)", len(acq.Images), acq.Degraded)
	}
	img := acq.Images[0]
	if img.Filename != "unsplash-ph1.jpg" || img.MimeType != "image/jpeg" {
		t.Fatalf("unexpected image metadata: %+v", img)
	}
	if string(img.Bytes) != "jpegbytes" {
		t.Fatal("image bytes not downloaded")
	}
	if tracked.Load() != 1 {
		t.Fatal("download tracking call was not fired")
	}
	if !strings.Contains(img.Attribution, "Ada Example") ||
		!strings.Contains(img.Attribution, "utm_source=parkk_blog&utm_medium=referral") {
		t.Fatalf("attribution missing photographer or referral tag: %s", img.Attribution)
	}
}

func TestSearchPerPhotoFailureDegradesOnlyThatPhoto(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/good.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/bad.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": "bad", "urls": map[string]string{"regular": srv.URL + "/bad.jpg"}},
				{"id": "good", "urls": map[string]string{"regular": srv.URL + "/good.jpg"}},
			},
		})
	})

	client := NewUnsplashClient("test-key", "parkk_blog", nil)
	client.searchURL = srv.URL + "/search"

	acq := client.Search(context.Background(), "logistics", 2)
	if len(acq.Images) != 1 {
		t.Fatalf("expected the healthy photo to survive, got %d images", len(acq.Images))
	}
	if len(acq.Degraded) != 1 || !strings.Contains(acq.Degraded[0], "bad") {
		t.Fatalf("expected one degraded entry for the failed photo, got %v", acq.Degraded)
	}
}

func TestSearchAPIFailureDegradesWholeCall(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client := NewUnsplashClient("test-key", "parkk_blog", nil)
	client.searchURL = srv.URL

	acq := client.Search(context.Background(), "retail", 3)
	if len(acq.Images) != 0 || len(acq.Degraded) != 1 {
		t.Fatalf("expected degraded-only acquisition, got %+v", acq)
	}
}
