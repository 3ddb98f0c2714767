package youtube

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchFirstVideoURL(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_query"); got != "never gonna give you up" {
			t.Errorf("search_query = %q", got)
		}
		w.Write([]byte(`{"contents":[{"url":"/watch?v=dQw4w9WgXcQ","title":"hit"},{"url":"/watch?v=other00000A"}]}`))
	}))
	defer srv.Close()

	r := NewYouTubeResolver()
	r.BaseURL = srv.URL

	got, err := r.SearchFirstVideoURL("never gonna give you up")
	if err != nil {
		t.Fatalf("SearchFirstVideoURL error: %v", err)
	}
	want := srv.URL + "/watch?v=dQw4w9WgXcQ"
	if got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

func TestSearchFirstVideoURLNoMatch(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>no results</html>"))
	}))
	defer srv.Close()

	r := NewYouTubeResolver()
	r.BaseURL = srv.URL

	if _, err := r.SearchFirstVideoURL("gibberish"); err != ErrNoVideoMatch {
		t.Fatalf("error = %v, want ErrNoVideoMatch", err)
	}
}

func TestSearchFirstVideoURLServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	r := NewYouTubeResolver()
	r.BaseURL = srv.URL

	if _, err := r.SearchFirstVideoURL("anything"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
