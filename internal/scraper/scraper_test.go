package scraper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pfrederiksen/yo-yo/internal/logger"
)

const seasonPage = `<html>
<head><title>England 1888-89</title></head>
<body>
<h2>Football League</h2>
<pre>
                             P  W  D  L  F  A Pts
 1. PRESTON NORTH END       22 18  4  0 74 15  40
 2. Aston Villa             22 12  5  5 61 43  29
</pre>
<p>Source: contemporary newspapers</p>
</body>
</html>`

// newTestScraper points a scraper at server with fast retries.
func newTestScraper(server *httptest.Server, opts ...Option) *Scraper {
	opts = append([]Option{
		WithURLTemplate(server.URL + "/%s.html"),
		WithLogger(logger.New(logger.LevelError, io.Discard)),
	}, opts...)
	s := New(opts...)
	s.initialBackoff = time.Millisecond
	return s
}

func TestFetchSeason(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		contentType  string
		statusCodes  []int // one per attempt, last one repeats
		maxRetries   int
		wantErr      bool
		wantNotFound bool
		wantRequests int32
		wantText     string
	}{
		{
			name:         "successful fetch",
			body:         seasonPage,
			statusCodes:  []int{http.StatusOK},
			maxRetries:   3,
			wantRequests: 1,
			wantText:     " 1. PRESTON NORTH END       22 18  4  0 74 15  40",
		},
		{
			name:         "missing season",
			statusCodes:  []int{http.StatusNotFound},
			maxRetries:   3,
			wantErr:      true,
			wantNotFound: true,
			wantRequests: 1,
		},
		{
			name:         "server error then success",
			body:         seasonPage,
			statusCodes:  []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusOK},
			maxRetries:   3,
			wantRequests: 3,
			wantText:     "Aston Villa",
		},
		{
			name:         "server error exhausts retries",
			statusCodes:  []int{http.StatusInternalServerError},
			maxRetries:   2,
			wantErr:      true,
			wantRequests: 3,
		},
		{
			name:         "forbidden is not retried",
			statusCodes:  []int{http.StatusForbidden},
			maxRetries:   3,
			wantErr:      true,
			wantRequests: 1,
		},
		{
			name:         "latin-1 page decoded",
			body:         "<html><body><pre>Sheffield Wednesday \xa3100</pre></body></html>",
			contentType:  "text/html; charset=iso-8859-1",
			statusCodes:  []int{http.StatusOK},
			wantRequests: 1,
			wantText:     "Sheffield Wednesday £100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&requests, 1)

				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "yo-yo") {
					t.Errorf("User-Agent = %q, should contain 'yo-yo'", userAgent)
				}
				if r.URL.Path != "/1888-89.html" {
					t.Errorf("path = %q, want /1888-89.html", r.URL.Path)
				}

				code := tt.statusCodes[len(tt.statusCodes)-1]
				if int(n) <= len(tt.statusCodes) {
					code = tt.statusCodes[n-1]
				}
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(code)
				if code == http.StatusOK {
					w.Write([]byte(tt.body))
				}
			}))
			defer server.Close()

			s := newTestScraper(server, WithMaxRetries(tt.maxRetries))
			text, err := s.FetchSeason(context.Background(), 1888)

			if got := atomic.LoadInt32(&requests); got != tt.wantRequests {
				t.Errorf("server saw %d requests, want %d", got, tt.wantRequests)
			}

			if tt.wantErr {
				if err == nil {
					t.Fatal("FetchSeason() expected error, got nil")
				}
				if got := errors.Is(err, ErrSeasonNotFound); got != tt.wantNotFound {
					t.Errorf("errors.Is(err, ErrSeasonNotFound) = %v, want %v (err: %v)", got, tt.wantNotFound, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("FetchSeason() unexpected error: %v", err)
			}
			if !strings.Contains(text, tt.wantText) {
				t.Errorf("FetchSeason() text = %q, should contain %q", text, tt.wantText)
			}
		})
	}
}

func TestFetchSeason_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScraper(server)
	if _, err := s.FetchSeason(ctx, 1888); err == nil {
		t.Error("FetchSeason() with cancelled context expected error, got nil")
	}
}

func TestFetchSeasons(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1914-15.html", "/1919-20.html":
			w.Write([]byte(seasonPage))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s := newTestScraper(server)
	pages, err := s.FetchSeasons(context.Background(), []int{1914, 1915, 1916, 1917, 1918, 1919}, 2)
	if err != nil {
		t.Fatalf("FetchSeasons() unexpected error: %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("FetchSeasons() returned %d pages, want 2", len(pages))
	}
	for _, year := range []int{1914, 1919} {
		if !strings.Contains(pages[year], "PRESTON NORTH END") {
			t.Errorf("page for %d missing table text", year)
		}
	}
}

func TestFetchSeasons_PropagatesErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	s := newTestScraper(server)
	if _, err := s.FetchSeasons(context.Background(), []int{1888, 1889}, 1); err == nil {
		t.Error("FetchSeasons() expected error, got nil")
	}
}

func TestFetchSeasons_KeepsPagesOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/1890-91.html" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(seasonPage))
	}))
	defer server.Close()

	s := newTestScraper(server, WithMaxRetries(0))
	pages, err := s.FetchSeasons(context.Background(), []int{1888, 1889, 1890}, 1)
	if err == nil || !strings.Contains(err.Error(), "1890-91") {
		t.Fatalf("FetchSeasons() error = %v, want failure for 1890-91", err)
	}

	for _, year := range []int{1888, 1889} {
		if !strings.Contains(pages[year], "PRESTON NORTH END") {
			t.Errorf("page for %d not returned with the error", year)
		}
	}
	if _, ok := pages[1890]; ok {
		t.Error("failed season present in result")
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    []string
		notWant []string
	}{
		{
			name:    "pre blocks only",
			html:    seasonPage,
			want:    []string{"P  W  D  L  F  A Pts", " 2. Aston Villa"},
			notWant: []string{"Source: contemporary newspapers"},
		},
		{
			name: "several pre blocks joined",
			html: "<body><pre>First Division</pre><p>x</p><pre>Second Division</pre></body>",
			want: []string{"First Division\nSecond Division"},
		},
		{
			name: "falls back to body",
			html: "<body><p>No tables this season</p></body>",
			want: []string{"No tables this season"},
		},
		{
			name: "entities decoded",
			html: "<body><pre>Brighton &amp; Hove Albion</pre></body>",
			want: []string{"Brighton & Hove Albion"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("ExtractText() error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ExtractText() = %q, should contain %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("ExtractText() = %q, should not contain %q", got, nw)
				}
			}
		})
	}
}

func TestNew(t *testing.T) {
	s := New()

	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.client == nil {
		t.Error("scraper client is nil")
	}
	if s.urlTemplate != DefaultURLTemplate {
		t.Errorf("scraper urlTemplate = %q, want %q", s.urlTemplate, DefaultURLTemplate)
	}
	if got := s.SeasonURL(1999); got != "https://www.rsssf.org/engpaul/FLA/1999-00.html" {
		t.Errorf("SeasonURL(1999) = %q", got)
	}
}

func TestNew_Options(t *testing.T) {
	s := New(
		WithURLTemplate("http://example.com/%s"),
		WithUserAgent("custom-agent"),
		WithTimeout(5*time.Second),
		WithMaxRetries(0),
	)

	if s.SeasonURL(1888) != "http://example.com/1888-89" {
		t.Errorf("SeasonURL() = %q", s.SeasonURL(1888))
	}
	if s.userAgent != "custom-agent" {
		t.Errorf("userAgent = %q, want custom-agent", s.userAgent)
	}
	if s.client.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", s.client.Timeout)
	}
	if s.maxRetries != 0 {
		t.Errorf("maxRetries = %d, want 0", s.maxRetries)
	}
}

func TestPageText_DetectsEncodingFromMeta(t *testing.T) {
	page := "<html><head><meta charset=\"windows-1252\"></head><body><pre>M\xfcnchen 1860</pre></body></html>"

	got, err := PageText(strings.NewReader(page), "")
	if err != nil {
		t.Fatalf("PageText() error: %v", err)
	}
	if got != "München 1860" {
		t.Errorf("PageText() = %q, want %q", got, "München 1860")
	}
}
