package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractFromImage(t *testing.T) {
	var gotAPIKey, gotEngine, gotFilename string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotAPIKey = r.FormValue("apikey")
		gotEngine = r.FormValue("OCREngine")
		if _, hdr, err := r.FormFile("file"); err == nil {
			gotFilename = hdr.Filename
		} else {
			t.Errorf("file part missing: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ParsedResults": []map[string]any{
				{"ParsedText": "Bill To: Ramesh Kumar\r\n\r\n\r\nRent :-16200"},
				{"ParsedText": "Total:-20608"},
			},
			"IsErroredOnProcessing": false,
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "helloworld", APIURL: srv.URL}, nil)
	res, err := c.ExtractFromImage(context.Background(), "booking.jpg", []byte("fake jpeg bytes"))
	if err != nil {
		t.Fatalf("ExtractFromImage: %v", err)
	}

	want := "Bill To: Ramesh Kumar\n\nRent :-16200\nTotal:-20608"
	if res.Text != want {
		t.Fatalf("text = %q, want %q", res.Text, want)
	}
	if res.Confidence != 85.0 {
		t.Fatalf("confidence = %v, want 85", res.Confidence)
	}

	if gotAPIKey != "helloworld" {
		t.Fatalf("apikey = %q", gotAPIKey)
	}
	if gotEngine != "2" {
		t.Fatalf("OCREngine = %q, want default 2", gotEngine)
	}
	if gotFilename != "booking.jpg" {
		t.Fatalf("filename = %q", gotFilename)
	}
}

func TestExtractFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content-type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.FormValue("url"); got != "https://example.com/booking.png" {
			t.Errorf("url = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ParsedResults":         []map[string]any{{"ParsedText": "Mobile - 8889302969"}},
			"IsErroredOnProcessing": false,
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", APIURL: srv.URL}, nil)
	res, err := c.ExtractFromURL(context.Background(), "https://example.com/booking.png")
	if err != nil {
		t.Fatalf("ExtractFromURL: %v", err)
	}
	if res.Text != "Mobile - 8889302969" {
		t.Fatalf("text = %q", res.Text)
	}
}

func TestExtractProcessingError(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
	}{
		{"string message", map[string]any{
			"IsErroredOnProcessing": true,
			"ErrorMessage":          "file too large",
		}},
		{"list message", map[string]any{
			"IsErroredOnProcessing": true,
			"ErrorMessage":          []string{"bad image", "unsupported type"},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(c.body)
			}))
			defer srv.Close()

			client := NewClient(Config{APIKey: "k", APIURL: srv.URL}, nil)
			if _, err := client.ExtractFromURL(context.Background(), "https://example.com/x.jpg"); err == nil {
				t.Fatalf("want processing error")
			}
		})
	}
}

func TestExtractNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", APIURL: srv.URL}, nil)
	if _, err := c.ExtractFromImage(context.Background(), "a.jpg", []byte("x")); err == nil {
		t.Fatalf("want error on 403")
	}
}
