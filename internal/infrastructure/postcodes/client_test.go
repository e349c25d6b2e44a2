package postcodes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResolveFullPostcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/postcodes/sw1a 1aa" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200,"result":{"postcode":"SW1A 1AA","outcode":"SW1A"}}`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	resolved, err := client.Resolve(context.Background(), "sw1a 1aa")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Postcode != "SW1A 1AA" {
		t.Errorf("Postcode = %q, want %q", resolved.Postcode, "SW1A 1AA")
	}
	if resolved.Outcode != "SW1A" {
		t.Errorf("Outcode = %q, want %q", resolved.Outcode, "SW1A")
	}
}

func TestResolveFallsBackToOutcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/postcodes/M1":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status":404,"error":"Postcode not found"}`))
		case "/outcodes/M1":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":200,"result":{"outcode":"M1"}}`))
		default:
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	resolved, err := client.Resolve(context.Background(), "M1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Postcode != "" {
		t.Errorf("Postcode = %q, want empty", resolved.Postcode)
	}
	if resolved.Outcode != "M1" {
		t.Errorf("Outcode = %q, want %q", resolved.Outcode, "M1")
	}
}

func TestResolveUnknownQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":404,"error":"not found"}`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	resolved, err := client.Resolve(context.Background(), "nonsense")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Postcode != "" || resolved.Outcode != "" {
		t.Fatalf("expected zero resolution, got %+v", resolved)
	}
}

func TestResolveEmptyQuery(t *testing.T) {
	client := New("http://invalid.localhost", time.Second)
	resolved, err := client.Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Postcode != "" || resolved.Outcode != "" {
		t.Fatalf("expected zero resolution, got %+v", resolved)
	}
}

func TestResolveServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	if _, err := client.Resolve(context.Background(), "SW1A 1AA"); err == nil {
		t.Fatal("expected an error on status 500")
	}
}
