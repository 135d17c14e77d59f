package geo

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/203.0.113.9/json/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"country_name":"Kenya","city":"Nairobi"}`))
	}))
	defer srv.Close()

	r, err := New(srv.URL, "", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	got := r.Lookup("203.0.113.9")
	if got.Country != "Kenya" || got.City != "Nairobi" {
		t.Errorf("got = %+v", got)
	}
}

func TestLookup_PartialPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"country_name":"Kenya"}`))
	}))
	defer srv.Close()

	r, _ := New(srv.URL, "", time.Second)
	got := r.Lookup("203.0.113.9")
	if got.Country != "Kenya" || got.City != Unknown {
		t.Errorf("got = %+v, want Kenya/Unknown", got)
	}
}

func TestLookup_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	r, _ := New(srv.URL, "", time.Second)
	got := r.Lookup("203.0.113.9")
	if got.Country != Unknown || got.City != Unknown {
		t.Errorf("got = %+v, want Unknown/Unknown", got)
	}
}

func TestLookup_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	r, _ := New(srv.URL, "", time.Second)
	got := r.Lookup("203.0.113.9")
	if got.Country != Unknown || got.City != Unknown {
		t.Errorf("got = %+v, want Unknown/Unknown", got)
	}
}

func TestLookup_UnreachableEndpoint(t *testing.T) {
	// Closed server simulates a network error
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	r, _ := New(srv.URL, "", time.Second)
	got := r.Lookup("203.0.113.9")
	if got.Country != Unknown || got.City != Unknown {
		t.Errorf("got = %+v, want Unknown/Unknown", got)
	}
}

func TestLookup_NoEndpoint(t *testing.T) {
	r, err := New("", "", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	got := r.Lookup("203.0.113.9")
	if got.Country != Unknown || got.City != Unknown {
		t.Errorf("got = %+v, want Unknown/Unknown", got)
	}
}

func TestLookup_NilResolver(t *testing.T) {
	var r *Resolver
	got := r.Lookup("203.0.113.9")
	if got.Country != Unknown || got.City != Unknown {
		t.Errorf("got = %+v, want Unknown/Unknown", got)
	}
}

func TestNew_BadGeoIPPath(t *testing.T) {
	if _, err := New("", "/no/such/file.mmdb", time.Second); err == nil {
		t.Error("expected error for missing mmdb file")
	}
}

func TestClose_NoDatabase_NoPanic(t *testing.T) {
	r, _ := New("", "", time.Second)
	r.Close() // should not panic
	var nilR *Resolver
	nilR.Close()
}
