package oura

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestDisabledClientReturnsEmpty(t *testing.T) {
	c := NewClient("", nil, zerolog.Nop())

	if c.Enabled() {
		t.Error("client without a token should be disabled")
	}
	sleep, err := c.DailySleep(context.Background(), "2024-03-14", "2024-03-15")
	if err != nil {
		t.Fatalf("DailySleep failed: %v", err)
	}
	if len(sleep) != 0 {
		t.Errorf("expected no data, got %+v", sleep)
	}
}

func TestDailySleep(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"a","day":"2024-03-15","score":82,"contributors":{"deep_sleep":90}}]}`))
	}))
	defer srv.Close()

	c := NewClient("pat-token", nil, zerolog.Nop())
	c.baseURL = srv.URL

	sleep, err := c.DailySleep(context.Background(), "2024-03-14", "2024-03-15")
	if err != nil {
		t.Fatalf("DailySleep failed: %v", err)
	}
	if gotAuth != "Bearer pat-token" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if gotPath != "/daily_sleep" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "start_date=2024-03-14&end_date=2024-03-15" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(sleep) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sleep))
	}
	if sleep[0].Score != 82 || sleep[0].Contributors.DeepSleep != 90 {
		t.Errorf("unexpected record %+v", sleep[0])
	}
}

func TestDailyActivityAndReadiness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/daily_activity":
			w.Write([]byte(`{"data":[{"id":"b","day":"2024-03-15","score":70,"steps":8200}]}`))
		case "/daily_readiness":
			w.Write([]byte(`{"data":[{"id":"c","day":"2024-03-15","score":64}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient("pat-token", nil, zerolog.Nop())
	c.baseURL = srv.URL

	activity, err := c.DailyActivity(context.Background(), "2024-03-14", "2024-03-15")
	if err != nil {
		t.Fatalf("DailyActivity failed: %v", err)
	}
	if len(activity) != 1 || activity[0].Steps != 8200 {
		t.Errorf("unexpected activity %+v", activity)
	}

	readiness, err := c.DailyReadiness(context.Background(), "2024-03-14", "2024-03-15")
	if err != nil {
		t.Fatalf("DailyReadiness failed: %v", err)
	}
	if len(readiness) != 1 || readiness[0].Score != 64 {
		t.Errorf("unexpected readiness %+v", readiness)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("revoked-token", nil, zerolog.Nop())
	c.baseURL = srv.URL

	if _, err := c.DailySleep(context.Background(), "2024-03-14", "2024-03-15"); err == nil {
		t.Error("expected an error for a 401 response")
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient("pat-token", nil, zerolog.Nop())
	c.baseURL = srv.URL

	if _, err := c.DailySleep(context.Background(), "2024-03-14", "2024-03-15"); err == nil {
		t.Error("expected a decode error")
	}
}
