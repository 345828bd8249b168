package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestSendSession verifies the 201 body is decoded and only one request is made.
func TestSendSession(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/workouts" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"x":1}` {
			t.Errorf("body = %s", body)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sessionId":"abc","warnings":["slow"]}`))
	}))
	defer ts.Close()

	warnings, err := NewClient(ts.URL + "/").SendSession(context.Background(), []byte(`{"x":1}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0] != "slow" {
		t.Errorf("warnings = %v", warnings)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

// TestSendSessionStatuses verifies how each server status is surfaced.
func TestSendSessionStatuses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		check    func(error) bool
		rejected []string
	}{
		{"conflict", http.StatusConflict, `{"error":"session already exists"}`, func(err error) bool { return errors.Is(err, ErrAlreadyStored) }, nil},
		{"schema", http.StatusBadRequest, `{"isValid":false,"errors":["sessionId: Required"]}`, nil, []string{"sessionId: Required"}},
		{"linking", http.StatusUnprocessableEntity, `{"isValid":false,"errors":["Superset reference x not found in block y"]}`, nil, []string{"Superset reference x not found in block y"}},
		{"bad json", http.StatusBadRequest, `{"error":"invalid JSON: EOF"}`, nil, []string{"invalid JSON: EOF"}},
		{"server error", http.StatusInternalServerError, `oops`, func(err error) bool { return err != nil && !errors.Is(err, ErrAlreadyStored) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := NewClient(ts.URL).SendSession(context.Background(), []byte(`{}`))
			if calls != 1 {
				t.Errorf("calls = %d, want a single attempt", calls)
			}
			if tt.check != nil && !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.rejected != nil {
				var rej *RejectedError
				if !errors.As(err, &rej) {
					t.Fatalf("err = %v, want RejectedError", err)
				}
				if rej.Status != tt.status || len(rej.Errors) != len(tt.rejected) || rej.Errors[0] != tt.rejected[0] {
					t.Errorf("rejected = %+v, want %v", rej, tt.rejected)
				}
			}
		})
	}
}
