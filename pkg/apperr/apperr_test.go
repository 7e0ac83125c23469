package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("obra not found"), KindNotFound},
		{"forbidden", Forbidden("not assigned"), KindForbidden},
		{"validation", Validation("bad status"), KindValidation},
		{"conflict", Conflict("email taken"), KindConflict},
		{"upstream", Upstream("db down", errors.New("dial tcp")), KindUpstream},
		{"wrapped", fmt.Errorf("handler: %w", NotFound("gone")), KindNotFound},
		{"plain error", errors.New("boom"), Kind("")},
		{"nil", nil, Kind("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("db down", cause)
	if !errors.Is(err, cause) {
		t.Error("upstream error must unwrap to its cause")
	}
}

func TestWriteStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Forbidden("x"), http.StatusForbidden},
		{Validation("x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusConflict},
		{Upstream("x", errors.New("y")), http.StatusBadGateway},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		Write(rec, tt.err)
		if rec.Code != tt.want {
			t.Errorf("Write(%v) status = %d, want %d", tt.err, rec.Code, tt.want)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
	}
}

func TestWriteHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, errors.New("pq: password authentication failed"))
	if body := rec.Body.String(); body == "" || strings.Contains(body, "password") {
		t.Errorf("internal detail leaked into body: %s", body)
	}
}
