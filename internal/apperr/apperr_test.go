package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	plain := New(KindBadRequest, "missing title")
	if plain.Error() != "missing title" {
		t.Errorf("Error() = %q", plain.Error())
	}

	wrapped := Wrap(KindBadRequest, "failed to create article", errors.New("db down"))
	if wrapped.Error() != "failed to create article: db down" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "plain error defaults to internal",
			err:  errors.New("boom"),
			want: KindInternal,
		},
		{
			name: "direct kinded error",
			err:  New(KindNotFound, "missing"),
			want: KindNotFound,
		},
		{
			name: "outermost kind wins",
			err:  Wrap(KindBadRequest, "create failed", New(KindNotFound, "tag missing")),
			want: KindBadRequest,
		},
		{
			name: "kind survives fmt wrapping",
			err:  fmt.Errorf("context: %w", New(KindForbidden, "not yours")),
			want: KindForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindInternal, "wrapper", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(KindBadRequest, "x"), http.StatusBadRequest},
		{New(KindUnauthorized, "x"), http.StatusUnauthorized},
		{New(KindForbidden, "x"), http.StatusForbidden},
		{New(KindNotFound, "x"), http.StatusNotFound},
		{New(KindInternal, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
