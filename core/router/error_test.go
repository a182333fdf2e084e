package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrCamelCode/potami/core/reqctx"
)

func TestDefaultErrorHandlerStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"method not allowed", ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{"wrapped not found", errors.Join(errors.New("ctx"), ErrNotFound), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"status code error", statusErr{code: http.StatusConflict}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			ctx := NewContext(newResponseWriter(rec), httptest.NewRequest(http.MethodGet, "/", nil), nil, reqctx.Getter{})

			defaultErrorHandler(ctx, tt.err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestDefaultErrorHandlerSkipsWrittenResponse(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ww := newResponseWriter(rec)
	ctx := NewContext(ww, httptest.NewRequest(http.MethodGet, "/", nil), nil, reqctx.Getter{})

	ww.WriteHeader(http.StatusOK)
	defaultErrorHandler(ctx, errors.New("late failure"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

type statusErr struct{ code int }

func (e statusErr) Error() string   { return "status error" }
func (e statusErr) StatusCode() int { return e.code }

func TestPanicErrorWrapsValue(t *testing.T) {
	t.Parallel()

	perr := &panicError{value: "boom", stack: []byte("stack trace")}
	assert.Equal(t, "panic: boom", perr.Error())
	assert.Equal(t, "boom", perr.Value())
	assert.Equal(t, []byte("stack trace"), perr.Stack())
	assert.NoError(t, perr.Unwrap())

	inner := errors.New("inner")
	perr = &panicError{value: inner}
	assert.ErrorIs(t, perr, inner)
}
