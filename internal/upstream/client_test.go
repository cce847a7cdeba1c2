package upstream_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/apperror"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/upstream"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestClientFetchList(t *testing.T) {
	t.Run("sends token and company scoping", func(t *testing.T) {
		var gotAuth, gotHeader, gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotHeader = r.Header.Get("X-Company-ID")
			gotQuery = r.URL.Query().Get("companyId")
			w.Write([]byte(`{"data":{"data":[{"_id":"b1"}]}}`))
		}))
		defer srv.Close()

		c := upstream.NewClient(srv.URL, "tok-123", zap.NewNop())
		items, err := c.FetchList(context.Background(), "/branches", "C1")

		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Bearer tok-123", gotAuth)
		assert.Equal(t, "C1", gotHeader)
		assert.Equal(t, "C1", gotQuery)
	})

	t.Run("unrecognized envelope resolves empty without error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message":"ok"}`))
		}))
		defer srv.Close()

		c := upstream.NewClient(srv.URL, "", zap.NewNop())
		items, err := c.FetchList(context.Background(), "/branches", "C1")

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("401 triggers the session hook", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		loggedOut := false
		c := upstream.NewClient(srv.URL, "stale", zap.NewNop(),
			upstream.WithUnauthorizedHook(func() { loggedOut = true }),
		)

		_, err := c.FetchList(context.Background(), "/branches", "C1")

		assert.True(t, loggedOut)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})

	t.Run("server error is returned to the caller", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := upstream.NewClient(srv.URL, "", zap.NewNop())
		_, err := c.FetchList(context.Background(), "/branches", "C1")
		assert.Error(t, err)
	})
}

func TestClientPostJSON(t *testing.T) {
	t.Run("unwraps created entity", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data":{"_id":"b9","BranchName":"Satellite"}}`))
		}))
		defer srv.Close()

		c := upstream.NewClient(srv.URL, "", zap.NewNop())
		raw, err := c.PostJSON(context.Background(), "/branches", "C1", map[string]any{"BranchName": "Satellite"})

		assert.NoError(t, err)
		assert.Contains(t, string(raw), "Satellite")
	})

	t.Run("failure propagates and body is not swallowed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"duplicate branch"}`))
		}))
		defer srv.Close()

		c := upstream.NewClient(srv.URL, "", zap.NewNop())
		_, err := c.PostJSON(context.Background(), "/branches", "C1", map[string]any{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rejected")
	})
}

func TestClientPostBinary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	c := upstream.NewClient(srv.URL, "", zap.NewNop())
	payload, contentType, err := c.PostBinary(context.Background(), "/reports/payroll", "C1", map[string]any{"month": "2026-08"})

	assert.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, len(payload) > 0)
}
