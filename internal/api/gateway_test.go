package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/apierr"
	"github.com/fintrack-dev/fintrack/internal/logging"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

func newTestGateway(t *testing.T, token string, handler http.HandlerFunc) (*Gateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, staticTokens(token), logging.Discard(), 5*time.Second), srv
}

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	var gotRequestID string
	gw, _ := newTestGateway(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	})

	require.NoError(t, gw.Get(context.Background(), "/transactions/incomes/", nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestBearerOmittedWithoutToken(t *testing.T) {
	var gotAuth string
	var present bool
	gw, _ := newTestGateway(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotAuth, present = r.Header.Get("Authorization"), len(r.Header.Values("Authorization")) > 0
		w.Write([]byte(`{}`))
	})

	require.NoError(t, gw.Get(context.Background(), "/token/", nil))
	assert.False(t, present, "Authorization header should be absent, got %q", gotAuth)
}

func TestErrorNormalization(t *testing.T) {
	gw, _ := newTestGateway(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad":
			w.WriteHeader(400)
			w.Write([]byte(`{"amount": ["must be positive"]}`))
		case "/unauthorized":
			w.WriteHeader(401)
			w.Write([]byte(`{"detail": "token expired"}`))
		case "/missing":
			w.WriteHeader(404)
			w.Write([]byte(`{"detail": "Not found."}`))
		default:
			w.WriteHeader(502)
			w.Write([]byte("bad gateway"))
		}
	})
	ctx := context.Background()

	var ve *apierr.ValidationError
	require.ErrorAs(t, gw.Get(ctx, "/bad", nil), &ve)
	assert.Equal(t, []string{"must be positive"}, ve.Fields["amount"])

	var ae *apierr.AuthenticationError
	require.ErrorAs(t, gw.Get(ctx, "/unauthorized", nil), &ae)
	assert.Equal(t, "token expired", ae.Detail)

	var nfe *apierr.NotFoundError
	require.ErrorAs(t, gw.Get(ctx, "/missing", nil), &nfe)

	var ue *apierr.UnknownError
	require.ErrorAs(t, gw.Get(ctx, "/boom", nil), &ue)
	assert.Equal(t, 502, ue.Status)
}

func TestTransportFailureIsUnknownError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	gw := New(srv.URL, staticTokens(""), logging.Discard(), time.Second)

	var ue *apierr.UnknownError
	require.ErrorAs(t, gw.Get(context.Background(), "/", nil), &ue)
}

func TestObtainToken(t *testing.T) {
	gw, _ := newTestGateway(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token/", r.URL.Path)
		w.Write([]byte(`{"access": "acc", "refresh": "ref"}`))
	})

	access, refresh, err := gw.ObtainToken(context.Background(), "user", "pass")
	require.NoError(t, err)
	assert.Equal(t, "acc", access)
	assert.Equal(t, "ref", refresh)
}

func TestRefreshToken(t *testing.T) {
	gw, _ := newTestGateway(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token/refresh/", r.URL.Path)
		w.Write([]byte(`{"access": "fresh"}`))
	})

	access, err := gw.RefreshToken(context.Background(), "ref")
	require.NoError(t, err)
	assert.Equal(t, "fresh", access)
}

func TestRegisterValidatesLocally(t *testing.T) {
	requests := 0
	gw, _ := newTestGateway(t, "", func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	})

	_, err := gw.Register(context.Background(), RegistrationDraft{
		Email:           "a@b.c",
		Password:        "one",
		PasswordConfirm: "two",
		FirstName:       "Ana",
	})

	var ve *apierr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "password")
	assert.Zero(t, requests, "mismatched passwords must not reach the wire")
}

func TestChangePasswordMismatchNoNetworkCall(t *testing.T) {
	requests := 0
	gw, _ := newTestGateway(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	err := gw.ChangePassword(context.Background(), "old", "new1", "new2")

	var ve *apierr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, requests)
}

func TestCategorySummaryToleratesStringAmounts(t *testing.T) {
	gw, _ := newTestGateway(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/summary/expenses-by-category/", r.URL.Path)
		w.Write([]byte(`[
			{"category_name": "Food", "total_amount": "120.50"},
			{"category_name": "Rent", "total_amount": 800},
			{"category_name": "Misc", "total_amount": "oops"}
		]`))
	})

	totals, err := gw.ExpensesByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.Equal(t, "Food", totals[0].CategoryName)
	assert.Equal(t, "120.5", totals[0].TotalAmount.String())
	assert.Equal(t, "800", totals[1].TotalAmount.String())
	assert.True(t, totals[2].TotalAmount.IsZero())
}
