package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/api"
	"github.com/fintrack-dev/fintrack/internal/apierr"
	"github.com/fintrack-dev/fintrack/internal/logging"
	"github.com/fintrack-dev/fintrack/internal/model"
)

type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

// fakeBackend is a minimal in-memory stand-in for the incomes endpoint.
type fakeBackend struct {
	items    map[int]model.Transaction
	nextID   int
	requests int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{items: make(map[int]model.Transaction), nextID: 1}
}

func (b *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.requests++
		const base = "/transactions/incomes/"
		switch {
		case r.URL.Path == base && r.Method == http.MethodGet:
			out := make([]model.Transaction, 0, len(b.items))
			for id := 1; id < b.nextID; id++ {
				if t, ok := b.items[id]; ok {
					out = append(out, t)
				}
			}
			json.NewEncoder(w).Encode(out)
		case r.URL.Path == base && r.Method == http.MethodPost:
			var draft model.TransactionDraft
			json.NewDecoder(r.Body).Decode(&draft)
			t := model.Transaction{
				ID:          b.nextID,
				Amount:      draft.Amount,
				Date:        draft.Date,
				Category:    draft.Category,
				Source:      draft.Source,
				Recurrence:  draft.Recurrence,
				Description: draft.Description,
			}
			b.items[b.nextID] = t
			b.nextID++
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(t)
		case strings.HasPrefix(r.URL.Path, base):
			idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, base), "/")
			id, _ := strconv.Atoi(idStr)
			existing, ok := b.items[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"detail": "Not found."}`)
				return
			}
			switch r.Method {
			case http.MethodPut:
				var draft model.TransactionDraft
				json.NewDecoder(r.Body).Decode(&draft)
				existing.Amount = draft.Amount
				existing.Description = draft.Description
				b.items[id] = existing
				json.NewEncoder(w).Encode(existing)
			case http.MethodDelete:
				delete(b.items, id)
				w.WriteHeader(http.StatusNoContent)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestIncomes(t *testing.T) (*Collection[model.Transaction, model.TransactionDraft], *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	gw := api.New(srv.URL, staticTokens("tok"), logging.Discard(), 5*time.Second)
	return Incomes(gw), backend
}

func intPtr(v int) *int { return &v }

func validDraft(amount string) model.TransactionDraft {
	return model.TransactionDraft{
		Amount:     amount,
		Date:       "2024-06-15",
		Category:   intPtr(1),
		Recurrence: model.RecurrenceNone,
	}
}

func TestCreateThenList(t *testing.T) {
	incomes, _ := newTestIncomes(t)
	ctx := context.Background()

	created, err := incomes.Create(ctx, validDraft("100.00"))
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	items, err := incomes.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "100.00", items[0].Amount)
}

func TestCreateInvalidDraftNeverReachesWire(t *testing.T) {
	incomes, backend := newTestIncomes(t)

	_, err := incomes.Create(context.Background(), validDraft("-5"))

	var ve *apierr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "amount")
	assert.Zero(t, backend.requests, "invalid draft must fail before any network call")
}

func TestUpdate(t *testing.T) {
	incomes, _ := newTestIncomes(t)
	ctx := context.Background()

	created, err := incomes.Create(ctx, validDraft("10"))
	require.NoError(t, err)

	draft := validDraft("25")
	draft.Description = "raise"
	updated, err := incomes.Update(ctx, created.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, "25", updated.Amount)
	assert.Equal(t, "raise", updated.Description)
}

func TestDeleteRemovesFromSubsequentList(t *testing.T) {
	incomes, _ := newTestIncomes(t)
	ctx := context.Background()

	first, err := incomes.Create(ctx, validDraft("10"))
	require.NoError(t, err)
	second, err := incomes.Create(ctx, validDraft("20"))
	require.NoError(t, err)

	require.NoError(t, incomes.Delete(ctx, first.ID))

	items, err := incomes.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	incomes, _ := newTestIncomes(t)

	err := incomes.Delete(context.Background(), 999)

	var nfe *apierr.NotFoundError
	require.ErrorAs(t, err, &nfe)
}

func TestCollectionNames(t *testing.T) {
	gw := api.New("http://unused", staticTokens(""), logging.Discard(), 0)
	assert.Equal(t, "income", Incomes(gw).Name())
	assert.Equal(t, "expense", Expenses(gw).Name())
	assert.Equal(t, "category", Categories(gw).Name())
}
