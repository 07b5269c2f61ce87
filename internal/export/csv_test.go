package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/model"
)

func TestWriteTransactions(t *testing.T) {
	category := 4
	txs := []model.Transaction{
		{ID: 1, Date: "2024-01-15", Description: "salary, january", Amount: "2500.00", Category: &category, Source: "Acme", Recurrence: model.RecurrenceMonthly},
		{ID: 2, Date: "2024-01-20", Description: "gift", Amount: "50.00"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txs))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"id", "date", "description", "amount", "category", "source", "recurrence"}, records[0])
	assert.Equal(t, []string{"1", "2024-01-15", "salary, january", "2500.00", "4", "Acme", "monthly"}, records[1])
	assert.Equal(t, "", records[2][colCategory], "uncategorized leaves the column empty")
}

func TestWriteTransactionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
