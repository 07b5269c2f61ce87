// Package export writes transaction lists as CSV for use outside the
// client. The importer package reads the same shape back.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Header is the CSV header for exported transactions.
const Header = "id,date,description,amount,category,source,recurrence"

const (
	numFields     = 7
	colID         = 0
	colDate       = 1
	colDesc       = 2
	colAmount     = 3
	colCategory   = 4
	colSource     = 5
	colRecurrence = 6
)

// MarshalTransaction converts a transaction to a CSV row. The category
// column carries the id; an uncategorized transaction leaves it empty.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(t.ID)
	row[colDate] = t.Date
	row[colDesc] = t.Description
	row[colAmount] = t.Amount
	if t.Category != nil {
		row[colCategory] = strconv.Itoa(*t.Category)
	}
	row[colSource] = t.Source
	row[colRecurrence] = string(t.Recurrence)
	return row
}

// WriteTransactions writes a transaction list (including header).
func WriteTransactions(w io.Writer, transactions []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range transactions {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
