// Package importer bulk-creates transactions from a CSV file in the same
// column layout the export package writes. Rows are validated and posted
// individually; one bad row never aborts the batch.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/resource"
)

// Header matches the export package's column layout. The id column is
// accepted but ignored: the backend assigns ids.
const Header = "id,date,description,amount,category,source,recurrence"

const (
	numFields     = 7
	colDate       = 1
	colDesc       = 2
	colAmount     = 3
	colCategory   = 4
	colSource     = 5
	colRecurrence = 6
)

// RowError ties a parse or submission failure to its CSV row number.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// DraftRow is a parsed draft tagged with the CSV row it came from, so
// submission failures can name the offending row.
type DraftRow struct {
	Row   int
	Draft model.TransactionDraft
}

// Result summarizes an import run.
type Result struct {
	Created int
	Failed  []RowError
}

// ReadDrafts parses CSV rows into drafts, collecting per-row errors for
// rows that do not even parse. Draft-level validation happens at
// submission time so client and server rejections surface identically.
func ReadDrafts(r io.Reader) ([]DraftRow, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading import CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	var drafts []DraftRow
	var rowErrs []RowError
	for i, rec := range records[1:] {
		row := i + 2
		draft, err := unmarshalDraft(rec)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Err: err})
			continue
		}
		drafts = append(drafts, DraftRow{Row: row, Draft: draft})
	}
	return drafts, rowErrs, nil
}

func unmarshalDraft(record []string) (model.TransactionDraft, error) {
	draft := model.TransactionDraft{
		Date:        strings.TrimSpace(record[colDate]),
		Description: record[colDesc],
		Amount:      strings.TrimSpace(record[colAmount]),
		Source:      record[colSource],
		Recurrence:  model.Recurrence(strings.TrimSpace(record[colRecurrence])),
	}
	if draft.Recurrence == "" {
		draft.Recurrence = model.RecurrenceNone
	}
	if raw := strings.TrimSpace(record[colCategory]); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return model.TransactionDraft{}, fmt.Errorf("parsing category id %q: %w", raw, err)
		}
		draft.Category = &id
	}
	return draft, nil
}

// Run posts each draft through the collection, counting successes and
// recording failures by row.
func Run(ctx context.Context, col *resource.Collection[model.Transaction, model.TransactionDraft], drafts []DraftRow, logger *logrus.Logger) Result {
	var res Result
	for _, dr := range drafts {
		if _, err := col.Create(ctx, dr.Draft); err != nil {
			logger.WithError(err).WithField("row", dr.Row).Warn("import row rejected")
			res.Failed = append(res.Failed, RowError{Row: dr.Row, Err: err})
			continue
		}
		res.Created++
	}
	return res
}
