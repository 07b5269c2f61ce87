package activitylog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	err := Append(dir, []Entry{
		{Timestamp: ts, Action: "created", Resource: "income", Detail: "id=1 amount=100.00"},
	})
	require.NoError(t, err)

	err = Append(dir, []Entry{
		{Timestamp: ts.Add(time.Minute), Action: "deleted", Resource: "expense", Detail: "id=7"},
	})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "created", entries[0].Action)
	assert.Equal(t, "income", entries[0].Resource)
	assert.True(t, entries[0].Timestamp.Equal(ts))
	assert.Equal(t, "deleted", entries[1].Action)
	assert.Equal(t, "id=7", entries[1].Detail)
}

func TestReadMissingFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestMarshalRoundTrip(t *testing.T) {
	e := Entry{
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Action:    "updated",
		Resource:  "category",
		Detail:    `id=3 name=Food, drink`,
	}

	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.Equal(t, e.Action, got.Action)
	assert.Equal(t, e.Detail, got.Detail)
	assert.True(t, e.Timestamp.Equal(got.Timestamp))
}

func TestUnmarshalBadRow(t *testing.T) {
	_, err := UnmarshalEntry([]string{"too", "few"})
	require.Error(t, err)

	_, err = UnmarshalEntry([]string{"not-a-time", "a", "b", "c"})
	require.Error(t, err)
}
