package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/model"
)

func testIndex() *CategoryIndex {
	owner := 7
	return NewCategoryIndex([]model.Category{
		{ID: 1, Name: "Salary"},
		{ID: 2, Name: "Groceries", Owner: &owner},
		{ID: 3, Name: "Rent", Owner: &owner},
	})
}

func TestIndexLookups(t *testing.T) {
	ix := testIndex()

	c, ok := ix.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Groceries", c.Name)

	_, ok = ix.Get(99)
	assert.False(t, ok)

	assert.True(t, ix.Exists(1))
	assert.False(t, ix.Exists(0))
}

func TestIndexByNameCaseInsensitive(t *testing.T) {
	ix := testIndex()

	c, ok := ix.ByName("groceries")
	require.True(t, ok)
	assert.Equal(t, 2, c.ID)

	_, ok = ix.ByName("Utilities")
	assert.False(t, ok)
}

func TestIndexNameOf(t *testing.T) {
	ix := testIndex()
	id := 3
	unknown := 42

	assert.Equal(t, "Rent", ix.NameOf(&id))
	assert.Equal(t, "(uncategorized)", ix.NameOf(nil))
	assert.Equal(t, "(unknown)", ix.NameOf(&unknown))
}

func TestIndexAllPreservesOrder(t *testing.T) {
	ix := testIndex()
	all := ix.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Salary", all[0].Name)
	assert.Equal(t, "Rent", all[2].Name)
}

func TestCategoryGlobal(t *testing.T) {
	ix := testIndex()
	salary, _ := ix.Get(1)
	groceries, _ := ix.Get(2)
	assert.True(t, salary.Global())
	assert.False(t, groceries.Global())
}
