package workflow

import (
	"testing"

	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSet(t *testing.T) {
	r := NewResultSet()
	_, ok := r.Selection()
	assert.False(t, ok)

	r.Replace(flights("1", "2", "3"))
	require.NoError(t, r.Select("3"))

	rows := r.Rows()
	assert.True(t, r.Remove("2"))
	assert.Equal(t, flights("1", "2", "3"), rows, "earlier copies are not affected")
	assert.Equal(t, flights("1", "3"), r.Rows())
	_, ok = r.Selection()
	assert.False(t, ok)
	assert.False(t, r.Remove("2"))

	r.MarkStale()
	assert.True(t, r.Stale())
	require.NoError(t, r.Select("1"))
	r.Replace(nil)
	assert.False(t, r.Stale())
	assert.Zero(t, r.Len())
	_, ok = r.Selection()
	assert.False(t, ok)
	assert.ErrorIs(t, r.Select(models.Key("1")), ErrNotInResults)
}
