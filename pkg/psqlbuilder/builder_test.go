package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_DollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("reservations").
		Where(squirrel.Eq{"resource_id": 7}).
		Where(squirrel.Lt{"check_in": "2026-07-01"}).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM reservations WHERE resource_id = $1 AND check_in < $2", query)
	assert.Equal(t, []interface{}{7, "2026-07-01"}, args)
}
