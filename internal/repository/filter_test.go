package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterBuilderEmpty(t *testing.T) {
	b := newFilterBuilder()
	assert.Equal(t, "", b.SQL(1))
	assert.Empty(t, b.Args())
}

func TestFilterBuilderSingleClause(t *testing.T) {
	b := newFilterBuilder().Where("visible = TRUE")
	assert.Equal(t, " WHERE visible = TRUE", b.SQL(1))
	assert.Empty(t, b.Args())
}

func TestFilterBuilderNumbersPlaceholdersInOrder(t *testing.T) {
	b := newFilterBuilder().
		Where("visible = TRUE").
		Where("lower(title) LIKE ?", "%abc%").
		Where("id <> ?", "p-1")

	assert.Equal(t, " WHERE visible = TRUE AND lower(title) LIKE $1 AND id <> $2", b.SQL(1))
	assert.Equal(t, []any{"%abc%", "p-1"}, b.Args())
}

func TestFilterBuilderStartArgOffset(t *testing.T) {
	b := newFilterBuilder().Where("username = ?", "a@x.com")
	assert.Equal(t, " WHERE username = $3", b.SQL(3))
}

func TestFilterBuilderWhereIf(t *testing.T) {
	b := newFilterBuilder().
		WhereIf(false, "skipped = ?", 1).
		WhereIf(true, "kept = ?", 2)

	assert.Equal(t, " WHERE kept = $1", b.SQL(1))
	assert.Equal(t, []any{2}, b.Args())
}

func TestFilterBuilderMultipleMarkersInOneClause(t *testing.T) {
	b := newFilterBuilder().
		Where("(lower(name) LIKE ? OR lower(username) LIKE ?)", "%a%", "%a%").
		Where("visible = TRUE")

	assert.Equal(t, " WHERE (lower(name) LIKE $1 OR lower(username) LIKE $2) AND visible = TRUE", b.SQL(1))
	assert.Equal(t, []any{"%a%", "%a%"}, b.Args())
}

func TestFilterBuilderArgsWithTrailing(t *testing.T) {
	b := newFilterBuilder().Where("video_id = ?", "v-1")
	assert.Equal(t, []any{"v-1", 10, 20}, b.ArgsWith(10, 20))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%abc%", likePattern("  ABC "))
}
