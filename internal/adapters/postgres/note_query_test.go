package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteFilter_OwnerOnly(t *testing.T) {
	f := newNoteFilter("user-123")

	assert.Equal(t, "WHERE user_id = $1", f.WhereClause())
	assert.Equal(t, []interface{}{"user-123"}, f.Args())
}

func TestNoteFilter_EmptyValuesDoNotChangeFilter(t *testing.T) {
	f := newNoteFilter("user-123").WithSearchText("").WithTag("")

	assert.Equal(t, "WHERE user_id = $1", f.WhereClause())
	assert.Equal(t, []interface{}{"user-123"}, f.Args())
}

func TestNoteFilter_WithSearchText(t *testing.T) {
	f := newNoteFilter("user-123").WithSearchText("meeting")

	assert.Equal(t,
		"WHERE user_id = $1 AND (title ILIKE $2 ESCAPE '\\' OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $2 ESCAPE '\\'))",
		f.WhereClause())
	assert.Equal(t, []interface{}{"user-123", "%meeting%"}, f.Args())
}

func TestNoteFilter_WithTag(t *testing.T) {
	f := newNoteFilter("user-123").WithTag("work")

	assert.Equal(t, "WHERE user_id = $1 AND $2 = ANY(tags)", f.WhereClause())
	assert.Equal(t, []interface{}{"user-123", "work"}, f.Args())
}

func TestNoteFilter_SearchAndTagCombined(t *testing.T) {
	f := newNoteFilter("user-123").WithSearchText("meeting").WithTag("work")

	assert.Equal(t,
		"WHERE user_id = $1 AND (title ILIKE $2 ESCAPE '\\' OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $2 ESCAPE '\\')) AND $3 = ANY(tags)",
		f.WhereClause())
	assert.Equal(t, []interface{}{"user-123", "%meeting%", "work"}, f.Args())
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text untouched", input: "meeting", expected: "meeting"},
		{name: "percent escaped", input: "50%", expected: `50\%`},
		{name: "underscore escaped", input: "a_b", expected: `a\_b`},
		{name: "backslash escaped", input: `a\b`, expected: `a\\b`},
		{name: "all metacharacters", input: `\%_`, expected: `\\\%\_`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeLike(tt.input))
		})
	}
}

// Пользовательский ввод с метасимволами LIKE попадает в аргументы уже
// экранированным.
func TestNoteFilter_SearchTextIsEscaped(t *testing.T) {
	f := newNoteFilter("user-123").WithSearchText("100%_done")

	assert.Equal(t, []interface{}{"user-123", `%100\%\_done%`}, f.Args())
}
