package sanitize

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/submitin/api/internal/plan"
)

func TestString(t *testing.T) {
	t.Run("strips html tags but keeps inner text", func(t *testing.T) {
		got := String("<script>alert(1)</script>hello")
		assert.Equal(t, "alert(1)hello", got)
		assert.NotContains(t, got, "<")
		assert.NotContains(t, got, ">")
	})

	t.Run("strips javascript and data url prefixes case-insensitively", func(t *testing.T) {
		assert.Equal(t, "alert(1)", String("JavaScript:alert(1)"))
		assert.Equal(t, "text/html,hi", String("DATA:text/html,hi"))
	})

	t.Run("strips inline event handlers", func(t *testing.T) {
		assert.Equal(t, `"x"`, String(`onclick = "x"`))
	})

	t.Run("removes control characters except newline and tab", func(t *testing.T) {
		assert.Equal(t, "a\tb\nc", String("a\tb\nc\x00\x07\x7f"))
	})

	t.Run("truncates long values", func(t *testing.T) {
		got := String(strings.Repeat("a", plan.MaxFieldValueLength+500))
		assert.Len(t, got, plan.MaxFieldValueLength)
	})

	t.Run("truncation lands on a rune boundary", func(t *testing.T) {
		// The leading byte shifts every two-byte "é" off even offsets, so
		// the byte limit falls in the middle of a rune.
		got := String("a" + strings.Repeat("é", plan.MaxFieldValueLength))
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, plan.MaxFieldValueLength-1, len(got))
	})

	t.Run("trims whitespace", func(t *testing.T) {
		assert.Equal(t, "hello", String("  hello \n"))
	})
}

func TestFormValues(t *testing.T) {
	t.Run("processes at most the submission field cap", func(t *testing.T) {
		values := make(map[string]string)
		for i := 0; i < 60; i++ {
			values[fmt.Sprintf("field%d", i)] = "value"
		}
		got := FormValues(values)
		assert.Len(t, got, plan.MaxFieldsPerSubmission)
	})

	t.Run("drops keys that are not plain identifiers", func(t *testing.T) {
		got := FormValues(map[string]string{
			"good_key-1": "ok",
			"bad key!":   "dropped",
			"a;drop":     "dropped",
		})
		assert.Equal(t, map[string]string{"good_key-1": "ok"}, got)
	})

	t.Run("sanitizes surviving values", func(t *testing.T) {
		got := FormValues(map[string]string{"msg": "<b>hi</b>"})
		assert.Equal(t, "hi", got["msg"])
	})
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.co"))
	assert.True(t, ValidEmail("user.name+tag@example.org"))

	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@c.co"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("a@"+strings.Repeat("b", 260)+".co"))
}

func TestValidURL(t *testing.T) {
	assert.True(t, ValidURL("https://example.com/hook"))
	assert.True(t, ValidURL("http://localhost:8080/hook"))

	assert.False(t, ValidURL("ftp://example.com"))
	assert.False(t, ValidURL("javascript:alert(1)"))
	assert.False(t, ValidURL("not a url"))
	assert.False(t, ValidURL("/relative/path"))
}
