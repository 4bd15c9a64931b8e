package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/errors"
)

func TestForumValidator(t *testing.T) {
	v := NewForumValidator(config.Public{MaxTitleLength: 5, MaxMessageLength: 8})

	assert.NoError(t, v.Title("hello"))
	assert.NoError(t, v.Title("приве"), "length counts runes")
	assert.NoError(t, v.Text("12345678"))

	cases := []struct {
		name  string
		err   error
		field string
	}{
		{"empty title", v.Title(""), "title"},
		{"blank title", v.Title("  "), "title"},
		{"long title", v.Title("toolong"), "title"},
		{"empty text", v.Text(""), "text"},
		{"long text", v.Text(strings.Repeat("x", 9)), "text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var vErr *errors.ValidationError
			require.ErrorAs(t, tc.err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestForumValidator_NoLimits(t *testing.T) {
	v := &ForumValidator{}
	assert.NoError(t, v.Title(strings.Repeat("t", 1000)))
	assert.NoError(t, v.Text(strings.Repeat("t", 100_000)))
}
