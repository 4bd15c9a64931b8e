package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/errors"
)

// ForumValidator checks user supplied title and text. Input is expected to
// be trimmed already.
type ForumValidator struct {
	maxTitleLength   int
	maxMessageLength int
}

func NewForumValidator(cfg config.Public) *ForumValidator {
	return &ForumValidator{
		maxTitleLength:   cfg.MaxTitleLength,
		maxMessageLength: cfg.MaxMessageLength,
	}
}

func (v *ForumValidator) Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return &errors.ValidationError{Field: "title", Message: "is empty"}
	}
	if v.maxTitleLength > 0 && utf8.RuneCountInString(title) > v.maxTitleLength {
		return &errors.ValidationError{Field: "title", Message: fmt.Sprintf("is longer than %d characters", v.maxTitleLength)}
	}
	return nil
}

func (v *ForumValidator) Text(text string) error {
	if strings.TrimSpace(text) == "" {
		return &errors.ValidationError{Field: "text", Message: "is empty"}
	}
	if v.maxMessageLength > 0 && utf8.RuneCountInString(text) > v.maxMessageLength {
		return &errors.ValidationError{Field: "text", Message: fmt.Sprintf("is longer than %d characters", v.maxMessageLength)}
	}
	return nil
}
