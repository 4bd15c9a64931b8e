// Package render turns stored message text and timestamps into what readers see.
package render

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// TextProcessor renders message markdown into sanitized HTML.
// Stored text is never modified; rendering happens on the way out.
type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &TextProcessor{md: md, policy: p}
}

// HTML renders text. On a render failure the escaped plain text is returned.
func (tp *TextProcessor) HTML(text string) string {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		return tp.policy.Sanitize(bluemonday.StrictPolicy().Sanitize(text))
	}
	return strings.TrimSpace(tp.policy.Sanitize(buf.String()))
}
