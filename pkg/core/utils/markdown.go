package utils

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// CleanMarkdown strips surrounding whitespace and an outer code fence.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") && len(cleaned) >= 6 {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// ValidateMarkdown checks that goldmark produces a document for input.
func ValidateMarkdown(input string) bool {
	doc := md.Parser().Parse(text.NewReader([]byte(input)))
	return doc != nil && doc.HasChildren()
}

// MarkdownToHTML renders GitHub-style Markdown (tables included) to HTML.
func MarkdownToHTML(input string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(CleanMarkdown(input)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
