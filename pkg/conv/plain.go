package conv

import (
	"strings"

	"github.com/gomarkdown/markdown/html"
	"github.com/inbucket/html2text"
)

// MarkdownToPlainText flattens markdown for channels without rich text,
// such as the terminal REPL or a JSON client that renders raw strings.
func MarkdownToPlainText(md []byte) string {
	text, err := html2text.FromString(string(render(md, html.CommonFlags)), html2text.Options{
		OmitLinks:    false,
		PrettyTables: true,
	})
	if err != nil {
		return string(md)
	}
	return strings.TrimSpace(text)
}
