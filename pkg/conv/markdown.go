package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock

// telegramPolicy keeps the tags accepted by Telegram's HTML parse mode.
// https://core.telegram.org/bots/api#html-style
var telegramPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	return p
}()

func render(md []byte, flags html.Flags) []byte {
	p := parser.NewWithExtensions(extensions)
	r := html.NewRenderer(html.RendererOptions{Flags: flags})
	return markdown.Render(p.Parse(md), r)
}

// MarkdownToTelegramHTML renders an agent reply for Telegram. Unsupported
// tags such as headings and lists are dropped, keeping their text.
func MarkdownToTelegramHTML(md []byte) string {
	return string(telegramPolicy.SanitizeBytes(render(md, html.CommonFlags|html.HrefTargetBlank)))
}
