package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags
	termPolicy = bluemonday.NewPolicy()
)

func init() {
	// Keep only structure a terminal can show; inline markup collapses to text.
	termPolicy.AllowElements("p", "br", "ul", "ol", "li")
}

// MarkdownToText renders a vision-model summary (markdown, sometimes with
// stray HTML) as plain terminal text.
func MarkdownToText(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	// 1. Render HTML
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse([]byte(md)), renderer)

	// 2. Sanitize tags
	sanitized := termPolicy.Sanitize(string(unsafeHTML))

	// 3. Flatten
	text, err := html2text.FromString(sanitized, html2text.Options{OmitLinks: true})
	if err != nil {
		return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(string(unsafeHTML)))
	}
	return strings.TrimSpace(text)
}

// HTMLToText flattens an HTML error page (proxies, dev servers) into one line.
func HTMLToText(body string) string {
	text, err := html2text.FromString(body, html2text.Options{OmitLinks: true})
	if err != nil {
		text = bluemonday.StrictPolicy().Sanitize(body)
	}
	return strings.Join(strings.Fields(text), " ")
}

// OneLine squeezes text into a single line of at most n runes.
func OneLine(text string, n int) string {
	s := strings.Join(strings.Fields(text), " ")
	r := []rune(s)
	if n > 0 && len(r) > n {
		if n == 1 {
			return "…"
		}
		return string(r[:n-1]) + "…"
	}
	return s
}
