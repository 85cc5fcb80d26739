package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode  = regexp.MustCompile("`([^`]+)`")
	reLink        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reImg         = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	reOrderedItem = regexp.MustCompile(`^(\d+)\.\s`)
)

// Markdown returns a templ.Component rendering an article body as HTML.
// Post content is stored as Markdown and converted on the way out.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderMarkdown(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func renderMarkdown(buf *bytes.Buffer, md string) {
	inPara := false
	inList := false
	inOrdered := false
	inQuote := false
	inCode := false

	flushPara := func() {
		if inPara {
			buf.WriteString("</p>")
			inPara = false
		}
	}
	flushList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
	}
	flushOrdered := func() {
		if inOrdered {
			buf.WriteString("</ol>")
			inOrdered = false
		}
	}
	flushQuote := func() {
		if inQuote {
			buf.WriteString("</blockquote>")
			inQuote = false
		}
	}
	flushBlocks := func() {
		flushPara()
		flushList()
		flushOrdered()
		flushQuote()
	}

	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if inCode {
				buf.WriteString("</code></pre>")
				inCode = false
			} else {
				flushBlocks()
				buf.WriteString("<pre><code>")
				inCode = true
			}
			continue
		}
		if inCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteString("\n")
			continue
		}

		if strings.TrimSpace(line) == "" {
			flushBlocks()
			continue
		}

		switch {
		case strings.HasPrefix(line, "---"):
			flushBlocks()
			buf.WriteString("<hr/>")
		case strings.HasPrefix(line, "### "):
			flushBlocks()
			buf.WriteString("<h3>" + formatInline(strings.TrimSpace(line[4:])) + "</h3>")
		case strings.HasPrefix(line, "## "):
			flushBlocks()
			buf.WriteString("<h2>" + formatInline(strings.TrimSpace(line[3:])) + "</h2>")
		case strings.HasPrefix(line, "# "):
			flushBlocks()
			buf.WriteString("<h1>" + formatInline(strings.TrimSpace(line[2:])) + "</h1>")
		case strings.HasPrefix(line, "- "):
			if !inList {
				flushPara()
				flushOrdered()
				flushQuote()
				buf.WriteString("<ul>")
				inList = true
			}
			buf.WriteString("<li>" + formatInline(strings.TrimSpace(line[2:])) + "</li>")
		case reOrderedItem.MatchString(line):
			if !inOrdered {
				flushPara()
				flushList()
				flushQuote()
				buf.WriteString("<ol>")
				inOrdered = true
			}
			item := reOrderedItem.ReplaceAllString(line, "")
			buf.WriteString("<li>" + formatInline(strings.TrimSpace(item)) + "</li>")
		case strings.HasPrefix(line, "> "):
			if !inQuote {
				flushPara()
				flushList()
				flushOrdered()
				buf.WriteString("<blockquote>")
				inQuote = true
			}
			buf.WriteString(formatInline(strings.TrimSpace(line[2:])))
		default:
			if !inPara {
				flushList()
				flushOrdered()
				flushQuote()
				buf.WriteString("<p>")
				inPara = true
			} else {
				buf.WriteString(" ")
			}
			buf.WriteString(formatInline(strings.TrimSpace(line)))
		}
	}
	flushBlocks()
	if inCode {
		buf.WriteString("</code></pre>")
	}
}

// formatInline applies inline formatting (images, links, code, bold, italic)
// to an HTML-escaped copy of s.
func formatInline(s string) string {
	escaped := html.EscapeString(s)
	escaped = reImg.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reImg.FindStringSubmatch(m)
		src := safeURL(match[2])
		if src == "" {
			return match[1]
		}
		return `<img src="` + src + `" alt="` + match[1] + `" loading="lazy"/>`
	})
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := safeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `">` + match[1] + `</a>`
	})
	escaped = reInlineCode.ReplaceAllString(escaped, "<code>$1</code>")
	escaped = reBold.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = reItalic.ReplaceAllString(escaped, "<em>$1</em>")
	return escaped
}

// safeURL validates a URL for use in an HTML attribute. Only http, https,
// mailto, and tel schemes (or site-relative paths) are allowed.
func safeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
