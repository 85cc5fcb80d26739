package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFormatInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text", "plain text"},
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"[link](https://example.com)", `<a href="https://example.com">link</a>`},
		{"[rel](/about)", `<a href="/about">rel</a>`},
		{"[bad](javascript:void)", "bad"},
		{"![alt](https://example.com/a.png)", `<img src="https://example.com/a.png" alt="alt" loading="lazy"/>`},
		{"<script>", "&lt;script&gt;"},
		{"**bold** and *italic*", "<strong>bold</strong> and <em>italic</em>"},
	}
	for _, tt := range tests {
		if got := formatInline(tt.input); got != tt.expected {
			t.Errorf("formatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownBlocks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Title", "<h1>Title</h1>"},
		{"## Sub", "<h2>Sub</h2>"},
		{"### Deep", "<h3>Deep</h3>"},
		{"- one\n- two", "<ul><li>one</li><li>two</li></ul>"},
		{"1. one\n2. two", "<ol><li>one</li><li>two</li></ol>"},
		{"> quoted", "<blockquote>quoted</blockquote>"},
		{"---", "<hr/>"},
		{"just a paragraph", "<p>just a paragraph</p>"},
		{"line one\nline two", "<p>line one line two</p>"},
		{"para one\n\npara two", "<p>para one</p><p>para two</p>"},
		{"```\nx := 1\n```", "<pre><code>x := 1\n</code></pre>"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		renderMarkdown(&buf, tt.input)
		if got := buf.String(); got != tt.expected {
			t.Errorf("renderMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownEscapesHTML(t *testing.T) {
	var buf bytes.Buffer
	renderMarkdown(&buf, "```\n<b>raw</b>\n```")
	if strings.Contains(buf.String(), "<b>") {
		t.Errorf("code block leaked raw HTML: %q", buf.String())
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("# Hello").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.String() != "<h1>Hello</h1>" {
		t.Errorf("rendered %q", buf.String())
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"mailto:me@example.com", "mailto:me@example.com"},
		{"tel:+1234567890", "tel:+1234567890"},
		{"/relative/path", "/relative/path"},
		{"#anchor", "#anchor"},
		{"javascript:alert(1)", ""},
		{"data:text/html,x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := safeURL(tt.input); got != tt.expected {
			t.Errorf("safeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
