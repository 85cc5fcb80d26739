package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

var navLinks = []struct {
	Href  string
	Label string
}{
	{"/", "Home"},
	{"/works", "Works"},
	{"/blog", "Blog"},
	{"/about", "About"},
	{"/faq", "FAQ"},
	{"/contact", "Contact"},
}

// page wraps body in the shared document shell: head, navigation, and the
// footer with the newsletter signup form.
func page(site SiteConfig, title string, active string, body func(b *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &writer{ctx: ctx, w: w}
		b.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		b.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		b.raw(`<title>`)
		b.text(title)
		if site.Name != "" {
			b.raw(` · `)
			b.text(site.Name)
		}
		b.raw(`</title>`)
		if site.Description != "" {
			b.rawf(`<meta name="description" content="%s"/>`, attr(site.Description))
		}
		b.rawf(`<script type="application/ld+json">%s</script>`, WebsiteJsonLD(site))
		b.raw(`<link rel="stylesheet" href="/public/css/site.css"/>`)
		b.raw(`</head><body>`)

		b.raw(`<header class="site-header"><a class="brand" href="/">`)
		b.text(site.Name)
		b.raw(`</a><nav>`)
		for _, l := range navLinks {
			cls := "nav-link"
			if l.Href == active {
				cls += " active"
			}
			b.rawf(`<a class="%s" href="%s">%s</a>`, cls, l.Href, attr(l.Label))
		}
		b.raw(`</nav></header><main>`)

		body(b)

		b.raw(`</main><footer class="site-footer">`)
		b.raw(`<form class="newsletter-form" data-subscribe action="/subscribe" method="post">`)
		b.raw(`<label for="newsletter-email">Subscribe to the newsletter</label>`)
		b.raw(`<input id="newsletter-email" type="email" name="email" placeholder="you@example.com" required/>`)
		b.raw(`<button type="submit">Subscribe</button>`)
		b.raw(`<p class="newsletter-status" aria-live="polite"></p>`)
		b.raw(`</form>`)
		b.raw(`<p class="copyright">&copy; `)
		b.text(site.Author)
		b.raw(`</p></footer>`)
		b.raw(`<script src="/public/js/site.js" defer></script>`)
		b.raw(`</body></html>`)
		return b.err
	})
}

// flashes renders pending one-shot notices at the top of a page body.
func flashes(b *writer, msgs []Flash) {
	if len(msgs) == 0 {
		return
	}
	b.raw(`<div class="flash-messages">`)
	for _, f := range msgs {
		b.rawf(`<p class="flash flash-%s">%s</p>`, attr(f.Category), templ.EscapeString(f.Text))
	}
	b.raw(`</div>`)
}
