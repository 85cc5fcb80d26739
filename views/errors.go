package views

import "github.com/a-h/templ"

// NotFound renders the dedicated 404 page.
func NotFound(site SiteConfig) templ.Component {
	return page(site, "Page Not Found", "", func(b *writer) {
		b.raw(`<section class="error-page"><h1>404</h1>`)
		b.raw(`<p>The page you are looking for does not exist.</p>`)
		b.raw(`<a href="/">Back to home</a></section>`)
	})
}

// ServerError renders the dedicated 500 page. No internal detail is shown.
func ServerError(site SiteConfig) templ.Component {
	return page(site, "Something Went Wrong", "", func(b *writer) {
		b.raw(`<section class="error-page"><h1>500</h1>`)
		b.raw(`<p>Something went wrong on our end. Please try again later.</p>`)
		b.raw(`<a href="/">Back to home</a></section>`)
	})
}
