package views

import "github.com/a-h/templ"

// Home renders the landing page: hero, featured projects, and recent posts.
func Home(site SiteConfig, projects []Project, posts []BlogPost) templ.Component {
	return page(site, "Home", "/", func(b *writer) {
		b.raw(`<section class="hero"><h1>`)
		b.text(site.Author)
		b.raw(`</h1><p class="tagline">`)
		b.text(site.Description)
		b.raw(`</p></section>`)

		b.raw(`<section class="featured-projects"><h2>Featured Projects</h2><div class="project-grid">`)
		for _, p := range projects {
			projectCard(b, p)
		}
		b.raw(`</div><a class="more-link" href="/works">View all works</a></section>`)

		b.raw(`<section class="recent-posts"><h2>From the Blog</h2><div class="post-grid">`)
		for _, p := range posts {
			postCard(b, p)
		}
		b.raw(`</div><a class="more-link" href="/blog">Read the blog</a></section>`)
	})
}

// Works renders the filterable project gallery. categories lists every
// distinct category across all projects so the filter bar stays complete
// even when the current filter matches nothing.
func Works(site SiteConfig, projects []Project, categories []string, currentCategory, searchQuery string) templ.Component {
	return page(site, "Works", "/works", func(b *writer) {
		b.raw(`<h1>Works</h1>`)

		b.raw(`<form class="works-filter" action="/works" method="get">`)
		b.raw(`<div class="category-filter">`)
		catLink := func(value, label string) {
			cls := "filter-link"
			if value == currentCategory {
				cls += " active"
			}
			b.rawf(`<a class="%s" href="/works?category=%s">%s</a>`, cls, templ.EscapeString(value), templ.EscapeString(label))
		}
		catLink("all", "All")
		for _, c := range categories {
			catLink(c, c)
		}
		b.raw(`</div>`)
		b.rawf(`<input type="search" name="search" value="%s" placeholder="Search projects"/>`, attr(searchQuery))
		b.rawf(`<input type="hidden" name="category" value="%s"/>`, attr(currentCategory))
		b.raw(`<button type="submit">Search</button></form>`)

		if len(projects) == 0 {
			b.raw(`<p class="empty">No projects match your filters.</p>`)
		}
		b.raw(`<div class="project-grid">`)
		for _, p := range projects {
			projectCard(b, p)
		}
		b.raw(`</div>`)
	})
}

// WorksMasonry renders the alternative masonry-layout gallery page.
func WorksMasonry(site SiteConfig) templ.Component {
	return page(site, "Works", "/works", func(b *writer) {
		b.raw(`<h1>Works</h1><div class="masonry-grid" data-masonry></div>`)
	})
}

// About renders the static about page.
func About(site SiteConfig) templ.Component {
	return page(site, "About", "/about", func(b *writer) {
		b.raw(`<h1>About</h1><section class="about"><p>`)
		b.text(site.Description)
		b.raw(`</p></section>`)
	})
}

// FAQ renders the static FAQ page.
func FAQ(site SiteConfig) templ.Component {
	return page(site, "FAQ", "/faq", func(b *writer) {
		b.raw(`<h1>Frequently Asked Questions</h1>`)
		b.raw(`<dl class="faq">`)
		b.raw(`<dt>Are you available for new projects?</dt><dd>`)
		b.text(site.ContactAvailability)
		b.raw(`</dd>`)
		b.raw(`<dt>Where are you based?</dt><dd>`)
		b.text(site.ContactLocation)
		b.raw(`</dd>`)
		b.raw(`<dt>How can I reach you?</dt><dd>Use the <a href="/contact">contact form</a> or write to `)
		b.text(site.ContactEmail)
		b.raw(`.</dd></dl>`)
	})
}

// Contact renders the contact form page with the operator contact card and
// any flash messages from a previous submission.
func Contact(site SiteConfig, msgs []Flash, csrfToken string) templ.Component {
	return page(site, "Contact", "/contact", func(b *writer) {
		b.raw(`<h1>Contact</h1>`)
		flashes(b, msgs)

		b.raw(`<div class="contact-card"><ul>`)
		b.rawf(`<li class="contact-email">%s</li>`, templ.EscapeString(site.ContactEmail))
		b.rawf(`<li class="contact-phone">%s</li>`, templ.EscapeString(site.ContactPhone))
		b.rawf(`<li class="contact-location">%s</li>`, templ.EscapeString(site.ContactLocation))
		b.rawf(`<li class="contact-availability">%s</li>`, templ.EscapeString(site.ContactAvailability))
		b.raw(`</ul></div>`)

		b.raw(`<form class="contact-form" action="/submit_contact" method="post">`)
		b.rawf(`<input type="hidden" name="_csrf" value="%s"/>`, attr(csrfToken))
		b.raw(`<label for="contact-name">Name</label>`)
		b.raw(`<input id="contact-name" type="text" name="name" required/>`)
		b.raw(`<label for="contact-email">Email</label>`)
		b.raw(`<input id="contact-email" type="email" name="email" required/>`)
		b.raw(`<label for="contact-message">Message</label>`)
		b.raw(`<textarea id="contact-message" name="message" maxlength="2000" required></textarea>`)
		b.raw(`<button type="submit">Send Message</button></form>`)
	})
}

func projectCard(b *writer, p Project) {
	b.rawf(`<article class="project-card" data-category="%s">`, attr(p.Category))
	if p.ImageURL != "" {
		b.rawf(`<a href="%s"><img src="%s" alt="%s" loading="lazy"/></a>`, p.Link(), attr(p.ImageURL), attr(p.Title))
	}
	b.rawf(`<h3><a href="%s">%s</a></h3>`, p.Link(), templ.EscapeString(p.Title))
	if p.ShortDescription != "" {
		b.rawf(`<p>%s</p>`, templ.EscapeString(p.ShortDescription))
	}
	tagPills(b, p.TagList())
	b.raw(`</article>`)
}

func postCard(b *writer, p BlogPost) {
	b.raw(`<article class="post-card">`)
	if p.FeaturedImage != "" {
		b.rawf(`<a href="%s"><img src="%s" alt="%s" loading="lazy"/></a>`, p.Link(), attr(p.FeaturedImage), attr(p.Title))
	}
	b.rawf(`<h3><a href="%s">%s</a></h3>`, p.Link(), templ.EscapeString(p.Title))
	b.rawf(`<time datetime="%s">%s</time>`, p.CreatedAt.Format("2006-01-02"), formatDate(p.CreatedAt))
	if p.Excerpt != "" {
		b.rawf(`<p>%s</p>`, templ.EscapeString(p.Excerpt))
	}
	b.raw(`</article>`)
}

func tagPills(b *writer, tags []string) {
	if len(tags) == 0 {
		return
	}
	b.raw(`<ul class="tags">`)
	for _, t := range tags {
		b.rawf(`<li class="tag">%s</li>`, templ.EscapeString(t))
	}
	b.raw(`</ul>`)
}
