package views

import "github.com/a-h/templ"

// Blog renders the paginated blog listing. featured, when non-nil, is shown
// in its own promotional slot above the regular grid.
func Blog(site SiteConfig, featured *BlogPost, posts []BlogPost, pg Pagination) templ.Component {
	return page(site, "Blog", "/blog", func(b *writer) {
		b.raw(`<h1>Blog</h1>`)

		if featured != nil {
			b.raw(`<section class="featured-post">`)
			postCard(b, *featured)
			b.raw(`</section>`)
		}

		if len(posts) == 0 {
			b.raw(`<p class="empty">No more posts.</p>`)
		}
		b.raw(`<div class="post-grid">`)
		for _, p := range posts {
			postCard(b, p)
		}
		b.raw(`</div>`)

		if pg.TotalPages() > 1 {
			b.raw(`<nav class="pagination">`)
			if pg.HasPrev() {
				b.rawf(`<a rel="prev" href="/blog?page=%d">Newer</a>`, pg.Page-1)
			}
			b.rawf(`<span class="page-info">Page %d of %d</span>`, pg.Page, pg.TotalPages())
			if pg.HasNext() {
				b.rawf(`<a rel="next" href="/blog?page=%d">Older</a>`, pg.Page+1)
			}
			b.raw(`</nav>`)
		}
	})
}

// Article renders a single blog post with up to three recent related posts.
func Article(site SiteConfig, post BlogPost, related []BlogPost) templ.Component {
	return page(site, post.Title, "/blog", func(b *writer) {
		b.raw(`<article class="blog-article"><header>`)
		b.rawf(`<h1>%s</h1>`, templ.EscapeString(post.Title))
		b.rawf(`<time datetime="%s">%s</time>`, post.CreatedAt.Format("2006-01-02"), formatDate(post.CreatedAt))
		tagPills(b, post.TagList())
		if post.FeaturedImage != "" {
			b.rawf(`<img class="featured-image" src="%s" alt="%s"/>`, attr(post.FeaturedImage), attr(post.Title))
		}
		b.raw(`</header><div class="article-body">`)
		b.component(Markdown(post.Content))
		b.raw(`</div></article>`)
		b.rawf(`<script type="application/ld+json">%s</script>`, BlogPostingJsonLD(site, post))

		if len(related) > 0 {
			b.raw(`<section class="related-posts"><h2>More Posts</h2><div class="post-grid">`)
			for _, p := range related {
				postCard(b, p)
			}
			b.raw(`</div></section>`)
		}
	})
}

// ProjectDetails renders a single project page with same-category related
// projects.
func ProjectDetails(site SiteConfig, project Project, related []Project) templ.Component {
	return page(site, project.Title, "/works", func(b *writer) {
		b.raw(`<article class="project-details"><header>`)
		b.rawf(`<h1>%s</h1>`, templ.EscapeString(project.Title))
		b.rawf(`<p class="category">%s</p>`, templ.EscapeString(project.Category))
		tagPills(b, project.TagList())
		b.raw(`</header>`)
		if project.ImageURL != "" {
			b.rawf(`<img class="project-image" src="%s" alt="%s"/>`, attr(project.ImageURL), attr(project.Title))
		}
		b.rawf(`<p class="description">%s</p>`, templ.EscapeString(project.Description))
		b.raw(`<p class="project-links">`)
		if project.GithubURL != "" {
			b.rawf(`<a href="%s" rel="noopener noreferrer">Source</a> `, attr(project.GithubURL))
		}
		if project.LiveURL != "" {
			b.rawf(`<a href="%s" rel="noopener noreferrer">Live</a>`, attr(project.LiveURL))
		}
		b.raw(`</p></article>`)

		if len(related) > 0 {
			b.raw(`<section class="related-projects"><h2>Related Projects</h2><div class="project-grid">`)
			for _, p := range related {
				projectCard(b, p)
			}
			b.raw(`</div></section>`)
		}
	})
}
