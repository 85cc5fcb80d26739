package portfolio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// handleSitemap serves a sitemap covering the static pages, published blog
// posts, and all projects.
func (a *App) handleSitemap(c echo.Context) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: base + "/"},
		{Loc: base + "/works"},
		{Loc: base + "/blog"},
		{Loc: base + "/about"},
		{Loc: base + "/faq"},
		{Loc: base + "/contact"},
	}

	posts, err := a.Store.RecentPosts(1000)
	if err != nil {
		return err
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     base + p.Link(),
			LastMod: p.UpdatedAt.Format("2006-01-02"),
		})
	}

	projects, err := a.Store.ListProjects("all", "", nil)
	if err != nil {
		return err
	}
	for _, p := range projects {
		urls = append(urls, sitemapURL{
			Loc:     base + p.Link(),
			LastMod: p.UpdatedAt.Format("2006-01-02"),
		})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
