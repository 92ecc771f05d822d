package bee

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/papabearcodes/bee/views"
)

// handleHome serves the listing. The category query parameter is the
// category tab selection; count widens the page for "load more".
func (a *App) handleHome(c echo.Context) error {
	count, _ := strconv.Atoi(c.QueryParam("count"))

	categories, err := a.Cache.ListCategories()
	if err != nil {
		return err
	}
	category := resolveCategory(categories, c.QueryParam("category"))
	posts, err := a.Cache.ListPosts(category)
	if err != nil {
		return err
	}
	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "blog" {
		return Render(c, a.Views.BlogSection(posts, categories, category, count))
	}
	return Render(c, a.Views.Home(posts, categories, category, count))
}

// resolveCategory maps a requested category onto the spelling used by the
// tabs. Unknown categories and "All" resolve to "", the unfiltered listing.
func resolveCategory(categories []string, requested string) string {
	key := normalizeCategory(requested)
	if key == "" || key == normalizeCategory(views.AllCategory) {
		return ""
	}
	for _, c := range categories {
		if normalizeCategory(c) == key {
			return c
		}
	}
	return ""
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(post, posts))
}

func (a *App) handleAbout(c echo.Context) error {
	content, err := a.Store.GetPage("about")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return Render(c, a.Views.About(content))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s\n", BuildURL(a.siteURL(c))+"sitemap.xml")
	return c.String(http.StatusOK, body)
}

func (a *App) handleTypography(c echo.Context) error {
	css := views.GitHubTheme().CSS
	if a.Views.TypographyCSS != nil {
		css = a.Views.TypographyCSS
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(css()))
}

// siteURL is the configured site URL, or the request origin when unset.
func (a *App) siteURL(c echo.Context) string {
	if u := a.Meta.SiteURL(); u != "" {
		return u
	}
	return c.Scheme() + "://" + c.Request().Host
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
