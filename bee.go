// Package bee is a small blog engine that serves a static-feeling theme:
// one site metadata record, a post store, and stateless templ components
// that render both.
//
// Sites provide their components via the ViewFuncs struct (DefaultViews
// supplies the stock theme), and bee handles the handlers, middleware and
// storage.
package bee

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/papabearcodes/bee/sitemeta"
	"github.com/papabearcodes/bee/views"
)

// ViewFuncs holds the templ components the server calls when rendering
// pages. Sites can replace any of them to customize the theme.
type ViewFuncs struct {
	Home           func(posts []Post, categories []string, selected string, count int) templ.Component
	BlogSection    func(posts []Post, categories []string, selected string, count int) templ.Component
	Post           func(post Post, posts []Post) templ.Component
	About          func(content string) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []Post, message string, csrfToken string) templ.Component
	AdminForm      func(post Post, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component

	// TypographyCSS returns the stylesheet served at /public/typography.css.
	// It should match the type scale the page components inline.
	TypographyCSS func() string
}

// DefaultViews binds the stock theme components to theme.
func DefaultViews(theme views.Theme) ViewFuncs {
	return ViewFuncs{
		Home: func(posts []Post, categories []string, selected string, count int) templ.Component {
			return views.Home(theme, posts, categories, selected, count)
		},
		BlogSection: func(posts []Post, categories []string, selected string, count int) templ.Component {
			return views.BlogSection(theme, posts, categories, selected, count)
		},
		Post: func(post Post, posts []Post) templ.Component {
			return views.PostPage(theme, post, posts)
		},
		About: func(content string) templ.Component {
			return views.About(theme, content)
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return views.AdminLogin(theme, showError, csrfToken)
		},
		AdminDashboard: func(posts []Post, message string, csrfToken string) templ.Component {
			return views.AdminDashboard(theme, posts, message, csrfToken)
		},
		AdminForm:     views.AdminForm,
		NotFound:      func() templ.Component { return views.NotFound(theme) },
		ServerError:   func() templ.Component { return views.ServerError(theme) },
		TypographyCSS: theme.Typography.CSS,
	}
}

// App is the central bee application. It wires together the metadata,
// store, cache, handlers, middleware and templates.
type App struct {
	Config Config
	Meta   *sitemeta.Provider
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Icons  *IconSet
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	iconSizes    []int
}

// New creates an App serving meta with the given view functions.
func New(cfg Config, meta *sitemeta.Provider, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Meta:      meta,
		Echo:      echo.New(),
		Views:     v,
		iconSizes: DefaultIconSizes,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the store and registers middleware and routes. Start calls it;
// tests call it directly and drive a.Echo with httptest.
func (a *App) Init() error {
	if a.Config.AdminEnabled() && a.Config.SessionSecret == "" {
		return fmt.Errorf("bee: SessionSecret is required when AdminPassword is set")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("bee: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.Icons = NewIconSet(a.Meta.Metadata().Icon, a.iconSizes)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until the server stops.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("serving %q on %s", a.Meta.Title(), a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/bee.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/typography.css", a.handleTypography)

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.png", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/manifest.webmanifest", a.handleManifest)
	e.GET("/icons/:file", a.handleIcon)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/rss.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/about/", a.handleAbout)

	if !a.Config.AdminEnabled() {
		return
	}
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.POST("/admin/delete/:slug/", a.handleAdminDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
