package bee

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/papabearcodes/bee/sitemeta"
	"github.com/papabearcodes/bee/views"
)

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	return newThemedTestApp(t, cfg, nil)
}

// newThemedTestApp is newTestApp with a hook to customize the theme before
// the views are bound to it.
func newThemedTestApp(t *testing.T, cfg Config, customize func(*views.Theme)) *App {
	t.Helper()
	meta := sitemeta.Default()
	meta.Icon = writeTestPNG(t, 64, 64)
	p := sitemeta.MustProvider(meta)

	theme := views.NewTheme(p)
	if customize != nil {
		customize(&theme)
	}
	cfg.DatabasePath = filepath.Join(t.TempDir(), "blog.db")
	cfg.StaticDir = t.TempDir()
	a := New(cfg, p, DefaultViews(theme))
	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	mustSave(t, a.Store,
		Post{Slug: "hooks", Title: "Hooks in Depth", Date: "2024-02-01", Category: "React", Summary: "useEffect", Content: "Hooks body.", Published: true},
		Post{Slug: "closures", Title: "Closures Explained", Date: "2024-01-01", Category: "JavaScript", Content: "Closures body.", Published: true},
		Post{Slug: "secret", Title: "Secret Draft", Date: "2024-03-01", Category: "React"},
	)
	return a
}

func serve(a *App, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHomeListsPublishedPosts(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Hooks in Depth", "Closures Explained", `class="bio"`, `id="category"`, "© "} {
		if !strings.Contains(body, want) {
			t.Errorf("home missing %q", want)
		}
	}
	if strings.Contains(body, "Secret Draft") {
		t.Error("home lists a draft")
	}
}

func TestHomeCategoryFilter(t *testing.T) {
	a := newTestApp(t, Config{})
	body := serve(a, http.MethodGet, "/?category=React", nil).Body.String()
	if !strings.Contains(body, "Hooks in Depth") {
		t.Error("expected React post")
	}
	if strings.Contains(body, "Closures Explained") {
		t.Error("JavaScript post leaked into React filter")
	}

	body = serve(a, http.MethodGet, "/?category=All", nil).Body.String()
	if !strings.Contains(body, "Closures Explained") {
		t.Error("All should list every category")
	}
}

func TestHomeSelectsMatchingCategoryTab(t *testing.T) {
	a := newTestApp(t, Config{})
	tests := []struct {
		target   string
		selected string
		listed   []string
		hidden   []string
	}{
		{"/?category=react", `aria-selected="true"><a href="/?category=React"`, []string{"Hooks in Depth"}, []string{"Closures Explained"}},
		{"/?category=JAVASCRIPT", `aria-selected="true"><a href="/?category=JavaScript"`, []string{"Closures Explained"}, []string{"Hooks in Depth"}},
		{"/?category=Nope", `aria-selected="true"><a href="/">All`, []string{"Hooks in Depth", "Closures Explained"}, nil},
		{"/?category=all", `aria-selected="true"><a href="/">All`, []string{"Hooks in Depth", "Closures Explained"}, nil},
	}
	for _, tt := range tests {
		body := serve(a, http.MethodGet, tt.target, nil).Body.String()
		if n := strings.Count(body, `aria-selected="true"`); n != 1 {
			t.Errorf("%s: %d selected tabs, want 1", tt.target, n)
		}
		if !strings.Contains(body, tt.selected) {
			t.Errorf("%s: missing selected tab %q", tt.target, tt.selected)
		}
		for _, title := range tt.listed {
			if !strings.Contains(body, title) {
				t.Errorf("%s: missing %q", tt.target, title)
			}
		}
		for _, title := range tt.hidden {
			if strings.Contains(body, title) {
				t.Errorf("%s: unexpected %q", tt.target, title)
			}
		}
	}
}

func TestResolveCategory(t *testing.T) {
	categories := []string{"JavaScript", "React"}
	tests := map[string]string{
		"":           "",
		"All":        "",
		"react":      "React",
		" React ":    "React",
		"javascript": "JavaScript",
		"Unknown":    "",
	}
	for in, want := range tests {
		if got := resolveCategory(categories, in); got != want {
			t.Errorf("resolveCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHomePartial(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/?partial=blog", map[string]string{"HX-Request": "true"})
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("partial response should not include the document")
	}
	if !strings.Contains(body, "thumbnail-container") {
		t.Error("partial response missing the listing")
	}
}

func TestPostPage(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/blog/hooks/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Hooks body.", "Written by", "@David Quick"} {
		if !strings.Contains(body, want) {
			t.Errorf("post page missing %q", want)
		}
	}

	for _, slug := range []string{"missing", "secret"} {
		rec = serve(a, http.MethodGet, "/blog/"+slug+"/", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("/blog/%s/ status = %d, want 404", slug, rec.Code)
		}
	}
}

func TestRedirects(t *testing.T) {
	a := newTestApp(t, Config{})
	tests := map[string]string{
		"/about":      "/about/",
		"/blog":       "/",
		"/blog/hooks": "/blog/hooks/",
	}
	for target, want := range tests {
		rec := serve(a, http.MethodGet, target, nil)
		if rec.Code != http.StatusMovedPermanently {
			t.Errorf("%s status = %d, want 301", target, rec.Code)
			continue
		}
		if got := rec.Header().Get("Location"); got != want {
			t.Errorf("%s Location = %q, want %q", target, got, want)
		}
	}
}

func TestAboutPage(t *testing.T) {
	a := newTestApp(t, Config{})
	body := serve(a, http.MethodGet, "/about/", nil).Body.String()
	if !strings.Contains(body, "I'm Dave") {
		t.Error("about page should fall back to the introduction")
	}

	if err := a.Store.SavePage("about", "Custom **about**"); err != nil {
		t.Fatal(err)
	}
	body = serve(a, http.MethodGet, "/about/", nil).Body.String()
	if !strings.Contains(body, "<strong>about</strong>") {
		t.Error("about page should render stored markdown")
	}
}

func TestFeedAndSitemap(t *testing.T) {
	a := newTestApp(t, Config{})
	base := a.Meta.SiteURL()

	rec := serve(a, http.MethodGet, "/rss.xml", nil)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/rss+xml") {
		t.Errorf("rss content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<link>"+base+"/blog/hooks/</link>") {
		t.Errorf("rss missing post link: %s", body)
	}
	if !strings.Contains(body, "<category>React</category>") {
		t.Error("rss missing category")
	}
	if rec.Header().Get("Cache-Control") != "public, max-age=86400" {
		t.Errorf("rss cache-control = %q", rec.Header().Get("Cache-Control"))
	}

	body = serve(a, http.MethodGet, "/sitemap.xml", nil).Body.String()
	for _, want := range []string{base + "/about/", base + "/blog/closures/"} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
	if strings.Contains(body, "/blog/secret/") {
		t.Error("sitemap lists a draft")
	}
}

func TestRobots(t *testing.T) {
	a := newTestApp(t, Config{})
	body := serve(a, http.MethodGet, "/robots.txt", nil).Body.String()
	if !strings.Contains(body, "Sitemap: "+a.Meta.SiteURL()+"/sitemap.xml") {
		t.Errorf("robots = %q", body)
	}
}

func TestManifestAndIcons(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/manifest.webmanifest", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("manifest status = %d", rec.Code)
	}
	var m webManifest
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if m.Name != "PapaBearCodes" || len(m.Icons) != len(DefaultIconSizes) {
		t.Errorf("manifest = %+v", m)
	}

	rec = serve(a, http.MethodGet, m.Icons[0].Src, nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("icon status = %d, type = %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if rec := serve(a, http.MethodGet, "/icons/icon-50x50.png", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown icon size status = %d", rec.Code)
	}
	if rec := serve(a, http.MethodGet, "/favicon.png", nil); rec.Code != http.StatusOK {
		t.Errorf("favicon status = %d", rec.Code)
	}
}

func TestStylesheets(t *testing.T) {
	a := newTestApp(t, Config{})
	rec := serve(a, http.MethodGet, "/public/typography.css", nil)
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/css") {
		t.Errorf("typography content type = %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "h1{") {
		t.Error("typography css missing heading rule")
	}

	rec = serve(a, http.MethodGet, "/public/bee.css", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ".author-introduction") {
		t.Errorf("bee.css status = %d", rec.Code)
	}
}

func TestTypographyStylesheetFollowsTheme(t *testing.T) {
	a := newThemedTestApp(t, Config{}, func(theme *views.Theme) {
		theme.Typography.Overrides = append(theme.Typography.Overrides,
			views.Rule{Selector: "blockquote", Decls: []views.Decl{{Property: "color", Value: "#663399"}}})
	})
	want := "blockquote{color:#663399}"
	if css := serve(a, http.MethodGet, "/public/typography.css", nil).Body.String(); !strings.Contains(css, want) {
		t.Errorf("typography.css missing %q", want)
	}
	if page := serve(a, http.MethodGet, "/", nil).Body.String(); !strings.Contains(page, want) {
		t.Errorf("inlined typography missing %q", want)
	}
}

func TestAdminDisabledWithoutPassword(t *testing.T) {
	a := newTestApp(t, Config{})
	if rec := serve(a, http.MethodGet, "/admin/", nil); rec.Code != http.StatusNotFound {
		t.Errorf("/admin/ status = %d, want 404", rec.Code)
	}
}

func TestAdminRequiresSessionSecret(t *testing.T) {
	p := sitemeta.MustProvider(sitemeta.Default())
	a := New(Config{AdminPassword: "pw", DatabasePath: filepath.Join(t.TempDir(), "b.db")}, p, DefaultViews(views.NewTheme(p)))
	defer a.Close()
	if err := a.Init(); err == nil {
		t.Error("expected error without session secret")
	}
}

func TestAdminLoginPage(t *testing.T) {
	a := newTestApp(t, Config{AdminPassword: "pw", SessionSecret: "0123456789abcdef0123456789abcdef"})
	rec := serve(a, http.MethodGet, "/admin/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="password"`) || !strings.Contains(body, `name="_csrf"`) {
		t.Error("login form missing password or csrf field")
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("admin cache-control = %q", rec.Header().Get("Cache-Control"))
	}

	if rec := serve(a, http.MethodPost, "/admin/save/", nil); rec.Code != http.StatusForbidden {
		t.Errorf("save without csrf status = %d, want 403", rec.Code)
	}
}

// adminClient drives the app like a browser: it keeps the cookies each
// response sets and sends them back on the next request.
type adminClient struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
}

func (c *adminClient) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, ck := range c.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
		} else {
			c.cookies[ck.Name] = ck
		}
	}
	return rec
}

var csrfInput = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

func csrfFrom(t *testing.T, body string) string {
	t.Helper()
	m := csrfInput.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no csrf token in page")
	}
	return m[1]
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func TestAdminPostLifecycle(t *testing.T) {
	a := newTestApp(t, Config{AdminPassword: "pw", SessionSecret: "0123456789abcdef0123456789abcdef"})
	c := &adminClient{t: t, app: a, cookies: make(map[string]*http.Cookie)}

	// Warm the cache so the save has to invalidate it.
	if body := c.do(http.MethodGet, "/?category=Rust", nil).Body.String(); strings.Contains(body, "Signals Primer") {
		t.Fatal("post listed before it was saved")
	}

	token := csrfFrom(t, c.do(http.MethodGet, "/admin/", nil).Body.String())
	expectRedirect(t, c.do(http.MethodPost, "/admin/login/", url.Values{"_csrf": {token}, "password": {"pw"}}), "/admin/")

	dashboard := c.do(http.MethodGet, "/admin/", nil).Body.String()
	for _, want := range []string{"Sign out", "Hooks in Depth", "Secret Draft"} {
		if !strings.Contains(dashboard, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}

	expectRedirect(t, c.do(http.MethodPost, "/admin/save/", url.Values{
		"_csrf":     {token},
		"title":     {"Signals Primer"},
		"date":      {"2024-04-01"},
		"category":  {"Rust"},
		"summary":   {"Reactive state"},
		"content":   {"Signals body."},
		"published": {"1"},
	}), "/admin/?msg=saved")

	body := c.do(http.MethodGet, "/?category=rust", nil).Body.String()
	if !strings.Contains(body, "Signals Primer") {
		t.Error("saved post not listed under its category")
	}
	if !strings.Contains(body, `aria-selected="true"><a href="/?category=Rust"`) {
		t.Error("new category tab not selected")
	}

	if form := c.do(http.MethodGet, "/admin/post/signals-primer/", nil).Body.String(); !strings.Contains(form, `value="Signals Primer"`) {
		t.Error("editor not pre-filled with the saved post")
	}

	expectRedirect(t, c.do(http.MethodPost, "/admin/save/", url.Values{"_csrf": {token}, "title": {"Bad"}, "date": {"April"}}),
		"/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")

	expectRedirect(t, c.do(http.MethodPost, "/admin/delete/signals-primer/", url.Values{"_csrf": {token}}), "/admin/?msg=deleted")
	if rec := c.do(http.MethodGet, "/blog/signals-primer/", nil); rec.Code != http.StatusNotFound {
		t.Errorf("deleted post status = %d, want 404", rec.Code)
	}

	expectRedirect(t, c.do(http.MethodPost, "/admin/logout/", url.Values{"_csrf": {token}}), "/admin/")
	expectRedirect(t, c.do(http.MethodPost, "/admin/save/", url.Values{"_csrf": {token}, "title": {"Sneaky"}}), "/admin/")
	if _, err := a.Store.GetPostAny("sneaky"); err != ErrNotFound {
		t.Errorf("save after logout stored a post: %v", err)
	}
}

func TestAdminLoginRateLimited(t *testing.T) {
	a := newTestApp(t, Config{AdminPassword: "pw", SessionSecret: "0123456789abcdef0123456789abcdef"})
	c := &adminClient{t: t, app: a, cookies: make(map[string]*http.Cookie)}
	token := csrfFrom(t, c.do(http.MethodGet, "/admin/", nil).Body.String())

	bad := url.Values{"_csrf": {token}, "password": {"nope"}}
	for i := 0; i < 5; i++ {
		rec := c.do(http.MethodPost, "/admin/login/", bad)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Wrong password.") {
			t.Fatalf("attempt %d: status = %d", i+1, rec.Code)
		}
	}
	if rec := c.do(http.MethodPost, "/admin/login/", bad); rec.Code != http.StatusTooManyRequests {
		t.Errorf("sixth attempt status = %d, want 429", rec.Code)
	}
	good := url.Values{"_csrf": {token}, "password": {"pw"}}
	if rec := c.do(http.MethodPost, "/admin/login/", good); rec.Code != http.StatusTooManyRequests {
		t.Errorf("correct password while limited status = %d, want 429", rec.Code)
	}
}
