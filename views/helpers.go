package views

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/papabearcodes/bee/sitemeta"
)

// AllCategory is the pseudo-category that selects every post.
const AllCategory = "All"

// htmlWriter remembers the first write error so components can be written
// top to bottom without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes s as element content.
func (h *htmlWriter) text(s string) { h.raw(escapeText(s)) }

// attr writes s as a quoted attribute value.
func (h *htmlWriter) attr(s string) { h.raw(templ.EscapeString(s)) }

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeText escapes only what element content needs, leaving quotes and
// line breaks as written.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// CategoryURL returns the listing URL that selects category.
func CategoryURL(category string) string {
	if category == "" || category == AllCategory {
		return "/"
	}
	return "/?category=" + url.QueryEscape(category)
}

// PostURL returns the site-relative URL of a post.
func PostURL(slug string) string {
	return "/blog/" + url.PathEscape(slug) + "/"
}

// FilterRelatedPosts returns other posts in the same category as current.
func FilterRelatedPosts(current Post, posts []Post) []Post {
	cat := strings.ToLower(strings.TrimSpace(current.Category))
	if cat == "" {
		return nil
	}
	var related []Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		if strings.ToLower(strings.TrimSpace(p.Category)) == cat {
			related = append(related, p)
		}
	}
	return related
}

// WebsiteJSONLD produces a Schema.org WebSite block from the site metadata.
func WebsiteJSONLD(meta sitemeta.Metadata) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     meta.Title,
		"url":      buildURL(meta.SiteURL),
	}
	if meta.Description != "" {
		data["description"] = meta.Description
	}
	if meta.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  meta.Author,
		}
	}
	if len(meta.Keywords) > 0 {
		data["keywords"] = strings.Join(meta.Keywords, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJSONLD produces a Schema.org BlogPosting block for a post.
func BlogPostingJSONLD(meta sitemeta.Metadata, post Post) string {
	postURL := buildURL(meta.SiteURL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Summary,
		"datePublished": post.Date,
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  meta.Title,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if meta.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  meta.Author,
		}
	}
	if post.Category != "" {
		data["articleSection"] = post.Category
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
