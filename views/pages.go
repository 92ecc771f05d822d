package views

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/papabearcodes/bee/markdown"
)

// Home renders the post listing: author bio, category tabs and the first
// count posts, with a link that loads the next page worth.
func Home(theme Theme, posts []Post, categories []string, selected string, count int) templ.Component {
	page := PageMeta{Title: theme.Meta.Title, URL: buildURL(theme.Meta.SiteURL)}
	return Layout(theme, page, BlogSection(theme, posts, categories, selected, count))
}

// BlogSection is the listing body without the surrounding document.
func BlogSection(theme Theme, posts []Post, categories []string, selected string, count int) templ.Component {
	step := theme.Meta.Configs.CountOfInitialPost
	if step <= 0 {
		step = 10
	}
	if count <= 0 {
		count = step
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.render(SiteBio(theme))
		h.render(Category(categories, selected, theme.Styles))
		h.raw(`<ul class="thumbnail-container">`)
		for i, p := range posts {
			if i >= count {
				break
			}
			h.raw(`<li class="thumbnail-item"><a href="`)
			h.attr(PostURL(p.Slug))
			h.raw(`"><div class="thumbnail"><h3>`)
			h.text(p.Title)
			h.raw(`</h3><p class="thumbnail-date">`)
			h.text(p.Date)
			h.raw(`</p><p>`)
			h.text(p.Summary)
			h.raw(`</p></div></a></li>`)
		}
		h.raw(`</ul>`)
		if len(posts) > count {
			q := url.Values{}
			if selected != "" && selected != AllCategory {
				q.Set("category", selected)
			}
			q.Set("count", strconv.Itoa(count+step))
			h.raw(`<a class="load-more" href="/?`)
			h.attr(q.Encode())
			h.raw(`">Load more</a>`)
		}
		return h.err
	})
}

// PostPage renders a single article with its bio, sponsor link and related posts.
func PostPage(theme Theme, post Post, posts []Post) templ.Component {
	page := PageMeta{
		Title:       post.Title,
		Description: post.Summary,
		URL:         buildURL(theme.Meta.SiteURL, "blog", post.Slug),
		OGType:      "article",
		JSONLD:      BlogPostingJSONLD(theme.Meta, post),
	}
	return Layout(theme, page, PostBody(theme, post, posts))
}

// PostBody is the article without the surrounding document.
func PostBody(theme Theme, post Post, posts []Post) templ.Component {
	related := FilterRelatedPosts(post, posts)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<header class="header"><h1 class="post-title">`)
		h.text(post.Title)
		h.raw(`</h1><p class="post-date">`)
		h.text(post.Date)
		h.raw(`</p>`)
		if post.Category != "" {
			h.raw(`<a class="post-category" href="`)
			h.attr(CategoryURL(post.Category))
			h.raw(`">`)
			h.text(post.Category)
			h.raw(`</a>`)
		}
		h.raw(`</header><article class="post-container">`)
		h.render(markdown.Markdown(post.Content))
		h.raw(`</article>`)
		if theme.Meta.Sponsor.Enabled() {
			h.raw(`<div class="sponsor-button"><a href="`)
			h.attr(theme.Meta.Sponsor.URL())
			h.raw(`" target="_blank" rel="noopener noreferrer">Buy me a coffee</a></div>`)
		}
		h.render(SiteBio(theme))
		if len(related) > 0 {
			h.raw(`<nav class="related-posts"><h2>More in `)
			h.text(post.Category)
			h.raw(`</h2><ul>`)
			for _, p := range related {
				h.raw(`<li><a href="`)
				h.attr(PostURL(p.Slug))
				h.raw(`">`)
				h.text(p.Title)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul></nav>`)
		}
		return h.err
	})
}

// About renders the about page from markdown content, falling back to the
// author introduction when there is none.
func About(theme Theme, content string) templ.Component {
	page := PageMeta{Title: "About", URL: buildURL(theme.Meta.SiteURL, "about")}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="about">`)
		if content != "" {
			h.render(markdown.Markdown(content))
		} else {
			h.raw(`<div class="author-introduction">`)
			h.text(theme.Meta.Introduction)
			h.raw(`</div>`)
		}
		h.render(SocialLinks(theme.Meta.Social))
		h.raw(`</section>`)
		return h.err
	})
	return Layout(theme, page, body)
}

// NotFound renders the 404 page.
func NotFound(theme Theme) templ.Component {
	return Layout(theme, PageMeta{Title: "Not Found"}, message("404: Not Found", "You just hit a route that doesn't exist."))
}

// ServerError renders the 500 page.
func ServerError(theme Theme) templ.Component {
	return Layout(theme, PageMeta{Title: "Error"}, message("Something went wrong", "Please try again in a moment."))
}

func message(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="message"><h1>`)
		h.text(title)
		h.raw(`</h1><p>`)
		h.text(body)
		h.raw(`</p><a href="/">Back home</a></section>`)
		return h.err
	})
}
