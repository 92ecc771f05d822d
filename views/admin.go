package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// AdminLogin renders the password form.
func AdminLogin(theme Theme, showError bool, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="admin-login"><h1>Admin</h1>`)
		if showError {
			h.raw(`<p class="error">Wrong password.</p>`)
		}
		h.raw(`<form method="post" action="/admin/login/">`)
		csrfField(h, csrfToken)
		h.raw(`<input type="password" name="password" autocomplete="current-password" required/>`)
		h.raw(`<button type="submit">Sign in</button></form></section>`)
		return h.err
	})
	return Layout(theme, PageMeta{Title: "Admin"}, body)
}

// AdminDashboard lists every post, drafts included, next to an empty editor.
func AdminDashboard(theme Theme, posts []Post, msg string, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="admin"><h1>Posts</h1>`)
		if msg != "" {
			h.raw(`<p class="notice">`)
			h.text(msg)
			h.raw(`</p>`)
		}
		h.raw(`<form method="post" action="/admin/logout/">`)
		csrfField(h, csrfToken)
		h.raw(`<button type="submit">Sign out</button></form><table class="admin-posts"><tbody>`)
		for _, p := range posts {
			h.raw(`<tr><td><a href="/admin/post/`)
			h.attr(p.Slug)
			h.raw(`/">`)
			h.text(p.Title)
			h.raw(`</a></td><td>`)
			h.text(p.Category)
			h.raw(`</td><td>`)
			h.text(p.Date)
			h.raw(`</td><td>`)
			if p.Published {
				h.raw(`published`)
			} else {
				h.raw(`draft`)
			}
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		h.render(AdminForm(Post{Published: true}, csrfToken))
		h.raw(`</section>`)
		return h.err
	})
	return Layout(theme, PageMeta{Title: "Admin"}, body)
}

// AdminForm renders the post editor, pre-filled with post.
func AdminForm(post Post, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<form class="admin-form" method="post" action="/admin/save/">`)
		csrfField(h, csrfToken)
		input(h, "title", "Title", post.Title)
		input(h, "slug", "Slug", post.Slug)
		input(h, "date", "Date (YYYY-MM-DD)", post.Date)
		input(h, "category", "Category", post.Category)
		input(h, "summary", "Summary", post.Summary)
		h.raw(`<label>Content<textarea name="content" rows="20">`)
		h.text(post.Content)
		h.raw(`</textarea></label><label><input type="checkbox" name="published" value="1"`)
		if post.Published {
			h.raw(` checked`)
		}
		h.raw(`/> Published</label><button type="submit">Save</button></form>`)
		if post.Slug != "" {
			h.raw(`<form class="admin-delete" method="post" action="/admin/delete/`)
			h.attr(post.Slug)
			h.raw(`/">`)
			csrfField(h, csrfToken)
			h.raw(`<button type="submit">Delete</button></form>`)
		}
		return h.err
	})
}

func input(h *htmlWriter, name, label, value string) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(`<input type="text" name="`, name, `" value="`)
	h.attr(value)
	h.raw(`"/></label>`)
}

func csrfField(h *htmlWriter, token string) {
	h.raw(`<input type="hidden" name="_csrf" value="`)
	h.attr(token)
	h.raw(`"/>`)
}
