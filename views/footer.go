package views

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// now is replaced in tests.
var now = time.Now

// Footer renders the copyright line for owner with the year of rendering.
func Footer(owner string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<footer class="footer"><p>© `, strconv.Itoa(now().Year()), ` `)
		h.text(owner)
		h.raw(`</p></footer>`)
		return h.err
	})
}
