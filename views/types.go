package views

// Post is a blog entry as the templates see it.
type Post struct {
	Title     string
	Date      string // YYYY-MM-DD
	Category  string
	Summary   string
	Slug      string
	Content   string // markdown
	Link      string
	Published bool
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}
