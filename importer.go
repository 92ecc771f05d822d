package bee

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML header of a markdown post.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Draft       bool   `yaml:"draft"`
}

// aboutDir holds the about page rather than a post.
const aboutDir = "__about"

const excerptLen = 140

// ImportResult counts what an import wrote.
type ImportResult struct {
	Posts int
	Pages int
}

// ParseMarkdown splits a document into its front matter and body. Documents
// without a leading "---" block have empty front matter.
func ParseMarkdown(src []byte) (FrontMatter, string, error) {
	var fm FrontMatter
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return fm, text, nil
	}
	rest := text[len("---\n"):]
	var header, body string
	if rest == "---" || strings.HasPrefix(rest, "---\n") {
		body = rest[len("---"):]
	} else {
		end := strings.Index(rest, "\n---")
		if end < 0 {
			return fm, "", fmt.Errorf("unterminated front matter")
		}
		header, body = rest[:end], rest[end+len("\n---"):]
	}
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, "", fmt.Errorf("front matter: %w", err)
	}
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}
	return fm, strings.TrimLeft(body, "\n"), nil
}

// normalizeDate reduces "2019-01-02 10:00:00" or RFC 3339 dates to YYYY-MM-DD.
func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 10 {
		if _, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return s[:10], nil
		}
	}
	return "", fmt.Errorf("invalid date %q", s)
}

// excerpt returns the first paragraph of body as plain text, truncated.
func excerpt(body string) string {
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" || strings.HasPrefix(para, "#") || strings.HasPrefix(para, "```") || strings.HasPrefix(para, "!") {
			continue
		}
		text := strings.Join(strings.Fields(para), " ")
		r := []rune(text)
		if len(r) > excerptLen {
			return string(r[:excerptLen]) + "…"
		}
		return text
	}
	return ""
}

// slugFor derives a post slug from its file path: "react/hooks/index.md"
// becomes "hooks", "hello-world.md" becomes "hello-world".
func slugFor(p string) string {
	base := path.Base(p)
	if base == "index.md" {
		base = path.Base(path.Dir(p))
	}
	return Slugify(strings.TrimSuffix(base, path.Ext(base)))
}

// ImportContent walks fsys for markdown files and upserts them into the
// store. Files under __about become the about page.
func ImportContent(store *Store, fsys fs.FS) (ImportResult, error) {
	var res ImportResult
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		fm, body, err := ParseMarkdown(src)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}

		if strings.HasPrefix(p, aboutDir+"/") {
			if err := store.SavePage("about", body); err != nil {
				return err
			}
			res.Pages++
			return nil
		}

		date, err := normalizeDate(fm.Date)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		slug := slugFor(p)
		if slug == "" {
			slug = Slugify(fm.Title)
		}
		if slug == "" {
			return fmt.Errorf("%s: cannot derive slug", p)
		}
		summary := strings.TrimSpace(fm.Description)
		if summary == "" {
			summary = excerpt(body)
		}
		if err := store.SavePost(Post{
			Slug:      slug,
			Title:     fm.Title,
			Date:      date,
			Category:  fm.Category,
			Summary:   summary,
			Content:   strings.TrimSpace(body),
			Published: !fm.Draft,
		}); err != nil {
			return err
		}
		res.Posts++
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("bee: import: %w", err)
	}
	return res, nil
}
