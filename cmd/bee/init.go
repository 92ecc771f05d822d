package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/papabearcodes/bee/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	SiteName string
	Author   string
	SiteURL  string
	Date     string
}

func runInit(out io.Writer, dir, author string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}

	name := filepath.Base(dir)
	if author == "" {
		author = toTitle(name)
	}
	data := scaffoldData{
		SiteName: toTitle(name),
		Author:   author,
		SiteURL:  "http://localhost:3000",
		Date:     time.Now().Format("2006-01-02"),
	}

	fmt.Fprintf(out, "Creating new bee site: %s\n\n", dir)

	root := "templates"

	err := fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		content, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		if err := writeTemplate(outPath, tmpl, data); err != nil {
			return fmt.Errorf("write %s from %s: %w", outPath, path, err)
		}

		fmt.Fprintf(out, "  created %s\n", outPath)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintln(out, "  cp .env.example .env   # then edit it")
	fmt.Fprintln(out, "  SITE_CONFIG=site.yaml bee import content")
	fmt.Fprintln(out, "  SITE_CONFIG=site.yaml bee serve")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Edit site.yaml to set your title, bio and social handles.")
	fmt.Fprintln(out, "Drop a square PNG at content/assets/icon.png for the favicon and manifest icons.")
	return nil
}

// writeTemplate renders tmpl into a new file at path.
func writeTemplate(path string, tmpl *template.Template, data scaffoldData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
