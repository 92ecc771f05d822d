package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/papabearcodes/bee"
	"github.com/papabearcodes/bee/sitemeta"
	"github.com/papabearcodes/bee/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			log.Fatal(err)
		}
	case "init":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: bee init <dir> [author]")
			os.Exit(1)
		}
		author := ""
		if len(os.Args) > 3 {
			author = os.Args[3]
		}
		if err := runInit(os.Stdout, os.Args[2], author); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "import":
		dir := "content"
		if len(os.Args) > 2 {
			dir = os.Args[2]
		}
		if err := runImport(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "meta":
		if err := runMeta(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("bee %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bee - a blog theme server built with Go, Echo, and templ

Usage:
  bee <command> [arguments]

Commands:
  serve                Serve the site configured by the environment
  init <dir> [author]  Create a new site directory
  import [dir]         Load markdown posts from dir (default "content")
  meta                 Print the resolved site metadata as YAML
  version              Print the bee version
  help                 Show this help message

Examples:
  bee init myblog "David Quick"
  SITE_CONFIG=site.yaml bee import content
  SITE_CONFIG=site.yaml ADMIN_PASSWORD=secret ADMIN_SESSION_SECRET=... bee serve`)
}

func loadProvider(cfg bee.Config) (*sitemeta.Provider, error) {
	meta, err := sitemeta.Load(cfg.MetadataPath)
	if err != nil {
		return nil, err
	}
	return sitemeta.NewProvider(meta)
}

func runServe() error {
	cfg, err := bee.LoadConfig()
	if err != nil {
		return err
	}
	p, err := loadProvider(cfg)
	if err != nil {
		return err
	}
	app := bee.New(cfg, p, bee.DefaultViews(views.NewTheme(p)))
	defer app.Close()
	return app.Start()
}

func runImport(dir string) error {
	cfg, err := bee.LoadConfig()
	if err != nil {
		return err
	}
	store, err := bee.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := bee.ImportContent(store, os.DirFS(dir))
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d posts and %d pages from %s into %s\n", res.Posts, res.Pages, dir, cfg.DatabasePath)
	return nil
}

func runMeta() error {
	cfg, err := bee.LoadConfig()
	if err != nil {
		return err
	}
	p, err := loadProvider(cfg)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(p.Metadata())
}
