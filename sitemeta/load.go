package sitemeta

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load reads metadata from a YAML file at path and applies SITE_* environment
// overrides. With an empty path the built-in defaults are used as the base.
func Load(path string) (Metadata, error) {
	var m Metadata
	if path == "" {
		m = Default()
		if err := cleanenv.ReadEnv(&m); err != nil {
			return Metadata{}, fmt.Errorf("sitemeta: read env: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &m); err != nil {
		return Metadata{}, fmt.Errorf("sitemeta: read %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// Provider hands out read-only views of a loaded Metadata record.
// The record it holds is never modified after construction.
type Provider struct {
	meta Metadata
}

// NewProvider validates m and keeps a private copy of it.
func NewProvider(m Metadata) (*Provider, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Provider{meta: m.Clone()}, nil
}

// MustProvider is NewProvider that panics on invalid metadata.
func MustProvider(m Metadata) *Provider {
	p, err := NewProvider(m)
	if err != nil {
		panic(err)
	}
	return p
}

// Metadata returns a copy of the full record.
func (p *Provider) Metadata() Metadata {
	return p.meta.Clone()
}

// Bio returns the fields the author bio needs.
func (p *Provider) Bio() (author, introduction string) {
	return p.meta.Bio()
}

// Title returns the site title.
func (p *Provider) Title() string { return p.meta.Title }

// SiteURL returns the canonical site URL.
func (p *Provider) SiteURL() string { return p.meta.SiteURL }
