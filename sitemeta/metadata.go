// Package sitemeta holds the site metadata record every page and component
// reads from: blog identity, social handles, integration settings and feature
// flags. The record is loaded once and handed out as copies.
package sitemeta

import (
	"errors"
	"strings"
)

// ErrMissingTitle is returned when the metadata has no title.
var ErrMissingTitle = errors.New("sitemeta: title is required")

// Metadata is the static configuration record describing the blog.
// Every field except Title is optional; an empty string disables the
// integration it configures.
type Metadata struct {
	Title        string   `yaml:"title" env:"SITE_TITLE"`
	Description  string   `yaml:"description" env:"SITE_DESCRIPTION"`
	Author       string   `yaml:"author" env:"SITE_AUTHOR"`
	Introduction string   `yaml:"introduction" env:"SITE_INTRODUCTION"`
	SiteURL      string   `yaml:"siteUrl" env:"SITE_URL"`
	Social       Social   `yaml:"social"`
	Icon         string   `yaml:"icon" env:"SITE_ICON"`
	Keywords     []string `yaml:"keywords" env:"SITE_KEYWORDS" env-separator:","`
	Comment      Comment  `yaml:"comment"`
	Configs      Configs  `yaml:"configs"`
	Sponsor      Sponsor  `yaml:"sponsor"`
	Share        Share    `yaml:"share"`
	GA           string   `yaml:"ga" env:"SITE_GA"`
}

// Social maps platform names to account handles.
type Social struct {
	Twitter  string `yaml:"twitter" env:"SITE_SOCIAL_TWITTER"`
	GitHub   string `yaml:"github" env:"SITE_SOCIAL_GITHUB"`
	Medium   string `yaml:"medium" env:"SITE_SOCIAL_MEDIUM"`
	Facebook string `yaml:"facebook" env:"SITE_SOCIAL_FACEBOOK"`
}

// Comment configures the comment widget providers.
type Comment struct {
	DisqusShortName string `yaml:"disqusShortName" env:"SITE_COMMENT_DISQUS"`
	Utterances      string `yaml:"utterances" env:"SITE_COMMENT_UTTERANCES"`
}

// Configs holds listing behaviour knobs.
type Configs struct {
	CountOfInitialPost int `yaml:"countOfInitialPost" env:"SITE_INITIAL_POST_COUNT" env-default:"10"`
}

// Sponsor holds the sponsor account identifier.
type Sponsor struct {
	BuyMeACoffeeID string `yaml:"buyMeACoffeeId" env:"SITE_SPONSOR_BUYMEACOFFEE"`
}

// Share configures share buttons.
type Share struct {
	FacebookAppID string `yaml:"facebookAppId" env:"SITE_SHARE_FACEBOOK_APP_ID"`
}

// SocialLink is a resolved, non-empty social account.
type SocialLink struct {
	Platform string
	Handle   string
	URL      string
}

var socialBaseURLs = []struct {
	platform string
	base     string
	handle   func(Social) string
}{
	{"twitter", "https://twitter.com/", func(s Social) string { return s.Twitter }},
	{"github", "https://github.com/", func(s Social) string { return s.GitHub }},
	{"medium", "https://medium.com/@", func(s Social) string { return s.Medium }},
	{"facebook", "https://www.facebook.com/", func(s Social) string { return s.Facebook }},
}

// Links returns the configured accounts in a fixed platform order.
// Platforms with an empty handle are skipped.
func (s Social) Links() []SocialLink {
	var links []SocialLink
	for _, p := range socialBaseURLs {
		h := strings.TrimSpace(p.handle(s))
		if h == "" {
			continue
		}
		links = append(links, SocialLink{Platform: p.platform, Handle: h, URL: p.base + h})
	}
	return links
}

func (c Comment) DisqusEnabled() bool     { return c.DisqusShortName != "" }
func (c Comment) UtterancesEnabled() bool { return c.Utterances != "" }
func (s Share) FacebookEnabled() bool     { return s.FacebookAppID != "" }

// Enabled reports whether a sponsor link should be shown.
func (s Sponsor) Enabled() bool { return s.BuyMeACoffeeID != "" }

// URL returns the sponsor page, or "" when disabled.
func (s Sponsor) URL() string {
	if !s.Enabled() {
		return ""
	}
	return "https://www.buymeacoffee.com/" + s.BuyMeACoffeeID
}

// Bio returns the author name and introduction shown in the author bio.
func (m Metadata) Bio() (author, introduction string) {
	return m.Author, m.Introduction
}

// AnalyticsEnabled reports whether a tracking ID is configured.
func (m Metadata) AnalyticsEnabled() bool { return m.GA != "" }

// Validate checks the only hard requirement: a non-blank title.
func (m Metadata) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrMissingTitle
	}
	return nil
}

// Clone returns a deep copy of m.
func (m Metadata) Clone() Metadata {
	out := m
	if m.Keywords != nil {
		out.Keywords = append([]string(nil), m.Keywords...)
	}
	return out
}

// Default returns the metadata the starter ships with.
func Default() Metadata {
	return Metadata{
		Title:       "PapaBearCodes",
		Description: "Web development blog",
		Author:      "David Quick",
		Introduction: "Hi ✌️\n" +
			"  I'm Dave, a developer from NY. I write web development articles for all. This is my journal to you. Enjoy!",
		SiteURL: "https://gatsby-starter-bee.netlify.com",
		Social: Social{
			Twitter: "papabearcodes",
		},
		Icon:     "content/assets/felog.png",
		Keywords: []string{"blog"},
		Comment: Comment{
			Utterances: "JaeYeopHan/gatsby-starter-bee",
		},
		Configs: Configs{CountOfInitialPost: 10},
		Sponsor: Sponsor{BuyMeACoffeeID: "jbee"},
	}
}
