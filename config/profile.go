package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_profile.yaml
var defaultProfileFS embed.FS

// Profile holds the domain constants of the site the pipeline publishes to.
type Profile struct {
	Name         string   `yaml:"name"`
	URL          string   `yaml:"url"`
	Host         string   `yaml:"host"`
	Description  string   `yaml:"description"`
	ListingPage  string   `yaml:"listing_page"`
	PostPath     string   `yaml:"post_path"` // "{id}" is replaced by the post id
	Author       string   `yaml:"author"`
	Contact      Contact  `yaml:"contact"`
	Facts        []string `yaml:"facts"`
	Entities     []string `yaml:"entities"`
	SystemPrompt string   `yaml:"system_prompt"`
	Backlinks    []Link   `yaml:"backlinks"`
	CallToAction string   `yaml:"call_to_action"`
	Templates    []string `yaml:"templates"` // empty means the whole catalog
	Keywords     []string `yaml:"keywords"`  // used when the queue file is unreadable
	Images       Images   `yaml:"images"`
	Newsletter   Mail     `yaml:"newsletter"`
}

// Contact is how readers reach the service.
type Contact struct {
	Email    string `yaml:"email"`
	WhatsApp string `yaml:"whatsapp"`
}

// Link is a mandatory backlink. Href is resolved against the site URL.
type Link struct {
	Href   string `yaml:"href"`
	Anchor string `yaml:"anchor"`
}

// Images configures image search context and the last-resort image.
type Images struct {
	Default        string   `yaml:"default"`
	PrimaryTerms   []string `yaml:"primary_terms"`
	SecondaryTerms []string `yaml:"secondary_terms"`
}

// Mail configures the subscriber newsletter.
type Mail struct {
	SenderName  string `yaml:"sender_name"`
	SenderEmail string `yaml:"sender_email"`
	// SiteURL is where email links point; defaults to the profile URL.
	SiteURL string `yaml:"site_url"`
}

// DefaultProfile returns the embedded profile.
func DefaultProfile() Profile {
	data, err := defaultProfileFS.ReadFile("default_profile.yaml")
	if err != nil {
		panic(fmt.Sprintf("config: embedded profile missing: %v", err))
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		panic(fmt.Sprintf("config: embedded profile invalid: %v", err))
	}
	return p.normalized()
}

// LoadProfile reads a YAML profile from path, layered over the embedded
// default. An empty path returns the default.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading site profile: %w", err)
	}
	// Derived from url unless the override sets them.
	p.Host = ""
	p.Newsletter.SiteURL = ""
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing site profile %s: %w", path, err)
	}
	p = p.normalized()
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("site profile %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the fields every run depends on.
func (p Profile) Validate() error {
	u, err := url.Parse(p.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("url %q must be an absolute URL", p.URL)
	}
	if !strings.Contains(p.PostPath, "{id}") {
		return fmt.Errorf("post_path %q must contain {id}", p.PostPath)
	}
	if p.Author == "" {
		return fmt.Errorf("author must not be empty")
	}
	if p.Images.Default == "" {
		return fmt.Errorf("images.default must not be empty")
	}
	return nil
}

// normalized fills derived defaults: trailing slash on URL, host from URL.
func (p Profile) normalized() Profile {
	if p.URL != "" && !strings.HasSuffix(p.URL, "/") {
		p.URL += "/"
	}
	if p.Host == "" {
		if u, err := url.Parse(p.URL); err == nil {
			p.Host = u.Hostname()
		}
	}
	if p.Newsletter.SiteURL == "" {
		p.Newsletter.SiteURL = p.URL
	} else if !strings.HasSuffix(p.Newsletter.SiteURL, "/") {
		p.Newsletter.SiteURL += "/"
	}
	return p
}

// PostURL returns the canonical URL of a post on the site.
func (p Profile) PostURL(id int) string {
	return p.URL + strings.ReplaceAll(p.PostPath, "{id}", strconv.Itoa(id))
}

// NewsletterPostURL returns the post URL used in emails.
func (p Profile) NewsletterPostURL(id int) string {
	return p.Newsletter.SiteURL + strings.ReplaceAll(p.PostPath, "{id}", strconv.Itoa(id))
}

// ListingURL returns the blog listing page URL.
func (p Profile) ListingURL() string {
	return p.URL + p.ListingPage
}

// SitemapURL returns where the generated sitemap is served.
func (p Profile) SitemapURL() string {
	return p.URL + "sitemap.xml"
}

// Resolve makes a backlink href absolute against the site URL.
func (l Link) Resolve(siteURL string) string {
	if strings.HasPrefix(l.Href, "http://") || strings.HasPrefix(l.Href, "https://") {
		return l.Href
	}
	return siteURL + l.Href
}

// BacklinkURLs returns every mandatory backlink as an absolute URL.
func (p Profile) BacklinkURLs() []string {
	urls := make([]string, len(p.Backlinks))
	for i, l := range p.Backlinks {
		urls[i] = l.Resolve(p.URL)
	}
	return urls
}
