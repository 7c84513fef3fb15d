// Package seo maintains the artifacts search engines read: the sitemap and
// the ping and IndexNow notifications sent after it changes.
//
// Information Hiding:
// - Sitemap XML layout and priority tiers hidden behind BuildSitemap
// - Notification endpoints and payloads hidden behind Pinger and IndexNow
package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/internal/atomicfile"
	"github.com/richinex/inkwell/post"
)

// SitemapNS is the sitemaps.org schema namespace.
const SitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

const lastmodLayout = "2006-01-02"

// Priority tiers: site root above the listing page above individual posts.
const (
	rootPriority    = "1.0"
	listingPriority = "0.9"
	postPriority    = "0.8"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// BuildSitemap renders the sitemap for the site root, its listing page and
// one entry per post. A post's lastmod comes from its date, or now when the
// date does not parse.
func BuildSitemap(posts []post.Post, site config.Profile, now time.Time) ([]byte, error) {
	today := now.Format(lastmodLayout)
	set := urlSet{
		Xmlns: SitemapNS,
		URLs: []urlEntry{
			{Loc: site.URL, LastMod: today, ChangeFreq: "daily", Priority: rootPriority},
			{Loc: site.ListingURL(), LastMod: today, ChangeFreq: "daily", Priority: listingPriority},
		},
	}
	for _, p := range posts {
		lastmod := today
		if t, ok := p.PublishedAt(); ok {
			lastmod = t.Format(lastmodLayout)
		}
		set.URLs = append(set.URLs, urlEntry{
			Loc:        site.PostURL(p.ID),
			LastMod:    lastmod,
			ChangeFreq: "monthly",
			Priority:   postPriority,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteSitemap replaces the file at path with data.
func WriteSitemap(path string, data []byte) error {
	if err := atomicfile.Write(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return nil
}
