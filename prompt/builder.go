// Package prompt builds generation requests and parses generated replies.
//
// Information Hiding:
// - Request wording and template catalog hidden behind Builder.Build
// - Delimiter schema shared by request.tmpl and Parse; change both together
package prompt

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"text/template"

	"github.com/richinex/inkwell/config"
)

//go:embed request.tmpl
var requestTemplate string

var userTemplate = template.Must(template.New("request").
	Funcs(template.FuncMap{"join": strings.Join}).
	Option("missingkey=error").
	Parse(requestTemplate))

// Request is a rendered generation request.
type Request struct {
	System   string
	User     string
	Template string // catalog name of the structural template used
}

// Builder renders generation requests for one site profile.
type Builder struct {
	profile config.Profile
	variety bool
	recent  int
	rng     *rand.Rand
	catalog []Template
}

// NewBuilder creates a builder. With variety on, each Build picks a template
// from the catalog (restricted to profile.Templates when set).
func NewBuilder(profile config.Profile, variety bool, recentTitles int) *Builder {
	return &Builder{
		profile: profile,
		variety: variety,
		recent:  recentTitles,
		catalog: enabled(profile.Templates),
	}
}

// WithRand sets the random source used for template and entity choice.
func (b *Builder) WithRand(rng *rand.Rand) *Builder {
	b.rng = rng
	return b
}

type link struct {
	Href   string
	Anchor string
	Where  string
}

type requestData struct {
	Site         config.Profile
	Keyword      string
	Template     Template
	TitleExample string
	Headings     []string
	Entities     []string
	Recent       []string
	Links        []link
	CallToAction string
}

// Build renders the request for keyword. titles is the full title history in
// store order; only the last N are included.
func (b *Builder) Build(keyword string, titles []string) (Request, error) {
	tpl := b.pick()

	data := requestData{
		Site:         b.profile,
		Keyword:      keyword,
		Template:     tpl,
		TitleExample: tpl.TitleExample,
		Headings:     tpl.Headings,
		Entities:     b.entities(tpl.Entities),
		Recent:       lastN(titles, b.recent),
		Links:        b.links(tpl),
		CallToAction: b.callToAction(),
	}
	if strings.Contains(tpl.TitleExample, "%s") {
		data.TitleExample = fmt.Sprintf(tpl.TitleExample, keyword)
	}
	if tpl.Name == Standard.Name {
		// The standard article only pins the opening and closing sections.
		data.Headings = nil
	}

	var sb strings.Builder
	if err := userTemplate.Execute(&sb, data); err != nil {
		return Request{}, fmt.Errorf("render request: %w", err)
	}

	return Request{
		System:   b.profile.SystemPrompt,
		User:     sb.String(),
		Template: tpl.Name,
	}, nil
}

func (b *Builder) pick() Template {
	if !b.variety || len(b.catalog) == 0 {
		return Standard
	}
	return b.catalog[b.intN(len(b.catalog))]
}

// entities returns n profile entities; shuffled when variety is on.
func (b *Builder) entities(n int) []string {
	all := slices.Clone(b.profile.Entities)
	if b.variety {
		for i := len(all) - 1; i > 0; i-- {
			j := b.intN(i + 1)
			all[i], all[j] = all[j], all[i]
		}
	}
	if n < len(all) {
		all = all[:n]
	}
	return all
}

func (b *Builder) links(tpl Template) []link {
	out := make([]link, len(b.profile.Backlinks))
	for i, l := range b.profile.Backlinks {
		out[i] = link{Href: l.Resolve(b.profile.URL), Anchor: l.Anchor}
		if i < len(tpl.Placement) {
			out[i].Where = tpl.Placement[i]
		}
	}
	return out
}

func (b *Builder) callToAction() string {
	cta := strings.TrimSpace(b.profile.CallToAction)
	return fmt.Sprintf("%s <a href='%s'>%s</a>", cta, b.profile.URL, b.profile.Name)
}

func (b *Builder) intN(n int) int {
	if b.rng != nil {
		return b.rng.IntN(n)
	}
	return rand.IntN(n)
}

// enabled returns the catalog filtered to names; empty names means all.
// Unknown names are ignored.
func enabled(names []string) []Template {
	if len(names) == 0 {
		return Catalog
	}
	var out []Template
	for _, name := range names {
		if t, ok := Lookup(name); ok {
			out = append(out, t)
		}
	}
	return out
}

func lastN(items []string, n int) []string {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if len(items) > n {
		items = items[len(items)-n:]
	}
	return items
}
