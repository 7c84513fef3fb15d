package prompt

// Template is one structural style for a generated article. Templates change
// headings, entity mentions and link placement, never the output format.
type Template struct {
	Name         string
	Angle        string   // one-line description of the article shape
	TitleExample string   // example title; %s is the keyword
	Sections     string   // heading count, e.g. "5-7"
	Headings     []string // suggested H2 headings, in order
	Entities     int      // how many profile entities must be mentioned
	Placement    []string // where each backlink goes, by backlink index
}

// Standard is the template used when variety is off.
var Standard = Template{
	Name:         "standard",
	Angle:        "an informative guide that answers the reader's question directly",
	TitleExample: "How to Reduce Turnitin Similarity Score: 10 Proven Methods",
	Sections:     "5-7",
	Headings:     []string{"Introduction", "Conclusion"},
	Entities:     3,
}

// Catalog is the set of templates picked from when variety is on.
var Catalog = []Template{
	{
		Name:         "how-to",
		Angle:        "a step-by-step tutorial the reader can follow today",
		TitleExample: "How to Use %s: A Step-by-Step Guide",
		Sections:     "6-8",
		Headings:     []string{"Introduction", "What You Need Before You Start", "Step 1", "Step 2", "Step 3", "Common Mistakes to Avoid", "Conclusion"},
		Entities:     2,
		Placement:    []string{"the introduction", "the step that mentions checking the document", "the conclusion"},
	},
	{
		Name:         "listicle",
		Angle:        "a numbered list of practical tips, each with a short example",
		TitleExample: "10 Things Every Student Should Know About %s",
		Sections:     "7-10",
		Headings:     []string{"Introduction", "Tip 1", "Tip 2", "Tip 3", "Bonus Tip", "Conclusion"},
		Entities:     3,
		Placement:    []string{"the first tip", "the middle of the list", "the conclusion"},
	},
	{
		Name:         "comparison",
		Angle:        "a side-by-side comparison of the options a student has",
		TitleExample: "%s: Free Tools vs Paid Services Compared",
		Sections:     "5-6",
		Headings:     []string{"Introduction", "Option A", "Option B", "Feature Comparison", "Which One Should You Choose", "Conclusion"},
		Entities:     2,
		Placement:    []string{"the introduction", "the feature comparison", "the recommendation section"},
	},
	{
		Name:         "problem-solution",
		Angle:        "a problem the reader is facing, why it happens and how to fix it",
		TitleExample: "Struggling With %s? Here Is the Fix",
		Sections:     "5-7",
		Headings:     []string{"Introduction", "The Problem", "Why It Happens", "The Solution", "Preventing It Next Time", "Conclusion"},
		Entities:     1,
		Placement:    []string{"the problem section", "the solution section", "the conclusion"},
	},
	{
		Name:         "ultimate-guide",
		Angle:        "a complete reference covering the topic from basics to advanced",
		TitleExample: "The Ultimate Guide to %s for Indian Students",
		Sections:     "7-9",
		Headings:     []string{"Introduction", "The Basics", "How It Works", "Advanced Tips", "Frequently Asked Questions", "Conclusion"},
		Entities:     3,
		Placement:    []string{"the introduction", "the section explaining how it works", "the FAQ"},
	},
}

// Lookup returns the catalog template with the given name.
func Lookup(name string) (Template, bool) {
	for _, t := range Catalog {
		if t.Name == name {
			return t, true
		}
	}
	if name == Standard.Name {
		return Standard, true
	}
	return Template{}, false
}
