package mailer

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/post"
)

//go:embed post_email.html
var postEmailHTML string

var postEmail = template.Must(template.New("post_email").Parse(postEmailHTML))

// SubjectPrefix starts every new-post email subject.
const SubjectPrefix = "New Post: "

type postEmailData struct {
	SiteName string
	Tagline  string
	Post     post.Post
	Link     string
}

// RenderPost builds the announcement email for p. Post fields are escaped;
// the excerpt is shown as plain text.
func RenderPost(p post.Post, site config.Profile) (subject, html string, err error) {
	var buf bytes.Buffer
	err = postEmail.Execute(&buf, postEmailData{
		SiteName: site.Name,
		Tagline:  site.Description,
		Post:     p,
		Link:     site.NewsletterPostURL(p.ID),
	})
	if err != nil {
		return "", "", fmt.Errorf("render email: %w", err)
	}
	return SubjectPrefix + p.Title, buf.String(), nil
}
