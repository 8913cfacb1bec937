package web

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/jimiolaniyan/feed"
)

//go:embed templates/*.html
var templateFS embed.FS

const timeFormat = "January 2 2006, 15:04"

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"timestamp": func(t time.Time) string { return t.Format(timeFormat) },
}).ParseFS(templateFS, "templates/*.html"))

// feedPage is the model for the index page.
type feedPage struct {
	Username  string
	MaxLength int
	Items     []postItem
}

type postItem struct {
	feed.Post
	Editing  bool
	Expanded bool
}

type confirmPage struct {
	Prompt string
	Post   feed.Post
}

func newFeedPage(username string, posts []feed.Post, vs *ViewState) feedPage {
	items := make([]postItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, postItem{Post: p, Editing: vs.Editing(p.ID), Expanded: vs.Expanded(p.ID)})
	}
	return feedPage{Username: username, MaxLength: feed.MaxContentLength, Items: items}
}

func renderFeed(w io.Writer, page feedPage) error {
	return templates.ExecuteTemplate(w, "feed.html", page)
}

func renderConfirm(w io.Writer, page confirmPage) error {
	return templates.ExecuteTemplate(w, "confirm.html", page)
}
