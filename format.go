package feed

import (
	"html/template"
	"regexp"
	"strings"
)

var hashtagRegexp = regexp.MustCompile(`#\w+`)

// FormatText escapes raw text, links #word tokens and turns newlines into
// line breaks. Applying it to its own output escapes the markup again.
func FormatText(raw string) template.HTML {
	s := strings.ReplaceAll(raw, "\r\n", "\n")

	var b strings.Builder
	last := 0
	for _, loc := range hashtagRegexp.FindAllStringIndex(s, -1) {
		b.WriteString(escapeLines(s[last:loc[0]]))
		tag := template.HTMLEscapeString(s[loc[0]:loc[1]])
		b.WriteString(`<a href="#" class="hashtag">` + tag + `</a>`)
		last = loc[1]
	}
	b.WriteString(escapeLines(s[last:]))

	return template.HTML(b.String())
}

func escapeLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = template.HTMLEscapeString(l)
	}
	return strings.Join(lines, "<br>")
}
