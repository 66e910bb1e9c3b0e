// Package markdown renders the restricted markup subset allowed in free-text
// resume fields: **bold** spans and lines starting with "- " as bullets.
// This is display-mode only; edit mode always shows the raw source text.
package markdown

import (
	"html"
	"html/template"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// renderPolicy allows only the markup this renderer itself produces.
func renderPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.StrictPolicy()
		p.AllowElements("strong", "br")
		policy = p
	})
	return policy
}

// Render converts markdown-lite source into sanitized HTML. Bulleted lines
// become "• " glyphs joined with explicit breaks rather than a real list: the
// first bulleted line gets no leading break, every later one is preceded by
// <br/>. Non-bulleted lines pass through with only the bold substitution.
func Render(text string) template.HTML {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	firstBullet := true
	for i, line := range lines {
		line = html.EscapeString(line)
		line = boldPattern.ReplaceAllString(line, "<strong>$1</strong>")
		if strings.HasPrefix(strings.TrimSpace(line), "- ") {
			if firstBullet {
				line = "• " + line[2:]
				firstBullet = false
			} else {
				line = "<br/>• " + line[2:]
			}
		}
		lines[i] = line
	}

	out := strings.Join(lines, "\n")
	return template.HTML(renderPolicy().Sanitize(out)) // #nosec G203 -- input is escaped then sanitized
}
