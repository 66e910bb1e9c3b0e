package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-studio/internal/colors"
	"github.com/jonathan/resume-studio/internal/markdown"
	"github.com/jonathan/resume-studio/internal/resume"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Options are the style parameters a render is a pure function of, alongside
// the document itself. Zero values fall back to the document's own stored
// style metadata.
type Options struct {
	Style        string
	Editing      bool
	AccentColor  string
	FontFamily   string
	SectionOrder []resume.Section
}

// Engine renders documents through the shared layout template.
type Engine struct {
	tmpl *template.Template
}

// New parses the embedded layout template.
func New() (*Engine, error) {
	tmpl, err := template.New("resume.html.tmpl").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout template: %w", err)
	}
	return &Engine{tmpl: tmpl}, nil
}

// sectionBlock is one visible section in effective order.
type sectionBlock struct {
	Key   resume.Section
	Title string
}

var sectionTitles = map[resume.Section]string{
	resume.SectionObjective:      "Professional Summary",
	resume.SectionWorkExperience: "Work Experience",
	resume.SectionProjects:       "Projects",
	resume.SectionEducation:      "Education",
	resume.SectionSkills:         "Skills",
	resume.SectionCertifications: "Certifications",
	resume.SectionLanguages:      "Languages",
	resume.SectionCustomSections: "",
}

// pageData is the single value the layout template executes against. Its
// methods implement the dual-mode field editor primitive.
type pageData struct {
	Doc     resume.Document
	Style   Style
	Colors  colors.Palette
	Font    template.CSS
	Editing bool

	Sections []sectionBlock
}

// Render lays out the document. Editing mode swaps every field for an input
// affordance named by its field path; display mode emits static markup with
// markdown-lite applied to free-text fields. The document is never mutated.
func (e *Engine) Render(doc resume.Document, opts Options) (string, error) {
	accent := opts.AccentColor
	if accent == "" {
		accent = doc.AccentColor
	}
	font := opts.FontFamily
	if font == "" || !resume.ValidFont(font) {
		font = doc.FontFamily
	}
	if !resume.ValidFont(font) {
		font = resume.FontFamilies[0]
	}
	styleName := opts.Style
	if styleName == "" {
		styleName = doc.Template
	}
	order := opts.SectionOrder
	if len(order) == 0 {
		order = doc.SectionOrder
	}

	data := &pageData{
		Doc:   doc,
		Style: StyleFor(styleName),
		Colors: colors.Derive(accent),
		// The font comes off the allow-list, so it is safe to mark as CSS.
		Font:    template.CSS(fmt.Sprintf("'%s', sans-serif", font)),
		Editing: opts.Editing,
	}
	// Section visibility is identical in both modes: blank sections are
	// skipped entirely, headings included.
	for _, key := range resume.NormalizeOrder(order) {
		if !doc.SectionHasContent(key) {
			continue
		}
		data.Sections = append(data.Sections, sectionBlock{Key: key, Title: sectionTitles[key]})
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render resume: %w", err)
	}
	return buf.String(), nil
}

// Field renders a single-line field: static text (or markdown-lite) in
// display mode, a text input named by the field path in edit mode.
func (p *pageData) Field(section string, index int, name, value string) template.HTML {
	return p.render(fieldSpec{section: section, index: index, name: name, value: value})
}

// Area renders a long-text field: markdown-lite display or a textarea.
func (p *pageData) Area(section string, index int, name, value string) template.HTML {
	return p.render(fieldSpec{section: section, index: index, name: name, value: value, multiline: true})
}

// Link renders a field with a link affordance in display mode. kind selects
// the scheme: "link" for plain hyperlinks, "mail" for mailto, "phone" for tel.
func (p *pageData) Link(kind, section string, index int, name, value string) template.HTML {
	return p.render(fieldSpec{section: section, index: index, name: name, value: value, link: kind})
}

type fieldSpec struct {
	section   string
	index     int
	name      string
	value     string
	multiline bool
	link      string
}

func (p *pageData) render(spec fieldSpec) template.HTML {
	var idx *int
	if spec.index >= 0 {
		idx = &spec.index
	}
	ref, err := resume.ParseFieldRef(spec.section, idx, spec.name)
	if err != nil {
		// Unaddressable fields cannot be edited or rendered.
		return ""
	}
	path := ref.String()

	if p.Editing {
		esc := template.HTMLEscapeString(spec.value)
		label := template.HTMLEscapeString(spec.name)
		if spec.multiline {
			return template.HTML(fmt.Sprintf(
				`<textarea class="edit" name=%q aria-label=%q>%s</textarea>`, path, label, esc))
		}
		return template.HTML(fmt.Sprintf(
			`<input class="edit" type="text" name=%q value="%s" aria-label=%q/>`, path, esc, label))
	}

	if spec.value == "" {
		return ""
	}
	switch spec.link {
	case "link":
		href := spec.value
		if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
			href = "https://" + href
		}
		return anchor(href, spec.value)
	case "mail":
		return anchor("mailto:"+spec.value, spec.value)
	case "phone":
		return anchor("tel:"+spec.value, spec.value)
	}
	if spec.multiline {
		return template.HTML(fmt.Sprintf(`<div class="md">%s</div>`, markdown.Render(spec.value)))
	}
	return template.HTML(fmt.Sprintf(`<span>%s</span>`, markdown.Render(spec.value)))
}

func anchor(href, text string) template.HTML {
	return template.HTML(fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
		template.HTMLEscapeString(href), template.HTMLEscapeString(text)))
}
