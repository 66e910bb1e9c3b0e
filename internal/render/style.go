// Package render lays out a resume document as HTML. One engine serves all
// templates; the visual differences between them live entirely in a small
// style descriptor, so switching template is a pure swap that never touches
// the document.
package render

// Header alignment values.
const (
	AlignCenter = "center"
	AlignLeft   = "left"
)

// Divider styles drawn between entries of a list section.
const (
	DividerSolid  = "solid"
	DividerDashed = "dashed"
	DividerNone   = "none"
)

// Style describes everything that distinguishes one template from another:
// header alignment, divider treatment, icon usage, and how the accent palette
// is applied to headings.
type Style struct {
	Name            string `json:"name"`
	Label           string `json:"label"`
	HeaderAlign     string `json:"headerAlign"`
	Divider         string `json:"divider"`
	ShowIcons       bool   `json:"showIcons"`
	UppercaseTitles bool   `json:"uppercaseTitles"`
	TitleUnderline  bool   `json:"titleUnderline"`
	// ColorName tints the candidate name with the accent instead of plain ink.
	ColorName bool `json:"colorName"`
}

// DefaultStyle is the template used when the stored preference is missing or
// unknown.
const DefaultStyle = "modern"

var styles = map[string]Style{
	"modern": {
		Name:           "modern",
		Label:          "Modern",
		HeaderAlign:    AlignCenter,
		Divider:        DividerSolid,
		ShowIcons:      true,
		TitleUnderline: true,
		ColorName:      true,
	},
	"minimal": {
		Name:           "minimal",
		Label:          "Minimal",
		HeaderAlign:    AlignCenter,
		Divider:        DividerDashed,
		ShowIcons:      true,
		TitleUnderline: true,
	},
	"professional": {
		Name:            "professional",
		Label:           "Professional",
		HeaderAlign:     AlignLeft,
		Divider:         DividerSolid,
		UppercaseTitles: true,
	},
}

// StyleFor resolves a template name to its descriptor, falling back to the
// default for unknown names.
func StyleFor(name string) Style {
	if s, ok := styles[name]; ok {
		return s
	}
	return styles[DefaultStyle]
}

// StyleNames lists the registered template names in a stable order.
func StyleNames() []string {
	return []string{"modern", "minimal", "professional"}
}

// KnownStyle reports whether name is a registered template.
func KnownStyle(name string) bool {
	_, ok := styles[name]
	return ok
}
