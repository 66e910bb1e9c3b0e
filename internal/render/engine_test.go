package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/resume"
)

func renderDoc(t *testing.T, doc resume.Document, opts Options) *goquery.Document {
	t.Helper()
	engine, err := New()
	require.NoError(t, err)
	html, err := engine.Render(doc, opts)
	require.NoError(t, err)
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return parsed
}

func testDocument() resume.Document {
	doc := resume.NewDocument()
	doc.PersonalDetails = resume.PersonalDetails{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "555-0100",
		LinkedIn: "linkedin.com/in/ada",
		Location: "London",
	}
	doc.JobTitle = "Engineer"
	doc.WorkExperience = []resume.WorkExperience{{
		JobTitle:    "Engineer",
		CompanyName: "Acme",
		StartDate:   "Jan 2020",
		EndDate:     "Present",
		Description: "- Built X\n- Shipped Y",
	}}
	doc.Projects = []resume.Project{{}}
	doc.Certifications = []resume.Certification{{}}
	doc.Languages = []resume.Language{{Proficiency: resume.ProficiencyBasic}}
	return doc
}

func TestRender_VisibleAndOmittedSections(t *testing.T) {
	page := renderDoc(t, testDocument(), Options{})

	// One populated work-experience entry renders with its section heading.
	work := page.Find(`[data-section="workExperience"]`)
	require.Equal(t, 1, work.Length())
	assert.Equal(t, "Work Experience", work.Find(".section-title").First().Text())

	// Blank seeded sections are omitted entirely, headings included.
	assert.Equal(t, 0, page.Find(`[data-section="projects"]`).Length())
	assert.Equal(t, 0, page.Find(`[data-section="certifications"]`).Length())
	assert.Equal(t, 0, page.Find(`[data-section="languages"]`).Length())
	assert.NotContains(t, page.Text(), "Projects")
	assert.NotContains(t, page.Text(), "Certifications")
}

func TestRender_DescriptionBullets(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	html, err := engine.Render(testDocument(), Options{})
	require.NoError(t, err)

	assert.Contains(t, html, "• Built X")
	assert.Contains(t, html, "<br/>• Shipped Y")
}

func TestRender_LinkAffordances(t *testing.T) {
	page := renderDoc(t, testDocument(), Options{})

	mail := page.Find(`a[href="mailto:ada@example.com"]`)
	assert.Equal(t, 1, mail.Length())
	assert.Equal(t, "ada@example.com", mail.Text())

	assert.Equal(t, 1, page.Find(`a[href="tel:555-0100"]`).Length())
	assert.Equal(t, 1, page.Find(`a[href="https://linkedin.com/in/ada"]`).Length())
}

func TestRender_EditModeEmitsInputsKeyedByFieldPath(t *testing.T) {
	page := renderDoc(t, testDocument(), Options{Editing: true})

	name := page.Find(`input[name="personalDetails.fullName"]`)
	require.Equal(t, 1, name.Length())
	val, _ := name.Attr("value")
	assert.Equal(t, "Ada Lovelace", val)

	jobTitle := page.Find(`input[name="workExperience[0].jobTitle"]`)
	require.Equal(t, 1, jobTitle.Length())

	desc := page.Find(`textarea[name="workExperience[0].description"]`)
	require.Equal(t, 1, desc.Length())
	assert.Equal(t, "- Built X\n- Shipped Y", desc.Text())

	// Edit mode shows raw markdown-lite source, never rendered markup.
	assert.NotContains(t, page.Text(), "• Built X")
}

func TestRender_TemplateSwitchIsPure(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	doc := testDocument()
	before, err := doc.ToMap()
	require.NoError(t, err)

	for _, style := range StyleNames() {
		_, err := engine.Render(doc, Options{Style: style})
		require.NoError(t, err)
	}

	after, err := doc.ToMap()
	require.NoError(t, err)
	assert.Equal(t, before, after, "rendering must not mutate the document")
}

func TestRender_StyleDescriptorsDiffer(t *testing.T) {
	doc := testDocument()

	modern := renderDoc(t, doc, Options{Style: "modern"})
	professional := renderDoc(t, doc, Options{Style: "professional"})

	assert.Equal(t, 1, modern.Find(".resume.align-center").Length())
	assert.Equal(t, 1, professional.Find(".resume.align-left.caps").Length())
	assert.Equal(t, 1, modern.Find(".icon").First().Length())
	assert.Equal(t, 0, professional.Find(".icon").Length())
}

func TestRender_SectionOrderHonored(t *testing.T) {
	doc := testDocument()
	doc.Objective = "Build things"

	page := renderDoc(t, doc, Options{
		SectionOrder: []resume.Section{resume.SectionWorkExperience, resume.SectionObjective},
	})

	var keys []string
	page.Find("[data-section]").Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr("data-section")
		keys = append(keys, key)
	})
	require.Len(t, keys, 2)
	assert.Equal(t, []string{"workExperience", "objective"}, keys)
}

func TestStyleFor_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, StyleFor(DefaultStyle), StyleFor("no-such-template"))
	assert.True(t, KnownStyle("minimal"))
	assert.False(t, KnownStyle("banner"))
}
