// Package resume defines the canonical resume document model, its field-path
// addressing scheme, and the flattening rules used by the document store.
package resume

import "time"

// Proficiency levels for the languages section.
const (
	ProficiencyBasic  = "Basic"
	ProficiencyFluent = "Fluent"
	ProficiencyNative = "Native"
)

// Skill entry discriminants. A grouped entry carries a category plus a
// comma-joined skill list; an individual entry carries a single skill.
const (
	SkillTypeGroup      = "group"
	SkillTypeIndividual = "individual"
)

// FontFamilies is the allow-list of fonts a document may select.
var FontFamilies = []string{
	"DM Sans",
	"Inter",
	"Roboto",
	"Georgia",
	"Times New Roman",
}

// PersonalDetails holds the contact block rendered at the top of every template.
// FullName and Email are required for display; everything else is optional.
type PersonalDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Location string `json:"location,omitempty"`
}

// WorkExperience is one entry in the work experience section.
type WorkExperience struct {
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one entry in the education section. Grade and Description are
// alternates; templates render whichever is present.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Grade       string `json:"grade,omitempty"`
	Description string `json:"description,omitempty"`
}

// Skill is one entry in the skills section, in either grouped or individual
// form depending on SkillType.
type Skill struct {
	SkillType string `json:"skillType,omitempty"`
	Category  string `json:"category,omitempty"`
	Skills    string `json:"skills,omitempty"`
	Skill     string `json:"skill,omitempty"`
}

// Project is one entry in the projects section.
type Project struct {
	ProjectName string `json:"projectName"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Language is one entry in the languages section.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Certification is one entry in the certifications section.
type Certification struct {
	CertificationName   string `json:"certificationName"`
	IssuingOrganization string `json:"issuingOrganization,omitempty"`
	IssueDate           string `json:"issueDate,omitempty"`
}

// CustomSection is a free-form user-defined section.
type CustomSection struct {
	SectionTitle string `json:"sectionTitle"`
	Content      string `json:"content,omitempty"`
}

// Document is the canonical resume record. List sections are independently
// optional; a section whose entries are all blank is treated as absent when
// rendering.
type Document struct {
	PersonalDetails PersonalDetails  `json:"personalDetails"`
	Objective       string           `json:"objective,omitempty"`
	JobTitle        string           `json:"jobTitle,omitempty"`
	WorkExperience  []WorkExperience `json:"workExperience,omitempty"`
	Education       []Education      `json:"education,omitempty"`
	Skills          []Skill          `json:"skills,omitempty"`
	Projects        []Project        `json:"projects,omitempty"`
	Languages       []Language       `json:"languages,omitempty"`
	Certifications  []Certification  `json:"certifications,omitempty"`
	CustomSections  []CustomSection  `json:"customSections,omitempty"`

	// Style and layout metadata.
	AccentColor  string    `json:"accentColor,omitempty"`
	FontFamily   string    `json:"fontFamily,omitempty"`
	SectionOrder []Section `json:"sectionOrder,omitempty"`
	Template     string    `json:"template,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// NewDocument returns a document seeded the way the wizard starts: one blank
// row per list section so the form has something to edit.
func NewDocument() Document {
	now := time.Now().UTC().Format(time.RFC3339)
	return Document{
		WorkExperience: []WorkExperience{{}},
		Education:      []Education{{}},
		Skills:         []Skill{{SkillType: SkillTypeGroup}},
		Projects:       []Project{{}},
		Languages:      []Language{{Proficiency: ProficiencyBasic}},
		Certifications: []Certification{{}},
		AccentColor:    "#000000",
		FontFamily:     FontFamilies[0],
		SectionOrder:   DefaultOrder(),
		Template:       "modern",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ValidFont reports whether name is on the font allow-list.
func ValidFont(name string) bool {
	for _, f := range FontFamilies {
		if f == name {
			return true
		}
	}
	return false
}
