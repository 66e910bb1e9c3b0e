package resume

import "strings"

// HasContent reports whether a decoded JSON value carries renderable content.
// Rules: nil is empty; arrays are non-empty iff they have elements; objects
// are non-empty iff any direct value is a non-blank string or otherwise
// truthy; strings must be non-blank after trimming; numbers and booleans
// follow truthiness.
func HasContent(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case []any:
		return len(val) > 0
	case map[string]any:
		for _, inner := range val {
			if s, ok := inner.(string); ok {
				if strings.TrimSpace(s) != "" {
					return true
				}
				continue
			}
			if truthy(inner) {
				return true
			}
		}
		return false
	case string:
		return strings.TrimSpace(val) != ""
	default:
		return truthy(val)
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}

// SectionHasContent applies the HasContent rule to one section of a typed
// document. Blank list entries do not count: a section whose rows are all
// empty strings renders nothing, matching the recursive-blank rule.
func (d Document) SectionHasContent(sec Section) bool {
	switch sec {
	case SectionPersonalDetails:
		p := d.PersonalDetails
		return anyNonBlank(p.FullName, p.Email, p.Phone, p.LinkedIn, p.GitHub, p.Location)
	case SectionObjective:
		return strings.TrimSpace(d.Objective) != ""
	case SectionJobTitle:
		return strings.TrimSpace(d.JobTitle) != ""
	case SectionWorkExperience:
		for _, e := range d.WorkExperience {
			if anyNonBlank(e.JobTitle, e.CompanyName, e.Location, e.StartDate, e.EndDate, e.Description) {
				return true
			}
		}
	case SectionEducation:
		for _, e := range d.Education {
			if anyNonBlank(e.Degree, e.Institution, e.Location, e.StartDate, e.EndDate, e.Grade, e.Description) {
				return true
			}
		}
	case SectionSkills:
		for _, e := range d.Skills {
			if anyNonBlank(e.Category, e.Skills, e.Skill) {
				return true
			}
		}
	case SectionProjects:
		for _, e := range d.Projects {
			if anyNonBlank(e.ProjectName, e.Description, e.Link) {
				return true
			}
		}
	case SectionLanguages:
		for _, e := range d.Languages {
			if anyNonBlank(e.Language) {
				return true
			}
		}
	case SectionCertifications:
		for _, e := range d.Certifications {
			if anyNonBlank(e.CertificationName, e.IssuingOrganization, e.IssueDate) {
				return true
			}
		}
	case SectionCustomSections:
		for _, e := range d.CustomSections {
			if anyNonBlank(e.SectionTitle, e.Content) {
				return true
			}
		}
	}
	return false
}

func anyNonBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
