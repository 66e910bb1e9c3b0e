package resume

import "fmt"

// FieldRef addresses exactly one leaf value in a document as a
// (section, index, fieldName) triple. Construct one with Singular or Indexed;
// the constructors reject (section, field) combinations that do not exist, so
// a FieldRef in hand is always addressable modulo array bounds.
type FieldRef struct {
	section Section
	field   string
	index   int // -1 for singular sections
}

// Section returns the addressed section.
func (r FieldRef) Section() Section { return r.section }

// Field returns the addressed field name.
func (r FieldRef) Field() string { return r.field }

// Index returns the array index, or -1 for a singular field.
func (r FieldRef) Index() int { return r.index }

// Singular reports whether the ref addresses a non-array field.
func (r FieldRef) Singular() bool { return r.index < 0 }

func (r FieldRef) String() string {
	if r.Singular() {
		if r.section == SectionObjective || r.section == SectionJobTitle {
			return string(r.section)
		}
		return fmt.Sprintf("%s.%s", r.section, r.field)
	}
	return fmt.Sprintf("%s[%d].%s", r.section, r.index, r.field)
}

// ErrBadFieldRef indicates a (section, index, field) combination that does not
// address a leaf in the document model.
type ErrBadFieldRef struct {
	Section Section
	Field   string
	Reason  string
}

func (e *ErrBadFieldRef) Error() string {
	return fmt.Sprintf("invalid field ref %s.%s: %s", e.Section, e.Field, e.Reason)
}

// singularFields maps singular sections to their addressable fields. The
// scalar sections objective and jobTitle address themselves, mirroring the
// editor's updateField('objective', null, 'objective', v) convention.
var singularFields = map[Section]map[string]bool{
	SectionPersonalDetails: {
		"fullName": true, "email": true, "phone": true,
		"linkedin": true, "github": true, "location": true,
	},
	SectionObjective: {"objective": true},
	SectionJobTitle:  {"jobTitle": true},
}

// indexedFields maps array sections to their addressable element fields.
var indexedFields = map[Section]map[string]bool{
	SectionWorkExperience: {
		"jobTitle": true, "companyName": true, "location": true,
		"startDate": true, "endDate": true, "description": true,
	},
	SectionEducation: {
		"degree": true, "institution": true, "location": true,
		"startDate": true, "endDate": true, "grade": true, "description": true,
	},
	SectionSkills: {
		"skillType": true, "category": true, "skills": true, "skill": true,
	},
	SectionProjects: {
		"projectName": true, "description": true, "link": true,
	},
	SectionLanguages: {
		"language": true, "proficiency": true,
	},
	SectionCertifications: {
		"certificationName": true, "issuingOrganization": true, "issueDate": true,
	},
	SectionCustomSections: {
		"sectionTitle": true, "content": true,
	},
}

// Singular builds a ref to a non-array field such as personalDetails.email or
// the objective scalar.
func Singular(section Section, field string) (FieldRef, error) {
	fields, ok := singularFields[section]
	if !ok {
		return FieldRef{}, &ErrBadFieldRef{Section: section, Field: field, Reason: "not a singular section"}
	}
	if !fields[field] {
		return FieldRef{}, &ErrBadFieldRef{Section: section, Field: field, Reason: "unknown field"}
	}
	return FieldRef{section: section, field: field, index: -1}, nil
}

// Indexed builds a ref to a field of one element of an array section.
// Bounds are checked against the document at update time, not here.
func Indexed(section Section, index int, field string) (FieldRef, error) {
	fields, ok := indexedFields[section]
	if !ok {
		return FieldRef{}, &ErrBadFieldRef{Section: section, Field: field, Reason: "not an array section"}
	}
	if !fields[field] {
		return FieldRef{}, &ErrBadFieldRef{Section: section, Field: field, Reason: "unknown field"}
	}
	if index < 0 {
		return FieldRef{}, &ErrBadFieldRef{Section: section, Field: field, Reason: "negative index"}
	}
	return FieldRef{section: section, field: field, index: index}, nil
}

// ParseFieldRef builds a ref from the loose (section, index, field) form used
// on the wire, where a nil index denotes a singular field.
func ParseFieldRef(section string, index *int, field string) (FieldRef, error) {
	if index == nil {
		return Singular(Section(section), field)
	}
	return Indexed(Section(section), *index, field)
}

// ErrIndexOutOfRange indicates an indexed update beyond the array's bounds.
// Updates never grow arrays; use the explicit row append operations instead.
type ErrIndexOutOfRange struct {
	Section Section
	Index   int
	Len     int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("%s[%d] out of range (len %d)", e.Section, e.Index, e.Len)
}

// UpdateField returns a copy of the document with exactly the addressed leaf
// replaced. Untouched array sections share their backing arrays with the
// input; the addressed array is copied so siblings of the updated element stay
// byte-identical with the original.
func (d Document) UpdateField(ref FieldRef, value string) (Document, error) {
	out := d
	if ref.Singular() {
		out.setSingular(ref, value)
		return out, nil
	}
	if err := out.setIndexed(ref, value); err != nil {
		return Document{}, err
	}
	return out, nil
}

func (d *Document) setSingular(ref FieldRef, value string) {
	switch ref.section {
	case SectionObjective:
		d.Objective = value
	case SectionJobTitle:
		d.JobTitle = value
	case SectionPersonalDetails:
		switch ref.field {
		case "fullName":
			d.PersonalDetails.FullName = value
		case "email":
			d.PersonalDetails.Email = value
		case "phone":
			d.PersonalDetails.Phone = value
		case "linkedin":
			d.PersonalDetails.LinkedIn = value
		case "github":
			d.PersonalDetails.GitHub = value
		case "location":
			d.PersonalDetails.Location = value
		}
	}
}

func (d *Document) setIndexed(ref FieldRef, value string) error {
	switch ref.section {
	case SectionWorkExperience:
		if ref.index >= len(d.WorkExperience) {
			return &ErrIndexOutOfRange{Section: ref.section, Index: ref.index, Len: len(d.WorkExperience)}
		}
		entries := append([]WorkExperience(nil), d.WorkExperience...)
		e := &entries[ref.index]
		switch ref.field {
		case "jobTitle":
			e.JobTitle = value
		case "companyName":
			e.CompanyName = value
		case "location":
			e.Location = value
		case "startDate":
			e.StartDate = value
		case "endDate":
			e.EndDate = value
		case "description":
			e.Description = value
		}
		d.WorkExperience = entries
	case SectionEducation:
		if ref.index >= len(d.Education) {
			return &ErrIndexOutOfRange{Section: ref.section, Index: ref.index, Len: len(d.Education)}
		}
		entries := append([]Education(nil), d.Education...)
		e := &entries[ref.index]
		switch ref.field {
		case "degree":
			e.Degree = value
		case "institution":
			e.Institution = value
		case "location":
			e.Location = value
		case "startDate":
			e.StartDate = value
		case "endDate":
			e.EndDate = value
		case "grade":
			e.Grade = value
		case "description":
			e.Description = value
		}
		d.Education = entries
	case SectionSkills:
		if ref.index >= len(d.Skills) {
			return &ErrIndexOutOfRange{Section: ref.section, Index: ref.index, Len: len(d.Skills)}
		}
		entries := append([]Skill(nil), d.Skills...)
		e := &entries[ref.index]
		switch ref.field {
		case "skillType":
			e.SkillType = value
		case "category":
			e.Category = value
		case "skills":
			e.Skills = value
		case "skill":
			e.Skill = value
		}
		d.Skills = entries
	case SectionProjects:
		if ref.index >= len(d.Projects) {
			return &ErrIndexOutOfRange{Section: ref.section, Index: ref.index, Len: len(d.Projects)}
		}
		entries := append([]Project(nil), d.Projects...)
		e := &entries[ref.index]
		switch ref.field {
		case "projectName":
			e.ProjectName = value
		case "description":
			e.Description = value
		case "link":
			e.Link = value
		}
		d.Projects = entries
	case SectionLanguages:
		if ref.index >= len(d.Languages) {
			return &ErrIndexOutOfRange{Section: ref.section, Index: ref.index, Len: len(d.Languages)}
		}
		entries := append([]Language(nil), d.Languages...)
		e := &entries[ref.index]
		switch ref.field {
		case "language":
			e.Language = value
		case "proficiency":
			e.Proficiency = value
		}
		d.Languages = entries
	case SectionCertifications:
		if ref.index >= len(d.Certifications) {
			return &ErrIndexOutOfRange{Section: ref.section, Index: ref.index, Len: len(d.Certifications)}
		}
		entries := append([]Certification(nil), d.Certifications...)
		e := &entries[ref.index]
		switch ref.field {
		case "certificationName":
			e.CertificationName = value
		case "issuingOrganization":
			e.IssuingOrganization = value
		case "issueDate":
			e.IssueDate = value
		}
		d.Certifications = entries
	case SectionCustomSections:
		if ref.index >= len(d.CustomSections) {
			return &ErrIndexOutOfRange{Section: ref.section, Index: ref.index, Len: len(d.CustomSections)}
		}
		entries := append([]CustomSection(nil), d.CustomSections...)
		e := &entries[ref.index]
		switch ref.field {
		case "sectionTitle":
			e.SectionTitle = value
		case "content":
			e.Content = value
		}
		d.CustomSections = entries
	}
	return nil
}
