package resume

// Section names a top-level block of the resume.
type Section string

// The closed set of orderable sections. PersonalDetails always renders first
// and is not part of the order.
const (
	SectionPersonalDetails Section = "personalDetails"
	SectionObjective       Section = "objective"
	SectionJobTitle        Section = "jobTitle"
	SectionWorkExperience  Section = "workExperience"
	SectionProjects        Section = "projects"
	SectionEducation       Section = "education"
	SectionSkills          Section = "skills"
	SectionCertifications  Section = "certifications"
	SectionLanguages       Section = "languages"
	SectionCustomSections  Section = "customSections"
)

// DefaultOrder returns the fixed fallback ordering of orderable sections.
func DefaultOrder() []Section {
	return []Section{
		SectionObjective,
		SectionWorkExperience,
		SectionProjects,
		SectionEducation,
		SectionSkills,
		SectionCertifications,
		SectionLanguages,
		SectionCustomSections,
	}
}

// orderable is the membership set behind NormalizeOrder.
var orderable = func() map[Section]bool {
	m := make(map[Section]bool)
	for _, s := range DefaultOrder() {
		m[s] = true
	}
	return m
}()

// NormalizeOrder coerces an arbitrary order into a permutation of the fixed
// section key set: unknown keys and duplicates are dropped, missing keys are
// appended in default order. A nil or empty input yields the default order.
func NormalizeOrder(order []Section) []Section {
	out := make([]Section, 0, len(orderable))
	seen := make(map[Section]bool, len(orderable))
	for _, s := range order {
		if orderable[s] && !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	for _, s := range DefaultOrder() {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}

// MoveUp returns the order with element i swapped one position earlier.
// Moving the first element (or an out-of-range index) is a no-op.
func MoveUp(order []Section, i int) []Section {
	out := append([]Section(nil), order...)
	if i <= 0 || i >= len(out) {
		return out
	}
	out[i-1], out[i] = out[i], out[i-1]
	return out
}

// MoveDown returns the order with element i swapped one position later.
// Moving the last element (or an out-of-range index) is a no-op.
func MoveDown(order []Section, i int) []Section {
	out := append([]Section(nil), order...)
	if i < 0 || i >= len(out)-1 {
		return out
	}
	out[i], out[i+1] = out[i+1], out[i]
	return out
}

// MoveTo returns the order with the element at from repositioned to index to,
// shifting everything in between. This is the drag-reorder operation; a
// sequence of single-step swaps expressing the same logical move converges to
// the same permutation. Out-of-range indices are a no-op.
func MoveTo(order []Section, from, to int) []Section {
	out := append([]Section(nil), order...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	s := out[from]
	out = append(out[:from], out[from+1:]...)
	rest := append([]Section(nil), out[to:]...)
	out = append(append(out[:to:to], s), rest...)
	return out
}
