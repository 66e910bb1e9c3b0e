// Package wizard drives the multi-step resume builder: an ordered sequence of
// validated steps producing a resume document, with draft persistence so a
// dropped session can pick up where it left off.
package wizard

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-studio/internal/resume"
)

// Step identifies one stage of the builder.
type Step int

// The fixed step sequence.
const (
	StepPersonalInfo Step = iota
	StepObjective
	StepJobTitle
	StepWorkExperience
	StepProjects
	StepEducation
	StepSkills
	StepLanguages
	StepCertifications

	stepCount
)

var stepNames = [...]string{
	"Personal Info",
	"Objective",
	"Job Title",
	"Work Experience",
	"Projects",
	"Education",
	"Skills",
	"Languages",
	"Certifications",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// StepCount is the number of wizard steps.
func StepCount() int { return int(stepCount) }

// LastStep is the terminal step; submitting from it saves the document.
func LastStep() Step { return stepCount - 1 }

// FieldError is one per-field validation failure, addressed the same way the
// editor addresses fields so the UI can attach messages inline.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates the failures that block a step transition.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var validate = validator.New()

// checker accumulates field-level rule failures for one step.
type checker struct {
	errs ValidationErrors
}

func (c *checker) field(path, value, tag string) {
	if err := validate.Var(value, tag); err != nil {
		c.errs = append(c.errs, FieldError{Field: path, Message: messageFor(err)})
	}
}

func messageFor(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if ok && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return "This field is required"
		case "email":
			return "Enter a valid email address"
		case "url":
			return "Enter a valid URL"
		case "oneof":
			return "Choose one of the listed options"
		case "max":
			return fmt.Sprintf("Must be at most %s characters", verrs[0].Param())
		}
	}
	return "Invalid value"
}

// ValidateStep checks one step of the document against its schema. List
// sections are independently optional: fully blank rows pass, but a row with
// any content must satisfy its required fields.
func ValidateStep(step Step, doc resume.Document) ValidationErrors {
	c := &checker{}
	switch step {
	case StepPersonalInfo:
		p := doc.PersonalDetails
		c.field("personalDetails.fullName", p.FullName, "required,max=100")
		c.field("personalDetails.email", p.Email, "required,email")
		c.field("personalDetails.phone", p.Phone, "omitempty,max=30")
		c.field("personalDetails.linkedin", p.LinkedIn, "omitempty,max=200")
		c.field("personalDetails.github", p.GitHub, "omitempty,max=200")
		c.field("personalDetails.location", p.Location, "omitempty,max=100")
	case StepObjective:
		c.field("objective", doc.Objective, "omitempty,max=500")
	case StepJobTitle:
		c.field("jobTitle", doc.JobTitle, "omitempty,max=100")
	case StepWorkExperience:
		for i, e := range doc.WorkExperience {
			if !anySet(e.JobTitle, e.CompanyName, e.Location, e.StartDate, e.EndDate, e.Description) {
				continue
			}
			prefix := fmt.Sprintf("workExperience[%d].", i)
			c.field(prefix+"jobTitle", e.JobTitle, "required,max=100")
			c.field(prefix+"companyName", e.CompanyName, "required,max=100")
			c.field(prefix+"startDate", e.StartDate, "omitempty,max=30")
			c.field(prefix+"endDate", e.EndDate, "omitempty,max=30")
			c.field(prefix+"description", e.Description, "omitempty,max=1000")
		}
	case StepProjects:
		for i, e := range doc.Projects {
			if !anySet(e.ProjectName, e.Description, e.Link) {
				continue
			}
			prefix := fmt.Sprintf("projects[%d].", i)
			c.field(prefix+"projectName", e.ProjectName, "required,max=100")
			c.field(prefix+"description", e.Description, "omitempty,max=1000")
			c.field(prefix+"link", e.Link, "omitempty,url|startswith=www.,max=200")
		}
	case StepEducation:
		for i, e := range doc.Education {
			if !anySet(e.Degree, e.Institution, e.Location, e.StartDate, e.EndDate, e.Grade, e.Description) {
				continue
			}
			prefix := fmt.Sprintf("education[%d].", i)
			c.field(prefix+"degree", e.Degree, "required,max=100")
			c.field(prefix+"institution", e.Institution, "required,max=150")
			c.field(prefix+"grade", e.Grade, "omitempty,max=50")
			c.field(prefix+"description", e.Description, "omitempty,max=500")
		}
	case StepSkills:
		for i, e := range doc.Skills {
			if !anySet(e.Category, e.Skills, e.Skill) {
				continue
			}
			prefix := fmt.Sprintf("skills[%d].", i)
			if e.SkillType == resume.SkillTypeIndividual {
				c.field(prefix+"skill", e.Skill, "required,max=100")
			} else {
				c.field(prefix+"category", e.Category, "required,max=100")
				c.field(prefix+"skills", e.Skills, "required,max=300")
			}
		}
	case StepLanguages:
		for i, e := range doc.Languages {
			if !anySet(e.Language) {
				continue
			}
			prefix := fmt.Sprintf("languages[%d].", i)
			c.field(prefix+"language", e.Language, "required,max=50")
			c.field(prefix+"proficiency", e.Proficiency, "omitempty,oneof=Basic Fluent Native")
		}
	case StepCertifications:
		for i, e := range doc.Certifications {
			if !anySet(e.CertificationName, e.IssuingOrganization, e.IssueDate) {
				continue
			}
			prefix := fmt.Sprintf("certifications[%d].", i)
			c.field(prefix+"certificationName", e.CertificationName, "required,max=150")
			c.field(prefix+"issuingOrganization", e.IssuingOrganization, "omitempty,max=150")
			c.field(prefix+"issueDate", e.IssueDate, "omitempty,max=30")
		}
	}
	return c.errs
}

func anySet(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
