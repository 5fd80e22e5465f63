package cv

import "strings"

// Placeholder is the sentinel the extraction prompt asks the model to emit
// for any value the conversation never supplied. Rendering distinguishes an
// absent group (section omitted) from a present-but-unspecified field
// (placeholder shown), so scalar fields must never stay empty.
const Placeholder = "Da specificare"

// Record is the normalized CV produced by extraction. All fields are optional
// at the type level; Normalize fills absent scalars with Placeholder.
type Record struct {
	PersonalInfo        PersonalInfo    `json:"personalInfo"`
	ProfessionalSummary string          `json:"professionalSummary"`
	WorkExperience      []Experience    `json:"workExperience"`
	Skills              []string        `json:"skills"`
	Languages           []LanguageSkill `json:"languages"`
	Education           []Education     `json:"education"`
	References          string          `json:"references"`
}

// PersonalInfo is the identity block at the top of the CV.
type PersonalInfo struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Nationality string `json:"nationality"`
}

// Experience is one work-history entry, most recent first.
type Experience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// LanguageSkill pairs a spoken language with a proficiency level (A1-C2 or
// "Madrelingua").
type LanguageSkill struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// Education is one credential entry.
type Education struct {
	Title       string `json:"title"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Location    string `json:"location"`
}

// Normalize substitutes Placeholder for every blank scalar field so the
// record is an independently renderable snapshot. List entries are normalized
// in place; empty lists stay empty (their sections are omitted by rendering).
func (r *Record) Normalize() {
	fill(&r.PersonalInfo.Name)
	fill(&r.PersonalInfo.Phone)
	fill(&r.PersonalInfo.Email)
	fill(&r.PersonalInfo.Address)
	fill(&r.PersonalInfo.Nationality)
	fill(&r.ProfessionalSummary)
	fill(&r.References)

	for i := range r.WorkExperience {
		exp := &r.WorkExperience[i]
		fill(&exp.Position)
		fill(&exp.Company)
		fill(&exp.Location)
		fill(&exp.Period)
		fill(&exp.Description)
	}
	for i := range r.Languages {
		fill(&r.Languages[i].Language)
		fill(&r.Languages[i].Level)
	}
	for i := range r.Education {
		edu := &r.Education[i]
		fill(&edu.Title)
		fill(&edu.Institution)
		fill(&edu.Year)
		fill(&edu.Location)
	}
}

func fill(field *string) {
	if strings.TrimSpace(*field) == "" {
		*field = Placeholder
	}
}
