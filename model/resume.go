package model

// FeaturedSkillCapacity is the fixed number of featured skill slots.
const FeaturedSkillCapacity = 6

// Profile holds the contact header of a resume.
type Profile struct {
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	URL      string `json:"url" yaml:"url"`
	Summary  string `json:"summary" yaml:"summary"`
	Location string `json:"location" yaml:"location"`
}

// Education is one school entry.
type Education struct {
	School       string   `json:"school" yaml:"school"`
	Degree       string   `json:"degree" yaml:"degree"`
	Date         string   `json:"date" yaml:"date"`
	GPA          string   `json:"gpa" yaml:"gpa"`
	Descriptions []string `json:"descriptions" yaml:"descriptions"`
}

// WorkExperience is one job entry.
type WorkExperience struct {
	Company      string   `json:"company" yaml:"company"`
	JobTitle     string   `json:"jobTitle" yaml:"jobTitle"`
	Date         string   `json:"date" yaml:"date"`
	Descriptions []string `json:"descriptions" yaml:"descriptions"`
}

// Project is one project entry.
type Project struct {
	Project      string   `json:"project" yaml:"project"`
	Date         string   `json:"date" yaml:"date"`
	Descriptions []string `json:"descriptions" yaml:"descriptions"`
}

// FeaturedSkill is a skill name with a 0-5 rating. Rating 0 means no rating
// was found.
type FeaturedSkill struct {
	Skill  string `json:"skill" yaml:"skill"`
	Rating int    `json:"rating" yaml:"rating"`
}

// Skills holds the featured skill slots and free-text descriptions.
type Skills struct {
	FeaturedSkills []FeaturedSkill `json:"featuredSkills" yaml:"featuredSkills"`
	Descriptions   []string        `json:"descriptions" yaml:"descriptions"`
}

// Custom holds descriptions from sections that fit no other category.
type Custom struct {
	Descriptions []string `json:"descriptions" yaml:"descriptions"`
}

// Resume is the structured result of parsing one document.
type Resume struct {
	Profile         Profile          `json:"profile" yaml:"profile"`
	Educations      []Education      `json:"educations" yaml:"educations"`
	WorkExperiences []WorkExperience `json:"workExperiences" yaml:"workExperiences"`
	Projects        []Project        `json:"projects" yaml:"projects"`
	Skills          Skills           `json:"skills" yaml:"skills"`
	Custom          Custom           `json:"custom" yaml:"custom"`
}

// PrivacyFlags records which consent statements were found in a document.
type PrivacyFlags struct {
	Italy bool `json:"italyPrivacy" yaml:"italyPrivacy"`
	EU    bool `json:"euPrivacy" yaml:"euPrivacy"`
}

// ParseResult pairs the extracted resume with its privacy flags.
type ParseResult struct {
	Resume  Resume       `json:"resume" yaml:"resume"`
	Privacy PrivacyFlags `json:"privacy" yaml:"privacy"`
}

// NewSkills returns Skills with every featured slot present and empty.
func NewSkills() Skills {
	return Skills{
		FeaturedSkills: make([]FeaturedSkill, FeaturedSkillCapacity),
		Descriptions:   []string{},
	}
}

// NewResume returns a Resume whose list fields are empty rather than nil, so
// it serialises with [] instead of null.
func NewResume() Resume {
	return Resume{
		Educations:      []Education{},
		WorkExperiences: []WorkExperience{},
		Projects:        []Project{},
		Skills:          NewSkills(),
		Custom:          Custom{Descriptions: []string{}},
	}
}

// Normalize replaces nil slices with empty ones and pads or truncates the
// featured skills to FeaturedSkillCapacity. Values decoded from external
// payloads go through it before use.
func (r *Resume) Normalize() {
	if r.Educations == nil {
		r.Educations = []Education{}
	}
	for i := range r.Educations {
		r.Educations[i].Descriptions = nonNil(r.Educations[i].Descriptions)
	}
	if r.WorkExperiences == nil {
		r.WorkExperiences = []WorkExperience{}
	}
	for i := range r.WorkExperiences {
		r.WorkExperiences[i].Descriptions = nonNil(r.WorkExperiences[i].Descriptions)
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		r.Projects[i].Descriptions = nonNil(r.Projects[i].Descriptions)
	}

	featured := make([]FeaturedSkill, FeaturedSkillCapacity)
	copy(featured, r.Skills.FeaturedSkills)
	r.Skills.FeaturedSkills = featured
	r.Skills.Descriptions = nonNil(r.Skills.Descriptions)
	r.Custom.Descriptions = nonNil(r.Custom.Descriptions)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
