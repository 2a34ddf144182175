package profile

import "strings"

// UpsertProfileRequest is the payload for creating or updating the caller's
// profile. Only status and skills are required; every other field is sparse:
// absent fields are left untouched on update and omitted on creation.
type UpsertProfileRequest struct {
	Status         string  `json:"status" validate:"required" example:"Developer"`
	Skills         string  `json:"skills" validate:"required" example:"Go,PostgreSQL,React"`
	Company        *string `json:"company,omitempty"`
	Website        *string `json:"website,omitempty"`
	Location       *string `json:"location,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	GithubUsername *string `json:"githubusername,omitempty"`
	Youtube        *string `json:"youtube,omitempty"`
	Twitter        *string `json:"twitter,omitempty"`
	Linkedin       *string `json:"linkedin,omitempty"`
	Instagram      *string `json:"instagram,omitempty"`
	Facebook       *string `json:"facebook,omitempty"`
}

// AddExperienceRequest is the payload for appending an experience entry.
type AddExperienceRequest struct {
	Title       string  `json:"title" validate:"required"`
	Company     string  `json:"company" validate:"required"`
	From        string  `json:"from" validate:"required"`
	Location    *string `json:"location,omitempty"`
	To          *string `json:"to,omitempty"`
	Current     bool    `json:"current"`
	Description *string `json:"description,omitempty"`
}

// AddEducationRequest is the payload for appending an education entry.
type AddEducationRequest struct {
	School       string  `json:"school" validate:"required"`
	Degree       string  `json:"degree" validate:"required"`
	FieldOfStudy string  `json:"fieldofstudy" validate:"required"`
	From         string  `json:"from" validate:"required"`
	To           *string `json:"to,omitempty"`
	Current      bool    `json:"current"`
	Description  *string `json:"description,omitempty"`
}

// SplitSkills normalizes the comma-separated skills input into an ordered
// sequence of trimmed strings: "a, b ,c" becomes ["a","b","c"].
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
