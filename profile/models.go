// Package profile maintains the one-to-one mapping from user to profile and
// the two ordered sub-collections inside it (experience and education).
// Sub-collection mutations are single-statement updates against the profile
// row, so concurrent edits on the same profile serialize on the row lock and
// no append is lost.
package profile

import "time"

// Owner is the slice of the owning user joined into every profile response.
type Owner struct {
	ID     int32  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// SocialLinks holds the optional social profile URLs. Only the keys supplied
// on upsert are stored.
type SocialLinks struct {
	Youtube   *string `json:"youtube,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
}

// Experience is one entry of the profile's experience sequence. The id is
// assigned at insertion and is unique within the profile. Dates are carried
// as the strings the client sent; no format is imposed beyond presence.
type Experience struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    *string `json:"location,omitempty"`
	From        string  `json:"from"`
	To          *string `json:"to,omitempty"`
	Current     bool    `json:"current"`
	Description *string `json:"description,omitempty"`
}

// Education is one entry of the profile's education sequence, with the same
// lifecycle as Experience.
type Education struct {
	ID           string  `json:"id"`
	School       string  `json:"school"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"fieldofstudy"`
	From         string  `json:"from"`
	To           *string `json:"to,omitempty"`
	Current      bool    `json:"current"`
	Description  *string `json:"description,omitempty"`
}

// Profile is the per-user career record, joined with the owner's name and
// avatar. At most one profile exists per user.
type Profile struct {
	User           Owner        `json:"user"`
	Company        *string      `json:"company,omitempty"`
	Website        *string      `json:"website,omitempty"`
	Location       *string      `json:"location,omitempty"`
	Bio            *string      `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername *string      `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
