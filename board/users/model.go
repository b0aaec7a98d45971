package users

import (
	"strings"
)

// Credentials shown on a profile card.
type Credentials struct {
	Employment  *Employment `bson:"employment,omitempty" json:"employment,omitempty"`
	Education   *Education  `bson:"education,omitempty" json:"education,omitempty"`
	Location    *Location   `bson:"location,omitempty" json:"location,omitempty"`
	Profile     string      `bson:"profile,omitempty" json:"profile,omitempty"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
}

// Credential is one independently validated part of the credentials.
type Credential interface {
	Key() string
	Meaningful() bool
}

type Employment struct {
	Position  string `bson:"position,omitempty" json:"position,omitempty"`
	Company   string `bson:"company,omitempty" json:"company,omitempty"`
	StartYear int    `bson:"start_year,omitempty" json:"start_year,omitempty"`
	EndYear   int    `bson:"end_year,omitempty" json:"end_year,omitempty"`
	IsCurrent bool   `bson:"is_current,omitempty" json:"is_current,omitempty"`
}

func (Employment) Key() string { return "employment" }

func (e Employment) Meaningful() bool {
	return blank(e.Position, e.Company) < 2
}

type Education struct {
	School         string `bson:"school,omitempty" json:"school,omitempty"`
	PrimaryMajor   string `bson:"primary_major,omitempty" json:"primary_major,omitempty"`
	SecondaryMajor string `bson:"secondary_major,omitempty" json:"secondary_major,omitempty"`
	Degree         string `bson:"degree,omitempty" json:"degree,omitempty"`
	GraduationYear int    `bson:"graduation_year,omitempty" json:"graduation_year,omitempty"`
}

func (Education) Key() string { return "education" }

// Meaningful with a school, or with both majors.
func (e Education) Meaningful() bool {
	return blank(e.School) == 0 || blank(e.PrimaryMajor, e.SecondaryMajor) == 0
}

type Location struct {
	Address   string `bson:"address,omitempty" json:"address,omitempty"`
	StartYear int    `bson:"start_year,omitempty" json:"start_year,omitempty"`
	EndYear   int    `bson:"end_year,omitempty" json:"end_year,omitempty"`
	IsCurrent bool   `bson:"is_current,omitempty" json:"is_current,omitempty"`
}

func (Location) Key() string { return "location" }

func (l Location) Meaningful() bool {
	return blank(l.Address) == 0
}

func blank(values ...string) (n int) {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			n++
		}
	}
	return
}

// Languages a user may read and write in.
var Languages = []string{
	"english", "hindi", "sanskrit", "punjabi", "marathi", "gujarati",
	"bengali", "tamil", "telugu", "kannada", "malayalam", "kashmiri",
	"urdu", "espanol", "portuguese", "italian", "french", "spanish",
	"german", "japanese", "chinese", "korean", "arabic", "indonesian",
	"vietnamese", "netherlands", "bhojpuri", "nepali",
}

// Language normalizes and checks a language name.
func Language(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, l := range Languages {
		if l == name {
			return name, true
		}
	}
	return name, false
}
