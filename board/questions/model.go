package questions

import (
	"time"

	"github.com/tryanzu/quorum/board/store"
	"gopkg.in/mgo.v2/bson"
)

const (
	OPEN   = "open"
	CLOSED = "closed"
)

type Question struct {
	ID        bson.ObjectId   `bson:"_id,omitempty" json:"id,omitempty"`
	Question  string          `bson:"question" json:"question"`
	CreatedBy bson.ObjectId   `bson:"created_by" json:"created_by"`
	Tags      []string        `bson:"tags" json:"tags"`
	IsPublic  bool            `bson:"is_public" json:"is_public"`
	Answers   []bson.ObjectId `bson:"answers" json:"-"`
	Downvotes []bson.ObjectId `bson:"downvotes" json:"-"`
	Views     int             `bson:"views" json:"views"`
	Status    string          `bson:"status" json:"status"`
	Created   time.Time       `bson:"created_at" json:"created_at"`
	Updated   time.Time       `bson:"updated_at" json:"updated_at"`
}

func (Question) VotableType() store.Collection {
	return store.Questions
}

func (q Question) VotableID() bson.ObjectId {
	return q.ID
}

// Slug is how the question is addressed in detail urls.
func (q Question) Slug() string {
	slug := store.Slugify(q.Question)
	if len(slug) > 0 && slug[len(slug)-1] == '?' {
		slug = slug[:len(slug)-1]
	}
	return slug
}

// Form is what a user submits to ask.
type Form struct {
	Question string   `json:"question" validate:"required,max=150"`
	Tags     []string `json:"tags" validate:"max=10"`

	// Public unless told otherwise.
	IsPublic *bool `json:"is_public"`
}
