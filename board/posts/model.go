package posts

import (
	"time"

	"github.com/tryanzu/quorum/board/store"
	"gopkg.in/mgo.v2/bson"
)

// Content types.
const (
	POST   = "post"
	ANSWER = "answer"
)

type Post struct {
	ID          bson.ObjectId   `bson:"_id,omitempty" json:"id,omitempty"`
	Content     string          `bson:"content" json:"content"`
	SearchText  string          `bson:"search_text" json:"-"`
	CreatedBy   bson.ObjectId   `bson:"created_by" json:"created_by"`
	QuestionID  bson.ObjectId   `bson:"question_id,omitempty" json:"question_id,omitempty"`
	ContentType string          `bson:"content_type" json:"content_type"`
	Upvotes     []bson.ObjectId `bson:"upvotes" json:"-"`
	Downvotes   []bson.ObjectId `bson:"downvotes" json:"-"`
	Images      []string        `bson:"images" json:"images"`
	IsPublished bool            `bson:"is_published" json:"is_published"`
	IsDeleted   bool            `bson:"is_deleted" json:"is_deleted"`
	Deleted     *time.Time      `bson:"deleted_at" json:"deleted_at,omitempty"`
	Created     time.Time       `bson:"created_at" json:"created_at"`
	Updated     time.Time       `bson:"updated_at" json:"updated_at"`
}

func (Post) VotableType() store.Collection {
	return store.Posts
}

func (p Post) VotableID() bson.ObjectId {
	return p.ID
}

func (p Post) IsAnswer() bool {
	return p.ContentType == ANSWER
}

// Posts list.
type Posts []Post

func (list Posts) IDs() []bson.ObjectId {
	m := make([]bson.ObjectId, len(list))
	for k, item := range list {
		m[k] = item.ID
	}
	return m
}

// Form is the payload of a new post or answer. Content is an opaque
// serialized document; SearchText is derived from it when left empty.
type Form struct {
	Content    string   `json:"content" validate:"required"`
	SearchText string   `json:"search_text"`
	QuestionID string   `json:"question_id"`
	Images     []string `json:"images" validate:"max=10"`
}
