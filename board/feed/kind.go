package feed

import (
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/exceptions"
)

// Kind is the shape of content a feed returns.
type Kind string

const (
	Question Kind = "question"
	Answer   Kind = "answer"
	Post     Kind = "post"
)

// Kinds in the order mixed results are listed.
var Kinds = []Kind{Question, Answer, Post}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", exceptions.Invalid("unknown content type %q", s)
}

func (k Kind) Collection() store.Collection {
	if k == Question {
		return store.Questions
	}
	return store.Posts
}

// Scope narrows criteria to what a kind may show: public questions and
// published, live posts of the right content type.
func (k Kind) Scope(where store.Criteria) store.Criteria {
	switch k {
	case Question:
		where.Public = true
	case Answer, Post:
		where.Published = true
		where.ContentType = string(k)
	}
	return where
}
