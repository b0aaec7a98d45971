// Package dal fills an empty board with a small, browsable data set.
package dal

import (
	"context"
	"time"

	"github.com/tryanzu/quorum/board/comments"
	"github.com/tryanzu/quorum/board/posts"
	"github.com/tryanzu/quorum/board/questions"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/users"
	"github.com/tryanzu/quorum/core/config"
	"gopkg.in/mgo.v2/bson"
)

type deps interface {
	Store() store.Repository
	Sequencer() store.Sequencer
	Board() config.Board
}

// Seeded lists what Seed created.
type Seeded struct {
	Users     []bson.ObjectId
	Questions []bson.ObjectId
	Answers   []bson.ObjectId
}

func user(ctx context.Context, d deps, username string) (bson.ObjectId, error) {
	id := bson.NewObjectId()
	err := d.Store().Insert(ctx, store.Users, bson.M{
		"_id":         id,
		"username":    username,
		"email":       username + "@local.domain",
		"is_verified": true,
		"followers":   []bson.ObjectId{},
		"following":   []bson.ObjectId{},
		"bookmarks":   []bson.ObjectId{},
		"posts":       []bson.ObjectId{},
		"language":    bson.M{"primary": "english", "additional": []string{"english"}},
		"created_at":  time.Now(),
	})
	return id, err
}

// Seed creates two users who ask, answer, comment on and follow each other.
func Seed(ctx context.Context, d deps) (seeded Seeded, err error) {
	admin, err := user(ctx, d, "admin")
	if err != nil {
		return
	}
	guest, err := user(ctx, d, "guest")
	if err != nil {
		return
	}
	seeded.Users = []bson.ObjectId{admin, guest}

	q, err := questions.Create(ctx, d, admin, questions.Form{Question: "What is this board about?"})
	if err != nil {
		return
	}
	seeded.Questions = append(seeded.Questions, q.ID)

	answer, err := posts.Create(ctx, d, guest, posts.Form{
		Content:    "<p>Asking, answering and discussing.</p>",
		QuestionID: q.ID.Hex(),
	}, true)
	if err != nil {
		return
	}
	seeded.Answers = append(seeded.Answers, answer.ID)

	root, err := comments.Insert(ctx, d, answer.ID, "Welcome!", admin, nil)
	if err != nil {
		return
	}
	if _, err = comments.Insert(ctx, d, answer.ID, "Thanks", guest, root.Path); err != nil {
		return
	}
	if _, err = users.ToggleFollow(ctx, d, guest, admin); err != nil {
		return
	}
	return seeded, nil
}
