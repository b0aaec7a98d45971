// Package boardtest wires the board packages over the in-memory repository
// and seeds the documents their tests need.
package boardtest

import (
	"context"
	"time"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/config"
	"gopkg.in/mgo.v2/bson"
)

type Deps struct {
	Repo  *store.Memory
	Seq   store.Sequencer
	Shape config.Board

	clock time.Time
}

func New() *Deps {
	return &Deps{
		Repo:  store.NewMemory(),
		Shape: config.DefaultBoard(),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (d *Deps) Store() store.Repository {
	return d.Repo
}

func (d *Deps) Sequencer() store.Sequencer {
	return d.Seq
}

func (d *Deps) Board() config.Board {
	return d.Shape
}

// tick hands out strictly increasing creation times.
func (d *Deps) tick() time.Time {
	d.clock = d.clock.Add(time.Minute)
	return d.clock
}

func (d *Deps) insert(c store.Collection, doc bson.M) bson.ObjectId {
	id, ok := doc["_id"].(bson.ObjectId)
	if !ok {
		id = bson.NewObjectId()
		doc["_id"] = id
	}
	if _, ok := doc["created_at"]; !ok {
		doc["created_at"] = d.tick()
	}
	if err := d.Repo.Insert(context.Background(), c, doc); err != nil {
		panic(err)
	}
	return id
}

// User seeds a user carrying every private field the redaction policy knows.
func (d *Deps) User(username string, extra bson.M) bson.ObjectId {
	doc := bson.M{
		"username":          username,
		"email":             username + "@example.com",
		"password":          "$2a$10$hash",
		"is_verified":       true,
		"settings":          bson.M{"theme": "auto", "font_size": "medium"},
		"language":          bson.M{"primary": "english", "additional": []string{"english"}},
		"followers":         []bson.ObjectId{},
		"following":         []bson.ObjectId{},
		"bookmarks":         []bson.ObjectId{},
		"posts":             []bson.ObjectId{},
		"refresh_token":     []string{"token"},
		"additional_emails": []bson.M{},
		"credentials":       bson.M{"employment": bson.M{"company": username + " inc"}},
		"updated_at":        d.clock,
	}
	for k, v := range extra {
		doc[k] = v
	}
	return d.insert(store.Users, doc)
}

func (d *Deps) Question(owner bson.ObjectId, text string, extra bson.M) bson.ObjectId {
	doc := bson.M{
		"question":   text,
		"created_by": owner,
		"tags":       []string{},
		"is_public":  true,
		"answers":    []bson.ObjectId{},
		"downvotes":  []bson.ObjectId{},
		"views":      0,
		"status":     "open",
		"updated_at": d.clock,
	}
	for k, v := range extra {
		doc[k] = v
	}
	return d.insert(store.Questions, doc)
}

// Answer seeds a published answer and attaches it to its question.
func (d *Deps) Answer(owner, question bson.ObjectId, text string, extra bson.M) bson.ObjectId {
	doc := d.post(owner, text, "answer", extra)
	doc["question_id"] = question
	id := d.insert(store.Posts, doc)
	err := d.Repo.Update(context.Background(), store.Questions, question, store.Change{AddToSet: bson.M{"answers": id}})
	if err != nil && err != store.ErrNotFound {
		panic(err)
	}
	return id
}

func (d *Deps) Post(owner bson.ObjectId, text string, extra bson.M) bson.ObjectId {
	return d.insert(store.Posts, d.post(owner, text, "post", extra))
}

func (d *Deps) post(owner bson.ObjectId, text, kind string, extra bson.M) bson.M {
	doc := bson.M{
		"content":      `{"text":"` + text + `"}`,
		"search_text":  text,
		"created_by":   owner,
		"content_type": kind,
		"upvotes":      []bson.ObjectId{},
		"downvotes":    []bson.ObjectId{},
		"images":       []string{},
		"is_published": true,
		"is_deleted":   false,
	}
	for k, v := range extra {
		doc[k] = v
	}
	return doc
}

func (d *Deps) Comment(owner, post bson.ObjectId, path []int) bson.ObjectId {
	return d.insert(store.Comments, bson.M{
		"content":    "comment",
		"created_by": owner,
		"post_id":    post,
		"path":       path,
		"path_key":   store.PathKey(path),
		"upvotes":    []bson.ObjectId{},
		"downvotes":  []bson.ObjectId{},
		"updated_at": d.clock,
	})
}
