package questions

import (
	"context"
	"strings"
	"time"

	"github.com/op/go-logging"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

var log = logging.MustGetLogger("questions")

// Create asks a new question. Question text is unique board-wide.
func Create(ctx context.Context, d deps, owner bson.ObjectId, form Form) (q Question, err error) {
	if !owner.Valid() {
		return q, exceptions.Invalid("question owner is required")
	}
	form.Question = strings.TrimSpace(form.Question)
	if err = common.Validate(form); err != nil {
		return q, err
	}

	now := time.Now()
	q = Question{
		ID:        bson.NewObjectId(),
		Question:  form.Question,
		CreatedBy: owner,
		Tags:      form.Tags,
		IsPublic:  form.IsPublic == nil || *form.IsPublic,
		Answers:   []bson.ObjectId{},
		Downvotes: []bson.ObjectId{},
		Status:    OPEN,
		Created:   now,
		Updated:   now,
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	err = d.Store().Insert(ctx, store.Questions, q)
	if err == store.ErrDuplicate {
		return Question{}, exceptions.Conflicting("this question has already been asked")
	}
	if err != nil {
		return Question{}, exceptions.Wrap(err, "could not create question")
	}
	log.Infof("question %s asked by %s", q.ID.Hex(), owner.Hex())
	return q, nil
}

// Attach adds a published answer to the question's answers set.
func Attach(ctx context.Context, d deps, id, answer bson.ObjectId) error {
	err := d.Store().Update(ctx, store.Questions, id, store.Change{
		AddToSet: bson.M{"answers": answer},
		Set:      bson.M{"updated_at": time.Now()},
	})
	if err == store.ErrNotFound {
		return exceptions.Missing("question not found")
	}
	return exceptions.Wrap(err, "could not attach answer")
}

// Detach removes an answer. A question that is gone is not an error.
func Detach(ctx context.Context, d deps, id, answer bson.ObjectId) error {
	err := d.Store().Update(ctx, store.Questions, id, store.Change{
		Pull: bson.M{"answers": answer},
		Set:  bson.M{"updated_at": time.Now()},
	})
	if err == store.ErrNotFound {
		return nil
	}
	return exceptions.Wrap(err, "could not detach answer")
}
