package posts

import (
	"context"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

func FindId(ctx context.Context, d deps, id bson.ObjectId) (post Post, err error) {
	doc, err := d.Store().FindID(ctx, store.Posts, id)
	if err == store.ErrNotFound {
		return post, exceptions.Missing("post not found")
	}
	if err != nil {
		return post, exceptions.Wrap(err, "could not load post")
	}
	err = common.FromDoc(doc, &post)
	return post, exceptions.Wrap(err, "malformed post")
}

// Drafts of a user, newest first.
func Drafts(ctx context.Context, d deps, owner bson.ObjectId) (Posts, error) {
	docs, err := d.Store().Find(ctx, store.Posts, store.Criteria{CreatedBy: owner, Drafts: true}, store.Page{Sort: -1})
	if err != nil {
		return nil, exceptions.Wrap(err, "could not load drafts")
	}
	list := make(Posts, len(docs))
	for i, doc := range docs {
		if err := common.FromDoc(doc, &list[i]); err != nil {
			return nil, exceptions.Wrap(err, "malformed post")
		}
	}
	return list, nil
}

// HasAnswered reports whether owner already holds a published answer to the
// question.
func HasAnswered(ctx context.Context, d deps, question, owner bson.ObjectId) (bool, error) {
	n, err := d.Store().Count(ctx, store.Posts, store.Criteria{
		QuestionID:  question,
		CreatedBy:   owner,
		ContentType: ANSWER,
		Published:   true,
	})
	if err != nil {
		return false, exceptions.Wrap(err, "could not check answers")
	}
	return n > 0, nil
}
