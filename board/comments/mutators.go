package comments

import (
	"context"
	"strings"
	"time"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

// Sibling slots taken by a concurrent writer are retried this many times.
const maxAttempts = 5

// Insert places a comment under parent, or as a new root when parent is
// empty. Siblings are numbered from 1 in insertion order.
func Insert(ctx context.Context, d deps, post bson.ObjectId, content string, owner bson.ObjectId, parent Path) (comment Comment, err error) {
	content = strings.TrimSpace(content)
	if err = common.Validate(Form{Content: content, PostID: post.Hex()}); err != nil {
		return
	}
	if !post.Valid() {
		return comment, exceptions.Invalid("invalid post id")
	}
	if !owner.Valid() {
		return comment, exceptions.Invalid("comment owner is required")
	}
	if parent, err = ParsePath(parent); err != nil {
		return
	}

	repo := d.Store()
	_, err = repo.FindID(ctx, store.Posts, post)
	if err == store.ErrNotFound {
		return comment, exceptions.Missing("post not found")
	}
	if err != nil {
		return comment, exceptions.Wrap(err, "could not load post")
	}

	if len(parent) > 1 {
		ok, err := exists(ctx, d, post, parent.Parent())
		if err != nil {
			return comment, exceptions.Wrap(err, "could not check parent path")
		}
		if !ok {
			return comment, exceptions.Missing("parent comment not found for this path")
		}
	}
	if len(parent) > 0 {
		ok, err := exists(ctx, d, post, parent)
		if err != nil {
			return comment, exceptions.Wrap(err, "could not check parent path")
		}
		if !ok {
			return comment, exceptions.Missing("parent comment not found")
		}
	}

	now := time.Now()
	comment = Comment{
		Content:   content,
		CreatedBy: owner,
		PostID:    post,
		Upvotes:   []bson.ObjectId{},
		Downvotes: []bson.ObjectId{},
		Created:   now,
		Updated:   now,
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		rank, err := allocate(ctx, d, post, parent)
		if err != nil {
			return Comment{}, err
		}
		comment.ID = bson.NewObjectId()
		comment.Path = parent.Child(rank)
		comment.PathKey = store.PathKey(comment.Path)
		err = repo.Insert(ctx, store.Comments, comment)
		if err == store.ErrDuplicate {
			log.Warningf("comment path %v of post %s taken, attempt %d", comment.Path, post.Hex(), attempt)
			continue
		}
		if err != nil {
			return Comment{}, exceptions.Wrap(err, "could not insert comment")
		}
		return comment, nil
	}
	return Comment{}, exceptions.Conflicting("could not allocate a comment path, try again")
}

// allocate picks the next sibling rank under parent.
func allocate(ctx context.Context, d deps, post bson.ObjectId, parent Path) (int, error) {
	last, _, err := d.Store().LastSibling(ctx, post, parent)
	if err != nil {
		return 0, exceptions.Wrap(err, "could not read sibling paths")
	}
	seq := d.Sequencer()
	if seq == nil {
		return last + 1, nil
	}
	next, err := seq.Next(ctx, post, parent, last)
	if err != nil {
		return 0, exceptions.Wrap(err, "could not allocate comment path")
	}
	return next, nil
}
