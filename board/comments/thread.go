package comments

import (
	"context"
	"sync"

	"github.com/tryanzu/quorum/board/derive"
	"github.com/tryanzu/quorum/board/redact"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

// FetchThread returns one page of root comments of a post, each carrying its
// first replies down to the configured depth.
//
// Pages are ThreadWidth roots wide whatever size is asked for, so page n
// always starts at root (n-1)*ThreadWidth and windows never overlap.
func FetchThread(ctx context.Context, d deps, post bson.ObjectId, v viewer.Viewer, page, size int) ([]bson.M, error) {
	if !post.Valid() {
		return nil, exceptions.Invalid("invalid post id")
	}
	shape := d.Board()
	if page < 1 {
		page = 1
	}
	if size > 0 && size != shape.ThreadWidth {
		log.Debugf("thread page size %d clamped to %d", size, shape.ThreadWidth)
	}
	t := newThread(d, v)
	return t.level(ctx, post, nil, shape.ThreadDepth+1, (page-1)*shape.ThreadWidth, shape.ThreadWidth)
}

// FetchSubtree expands a comment: its first children, each with their first
// children.
func FetchSubtree(ctx context.Context, d deps, id bson.ObjectId, v viewer.Viewer) ([]bson.M, error) {
	if !id.Valid() {
		return nil, exceptions.Invalid("invalid comment id")
	}
	comment, err := FindId(ctx, d, id)
	if err != nil {
		return nil, err
	}
	shape := d.Board()
	t := newThread(d, v)
	return t.level(ctx, comment.PostID, comment.Path, shape.ThreadDepth, 0, shape.ThreadWidth)
}

type thread struct {
	repo   store.Repository
	owners *owners
	viewer viewer.Viewer
	width  int
}

func newThread(d deps, v viewer.Viewer) *thread {
	return &thread{
		repo:   d.Store(),
		owners: newOwners(d.Store()),
		viewer: v,
		width:  d.Board().ThreadWidth,
	}
}

// level loads the direct children of prefix and recurses levels-1 deep below
// each of them. Deeper levels always start at their first child.
func (t *thread) level(ctx context.Context, post bson.ObjectId, prefix Path, levels, skip, limit int) ([]bson.M, error) {
	if levels < 1 {
		return []bson.M{}, nil
	}
	where := store.Criteria{PostID: post, PathPrefix: prefix, PathLen: len(prefix) + 1}
	docs, err := t.repo.Find(ctx, store.Comments, where, store.Page{Sort: 1, Skip: skip, Limit: limit})
	if err != nil {
		return nil, exceptions.Wrap(err, "could not load comments")
	}

	children := make([][]bson.M, len(docs))
	errs := make([]error, len(docs))
	var wg sync.WaitGroup
	for i, doc := range docs {
		path, ok := common.Ints(doc["path"])
		if !ok {
			continue
		}
		wg.Add(1)
		go func(i int, path Path) {
			defer wg.Done()
			children[i], errs[i] = t.level(ctx, post, path, levels-1, 0, t.width)
		}(i, path)
	}
	authors, err := t.owners.load(ctx, docs)
	wg.Wait()
	if err != nil {
		return nil, exceptions.Wrap(err, "could not load comment authors")
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	nodes := make([]bson.M, len(docs))
	for i, doc := range docs {
		owner := authors[common.ObjectID(doc, "created_by")]
		nodes[i] = t.node(doc, owner, children[i])
	}
	return nodes, nil
}

// node decorates a comment for the viewer and strips private fields from the
// comment and its embedded author.
func (t *thread) node(doc, owner bson.M, children []bson.M) bson.M {
	v := t.viewer
	if children == nil {
		children = []bson.M{}
	}
	out := redact.Redact(doc, redact.Comment)
	out[derive.TotalUpvotes] = derive.Total(doc, "upvotes")
	out[derive.TotalDownvotes] = derive.Total(doc, "downvotes")
	out[derive.Upvoted] = derive.IsUpvoted(doc, v)
	out[derive.Downvoted] = derive.IsDownvoted(doc, v)
	out[derive.OwnContent] = derive.IsOwnContent(doc, v)
	out[derive.Following] = derive.IsFollowing(doc, v)
	out[derive.TotalFollowers] = derive.Total(owner, "followers")
	if owner == nil {
		out["created_by"] = bson.M{}
	} else {
		out["created_by"] = owner
		redact.Embedded(out, "created_by", redact.User)
	}
	out["children"] = children
	return out
}
