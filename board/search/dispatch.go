package search

import (
	"context"
	"time"

	"github.com/tryanzu/quorum/board/feed"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

// Search runs a query against one content type, or against questions and
// then answers and posts when no type is given. Every result names its type.
func Search(ctx context.Context, d deps, q Query, v viewer.Viewer) ([]bson.M, error) {
	q = q.normalized()
	if err := common.Validate(q); err != nil {
		return nil, err
	}
	where, err := q.criteria(time.Now())
	if err != nil {
		return nil, err
	}
	if q.Type == Profile {
		return profiles(ctx, d, q.Text, v)
	}

	var targets []target
	if q.Type == "" {
		targets = []target{
			{store.Questions, feed.Question.Scope(where)},
			{store.Posts, posts(where)},
		}
	} else {
		kind, err := feed.ParseKind(q.Type)
		if err != nil {
			return nil, exceptions.Invalid("unknown search type %q", q.Type)
		}
		targets = []target{{kind.Collection(), kind.Scope(where)}}
	}

	results := []bson.M{}
	for _, t := range targets {
		docs, err := tiers(ctx, d, t.c, t.where, q.Text)
		if err != nil {
			return nil, err
		}
		list, err := feed.Decorate(ctx, d, t.c, docs, v)
		if err != nil {
			return nil, err
		}
		results = append(results, list...)
	}
	return results, nil
}

type target struct {
	c     store.Collection
	where store.Criteria
}

// posts covers answers and standalone posts together.
func posts(where store.Criteria) store.Criteria {
	where.Published = true
	return where
}

// tiers tries the text index first and falls back to a substring match when
// it yields nothing.
func tiers(ctx context.Context, d deps, c store.Collection, where store.Criteria, text string) ([]bson.M, error) {
	page := store.Page{Sort: -1, Limit: d.Board().SearchLimit}
	where.Text = text
	docs, err := d.Store().Find(ctx, c, where, page)
	if err != nil {
		return nil, exceptions.Wrap(err, "could not search "+string(c))
	}
	if len(docs) > 0 {
		return docs, nil
	}
	log.Debugf("no indexed %s match for %q, falling back to substring", c, text)
	where.Text = ""
	where.Pattern = text
	docs, err = d.Store().Find(ctx, c, where, page)
	return docs, exceptions.Wrap(err, "could not search "+string(c))
}
