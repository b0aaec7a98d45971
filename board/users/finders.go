package users

import (
	"context"

	"github.com/tryanzu/quorum/board/redact"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

// Decorate turns a raw user document into a profile card for the viewer.
func Decorate(doc bson.M, v viewer.Viewer) bson.M {
	id := common.ObjectID(doc, "_id")
	out := redact.Redact(doc, redact.User)
	out["type"] = "profile"
	out["total_followers"] = common.Len(doc, "followers")
	out["is_following"] = v.Follows(id)
	out["is_own_profile"] = v.Is(id)
	return out
}

func DecorateAll(docs []bson.M, v viewer.Viewer) []bson.M {
	list := make([]bson.M, len(docs))
	for i, doc := range docs {
		list[i] = Decorate(doc, v)
	}
	return list
}

// Profile looks a user up by the dash joined username used in urls and adds
// the counters shown on the profile page.
func Profile(ctx context.Context, d deps, username string, v viewer.Viewer) (bson.M, error) {
	if username == "" {
		return nil, exceptions.Invalid("please provide username")
	}
	doc, err := d.Store().FindOne(ctx, store.Users, store.Criteria{Username: username})
	if err == store.ErrNotFound {
		return nil, exceptions.Missing("user not found")
	}
	if err != nil {
		return nil, exceptions.Wrap(err, "could not load user")
	}

	id := common.ObjectID(doc, "_id")
	counts := map[string]store.Criteria{
		"total_answers":   {CreatedBy: id, ContentType: "answer", Published: true},
		"total_posts":     {CreatedBy: id, ContentType: "post", Published: true},
		"total_questions": {CreatedBy: id},
	}
	profile := Decorate(doc, v)
	for key, where := range counts {
		c := store.Posts
		if key == "total_questions" {
			c = store.Questions
		}
		n, err := d.Store().Count(ctx, c, where)
		if err != nil {
			return nil, exceptions.Wrap(err, "could not count "+key)
		}
		profile[key] = n
	}
	profile["total_following"] = common.Len(doc, "following")
	if v.Is(id) {
		profile["total_bookmarks"] = common.Len(doc, "bookmarks")
	}
	return profile, nil
}

// Follows lists who a user follows (following) or is followed by.
func Follows(ctx context.Context, d deps, id bson.ObjectId, following bool, v viewer.Viewer) ([]bson.M, error) {
	user, err := find(ctx, d, id)
	if err != nil {
		return nil, err
	}
	field := "followers"
	if following {
		field = "following"
	}
	ids := common.IDList(user, field)
	if len(ids) == 0 {
		return []bson.M{}, nil
	}
	docs, err := d.Store().Find(ctx, store.Users, store.Criteria{IDs: ids}, store.Page{Sort: 1})
	if err != nil {
		return nil, exceptions.Wrap(err, "could not load "+field)
	}
	return DecorateAll(docs, v), nil
}
