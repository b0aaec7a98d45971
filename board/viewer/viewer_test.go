package viewer

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/quorum/board/store"
	"gopkg.in/mgo.v2/bson"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemory()
	me, friend, post := bson.NewObjectId(), bson.NewObjectId(), bson.NewObjectId()
	repo.Insert(ctx, store.Users, bson.M{
		"_id":       me,
		"username":  "me",
		"following": []bson.ObjectId{friend},
		"bookmarks": []bson.ObjectId{post},
	})

	Convey("Resolving viewers", t, func() {
		Convey("anonymous viewers carry empty sets", func() {
			v, err := Resolve(ctx, repo, "")
			So(err, ShouldBeNil)
			So(v.IsAnonymous(), ShouldBeTrue)
			So(v.Follows(friend), ShouldBeFalse)
			So(v.Bookmarked(post), ShouldBeFalse)
			So(v.Is(""), ShouldBeFalse)
		})

		Convey("known viewers load their projection", func() {
			v, err := Resolve(ctx, repo, me)
			So(err, ShouldBeNil)
			So(v.Is(me), ShouldBeTrue)
			So(v.Follows(friend), ShouldBeTrue)
			So(v.Bookmarked(post), ShouldBeTrue)
			So(v.Bookmarked(friend), ShouldBeFalse)
		})

		Convey("unknown viewers degrade to empty sets", func() {
			ghost := bson.NewObjectId()
			v, err := Resolve(ctx, repo, ghost)
			So(err, ShouldBeNil)
			So(v.Is(ghost), ShouldBeTrue)
			So(v.Follows(friend), ShouldBeFalse)
		})
	})
}
