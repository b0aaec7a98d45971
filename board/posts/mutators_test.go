package posts

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/quorum/board/boardtest"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	Convey("Creating posts and answers", t, func() {
		d := boardtest.New()
		asker, author := d.User("asker", nil), d.User("author", nil)
		q := d.Question(asker, "Is Go fast?", nil)
		answerTo := Form{Content: "<p>Quite <b>fast</b></p>", QuestionID: q.Hex()}

		Convey("a standalone post derives its search text", func() {
			post, err := Create(ctx, d, author, Form{Content: "<h1>Hello</h1> world"}, true)
			So(err, ShouldBeNil)
			So(post.ContentType, ShouldEqual, POST)
			So(post.SearchText, ShouldStartWith, "Hello")
			So(post.SearchText, ShouldEndWith, "world")
			So(post.SearchText, ShouldNotContainSubstring, "<")

			user, _ := d.Repo.FindID(ctx, store.Users, author)
			So(common.IDList(user, "posts"), ShouldContain, post.ID)
		})

		Convey("an answer attaches to its question", func() {
			post, err := Create(ctx, d, author, answerTo, true)
			So(err, ShouldBeNil)
			So(post.IsAnswer(), ShouldBeTrue)
			So(post.SearchText, ShouldContainSubstring, "fast")
			So(post.SearchText, ShouldNotContainSubstring, "<b>")

			doc, _ := d.Repo.FindID(ctx, store.Questions, q)
			So(common.IDList(doc, "answers"), ShouldResemble, []bson.ObjectId{post.ID})
		})

		Convey("a second published answer conflicts and the first stands", func() {
			first, err := Create(ctx, d, author, answerTo, true)
			So(err, ShouldBeNil)

			_, err = Create(ctx, d, author, Form{Content: "Again", QuestionID: q.Hex()}, true)
			So(exceptions.IsConflict(err), ShouldBeTrue)

			stored, err := FindId(ctx, d, first.ID)
			So(err, ShouldBeNil)
			So(stored.Content, ShouldEqual, answerTo.Content)
			So(stored.IsPublished, ShouldBeTrue)
			doc, _ := d.Repo.FindID(ctx, store.Questions, q)
			So(common.IDList(doc, "answers"), ShouldResemble, []bson.ObjectId{first.ID})
		})

		Convey("drafts stay off the question until published", func() {
			draft, err := Create(ctx, d, author, answerTo, false)
			So(err, ShouldBeNil)
			doc, _ := d.Repo.FindID(ctx, store.Questions, q)
			So(common.Len(doc, "answers"), ShouldEqual, 0)

			drafts, err := Drafts(ctx, d, author)
			So(err, ShouldBeNil)
			So(drafts.IDs(), ShouldResemble, []bson.ObjectId{draft.ID})

			_, err = Publish(ctx, d, draft.ID, asker)
			So(exceptions.IsConflict(err), ShouldBeTrue)

			published, err := Publish(ctx, d, draft.ID, author)
			So(err, ShouldBeNil)
			So(published.IsPublished, ShouldBeTrue)
			doc, _ = d.Repo.FindID(ctx, store.Questions, q)
			So(common.IDList(doc, "answers"), ShouldResemble, []bson.ObjectId{draft.ID})
		})

		Convey("bad input fails before any write", func() {
			_, err := Create(ctx, d, author, Form{}, true)
			So(exceptions.IsInvalid(err), ShouldBeTrue)

			_, err = Create(ctx, d, author, Form{Content: "x", QuestionID: "nope"}, true)
			So(exceptions.IsInvalid(err), ShouldBeTrue)

			_, err = Create(ctx, d, author, Form{Content: "x", QuestionID: bson.NewObjectId().Hex()}, true)
			So(exceptions.IsNotFound(err), ShouldBeTrue)

			n, _ := d.Repo.Count(ctx, store.Posts, store.Criteria{})
			So(n, ShouldEqual, 0)
		})
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	Convey("Soft deleting answers", t, func() {
		d := boardtest.New()
		asker, author := d.User("asker", nil), d.User("author", nil)
		q := d.Question(asker, "Delete me?", nil)
		answer := d.Answer(author, q, "sure", nil)

		Convey("only the owner may delete", func() {
			_, err := Delete(ctx, d, answer, asker)
			So(exceptions.IsConflict(err), ShouldBeTrue)
		})

		Convey("deleting detaches and keeps the document", func() {
			post, err := Delete(ctx, d, answer, author)
			So(err, ShouldBeNil)
			So(post.IsDeleted, ShouldBeTrue)
			So(post.Deleted, ShouldNotBeNil)

			doc, _ := d.Repo.FindID(ctx, store.Questions, q)
			So(common.Len(doc, "answers"), ShouldEqual, 0)

			stored, err := FindId(ctx, d, answer)
			So(err, ShouldBeNil)
			So(stored.IsDeleted, ShouldBeTrue)

			Convey("and the author may answer again", func() {
				_, err := Create(ctx, d, author, Form{Content: "second try", QuestionID: q.Hex()}, true)
				So(err, ShouldBeNil)
			})
		})

		Convey("unknown posts are not found", func() {
			_, err := Delete(ctx, d, bson.NewObjectId(), author)
			So(exceptions.IsNotFound(err), ShouldBeTrue)
		})
	})
}
