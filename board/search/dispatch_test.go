package search

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/quorum/board/boardtest"
	"github.com/tryanzu/quorum/board/redact"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

func types(list []bson.M) []string {
	out := []string{}
	for _, doc := range list {
		out = append(out, doc["type"].(string))
	}
	return out
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	Convey("Searching content", t, func() {
		d := boardtest.New()
		alice, bob := d.User("alice", nil), d.User("bob", nil)
		q := d.Question(alice, "How do goroutines get scheduled?", nil)
		d.Question(bob, "Why is the sky blue?", nil)
		d.Answer(bob, q, "goroutines are multiplexed onto threads", nil)
		d.Post(alice, "a post about goroutines", nil)
		d.Post(alice, "unrelated cooking notes", nil)

		Convey("without a type questions come first, then answers and posts", func() {
			list, err := Search(ctx, d, Query{Text: "goroutines"}, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 3)
			So(types(list)[0], ShouldEqual, "question")
			So(types(list)[1:], ShouldContain, "answer")
			So(types(list)[1:], ShouldContain, "post")
			for _, doc := range list {
				entity := redact.Post
				if doc["type"] == "question" {
					entity = redact.Question
				}
				for _, field := range redact.Denied(entity) {
					So(doc, ShouldNotContainKey, field)
				}
			}
		})

		Convey("a type restricts the kind searched", func() {
			list, err := Search(ctx, d, Query{Text: "goroutines", Type: "answer"}, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(types(list), ShouldResemble, []string{"answer"})
		})

		Convey("partial words fall back to substring matching", func() {
			list, err := Search(ctx, d, Query{Text: "gorout", Type: "question"}, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 1)
			So(common.ObjectID(list[0], "_id"), ShouldEqual, q)

			list, err = Search(ctx, d, Query{Text: "cook", Type: "post"}, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 1)
		})

		Convey("regex characters are matched literally", func() {
			list, err := Search(ctx, d, Query{Text: "sky.*"}, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 1)
			list, err = Search(ctx, d, Query{Text: ".*"}, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(list, ShouldBeEmpty)
		})

		Convey("author and time narrow results", func() {
			list, err := Search(ctx, d, Query{Text: "goroutines", Author: alice.Hex()}, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(types(list), ShouldResemble, []string{"question", "post"})

			list, err = Search(ctx, d, Query{Text: "goroutines", Time: "day"}, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(list, ShouldBeEmpty)
		})

		Convey("profiles match usernames and employers", func() {
			d.User("alicia", bson.M{"credentials": bson.M{"employment": bson.M{"company": "Acme"}}})
			list, err := Search(ctx, d, Query{Text: "alic", Type: "profile"}, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 2)
			for _, doc := range list {
				So(doc["type"], ShouldEqual, "profile")
				for _, field := range redact.Denied(redact.User) {
					So(doc, ShouldNotContainKey, field)
				}
			}

			list, err = Search(ctx, d, Query{Text: "acme", Type: "profile"}, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 1)
			So(list[0]["username"], ShouldEqual, "alicia")
		})

		Convey("bad queries are invalid", func() {
			for _, query := range []Query{
				{Text: "  "},
				{Text: "go", Type: "poll"},
				{Text: "go", Time: "decade"},
				{Text: "go", Author: "nobody"},
			} {
				_, err := Search(ctx, d, query, viewer.Anonymous)
				So(exceptions.IsInvalid(err), ShouldBeTrue)
			}
		})

		Convey("the viewer decorates results", func() {
			v, err := viewer.Resolve(ctx, d.Repo, alice)
			So(err, ShouldBeNil)
			list, err := Search(ctx, d, Query{Text: "goroutines", Type: "question"}, v)
			So(err, ShouldBeNil)
			So(list[0]["is_own_question"], ShouldBeTrue)
		})
	})
}
