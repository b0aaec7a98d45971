package users

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/quorum/board/boardtest"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

func TestToggleFollow(t *testing.T) {
	ctx := context.Background()

	Convey("Following users", t, func() {
		d := boardtest.New()
		ana, bob := d.User("ana", nil), d.User("bob", nil)
		holds := func(user bson.ObjectId, field string, id bson.ObjectId) bool {
			doc, _ := d.Repo.FindID(ctx, store.Users, user)
			return common.NewIDSet(common.IDList(doc, field)...).Has(id)
		}

		Convey("both sides move together", func() {
			following, err := ToggleFollow(ctx, d, ana, bob)
			So(err, ShouldBeNil)
			So(following, ShouldBeTrue)
			So(holds(ana, "following", bob), ShouldBeTrue)
			So(holds(bob, "followers", ana), ShouldBeTrue)

			following, err = ToggleFollow(ctx, d, ana, bob)
			So(err, ShouldBeNil)
			So(following, ShouldBeFalse)
			So(holds(ana, "following", bob), ShouldBeFalse)
			So(holds(bob, "followers", ana), ShouldBeFalse)
		})

		Convey("self follows conflict", func() {
			_, err := ToggleFollow(ctx, d, ana, ana)
			So(exceptions.IsConflict(err), ShouldBeTrue)
		})

		Convey("unknown targets are not found", func() {
			_, err := ToggleFollow(ctx, d, ana, bson.NewObjectId())
			So(exceptions.IsNotFound(err), ShouldBeTrue)
		})

		Convey("follow lists decorate for the viewer", func() {
			ToggleFollow(ctx, d, ana, bob)
			v, _ := viewer.Resolve(ctx, d.Repo, ana)

			list, err := Follows(ctx, d, ana, true, v)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 1)
			So(list[0]["username"], ShouldEqual, "bob")
			So(list[0]["is_following"], ShouldBeTrue)
			So(list[0]["is_own_profile"], ShouldBeFalse)
			So(list[0]["total_followers"], ShouldEqual, 1)
			So(list[0], ShouldNotContainKey, "password")
			So(list[0], ShouldNotContainKey, "followers")

			list, err = Follows(ctx, d, bob, false, viewer.Anonymous)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 1)
			So(list[0]["is_following"], ShouldBeFalse)
		})
	})
}

func TestToggleBookmark(t *testing.T) {
	ctx := context.Background()

	Convey("Bookmarking posts", t, func() {
		d := boardtest.New()
		ana := d.User("ana", nil)
		post := d.Post(ana, "keep me", nil)

		bookmarked, err := ToggleBookmark(ctx, d, ana, post)
		So(err, ShouldBeNil)
		So(bookmarked, ShouldBeTrue)
		v, _ := viewer.Resolve(ctx, d.Repo, ana)
		So(v.Bookmarked(post), ShouldBeTrue)

		bookmarked, err = ToggleBookmark(ctx, d, ana, post)
		So(err, ShouldBeNil)
		So(bookmarked, ShouldBeFalse)

		_, err = ToggleBookmark(ctx, d, ana, bson.NewObjectId())
		So(exceptions.IsNotFound(err), ShouldBeTrue)
	})
}

func TestCredentials(t *testing.T) {
	ctx := context.Background()

	Convey("Updating credentials", t, func() {
		d := boardtest.New()
		ana := d.User("ana", nil)
		credentials := func() bson.M {
			doc, _ := d.Repo.FindID(ctx, store.Users, ana)
			return common.Sub(doc, "credentials")
		}

		var tests = []struct {
			in    Credential
			valid bool
		}{
			{Employment{Company: "Acme"}, true},
			{Employment{Position: "Engineer"}, true},
			{Employment{StartYear: 2010}, false},
			{Education{School: "MIT"}, true},
			{Education{PrimaryMajor: "Math", SecondaryMajor: "CS"}, true},
			{Education{PrimaryMajor: "Math"}, false},
			{Location{Address: "Mexico City"}, true},
			{Location{IsCurrent: true}, false},
		}
		for _, test := range tests {
			err := UpdateCredential(ctx, d, ana, test.in)
			if test.valid {
				So(err, ShouldBeNil)
			} else {
				So(exceptions.IsInvalid(err), ShouldBeTrue)
			}
		}

		Convey("empty fields are dropped", func() {
			So(UpdateCredential(ctx, d, ana, Employment{Company: "Acme"}), ShouldBeNil)
			So(common.Sub(credentials(), "employment"), ShouldResemble, bson.M{"company": "Acme"})
		})

		Convey("free text credentials", func() {
			So(exceptions.IsInvalid(UpdateAbout(ctx, d, ana, " ", "")), ShouldBeTrue)
			So(UpdateAbout(ctx, d, ana, "Gopher", ""), ShouldBeNil)
			So(credentials()["profile"], ShouldEqual, "Gopher")
		})
	})
}

func TestLanguages(t *testing.T) {
	ctx := context.Background()

	Convey("Managing languages", t, func() {
		d := boardtest.New()
		ana := d.User("ana", nil)

		So(exceptions.IsInvalid(AddLanguage(ctx, d, ana, "klingon")), ShouldBeTrue)
		So(exceptions.IsInvalid(AddLanguage(ctx, d, ana, "")), ShouldBeTrue)
		So(exceptions.IsConflict(AddLanguage(ctx, d, ana, "English")), ShouldBeTrue)

		So(exceptions.IsInvalid(SetPrimaryLanguage(ctx, d, ana, "french")), ShouldBeTrue)
		So(AddLanguage(ctx, d, ana, "French"), ShouldBeNil)
		So(SetPrimaryLanguage(ctx, d, ana, "french"), ShouldBeNil)

		So(exceptions.IsConflict(RemoveLanguage(ctx, d, ana, "french")), ShouldBeTrue)
		So(RemoveLanguage(ctx, d, ana, "english"), ShouldBeNil)
		So(exceptions.IsNotFound(RemoveLanguage(ctx, d, ana, "english")), ShouldBeTrue)

		doc, _ := d.Repo.FindID(ctx, store.Users, ana)
		So(common.Sub(doc, "language")["primary"], ShouldEqual, "french")
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()

	Convey("Loading a profile by username", t, func() {
		d := boardtest.New()
		ana := d.User("Ana Lopez", nil)
		q := d.Question(ana, "Profile?", nil)
		d.Answer(ana, q, "mine", nil)
		d.Post(ana, "a post", nil)

		profile, err := Profile(ctx, d, "ana-lopez", viewer.Viewer{ID: ana})
		So(err, ShouldBeNil)
		So(profile["_id"], ShouldEqual, ana)
		So(profile["total_answers"], ShouldEqual, 1)
		So(profile["total_posts"], ShouldEqual, 1)
		So(profile["total_questions"], ShouldEqual, 1)
		So(profile["is_own_profile"], ShouldBeTrue)
		for _, field := range []string{"password", "settings", "language", "bookmarks"} {
			So(profile, ShouldNotContainKey, field)
		}

		_, err = Profile(ctx, d, "nobody", viewer.Anonymous)
		So(exceptions.IsNotFound(err), ShouldBeTrue)
	})
}
