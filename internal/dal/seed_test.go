package dal

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/quorum/board/boardtest"
	"github.com/tryanzu/quorum/board/feed"
	"github.com/tryanzu/quorum/board/viewer"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()

	Convey("Seeding an empty board", t, func() {
		d := boardtest.New()
		seeded, err := Seed(ctx, d)
		So(err, ShouldBeNil)
		So(seeded.Users, ShouldHaveLength, 2)

		list, err := feed.QuestionsWithAnswers(ctx, d, viewer.Anonymous, 1)
		So(err, ShouldBeNil)
		So(list, ShouldHaveLength, 1)
		answer := list[0]["answer"]
		So(answer, ShouldNotBeNil)

		Convey("seeding twice conflicts on the unique usernames", func() {
			_, err := Seed(ctx, d)
			So(err, ShouldNotBeNil)
		})
	})
}
