package exceptions

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorKinds(t *testing.T) {
	Convey("Typed errors keep their kind", t, func() {
		So(KindOf(Invalid("bad %s", "id")), ShouldEqual, InvalidArgument)
		So(KindOf(Missing("post not found")), ShouldEqual, NotFound)
		So(KindOf(Conflicting("already answered")), ShouldEqual, Conflict)
		So(Invalid("bad %s", "id").Error(), ShouldEqual, "bad id")

		Convey("even when wrapped by fmt", func() {
			err := fmt.Errorf("insert: %w", Missing("parent comment not found"))
			So(IsNotFound(err), ShouldBeTrue)
			So(IsConflict(err), ShouldBeFalse)
		})
	})

	Convey("Untyped errors are internal", t, func() {
		cause := errors.New("connection reset")
		err := Wrap(cause, "fetch questions")
		So(KindOf(err), ShouldEqual, Internal)
		So(errors.Is(err, cause), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "fetch questions: connection reset")
		So(KindOf(cause), ShouldEqual, Internal)
		So(Wrap(nil, "noop"), ShouldBeNil)
	})

	Convey("Wrap leaves typed errors alone", t, func() {
		err := Conflicting("cannot vote own content")
		So(Wrap(err, "vote"), ShouldEqual, err)
	})

	Convey("A nil module does not report", t, func() {
		var module *ExceptionsModule
		So(func() { module.Report(errors.New("boom"), nil) }, ShouldNotPanic)
	})
}
