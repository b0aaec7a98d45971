package redact

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/mgo.v2/bson"
)

func TestRedact(t *testing.T) {
	Convey("Redacting documents", t, func() {
		Convey("user deny-list is stripped and the source left alone", func() {
			user := bson.M{
				"_id":       bson.NewObjectId(),
				"username":  "ana",
				"password":  "hash",
				"followers": []interface{}{},
				"language":  bson.M{"primary": "english"},
				"settings":  bson.M{"theme": "dark"},
			}
			out := Redact(user, User)
			So(out, ShouldContainKey, "username")
			So(out, ShouldContainKey, "_id")
			for _, field := range Denied(User) {
				So(out, ShouldNotContainKey, field)
			}
			So(user, ShouldContainKey, "password")
		})

		Convey("question policy drops the answers set and timestamps", func() {
			out := Redact(bson.M{"question": "Why?", "answers": []interface{}{1}, "created_at": 1, "tags": []interface{}{}}, Question)
			So(out, ShouldResemble, bson.M{"question": "Why?", "tags": []interface{}{}})
		})

		Convey("nil documents redact to empty ones", func() {
			So(Redact(nil, Post), ShouldResemble, bson.M{})
		})

		Convey("embedded documents are redacted in place", func() {
			doc := bson.M{"created_by": bson.M{"username": "ana", "password": "x"}, "question_data": "id"}
			Embedded(doc, "created_by", User)
			Embedded(doc, "question_data", Question)
			So(doc["created_by"], ShouldResemble, bson.M{"username": "ana"})
			So(doc["question_data"], ShouldEqual, "id")
		})
	})
}
