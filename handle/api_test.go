package handle

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/quorum/board/boardtest"
	"github.com/tryanzu/quorum/deps"
	"gopkg.in/mgo.v2/bson"
)

func token(id bson.ObjectId, secret string) string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": id.Hex()}).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return "Bearer " + signed
}

func TestAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Serving the board over HTTP", t, func() {
		board := boardtest.New()
		api := &API{Deps: &deps.Deps{RepositoryProvider: board.Repo}, Secret: "secret"}
		router := gin.New()
		api.Routes(router)

		author, reader := board.User("author", nil), board.User("reader", nil)
		q := board.Question(author, "What is a channel?", nil)
		answer := board.Answer(author, q, "a typed pipe", nil)

		call := func(method, path, auth string, body interface{}) (*httptest.ResponseRecorder, interface{}) {
			var buf bytes.Buffer
			if body != nil {
				So(json.NewEncoder(&buf).Encode(body), ShouldBeNil)
			}
			req := httptest.NewRequest(method, path, &buf)
			req.Header.Set("Content-Type", "application/json")
			if auth != "" {
				req.Header.Set("Authorization", auth)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			var out interface{}
			json.Unmarshal(w.Body.Bytes(), &out)
			return w, out
		}

		Convey("reads work anonymously", func() {
			w, out := call("GET", "/feed/answer", "", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(out, ShouldHaveLength, 1)
			So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)

			w, _ = call("GET", "/questions/What-is-a-channel", "", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("typed errors map to status codes", func() {
			w, out := call("GET", "/feed/poll", "", nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(out.(map[string]interface{})["kind"], ShouldEqual, "invalid_argument")

			w, _ = call("GET", "/questions/missing", "", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)

			w, _ = call("POST", "/votes/posts/"+answer.Hex()+"/up", token(author, "secret"), nil)
			So(w.Code, ShouldEqual, http.StatusConflict)
		})

		Convey("writes need a valid token", func() {
			w, _ := call("POST", "/questions", "", map[string]interface{}{"question": "Why?"})
			So(w.Code, ShouldEqual, http.StatusUnauthorized)

			w, _ = call("POST", "/questions", token(reader, "other"), map[string]interface{}{"question": "Why?"})
			So(w.Code, ShouldEqual, http.StatusUnauthorized)

			w, _ = call("POST", "/questions", token(reader, "secret"), map[string]interface{}{"question": "Why?"})
			So(w.Code, ShouldEqual, http.StatusCreated)
		})

		Convey("comments are placed by parent path", func() {
			auth := token(reader, "secret")
			w, out := call("POST", "/comments", auth, map[string]interface{}{"post_id": answer.Hex(), "content": "first"})
			So(w.Code, ShouldEqual, http.StatusCreated)
			So(out.(map[string]interface{})["path"], ShouldResemble, []interface{}{float64(1)})

			w, out = call("POST", "/comments", auth, map[string]interface{}{"post_id": answer.Hex(), "content": "reply", "parent_path": []int{1}})
			So(w.Code, ShouldEqual, http.StatusCreated)
			So(out.(map[string]interface{})["path"], ShouldResemble, []interface{}{float64(1), float64(1)})

			w, _ = call("POST", "/comments", auth, map[string]interface{}{"post_id": answer.Hex(), "content": "lost", "parent_path": []int{3, 1}})
			So(w.Code, ShouldEqual, http.StatusNotFound)

			w, _ = call("POST", "/comments", auth, map[string]interface{}{"post_id": answer.Hex(), "content": "odd", "parent_path": "1.1"})
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			w, out = call("GET", "/posts/"+answer.Hex()+"/comments", auth, nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(out, ShouldHaveLength, 1)
			root := out.([]interface{})[0].(map[string]interface{})
			So(root["is_own_content"], ShouldBeTrue)
			So(root["children"], ShouldHaveLength, 1)
		})

		Convey("votes and follows toggle", func() {
			auth := token(reader, "secret")
			w, out := call("POST", "/votes/posts/"+answer.Hex()+"/up", auth, nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(out.(map[string]interface{})["message"], ShouldEqual, "Upvoted")

			w, out = call("POST", "/users/"+author.Hex()+"/follow", auth, nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(out.(map[string]interface{})["following"], ShouldBeTrue)

			w, out = call("GET", "/feed/answer", auth, nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			doc := out.([]interface{})[0].(map[string]interface{})
			So(doc["is_upvoted"], ShouldBeTrue)
			So(doc["is_following"], ShouldBeTrue)
		})
	})
}
