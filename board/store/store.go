package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"gopkg.in/mgo.v2/bson"
)

var log = logging.MustGetLogger("store")

// Collection names.
type Collection string

const (
	Questions Collection = "questions"
	Posts     Collection = "posts"
	Comments  Collection = "comments"
	Users     Collection = "users"
)

var (
	// ErrNotFound is returned by single document lookups.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate is returned when an insert breaks a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// Criteria is the typed filter every repository understands. Zero values
// mean "no constraint".
type Criteria struct {
	IDs    []bson.ObjectId
	NotIDs []bson.ObjectId

	CreatedBy      bson.ObjectId
	NotCreatedBy   bson.ObjectId
	NotDownvotedBy bson.ObjectId
	Since          time.Time

	// Text runs the indexed full-text search; Pattern a case-insensitive
	// substring match over the plain-text search field.
	Text    string
	Pattern string

	// Questions.
	Public     bool
	HasAnswers bool
	Slug       string

	// Posts.
	Published   bool
	Drafts      bool
	ContentType string
	QuestionID  bson.ObjectId
	QuestionIDs []bson.ObjectId

	// Comments.
	PostID     bson.ObjectId
	PathPrefix []int
	PathLen    int
	Path       []int

	// Users: case-insensitive substring over username or employer.
	Profile string
	// Users: the dash joined username as it appears in profile urls.
	Username string
}

// Page drives sort and windowing. Sample > 0 draws a random subset of that
// size after matching and before skip/limit.
type Page struct {
	Sort   int
	Skip   int
	Limit  int
	Sample int
}

// Change is applied atomically to one document.
type Change struct {
	Set      bson.M
	AddToSet bson.M
	Pull     bson.M
	Inc      bson.M
}

// Repository is the content repository the board depends on. Reads hand back
// raw documents so joins keep every stored field until redaction.
type Repository interface {
	Find(ctx context.Context, c Collection, where Criteria, page Page) ([]bson.M, error)
	FindOne(ctx context.Context, c Collection, where Criteria) (bson.M, error)
	FindID(ctx context.Context, c Collection, id bson.ObjectId) (bson.M, error)
	Count(ctx context.Context, c Collection, where Criteria) (int, error)

	// Contains reports whether the array field of a document holds value.
	Contains(ctx context.Context, c Collection, id bson.ObjectId, field string, value interface{}) (bool, error)

	// CountComments groups comments by post id. Posts without comments are
	// absent from the result.
	CountComments(ctx context.Context, posts []bson.ObjectId) (map[bson.ObjectId]int, error)

	// LastSibling is the highest value at position len(prefix) among comments
	// of the post whose path extends prefix by exactly one element.
	LastSibling(ctx context.Context, post bson.ObjectId, prefix []int) (int, bool, error)

	Insert(ctx context.Context, c Collection, doc interface{}) error
	Update(ctx context.Context, c Collection, id bson.ObjectId, change Change) error
}

// PathKey is the scalar form of a comment path, "1.2.1". Uniqueness of paths
// within a post is declared on it since an index over the array itself would
// be enforced per element.
func PathKey(path []int) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}
