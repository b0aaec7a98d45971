// Package handle exposes the board over HTTP. Handlers only parse input,
// resolve the viewer and map typed errors to status codes.
package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"github.com/tryanzu/quorum/deps"
	"gopkg.in/mgo.v2/bson"
)

var log = logging.MustGetLogger("http")

type API struct {
	Deps       *deps.Deps                   `inject:""`
	Exceptions *exceptions.ExceptionsModule `inject:""`

	// Secret verifies bearer tokens.
	Secret string
}

var statuses = map[exceptions.Kind]int{
	exceptions.InvalidArgument: http.StatusBadRequest,
	exceptions.NotFound:        http.StatusNotFound,
	exceptions.Conflict:        http.StatusConflict,
	exceptions.Internal:        http.StatusInternalServerError,
}

func (di *API) fail(c *gin.Context, err error) {
	kind := exceptions.KindOf(err)
	if kind == exceptions.Internal {
		log.Error(err)
		di.Exceptions.Report(err, map[string]string{"path": c.FullPath()})
		c.AbortWithStatusJSON(statuses[kind], gin.H{"status": "error", "kind": kind.String(), "message": "internal error"})
		return
	}
	c.AbortWithStatusJSON(statuses[kind], gin.H{"status": "error", "kind": kind.String(), "message": err.Error()})
}

// viewer resolves the request identity once and caches it on the context.
func (di *API) viewer(c *gin.Context) (viewer.Viewer, error) {
	if v, exists := c.Get("viewer"); exists {
		return v.(viewer.Viewer), nil
	}
	v, err := viewer.Resolve(c, di.Deps.Store(), userID(c))
	if err != nil {
		return v, exceptions.Wrap(err, "could not resolve viewer")
	}
	c.Set("viewer", v)
	return v, nil
}

func userID(c *gin.Context) bson.ObjectId {
	if id, exists := c.Get("userID"); exists {
		return id.(bson.ObjectId)
	}
	return ""
}

func idParam(c *gin.Context, name string) (bson.ObjectId, error) {
	id, ok := common.ValidID(c.Param(name))
	if !ok {
		return "", exceptions.Invalid("invalid %s", name)
	}
	return id, nil
}

func intQuery(c *gin.Context, name string, fallback int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return n
}
