package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tryanzu/quorum/board/comments"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
)

func (di *API) Thread(c *gin.Context) {
	post, err := idParam(c, "id")
	if err != nil {
		di.fail(c, err)
		return
	}
	v, err := di.viewer(c)
	if err != nil {
		di.fail(c, err)
		return
	}
	list, err := comments.FetchThread(c, di.Deps, post, v, intQuery(c, "page", 1), intQuery(c, "size", 0))
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (di *API) Replies(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		di.fail(c, err)
		return
	}
	v, err := di.viewer(c)
	if err != nil {
		di.fail(c, err)
		return
	}
	list, err := comments.FetchSubtree(c, di.Deps, id, v)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Comment adds a comment to a post. The body holds content and an optional
// parent_path array.
func (di *API) Comment(c *gin.Context) {
	var form comments.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		di.fail(c, invalid(err))
		return
	}
	post, ok := common.ValidID(form.PostID)
	if !ok {
		di.fail(c, exceptions.Invalid("invalid post id"))
		return
	}
	parent, err := comments.ParsePath(form.ParentPath)
	if err != nil {
		di.fail(c, err)
		return
	}
	comment, err := comments.Insert(c, di.Deps, post, form.Content, userID(c), parent)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": comment.ID, "path": comment.Path, "created_at": comment.Created})
}
