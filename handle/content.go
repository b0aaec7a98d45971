package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tryanzu/quorum/board/feed"
	"github.com/tryanzu/quorum/board/search"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/users"
)

// Feed lists one kind of content, oldest first unless sort=desc. Query: page,
// size, sort.
func (di *API) Feed(c *gin.Context) {
	kind, err := feed.ParseKind(c.Param("kind"))
	if err != nil {
		di.fail(c, err)
		return
	}
	v, err := di.viewer(c)
	if err != nil {
		di.fail(c, err)
		return
	}
	sort := 0
	if c.Query("sort") == "desc" {
		sort = -1
	}
	list, err := feed.Fetch(c, di.Deps, kind, store.Criteria{}, v, intQuery(c, "page", 1), intQuery(c, "size", 0), sort)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (di *API) Answered(c *gin.Context) {
	v, err := di.viewer(c)
	if err != nil {
		di.fail(c, err)
		return
	}
	list, err := feed.QuestionsWithAnswers(c, di.Deps, v, intQuery(c, "page", 1))
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Discover answers with the questions and the cursor for the next call.
func (di *API) Discover(c *gin.Context) {
	v, err := di.viewer(c)
	if err != nil {
		di.fail(c, err)
		return
	}
	list, cursor, err := feed.Discover(c, di.Deps, v, c.Query("cursor"), intQuery(c, "page", 1), intQuery(c, "size", 0))
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": list, "cursor": cursor})
}

func (di *API) Question(c *gin.Context) {
	v, err := di.viewer(c)
	if err != nil {
		di.fail(c, err)
		return
	}
	detail, err := feed.QuestionBySlug(c, di.Deps, c.Param("slug"), v)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (di *API) Profile(c *gin.Context) {
	v, err := di.viewer(c)
	if err != nil {
		di.fail(c, err)
		return
	}
	profile, err := users.Profile(c, di.Deps, c.Param("username"), v)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Authored lists a user's answers, posts or questions.
func (di *API) Authored(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		di.fail(c, err)
		return
	}
	kind, err := feed.ParseKind(c.Param("kind"))
	if err != nil {
		di.fail(c, err)
		return
	}
	v, err := di.viewer(c)
	if err != nil {
		di.fail(c, err)
		return
	}
	list, err := feed.ByAuthor(c, di.Deps, kind, id, v, intQuery(c, "page", 1), intQuery(c, "size", 0))
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Follows lists followers, or who the user follows with ?following=true.
func (di *API) Follows(c *gin.Context) {
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
	list, err := users.Follows(c, di.Deps, id, c.Query("following") == "true", v)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (di *API) Bookmarks(c *gin.Context) {
	v, err := di.viewer(c)
	if err != nil {
		di.fail(c, err)
		return
	}
	list, err := feed.Bookmarks(c, di.Deps, v, intQuery(c, "page", 1), intQuery(c, "size", 0))
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Search query: q, type, author, time.
func (di *API) Search(c *gin.Context) {
	var q search.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		di.fail(c, invalid(err))
		return
	}
	v, err := di.viewer(c)
	if err != nil {
		di.fail(c, err)
		return
	}
	list, err := search.Search(c, di.Deps, q, v)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
