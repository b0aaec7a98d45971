package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tryanzu/quorum/board/posts"
	"github.com/tryanzu/quorum/board/questions"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/users"
	"github.com/tryanzu/quorum/board/votes"
	"github.com/tryanzu/quorum/core/exceptions"
)

func invalid(err error) error {
	return exceptions.Invalid("malformed request: %s", err.Error())
}

func (di *API) Ask(c *gin.Context) {
	var form questions.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		di.fail(c, invalid(err))
		return
	}
	q, err := questions.Create(c, di.Deps, userID(c), form)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// Write stores an answer or post, as a draft unless ?publish=true.
func (di *API) Write(c *gin.Context) {
	var form posts.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		di.fail(c, invalid(err))
		return
	}
	post, err := posts.Create(c, di.Deps, userID(c), form, c.Query("publish") == "true")
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (di *API) Drafts(c *gin.Context) {
	list, err := posts.Drafts(c, di.Deps, userID(c))
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (di *API) Publish(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		di.fail(c, err)
		return
	}
	post, err := posts.Publish(c, di.Deps, id, userID(c))
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (di *API) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		di.fail(c, err)
		return
	}
	if _, err := posts.Delete(c, di.Deps, id, userID(c)); err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay"})
}

var votables = map[string]store.Collection{
	"questions": store.Questions,
	"posts":     store.Posts,
	"comments":  store.Comments,
}

// Vote toggles /votes/:type/:id/:direction where direction is up or down.
func (di *API) Vote(c *gin.Context) {
	collection, ok := votables[c.Param("type")]
	if !ok {
		di.fail(c, exceptions.Invalid("cannot vote on %s", c.Param("type")))
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		di.fail(c, err)
		return
	}
	kind := votes.UP
	switch c.Param("direction") {
	case "up":
	case "down":
		kind = votes.DOWN
	default:
		di.fail(c, exceptions.Invalid("vote must be up or down"))
		return
	}
	status, err := votes.Toggle(c, di.Deps, votes.Ref{Type: collection, ID: id}, userID(c), kind)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay", "message": status})
}

func (di *API) Follow(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		di.fail(c, err)
		return
	}
	following, err := users.ToggleFollow(c, di.Deps, userID(c), id)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay", "following": following})
}

func (di *API) Bookmark(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		di.fail(c, err)
		return
	}
	bookmarked, err := users.ToggleBookmark(c, di.Deps, userID(c), id)
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay", "bookmarked": bookmarked})
}

type languageForm struct {
	Name    string `json:"name" binding:"required"`
	Primary bool   `json:"primary"`
}

// Language adds a language, or makes it the primary one.
func (di *API) Language(c *gin.Context) {
	var form languageForm
	if err := c.ShouldBindJSON(&form); err != nil {
		di.fail(c, invalid(err))
		return
	}
	var err error
	if form.Primary {
		err = users.SetPrimaryLanguage(c, di.Deps, userID(c), form.Name)
	} else {
		err = users.AddLanguage(c, di.Deps, userID(c), form.Name)
	}
	if err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay"})
}

func (di *API) DropLanguage(c *gin.Context) {
	if err := users.RemoveLanguage(c, di.Deps, userID(c), c.Param("name")); err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay"})
}

// Employment, education and location share one route keyed by :credential.
func (di *API) Credential(c *gin.Context) {
	var credential users.Credential
	switch c.Param("credential") {
	case "employment":
		credential = &users.Employment{}
	case "education":
		credential = &users.Education{}
	case "location":
		credential = &users.Location{}
	default:
		di.fail(c, exceptions.Invalid("unknown credential %s", c.Param("credential")))
		return
	}
	if err := c.ShouldBindJSON(credential); err != nil {
		di.fail(c, invalid(err))
		return
	}
	if err := users.UpdateCredential(c, di.Deps, userID(c), credential); err != nil {
		di.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "okay"})
}
