package handle

import (
	"github.com/gin-gonic/gin"
)

// Routes mounts the board. Reads work anonymously, writes need a token.
func (di *API) Routes(router gin.IRouter) {
	router.Use(di.RequestID(), di.ErrorTracking(), di.Authorization())

	router.GET("/feed/:kind", di.Feed)
	router.GET("/questions", di.Answered)
	router.GET("/discover", di.Discover)
	router.GET("/questions/:slug", di.Question)
	router.GET("/posts/:id/comments", di.Thread)
	router.GET("/comments/:id/replies", di.Replies)
	router.GET("/search", di.Search)
	router.GET("/profiles/:username", di.Profile)
	router.GET("/users/:id/follows", di.Follows)
	router.GET("/users/:id/content/:kind", di.Authored)

	auth := router.Group("/", di.NeedAuthorization())
	auth.GET("/bookmarks", di.Bookmarks)
	auth.GET("/drafts", di.Drafts)
	auth.POST("/questions", di.Ask)
	auth.POST("/posts", di.Write)
	auth.POST("/posts/:id/publish", di.Publish)
	auth.DELETE("/posts/:id", di.Delete)
	auth.POST("/comments", di.Comment)
	auth.POST("/votes/:type/:id/:direction", di.Vote)
	auth.POST("/users/:id/follow", di.Follow)
	auth.POST("/bookmarks/:id", di.Bookmark)
	auth.POST("/me/languages", di.Language)
	auth.DELETE("/me/languages/:name", di.DropLanguage)
	auth.PUT("/me/credentials/:credential", di.Credential)
}
