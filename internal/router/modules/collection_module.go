package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/agrosphere-api/internal/container"
	handlers "github.com/oksasatya/agrosphere-api/internal/interface/http"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
)

const latestForumPosts = 4

// CollectionModule serves the videos, forum, trainers, success stories and products collections.
// Reads are public; writes and votes need a token.
type CollectionModule struct {
	Handlers map[string]*handlers.CollectionHandler
	C        *container.Container
}

func NewCollectionModule(h map[string]*handlers.CollectionHandler, c *container.Container) *CollectionModule {
	return &CollectionModule{Handlers: h, C: c}
}

func (m *CollectionModule) Register(rg *gin.RouterGroup) {
	videos := m.Handlers[container.Videos]
	forum := m.Handlers[container.Forum]
	trainers := m.Handlers[container.Trainers]
	stories := m.Handlers[container.SuccessStories]
	products := m.Handlers[container.Products]

	rg.GET("/videos", videos.List)
	rg.GET("/forum", forum.List)
	rg.GET("/forum/latest", forum.Latest(latestForumPosts))
	rg.GET("/forum/search", forum.Search)
	rg.GET("/trainers", trainers.List)
	rg.GET("/trainer/:id", trainers.Get)
	rg.GET("/success-stories", stories.List)
	rg.GET("/all-products", products.List)
	rg.GET("/products", products.FilterBy("email", "seller.email"))
	rg.GET("/products/search", products.Search)
	rg.GET("/product/:id", products.Get)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuthenticated(m.C.JWT))
	{
		auth.POST("/videos", videos.Insert)
		auth.POST("/forum", forum.Insert)
		auth.PATCH("/forum/upvote/:id", forum.Increment("upVote"))
		auth.PATCH("/forum/downvote/:id", forum.Increment("downVote"))
		auth.POST("/success-stories", stories.Insert)
		auth.PATCH("/increase-upVote/:id", products.Increment("upVote"))
		auth.PATCH("/decrease-downVote/:id", products.Increment("downVote"))
	}
}
