package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

type ArticleRouteConfig struct {
	ArticleHandler *handlers.ArticleHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupArticleRoutes(api *gin.RouterGroup, config *ArticleRouteConfig) {
	h := config.ArticleHandler

	articles := api.Group("/articles")
	articles.Use(config.AuthMiddleware.RequireAuth())
	{
		articles.GET("", h.ListArticles)
		articles.POST("", h.CreateArticle)
		articles.GET("/:uid", h.GetArticle)
		articles.PUT("/:uid", h.UpdateArticle)
		articles.DELETE("/:uid", h.DeleteArticle)
		articles.POST("/:uid/:action", h.ApplyAction)
	}
}
