package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	h := config.TicketHandler

	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// Specific paths before parameterized ones.
		tickets.POST("", h.CreateTicket)
		tickets.GET("", h.ListTickets)
		tickets.GET("/all", h.ListAllTickets)
		tickets.GET("/assigned", h.ListAssigned)
		tickets.GET("/search", h.SearchTickets)
		tickets.GET("/overdue", h.ListOverdue)
		tickets.GET("/counts/tags", h.CountByTag)
		tickets.GET("/counts/types", h.CountByType)
		tickets.GET("/counts/groups", h.TopGroups)
		tickets.GET("/requester/:userId", h.ListByRequester)

		tickets.PATCH("/:uid/status", h.UpdateStatus)
		tickets.POST("/:uid/assign", h.AssignTicket)
		tickets.POST("/:uid/subscribers", h.UpdateSubscriber)
		tickets.POST("/:uid/restore", h.RestoreTicket)

		tickets.POST("/:uid/comments", h.AddComment)
		tickets.PUT("/:uid/comments/:commentId", h.UpdateComment)
		tickets.DELETE("/:uid/comments/:commentId", h.RemoveComment)

		tickets.POST("/:uid/notes", tickethandlers.Notes(), h.AddComment)
		tickets.PUT("/:uid/notes/:commentId", tickethandlers.Notes(), h.UpdateComment)
		tickets.DELETE("/:uid/notes/:commentId", tickethandlers.Notes(), h.RemoveComment)

		tickets.POST("/:uid/attachments", h.AddAttachment)
		tickets.DELETE("/:uid/attachments/:attachmentId", h.RemoveAttachment)

		tickets.GET("/:uid", h.GetTicket)
		tickets.PUT("/:uid", h.UpdateTicket)
		tickets.DELETE("/:uid", h.DeleteTicket)
	}
}
