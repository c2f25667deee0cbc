package main

import (
	"net/http"
	"ticketing/src/common"
	"ticketing/src/types"

	"github.com/gin-gonic/gin"
)

func eventHandlers(g *gin.RouterGroup, catalog *common.CatalogService) *gin.RouterGroup {
	g.
		GET("/events", func(ctx *gin.Context) {
			var filters types.EventQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				bindError(ctx, err)
				return
			}
			events, err := catalog.ListEvents(ctx.Request.Context(), filters)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events})
		}).
		GET("/events/overview", func(ctx *gin.Context) {
			overview, err := catalog.Overview(ctx.Request.Context())
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": overview})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			event, err := catalog.GetEvent(ctx.Request.Context(), params.ID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		})
	return g
}

func eventAdminHandlers(g *gin.RouterGroup, catalog *common.CatalogService) *gin.RouterGroup {
	g.
		POST("/events", func(ctx *gin.Context) {
			var body types.EventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			event, err := catalog.CreateEvent(ctx.Request.Context(), body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": event})
		}).
		PUT("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.EventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			event, err := catalog.UpdateEvent(ctx.Request.Context(), params.ID, body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		DELETE("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			if err := catalog.DeleteEvent(ctx.Request.Context(), params.ID); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
