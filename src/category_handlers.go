package main

import (
	"net/http"
	"ticketing/src/common"
	"ticketing/src/types"

	"github.com/gin-gonic/gin"
)

func categoryHandlers(g *gin.RouterGroup, catalog *common.CatalogService) *gin.RouterGroup {
	g.
		GET("/categories", func(ctx *gin.Context) {
			categories, err := catalog.ListCategories(ctx.Request.Context())
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": categories})
		}).
		GET("/categories/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			category, err := catalog.GetCategory(ctx.Request.Context(), params.ID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": category})
		})
	return g
}

func categoryAdminHandlers(g *gin.RouterGroup, catalog *common.CatalogService) *gin.RouterGroup {
	g.
		POST("/categories", func(ctx *gin.Context) {
			var body types.CategoryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			category, err := catalog.CreateCategory(ctx.Request.Context(), body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": category})
		}).
		PUT("/categories/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.CategoryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			category, err := catalog.UpdateCategory(ctx.Request.Context(), params.ID, body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": category})
		}).
		DELETE("/categories/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			if err := catalog.DeleteCategory(ctx.Request.Context(), params.ID); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
