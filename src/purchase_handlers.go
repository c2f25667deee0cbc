package main

import (
	"net/http"
	"ticketing/src/common"
	"ticketing/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func purchaseHandlers(g *gin.RouterGroup, purchases *common.PurchaseService, history *common.HistoryService) *gin.RouterGroup {
	g.
		GET("/events/:id/purchase", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			quote, err := purchases.PurchaseQuote(ctx.Request.Context(), params.ID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": quote})
		}).
		POST("/events/:id/purchase", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.PurchaseRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			purchase, err := purchases.PurchaseTickets(ctx.Request.Context(), params.ID, body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": purchase.ID, "reference": purchase.Reference})
		}).
		GET("/purchases/:reference", func(ctx *gin.Context) {
			var params types.PurchaseReferenceParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			reference, err := uuid.Parse(params.Reference)
			if err != nil {
				bindError(ctx, err)
				return
			}
			purchase, err := history.GetPurchaseByReference(ctx.Request.Context(), reference)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": purchase})
		})
	return g
}

func historyAdminHandlers(g *gin.RouterGroup, history *common.HistoryService) *gin.RouterGroup {
	g.
		GET("/history", func(ctx *gin.Context) {
			list, err := history.ListPurchases(ctx.Request.Context())
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": list})
		}).
		GET("/history/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			purchase, err := history.GetPurchase(ctx.Request.Context(), params.ID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": purchase})
		})
	return g
}
