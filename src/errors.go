package main

import (
	"errors"
	"log"
	"net/http"
	"ticketing/src/common"

	"github.com/gin-gonic/gin"
)

func respondError(ctx *gin.Context, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "code": "validation_error", "fields": verr.Fields})
	case errors.Is(err, common.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, common.ErrInsufficientAvailability):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "insufficient_availability"})
	case errors.Is(err, common.ErrCategoryInUse), errors.Is(err, common.ErrEventInUse):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "in_use"})
	default:
		log.Printf("Error on %s %s [%s]: %s\n", ctx.Request.Method, ctx.FullPath(), ctx.GetString("request_id"), err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "persistence_error"})
	}
}

func bindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "bad_request"})
}
