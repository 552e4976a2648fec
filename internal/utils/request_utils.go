package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"account-server/internal/schemas"
)

// WriteAndLogResponse encodes the response object to JSON and writes it
// to the HTTP response with the provided status code.
func WriteAndLogResponse(ctx *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(ctx, "info", "Returning response")
	ctx.JSON(statusCode, response)
}

// WriteAndLogError writes the field-error map as the JSON error body
// and logs the underlying cause server-side.
func WriteAndLogError(ctx *gin.Context, fieldErrors schemas.FieldErrors, statusCode int, err error) {
	LogMessageWithFields(ctx, "error", "Error occurred: "+err.Error())
	ctx.JSON(statusCode, fieldErrors)
}

// WriteAndLogInternalError hides the failure detail behind a generic
// global message. The detail only goes to the server log.
func WriteAndLogInternalError(ctx *gin.Context, err error) {
	WriteAndLogError(ctx, schemas.Global(schemas.MsgInternal), http.StatusInternalServerError, err)
}
