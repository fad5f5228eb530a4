package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"
)

// bindAndValidate decodes the JSON body into req and runs struct
// validation. It writes the error response itself and reports whether
// the handler should continue.
func bindAndValidate(c *gin.Context, v *validator.Validator, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid request body"))
		return false
	}
	if err := v.Validate(req); err != nil {
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			apperrors.HandleError(c, apperrors.ValidationError(ve.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid query parameters"))
		return false
	}
	return true
}
