package handlers

import (
	"errors"
	"net/http"

	"shopflow/internal/dto"
	"shopflow/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError translates service errors into the HTTP error taxonomy.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError("access denied"))
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrSKUAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	case errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrOrderNotCancellable),
		errors.Is(err, service.ErrNegativeStock),
		errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error()))
	default:
		log.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(err.Error()))
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error()))
}
