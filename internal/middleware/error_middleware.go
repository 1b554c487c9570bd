package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyplan/internal/app/models/dto"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{apperrors.ErrProgrammeNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Programme not found"},
	{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found"},
	{apperrors.ErrCategoryNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Category not found"},
	{apperrors.ErrSubcategoryNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Subcategory not found"},
	{apperrors.ErrMajorNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Major not found"},
	{apperrors.ErrMinorNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Minor not found"},
	{apperrors.ErrSeasonNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Season not found"},
	{apperrors.ErrPlanNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Plan not found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token format"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Bad request"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrProgrammeAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Programme already exists"},
	{apperrors.ErrCourseAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Course already exists"},
	{apperrors.ErrCatalogEntryExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Entry already exists"},
	{apperrors.ErrCatalogEntryInUse, http.StatusConflict, dto.ErrorCodeConflict, "Entry is in use"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
}

// ErrorStatus returns the HTTP status and error detail for err. Client
// errors carry the reason: a CustomError's message, or the text wrapped
// around the sentinel.
func ErrorStatus(err error) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			detail := dto.NewErrorDetail(m.code, m.message)
			if r := reason(err, m.target); r != "" {
				detail.WithDetails(r)
			}
			return m.status, detail
		}
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
		WithSeverity(dto.ErrorSeverityCritical)
}

func reason(err, sentinel error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	msg := err.Error()
	if msg == sentinel.Error() {
		return ""
	}
	return strings.TrimPrefix(strings.TrimPrefix(msg, sentinel.Error()), ": ")
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled API error")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
