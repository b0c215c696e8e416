package types

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/killallgit/interviewcut/pkg/errors"
)

// Handler utility functions to reduce duplication across handlers

// ParseUintParam extracts and parses a URL parameter as uint
// Returns the parsed value and sends error response if parsing fails
func ParseUintParam(c *gin.Context, paramName string) (uint, bool) {
	paramStr := c.Param(paramName)
	value, err := strconv.ParseUint(paramStr, 10, 32)
	if err != nil {
		SendBadRequest(c, "Invalid "+paramName)
		return 0, false
	}
	return uint(value), true
}

// ParseIntParam extracts a positive int URL parameter
func ParseIntParam(c *gin.Context, paramName string) (int, bool) {
	value, err := strconv.Atoi(c.Param(paramName))
	if err != nil || value <= 0 {
		SendBadRequest(c, "Invalid "+paramName)
		return 0, false
	}
	return value, true
}

// QueryInt reads an optional non-negative int query parameter
func QueryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		SendBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return value, true
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		SendError(c, bindingError(err))
		return false
	}
	return true
}

// bindingError reports the first failed binding rule, or a malformed body
func bindingError(err error) *pkgerrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeInvalidInput, "Invalid request body")
	}

	fe := verrs[0]
	if fe.Tag() == "required" {
		return pkgerrors.MissingFieldError(fe.Field()).WithCause(err)
	}
	reason := fe.Tag()
	if fe.Param() != "" {
		reason += "=" + fe.Param()
	}
	return pkgerrors.ValidationError(fe.Field(), "must satisfy "+reason).WithCause(err)
}

// SendError maps a domain error to its status code and error body
func SendError(c *gin.Context, err error) {
	appErr := pkgerrors.FromDomain(err)
	resp := ErrorResponse{
		Status:  StatusError,
		Message: appErr.Message,
		Error:   string(appErr.Code),
	}
	if len(appErr.Details) > 0 {
		resp.Details = appErr.Details
	}
	status := appErr.GetHTTPCode()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, resp)
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: StatusError, Message: message, Error: string(pkgerrors.ErrCodeInvalidInput)})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Status: StatusError, Message: message, Error: string(pkgerrors.ErrCodeNotFound)})
}

// SendInternalError sends a standardized internal server error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Status: StatusError, Message: message, Error: string(pkgerrors.ErrCodeInternal)})
}

// SendServiceUnavailable reports a dependency that was not configured
func SendServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Status: StatusError, Message: message})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a standardized created response with data
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendAccepted sends a standardized accepted response with data
func SendAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, data)
}
