package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yukikurage/collab-projects-api/internal/constants"
	apierrors "github.com/yukikurage/collab-projects-api/internal/errors"
	"github.com/yukikurage/collab-projects-api/internal/logger"
	"github.com/yukikurage/collab-projects-api/internal/middleware"
	"github.com/yukikurage/collab-projects-api/internal/services"
)

const dateLayout = "2006-01-02"

func init() {
	// Report binding failures under the JSON names clients send
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondError maps a service error to an HTTP response
func respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		apierrors.ValidationFailed(c, "", map[string][]string{vErr.Field: {vErr.Err.Error()}})
	case services.IsForbidden(err):
		apierrors.Forbidden(c, err.Error())
	case services.IsNotFound(err):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrInvalidRefreshToken):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured), errors.Is(err, services.ErrAIDraftIncomplete):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		logger.Error().
			Err(err).
			Str("request_id", c.GetString(constants.ContextKeyRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		apierrors.InternalError(c, "")
	}
}

// bindJSON binds the request body and answers 400 on failure. The body is
// cached so that nullFields can inspect it afterwards.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindBodyWith(req, binding.JSON)
	if err == nil {
		return true
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make(map[string][]string, len(vErrs))
		for _, fe := range vErrs {
			fields[fe.Field()] = append(fields[fe.Field()], bindingMessage(fe))
		}
		apierrors.ValidationFailed(c, "", fields)
		return false
	}

	apierrors.BadRequest(c, "Invalid request body")
	return false
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}

// nullFields returns the top-level keys of the cached body that were sent
// as an explicit null. Absent keys are not in the set.
func nullFields(c *gin.Context) map[string]bool {
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		return map[string]bool{}
	}

	nulls := make(map[string]bool, len(raw))
	for key, value := range raw {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			nulls[key] = true
		}
	}
	return nulls
}

// parseIDParam parses a numeric path parameter and answers 400 on failure
func parseIDParam(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s ID", label))
		return 0, false
	}
	return id, true
}

// queryUint64 parses an optional numeric query parameter
func queryUint64(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return nil, false
	}
	return &value, true
}

// parseDate parses an optional YYYY-MM-DD value
func parseDate(c *gin.Context, field string, value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		apierrors.ValidationFailed(c, "", map[string][]string{field: {"use the format YYYY-MM-DD"}})
		return nil, false
	}
	return &parsed, true
}

// currentUser returns the authenticated user id or answers 401
func currentUser(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}
