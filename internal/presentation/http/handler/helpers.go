package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/billmaster-api/internal/domain/enum"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billmaster-api/internal/presentation/http/middleware"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/sangkips/billmaster-api/pkg/utils"
)

var registerTagNames sync.Once

// UseJSONFieldNames makes binding errors report json field names
func UseJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) uint {
	return middleware.UserID(c)
}

// GetUserName extracts the user name from the Gin context
func GetUserName(c *gin.Context) string {
	return c.GetString(middleware.ContextUserName)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	role, _ := c.Get(middleware.ContextUserRole)
	r, _ := role.(enum.UserRole)
	return r
}

// IsAdmin checks if the user has the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == enum.UserRoleAdmin
}

// parseID reads a numeric path parameter and answers 400 when it is malformed
func parseID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		response.BadRequest(c, "Invalid ID format")
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body and answers 422 with field errors or 400 on malformed JSON
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.ValidationError(c, fieldErrors(verrs))
			return false
		}
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// bindQuery decodes query parameters
func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return false
	}
	return true
}

func fieldErrors(verrs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperror.FieldError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "is invalid"
}
