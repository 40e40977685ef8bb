package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"landlord/server/internal/models"
	"landlord/server/internal/repository"
)

var registerFieldNames sync.Once

// useJSONFieldNames makes validator report fields by their json names so
// binding failures point at the same keys clients send.
func useJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// respondError maps a domain error onto a status code and a {"detail": ...} body.
func (h *Handler) respondError(c *gin.Context, err error) {
	var notFound *repository.NotFoundError
	var invalid *models.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": notFound.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": invalid.Message, "field": invalid.Field})
	case errors.Is(err, repository.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"detail": "Email already registered"})
	default:
		h.logger.WithError(err).WithFields(requestFields(c)).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

// respondBindError rejects a body or query that failed to decode or validate.
// Validator and decoder messages name Go types, so they are rewritten in terms
// of the request's json fields.
func (h *Handler) respondBindError(c *gin.Context, err error) {
	h.logger.WithError(err).WithFields(requestFields(c)).Debug("Rejected malformed request")

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		fe := fieldErrs[0]
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": fieldMessage(fe), "field": fe.Field()})
	case errors.As(err, &typeErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "value has an invalid type", "field": typeErr.Field})
	case errors.As(err, &syntaxErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "malformed JSON body"})
	case errors.Is(err, io.EOF):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "request body is empty"})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
