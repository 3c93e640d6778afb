package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ahsan-alam-500/tonycustom/services"
)

// Every endpoint answers with the same envelope:
// {success, status, message, data} on success,
// {success, status, message, errors} on validation failure.

func respondSuccess(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{
		"success": true,
		"status":  status,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"status":  status,
		"message": message,
	})
}

func respondValidation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"success": false,
		"status":  http.StatusUnprocessableEntity,
		"message": "Validation failed",
		"errors":  fields,
	})
}

// respondServiceError translates a typed service error into the envelope.
func respondServiceError(c *gin.Context, svcErr *services.ServiceError) {
	if svcErr.Fields != nil {
		respondValidation(c, svcErr.Fields)
		return
	}
	respondError(c, svcErr.StatusCode, svcErr.Message)
}

// respondBindingError shapes gin binding failures: validator errors get
// a per-field 422 map, malformed JSON gets a 400.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = validationMessage(fe)
		}
		respondValidation(c, fields)
		return
	}
	respondError(c, http.StatusBadRequest, "Invalid request body")
}

// fieldPath converts a validator namespace such as
// "ProductRequest.SkinTones[0].Name" into "skin_tones.0.name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	ns = strings.ReplaceAll(ns, "]", "")

	parts := strings.Split(ns, ".")
	for i, part := range parts {
		parts[i] = toSnake(part)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}

// parsePagination extracts page/limit query params with sane bounds.
func parsePagination(c *gin.Context) (int, int) {
	const maxLimit = 100
	page, limit := 1, 15
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("per_page", "15")); err == nil && l > 0 {
		if l > maxLimit {
			l = maxLimit
		}
		limit = l
	}
	return page, limit
}

// paginationMeta builds the pagination block of a listing response.
func paginationMeta(page, limit int, total int64) gin.H {
	lastPage := int((total + int64(limit) - 1) / int64(limit))
	if lastPage < 1 {
		lastPage = 1
	}
	return gin.H{
		"current_page":   page,
		"last_page":      lastPage,
		"per_page":       limit,
		"total":          total,
		"has_more_pages": page < lastPage,
	}
}
