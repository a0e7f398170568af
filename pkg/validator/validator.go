package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
)

func Init() {
	validate = validator.New()
	sanitizer = bluemonday.UGCPolicy()

	registerCustomValidations(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	return validate.Struct(s)
}

func SanitizeHTML(html string) string {
	return sanitizer.Sanitize(html)
}

// SanitizeString strips every tag; used for free-text fields that must stay
// plain text (quotation descriptions, modification requests).
func SanitizeString(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}

func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func ValidateURL(url string) bool {
	urlRegex := regexp.MustCompile(`^https?://[a-zA-Z0-9\-\.]+\.[a-zA-Z]{2,}(/.*)?$`)
	return urlRegex.MatchString(url)
}

func validateSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()
	matched, _ := regexp.MatchString(`^[a-z0-9-]+$`, slug)
	return matched
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

func SanitizeFilename(filename string) string {
	reg := regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	return reg.ReplaceAllString(filename, "_")
}

func ValidateImageExtension(filename string) bool {
	allowedExtensions := []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".ico"}
	filename = strings.ToLower(filename)

	for _, ext := range allowedExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}
