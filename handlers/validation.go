package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/arden-cole/portfoliobackend/database"
	"github.com/arden-cole/portfoliobackend/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validate is the shared validator instance. Struct rules live on the
// model tags; the custom "slug" rule enforces URL-safe identifiers.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidationDetails flattens validator errors into per-field API details
func ValidationDetails(err error) []APIErrorDetail {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []APIErrorDetail{{Code: "validation_error", Status: "400", Detail: err.Error()}}
	}
	details := make([]APIErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, APIErrorDetail{
			Code:   "validation_error",
			Status: "400",
			Field:  fe.Namespace(),
			Detail: fmt.Sprintf("failed '%s' validation", fe.Tag()),
		})
	}
	return details
}

// MutationResult is the uniform success/failure envelope returned by the
// admin mutation endpoints.
type MutationResult struct {
	OK     bool             `json:"ok"`
	Item   interface{}      `json:"item,omitempty"`
	Error  string           `json:"error,omitempty"`
	Errors []APIErrorDetail `json:"errors,omitempty"`
}

func writeMutationOK(w http.ResponseWriter, status int, item interface{}) {
	writeJSON(w, status, MutationResult{OK: true, Item: item})
}

func writeValidationFailure(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, MutationResult{
		OK:     false,
		Error:  "invalid input",
		Errors: ValidationDetails(err),
	})
}

// parseListOptions validates the shared list query parameters. Invalid
// values collect into per-parameter details for a 400 response.
func parseListOptions(r *http.Request) (repository.ListOptions, []APIErrorDetail) {
	q := r.URL.Query()
	opts := repository.ListOptions{Query: q.Get("query"), Sort: database.DefaultSortOrder}
	var details []APIErrorDetail

	badParam := func(name, val string) APIErrorDetail {
		return APIErrorDetail{
			Code:   "invalid_parameter",
			Status: "400",
			Field:  name,
			Detail: fmt.Sprintf("invalid value '%s' for %s", val, name),
		}
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			details = append(details, badParam("page", v))
		} else {
			opts.Page = n
		}
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > repository.MaxPageSize {
			details = append(details, badParam("pageSize", v))
		} else {
			opts.PageSize = n
		}
	}
	if v := q.Get("sort"); v != "" {
		if !database.IsValidSortOrder(v) {
			details = append(details, badParam("sort", v))
		} else {
			opts.Sort = v
		}
	}
	if v := q.Get("createdFrom"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			details = append(details, badParam("createdFrom", v))
		} else {
			opts.CreatedFrom = &t
		}
	}
	if v := q.Get("createdTo"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			details = append(details, badParam("createdTo", v))
		} else {
			opts.CreatedTo = &t
		}
	}
	if v := q.Get("authorId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 1 {
			details = append(details, badParam("authorId", v))
		} else {
			opts.AuthorID = &id
		}
	}

	return opts, details
}
