package validator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	domain "person-registry-api/internal/domain/person"
	"person-registry-api/internal/interface/api/rest/dto/person"
)

var (
	ufRe      = regexp.MustCompile(`^[A-Z]{2}$`)
	zipCodeRe = regexp.MustCompile(`^[0-9]{5}-[0-9]{3}$|^[0-9]{8}$`)

	// keyed by "<json field>.<tag>"
	messages = map[string]string{
		"name.required":    "Name is required",
		"name.min":         "The name must be between 3 and 50 characters long.",
		"name.max":         "The name must be between 3 and 50 characters long.",
		"name.startsupper": "The name must start with an uppercase letter.",

		"dateOfBirth.required":      "Date of birth cannot be null",
		"dateOfBirth.isodate":       "Date of birth must be in the YYYY-MM-DD format",
		"dateOfBirth.pastorpresent": "Date of birth must be in the past or present",

		"cpf.required": "CPF is required",
		"cpf.cpf":      "Invalid CPF",

		"addresses.required": "Address list cannot be null",
		"addresses.min":      "At least one address is required",

		"street.required":       "The street address cannot be empty",
		"street.notblank":       "The street address cannot be empty",
		"street.max":            "The street address must have a maximum of 100 characters",
		"number.max":            "The number must have a maximum of 20 characters",
		"neighborhood.required": "The neighborhood cannot be empty",
		"neighborhood.notblank": "The neighborhood cannot be empty",
		"neighborhood.max":      "The neighborhood must have a maximum of 50 characters",
		"city.required":         "The city cannot be empty",
		"city.notblank":         "The city cannot be empty",
		"city.max":              "The city must have a maximum of 50 characters",
		"state.required":        "The state cannot be empty",
		"state.len":             "The state must have 2 characters",
		"state.uf":              "The state must be a valid two-letter abbreviation (e.g., SP, RJ, CA, NY)",
		"zipCode.required":      "The ZIP code cannot be empty",
		"zipCode.zipcode":       "The ZIP code must be in the 00000-000 or 00000000 format",
	}

	validate = newValidate()
)

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names, e.g. addresses[0].zipCode
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, fn := range map[string]validator.Func{
		"cpf":           isCPF,
		"notblank":      validators.NotBlank,
		"startsupper":   startsWithUpper,
		"isodate":       isISODate,
		"pastorpresent": isPastOrPresent,
		"uf":            isUF,
		"zipcode":       isZipCode,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %q validation: %v", tag, err))
		}
	}

	return v
}

func isCPF(fl validator.FieldLevel) bool { return domain.IsValidCPF(fl.Field().String()) }

func isUF(fl validator.FieldLevel) bool { return ufRe.MatchString(fl.Field().String()) }

func isZipCode(fl validator.FieldLevel) bool { return zipCodeRe.MatchString(fl.Field().String()) }

// startsWithUpper accepts only an ASCII capital as the first letter.
func startsWithUpper(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(person.DateLayout, fl.Field().String())
	return err == nil
}

// isPastOrPresent compares calendar dates so that "today" is always accepted.
func isPastOrPresent(fl validator.FieldLevel) bool {
	d, err := time.Parse(person.DateLayout, fl.Field().String())
	if err != nil {
		return true
	}
	today := time.Now().Format(person.DateLayout)
	return d.Format(person.DateLayout) <= today
}

// ValidatePerson checks every constraint of the request and returns all
// violations at once, keyed by field path. Returns nil when the request is valid.
func ValidatePerson(r person.Request) map[string]string {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		errs[fieldPath(fe)] = message(fe)
	}

	return errs
}

// fieldPath drops the struct name: "Request.addresses[0].city" -> "addresses[0].city".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	if fe.Param() != "" {
		return fmt.Sprintf("failed on the '%s=%s' rule", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

// ValidatePage parses the page/size query parameters. Empty values fall back
// to page 0 and defaultSize.
func ValidatePage(page, size string, defaultSize, maxSize int) (int, int, map[string]string) {
	errs := make(map[string]string)

	p := 0
	if page != "" {
		v, err := strconv.Atoi(page)
		if err != nil || v < 0 {
			errs["page"] = "page must be a non-negative integer"
		}
		p = v
	}

	s := defaultSize
	if size != "" {
		v, err := strconv.Atoi(size)
		if err != nil || v < 1 || v > maxSize {
			errs["size"] = fmt.Sprintf("size must be an integer between 1 and %d", maxSize)
		}
		s = v
	}

	// the row offset page*size must fit in an int
	if len(errs) == 0 && p > math.MaxInt/s {
		errs["page"] = fmt.Sprintf("page must be at most %d for size %d", math.MaxInt/s, s)
	}

	if len(errs) == 0 {
		return p, s, nil
	}

	return 0, 0, errs
}

func ParseID(s string) (domain.ID, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return domain.ID(id), true
}
