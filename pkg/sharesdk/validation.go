package sharesdk

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches struct metadata per type.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so details line up with the body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		_, ok := departmentNames[fl.Field().String()]
		return ok
	})

	return v
}

// departmentNames mirrors the server's fixed department list so requests can
// be checked before they are sent.
var departmentNames = map[string]struct{}{
	"HR":          {},
	"IT":          {},
	"Finance":     {},
	"Marketing":   {},
	"Sales":       {},
	"Operations":  {},
	"Legal":       {},
	"Engineering": {},
}

// DepartmentNames returns the department names a RegisterRequest accepts.
func DepartmentNames() []string {
	out := make([]string, 0, len(departmentNames))
	for name := range departmentNames {
		out = append(out, name)
	}
	return out
}

// registerMessages holds one message per field. A "field.tag" key overrides
// the field message for that rule.
var registerMessages = map[string]string{
	"full_name":        "Full name must be at least 2 characters",
	"email":            "Invalid email address",
	"department":       "Please select a department",
	"password":         "Password must be at least 6 characters",
	"password.max":     "Password must be at most 72 bytes",
	"confirm_password": "Passwords don't match",
}

var loginMessages = map[string]string{
	"identifier": "Identifier is required",
	"password":   "Password is required",
}

// Validate checks the request fields.
// Returns a map of field names to error messages, or nil if all fields are valid.
func (r RegisterRequest) Validate() map[string]string {
	return fieldErrors(validate.Struct(r), registerMessages)
}

// Validate checks the request fields.
// Returns a map of field names to error messages, or nil if all fields are valid.
func (r LoginRequest) Validate() map[string]string {
	return fieldErrors(validate.Struct(r), loginMessages)
}

func fieldErrors(err error, messages map[string]string) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			errs[field] = msg
		} else if msg, ok := messages[field]; ok {
			errs[field] = msg
		} else {
			errs[field] = fe.Tag()
		}
	}
	return errs
}
