package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/creamio/backoffice-api/internal/domain/entity"
)

// Violation is one failed constraint on one field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator checks user records against their declarative constraints plus
// the cross-field rule that a plain password may never equal the username.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return lowerFirst(fld.Name)
	})
	return &Validator{v: v}
}

// Validate returns the list of constraint violations on the record, empty when
// valid. A missing plain password is accepted; partial updates may legitimately
// leave it unset.
func (va *Validator) Validate(u *entity.User) []Violation {
	err := va.v.Struct(u)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Violation{{Field: "record", Message: err.Error()}}
	}
	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

// ValidateNew validates a record being created, where a plain password is
// mandatory.
func (va *Validator) ValidateNew(u *entity.User) []Violation {
	out := va.Validate(u)
	if u.PlainPassword == "" {
		out = append(out, Violation{Field: "plainPassword", Message: "is required"})
	}
	return out
}

// ViolationMap flattens violations into the field → message shape rendered
// under fields-validation-violations.
func ViolationMap(violations []Violation) map[string]string {
	out := make(map[string]string, len(violations))
	for _, v := range violations {
		out[v.Field] = v.Message
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "nefield":
		return "must not be equal to " + lowerFirst(param)
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func lowerFirst(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
