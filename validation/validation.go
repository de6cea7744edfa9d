package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"tournament/models"

	"github.com/go-playground/validator/v10"
)

var whatsappPattern = regexp.MustCompile(`^[0-9]{10}$`)

// Messages for fields whose generic tag message reads poorly.
var fieldMessages = map[string]string{
	"gameType":       "Game type must be either PUBG or Free Fire",
	"leaderWhatsapp": "WhatsApp number must be 10 digits",
	"youtubeVote":    "Please select Yes or No",
	"agreedToTerms":  "You must agree to terms and conditions",
	"status":         "Status must be one of pending, approved or rejected",
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("whatsapp", func(fl validator.FieldLevel) bool {
		return whatsappPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Struct validates s and converts failures into a *models.ValidationError
// listing every offending field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &models.ValidationError{}
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		out.Fields = append(out.Fields, models.FieldError{Field: field, Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// TypeError describes a JSON value whose type does not fit the field it was
// decoded into.
func TypeError(e *json.UnmarshalTypeError) models.FieldError {
	return models.FieldError{
		Field:   e.Field,
		Message: fmt.Sprintf("Expected %s, received %s", jsonKind(e.Type), e.Value),
	}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Ptr:
		return jsonKind(t.Elem())
	default:
		return "number"
	}
}

// Check validates a partially decoded payload. The given field errors come
// first; struct rules add the fields they name that are not already listed.
func (v *Validator) Check(s interface{}, decoded ...models.FieldError) *models.ValidationError {
	if n, ok := s.(interface{ normalize() }); ok {
		n.normalize()
	}

	out := &models.ValidationError{Fields: append([]models.FieldError(nil), decoded...)}
	var verr *models.ValidationError
	if err := v.Struct(s); errors.As(err, &verr) {
		for _, f := range verr.Fields {
			if !out.Has(f.Field) {
				out.Fields = append(out.Fields, f)
			}
		}
	}
	return out
}
