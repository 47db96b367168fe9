package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"
	"yamdb/proj/internal/domain/models"

	govalidator "github.com/go-playground/validator/v10"
)

var (
	usernameRx = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRx     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// New returns a validator with the custom tags used by request structs registered.
func New() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.RegisterValidation("username", ValidateUsername)
	v.RegisterValidation("notreserved", ValidateNotReserved)
	v.RegisterValidation("slug", ValidateSlug)
	v.RegisterValidation("notfutureyear", ValidateNotFutureYear)
	return v
}

func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func structType(obj any) reflect.Type {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func lookupField(obj any, origFieldName string) reflect.StructField {
	t := structType(obj)
	if i := strings.IndexByte(origFieldName, '['); i >= 0 {
		origFieldName = origFieldName[:i]
	}
	field, found := t.FieldByName(origFieldName)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", origFieldName, t.Name()))
	}
	return field
}

func getFieldName(obj any, origFieldName string) (fieldName string) {
	field := lookupField(obj, origFieldName)
	for _, tagName := range []string{"json", "schema"} {
		if tag := field.Tag.Get(tagName); tag != "" && tag != "-" {
			if name := strings.Split(tag, ",")[0]; name != "" {
				return name
			}
		}
	}
	return camelToSnake(field.Name)
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	field := lookupField(obj, err.StructField())
	errorMsg = field.Tag.Get("errorMsg")
	if errorMsg == "" {
		isText := err.Kind() == reflect.String || err.Kind() == reflect.Slice
		switch err.Tag() {
		case "required":
			errorMsg = "This field is required"
		case "max":
			if isText {
				errorMsg = fmt.Sprintf("The maximum length is %s", err.Param())
			} else {
				errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
			}
		case "min":
			if isText {
				errorMsg = fmt.Sprintf("The minimum length is %s", err.Param())
			} else {
				errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
			}
		case "gte":
			errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
		case "lte":
			errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
		case "lt":
			errorMsg = fmt.Sprintf("Value should be less than %s", err.Param())
		case "gt":
			errorMsg = fmt.Sprintf("Value should be greater than %s", err.Param())
		case "oneof":
			errorMsg = fmt.Sprintf("Value should be one of %s", err.Param())
		case "unique":
			errorMsg = "Value must not contain duplicate values"
		case "email":
			errorMsg = "Value must be a valid email address"
		case "username":
			errorMsg = "Only letters, digits and @/./+/-/_ are allowed"
		case "notreserved":
			errorMsg = fmt.Sprintf("Username '%s' is reserved", models.ReservedUsername)
		case "slug":
			errorMsg = "Only latin letters, digits, hyphens and underscores are allowed"
		case "notfutureyear":
			errorMsg = "Year must not be greater than the current year"
		default:
			errorMsg = "This field is invalid"
		}
	}
	return
}

// CUSTOM VALIDATORS

func ValidateUsername(fl govalidator.FieldLevel) bool {
	return usernameRx.MatchString(fl.Field().String())
}

func ValidateNotReserved(fl govalidator.FieldLevel) bool {
	return fl.Field().String() != models.ReservedUsername
}

func ValidateSlug(fl govalidator.FieldLevel) bool {
	return slugRx.MatchString(fl.Field().String())
}

func ValidateNotFutureYear(fl govalidator.FieldLevel) bool {
	return fl.Field().Int() <= int64(time.Now().Year())
}
