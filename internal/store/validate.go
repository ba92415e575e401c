package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
)

// validate 与 gin 共用 binding 标签，字段名取 json 标签
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(JSONFieldName)
	return v
}

// JSONFieldName 校验错误中的字段名使用 json 标签
func JSONFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func validateStruct(req any) error {
	if err := validate.Struct(req); err != nil {
		if verr := FromValidation(err); verr != nil {
			return verr
		}
		return apperrors.Invalid("", err.Error())
	}
	return nil
}

// FromValidation 将 validator 错误转换为字段级 KindValidation 错误
// 仅取第一个失败字段，与表单逐项提示的交互一致；非校验错误返回 nil
func FromValidation(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return nil
	}
	fe := ves[0]
	field := lowerFirst(fe.Field())
	return apperrors.Invalid(field, fieldMessage(field, fe))
}

func fieldMessage(field string, fe validator.FieldError) string {
	label := humanize(field)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Please enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), "'", ""))
	case "datetime":
		return fmt.Sprintf("%s must match the format %q", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// humanize academicYear → Academic year
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
