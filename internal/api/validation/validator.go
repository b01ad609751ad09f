package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/pkg/response"
	"github.com/go-playground/validator/v10"
)

const (
	MsgInvalidDate  = "날짜는 YYYY-MM-DD 형식이어야 합니다."
	MsgInvalidHours = "수면 시간은 0에서 24 사이의 값이어야 합니다."
	MsgNoteTooLong  = "메모는 500자 이하로 입력해주세요."
	MsgInvalidInput = "입력값이 올바르지 않습니다."
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("datefmt", func(fl validator.FieldLevel) bool {
		return domain.DatePattern.MatchString(fl.Field().String())
	})
}

// Validate validates a request struct and returns one error per failing field.
func Validate(s any) []response.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []response.FieldError{{Field: "", Message: MsgInvalidInput}}
	}

	fieldErrors := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, response.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return fieldErrors
}

// Summary picks the headline message for a failed validation.
func Summary(errs []response.FieldError) string {
	if len(errs) == 0 {
		return MsgInvalidInput
	}
	return errs[0].Message
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "date":
		if fe.Tag() == "required" {
			return "날짜는 필수 항목입니다."
		}
		return MsgInvalidDate
	case "hours":
		if fe.Tag() == "required" {
			return "수면 시간은 필수 항목입니다."
		}
		return MsgInvalidHours
	case "note":
		return MsgNoteTooLong
	}
	return MsgInvalidInput
}
