package validator

import (
	"context"
	v10validator "github.com/go-playground/validator/v10"
	"reflect"
	"regexp"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

type Validator struct {
	engine Engine
}

type Engine interface {
	StructCtx(ctx context.Context, s any) error
	VarCtx(ctx context.Context, field any, tag string) error
}

func New(e Engine) *Validator {
	return &Validator{engine: e}
}

func (v *Validator) Struct(ctx context.Context, s any) error {
	return v.engine.StructCtx(ctx, s)
}

func (v *Validator) Var(ctx context.Context, field any, tag string) error {
	return v.engine.VarCtx(ctx, field, tag)
}

// Phone проверяет, что строка является номером телефона: необязательный "+"
// и от 9 до 15 цифр.
func Phone(fl v10validator.FieldLevel) bool {
	val := fl.Field()
	if val.Kind() != reflect.String {
		return false
	}

	return phonePattern.MatchString(val.String())
}

// Register регистрирует в движке валидации правило phone.
func Register(e *v10validator.Validate) error {
	return e.RegisterValidation("phone", Phone)
}
