package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/MrEshunOfficial/category-api/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Reportar el nombre JSON del campo, no el de Go.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			f := fl.Field()
			if f.Kind() != reflect.String {
				return true
			}
			return strings.TrimSpace(f.String()) != ""
		})
		validate = v
	})
	return validate
}

// Validate aplica las reglas `validate` del DTO y devuelve *domain.ValidationError
// con el primer campo inválido.
func Validate(in any) error {
	err := validatorInstance().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domain.ValidationError{Message: "cuerpo inválido", Err: err}
	}
	fe := verrs[0]
	return domain.NewValidationError(fieldPath(fe), ruleMessage(fe))
}

// fieldPath quita el nombre del struct raíz: "CreateCategoryRequest.subcategories[0].name" -> "subcategories[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "es requerido"
	case "max":
		return "excede la longitud máxima de " + fe.Param()
	default:
		return "no cumple la regla " + fe.Tag()
	}
}
