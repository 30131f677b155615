package validator

import (
	"log"
	"reflect"
	"regexp"
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"

	"github.com/go-playground/validator/v10"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// registerCustomRules регистрирует кастомные правила
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// ➡️ Перечисления из statuses.go
	mustRegister("is-gender", enumRule(models.Genders))
	mustRegister("is-education-level", enumRule(models.EducationLevels))
	mustRegister("is-experience-level", enumRule(models.ExperienceLevels))
	mustRegister("is-marital-status", enumRule(models.MaritalStatuses))
	mustRegister("is-location-type", enumRule(models.LocationTypes))
	mustRegister("is-employment-type", enumRule(models.EmploymentTypes))
	mustRegister("is-application-status", enumRule(models.ApplicationStatuses))
	mustRegister("is-grade-type", enumRule(models.GradeTypes))
	mustRegister("is-proficiency", enumRule(models.Proficiencies))

	// ➡️ Форматы
	mustRegister("otp-code", func(fl validator.FieldLevel) bool {
		return otpPattern.MatchString(fl.Field().String())
	})
	mustRegister("date-or-empty", validateDateOrEmpty)
}

// enumRule - пустое значение пропускаем, для этого есть 'required'
func enumRule[T ~string](allowed []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		for _, a := range allowed {
			if string(a) == value {
				return true
			}
		}
		return false
	}
}

func validateDateOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

// registerOptionalTypes разворачивает dto.Optional: отсутствующее или null поле
// валидируется как nil (omitempty его пропускает), иначе проверяется само значение.
func registerOptionalTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[string]); ok && o.HasValue() {
			return o.Value
		}
		return nil
	}, dto.Optional[string]{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[int]); ok && o.HasValue() {
			return o.Value
		}
		return nil
	}, dto.Optional[int]{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[uint]); ok && o.HasValue() {
			return o.Value
		}
		return nil
	}, dto.Optional[uint]{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[bool]); ok && o.HasValue() {
			return o.Value
		}
		return nil
	}, dto.Optional[bool]{})
}
