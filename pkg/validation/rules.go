package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"kaawa-maintenance/internal/maintenance"
	"kaawa-maintenance/pkg/utils"
)

var (
	folioRegex = regexp.MustCompile(`^\d{6}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"equipment_type":      oneOf(maintenance.EquipmentTypes),
		"equipment_condition": oneOf(maintenance.Conditions),
		"service_type":        oneOf(maintenance.ServiceTypes),
		"service_status":      oneOf(maintenance.ServiceStatuses),
		"last_service_type":   oneOf(maintenance.LastServiceTypes),
		"iso_date":            isISODate,
		"folio":               isFolio,
		"custom_email":        isGoodEmailFormat,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func oneOf(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return maintenance.Contains(values, fl.Field().String())
	}
}

// isISODate - дата вида 2024-05-01 или полный RFC3339
func isISODate(fl validator.FieldLevel) bool {
	_, ok := utils.ParseDate(fl.Field().String())
	return ok
}

func isFolio(fl validator.FieldLevel) bool {
	return folioRegex.MatchString(fl.Field().String())
}

// isGoodEmailFormat - проверка email
func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}
