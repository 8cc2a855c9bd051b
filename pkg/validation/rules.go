package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("equipment_condition", isEquipmentCondition); err != nil {
		return err
	}
	if err := v.RegisterValidation("serial_number", isSerialNumber); err != nil {
		return err
	}
	return nil
}

// isEquipmentCondition - состояние при возврате: excellent/good/fair/poor/broken
func isEquipmentCondition(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "excellent", "good", "fair", "poor", "broken":
		return true
	}
	return false
}

// isSerialNumber - серийник: буквы/цифры/дефис, от 3 до 64 символов
func isSerialNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-_.]{2,63}$`)
	return re.MatchString(fl.Field().String())
}
