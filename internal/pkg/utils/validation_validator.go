package utils

import (
	"nutriplan-service/internal/pkg/constvars"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("iso_date", validateISODate)
	validate.RegisterValidation("slot_time", validateSlotTime)
	validate.RegisterValidation("user_role", validateUserRole)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.ISODateLayout, fl.Field().String())
	return err == nil
}

func validateSlotTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.SlotTimeLayout, fl.Field().String())
	return err == nil
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.NutriplanRoleNutritionist || value == constvars.NutriplanRolePatient
}
