package main

import (
	"log"
	"strings"

	"github.com/gazebo-web/model-gallery/bundles/category"
	"gopkg.in/go-playground/validator.v9"
)

// This module adds custom validators used by validator.v9

// InstallCustomValidators extends validator.v9 with custom validation functions
// and meta tags for fields.
func InstallCustomValidators(validate *validator.Validate) {
	err := validate.RegisterValidation("categorycode", isCategoryCode)
	if err != nil {
		log.Fatalln("Failed to install custom validator:", err)
	}
	err = validate.RegisterValidation("nopercent", notIncludePercent)
	if err != nil {
		log.Fatalln("Failed to install custom validator:", err)
	}
}

// isCategoryCode is the validation function for validating if the current
// field's value is one of the gallery category codes.
func isCategoryCode(fl validator.FieldLevel) bool {
	return category.IsKnown(fl.Field().String())
}

// notIncludePercent is a function that validates the field value does not
// include percent signs (%).
func notIncludePercent(fl validator.FieldLevel) bool {
	return !strings.Contains(fl.Field().String(), "%")
}
