package controllers

import (
	"civicpulse-be/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators teaches gin's binding layer the domain enums so
// handlers can declare them in struct tags.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("issuecategory", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(fl.Field().String())
	})
	v.RegisterValidation("issuepriority", func(fl validator.FieldLevel) bool {
		return models.ValidPriority(fl.Field().String())
	})
	v.RegisterValidation("votetype", func(fl validator.FieldLevel) bool {
		return models.ValidVoteType(fl.Field().String())
	})
}
