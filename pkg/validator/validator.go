package validator

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	fechaRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	horaRe  = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// RegisterBindings adds the cita field rules to gin's binding engine so
// request structs can declare them in their binding tags.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		return fechaRe.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("hora", func(fl validator.FieldLevel) bool {
		return horaRe.MatchString(fl.Field().String())
	})
}
