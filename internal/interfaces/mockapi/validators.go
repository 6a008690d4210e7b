package mockapi

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern accepts local Nigerian numbers and international formats
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}$`)

var registerOnce sync.Once

// registerValidators installs custom binding validations on gin's shared
// validator engine
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	})
}
