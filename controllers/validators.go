package controllers

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/restaurant-management/utils"
)

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules used by the request structs:
// notfuture (time not after now) and notpastdate (date not before today).
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			utils.ErrorLogger.Error("binding validator is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("notfuture", notFuture); err != nil {
			utils.ErrorLogger.WithError(err).Error("failed to register notfuture")
		}
		if err := v.RegisterValidation("notpastdate", notPastDate); err != nil {
			utils.ErrorLogger.WithError(err).Error("failed to register notpastdate")
		}
	})
}

func notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(now())
}

func notPastDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !dateOf(t).Before(dateOf(now()))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
