package server

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/r3p1n/scoring/internal/game"
	"github.com/r3p1n/scoring/internal/results"
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("name", func(fl validator.FieldLevel) bool {
			_, err := game.NormalizeName(fl.Field().String())
			return err == nil
		})
		_ = engine.RegisterValidation("resultview", func(fl validator.FieldLevel) bool {
			raw := fl.Field().String()
			if raw == "" {
				return true
			}
			_, ok := results.ParseView(raw)
			return ok
		})
	})
}
