package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/project-dashboard-api/internal/models"
)

// RegisterRules adds the domain enum rules to v and reports field names by
// their JSON key.
func RegisterRules(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	rules := map[string]validator.Func{
		"taskstatus": func(fl validator.FieldLevel) bool {
			return models.TaskStatus(fl.Field().String()).Valid()
		},
		"taskpriority": func(fl validator.FieldLevel) bool {
			return models.TaskPriority(fl.Field().String()).Valid()
		},
		"projectstatus": func(fl validator.FieldLevel) bool {
			return models.ProjectStatus(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s rule: %w", tag, err)
		}
	}
	return nil
}

var (
	ginRulesOnce sync.Once
	ginRulesErr  error
)

// RegisterGinRules installs the rules on gin's default validator once per
// process.
func RegisterGinRules() error {
	ginRulesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			ginRulesErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		ginRulesErr = RegisterRules(v)
	})
	return ginRulesErr
}

// FieldErrors converts validator failures into a field -> message map. It
// returns false for errors that are not validation failures, such as
// malformed JSON.
func FieldErrors(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return fields, true
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "taskstatus":
		return "must be one of todo, in_progress, review, ready_to_test, in_test, closed"
	case "taskpriority":
		return "must be one of low, medium, high"
	case "projectstatus":
		return "must be one of active, on_hold, completed, cancelled"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
