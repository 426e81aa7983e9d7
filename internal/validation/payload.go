package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/yukikurage/project-dashboard-api/internal/dto"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

var ErrInvalidPayload = errors.New("invalid request payload")

// DecodePartial reads a JSON object body into dst and also returns its raw
// keys so callers can tell an explicit null from an absent field.
func DecodePartial(body io.Reader, dst interface{}) (map[string]json.RawMessage, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		if fields, ok := TypeErrors(err); ok {
			return nil, &services.ValidationError{Fields: fields}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return raw, nil
}

// TypeErrors reports a JSON value of the wrong type for a known field as a
// field -> message map. Syntax errors and mismatches on the body itself are
// not field errors.
func TypeErrors(err error) (map[string]string, bool) {
	var ute *json.UnmarshalTypeError
	if !errors.As(err, &ute) || ute.Field == "" {
		return nil, false
	}
	return map[string]string{ute.Field: "must be " + describeKind(ute.Type)}, true
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	default:
		return "a valid " + t.String()
	}
}

// BuildUpdateTaskInput maps a decoded task update onto the service input.
// Title, status and priority may be omitted but not set to null.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (services.UpdateTaskInput, error) {
	verr := &services.ValidationError{}
	for _, field := range []string{"title", "status", "priority"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			verr.Add(field, "cannot be null")
		}
	}
	if err := verr.OrNil(); err != nil {
		return services.UpdateTaskInput{}, err
	}

	input := services.UpdateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		EstimatedHours:    req.EstimatedHours,
		EstimatedHoursSet: hasJSONField(raw, "estimated_hours"),
		AssigneeID:        req.AssigneeID,
		AssigneeIDSet:     hasJSONField(raw, "assignee_id"),
		DueDate:           req.DueDate,
		DueDateSet:        hasJSONField(raw, "due_date"),
	}
	if hasJSONField(raw, "description") && req.Description == nil {
		empty := ""
		input.Description = &empty
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	return input, nil
}

// BuildUpdateProjectInput maps a decoded project update onto the service input.
func BuildUpdateProjectInput(req dto.UpdateProjectRequest, raw map[string]json.RawMessage) (services.UpdateProjectInput, error) {
	verr := &services.ValidationError{}
	for _, field := range []string{"title", "status"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			verr.Add(field, "cannot be null")
		}
	}
	if err := verr.OrNil(); err != nil {
		return services.UpdateProjectInput{}, err
	}

	input := services.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if hasJSONField(raw, "description") && req.Description == nil {
		empty := ""
		input.Description = &empty
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		input.Status = &status
	}
	return input, nil
}

// BuildUpdateUserInput maps a decoded profile update onto the service input.
func BuildUpdateUserInput(req dto.UpdateUserRequest, raw map[string]json.RawMessage) (services.UpdateUserInput, error) {
	verr := &services.ValidationError{}
	for _, field := range []string{"password", "is_active"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			verr.Add(field, "cannot be null")
		}
	}
	if err := verr.OrNil(); err != nil {
		return services.UpdateUserInput{}, err
	}

	input := services.UpdateUserInput{
		FullName: req.FullName,
		Password: req.Password,
		IsActive: req.IsActive,
	}
	if hasJSONField(raw, "full_name") && req.FullName == nil {
		empty := ""
		input.FullName = &empty
	}
	return input, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
