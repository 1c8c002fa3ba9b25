package models

import "github.com/gofiber/fiber/v2"

// FieldError is a field-tagged validation failure. It is both the pipeline's
// error currency and the `error` member of the response envelope.
type FieldError struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	if e.Name == "" {
		return e.Message
	}
	return e.Name + ": " + e.Message
}

// NewFieldError builds a field-tagged error.
func NewFieldError(name, message string) *FieldError {
	return &FieldError{Name: name, Message: message}
}

// NotSignedIn is the authorization failure returned when an operation needs a
// caller identity and none was attached.
func NotSignedIn() *FieldError {
	return &FieldError{Name: "re-auth", Message: "User not signed in"}
}

// Envelope is the uniform response shape. Every success and every failure
// category resolves to this, differentiated by HTTP status and error tag.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *FieldError `json:"error,omitempty"`
}

// RespondData writes a success envelope carrying data.
func RespondData(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

// RespondOK writes a bare success envelope.
func RespondOK(c *fiber.Ctx) error {
	return c.JSON(Envelope{Success: true})
}

// RespondError writes a failure envelope with the given status. Field errors
// keep their tag; any other error surfaces its text as the message.
func RespondError(c *fiber.Ctx, status int, err error) error {
	if ferr, ok := err.(*FieldError); ok {
		return c.Status(status).JSON(Envelope{
			Success: false,
			Message: ferr.Message,
			Error:   ferr,
		})
	}
	return c.Status(status).JSON(Envelope{Success: false, Message: err.Error()})
}
