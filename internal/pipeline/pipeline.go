// Package pipeline is the staged request-processing machinery. An untrusted
// payload moves through capability attachments in a fixed order:
//
//	NewRequest(p).Bind(db).Authenticate(caller).Validate(ctx) → Command
//
// Each stage returns a distinct type, so skipping a stage is a compile-time
// error, not a runtime branch. Command fields are unexported and only this
// package constructs one: holding a Command[P] is proof that a store handle
// was bound, any required identity was attached, and every check passed.
// Executors trust it unconditionally and perform no re-validation.
package pipeline

import (
	"context"
	"errors"

	"quill/internal/auth"
	"quill/internal/models"

	"gorm.io/gorm"
)

// ErrStoreUnavailable is returned by Bind when no store handle can be
// attached. It surfaces as a service-unavailable response before any
// validation runs.
var ErrStoreUnavailable = errors.New("store handle unavailable")

// ErrNotSignedIn is returned by Authenticate when an operation requires a
// caller identity and none was attached.
var ErrNotSignedIn = errors.New("user not signed in")

// Payload is implemented by every request payload. Check runs the pure
// structural checks and normalization, in declaration order; the first
// failing check aborts with a field-tagged error.
type Payload interface {
	Check() *models.FieldError
}

// StorePayload is implemented by payloads that additionally need
// store-dependent checks (uniqueness, referential existence). CheckStore runs
// only after Check has passed, so invalid input never costs a round-trip.
type StorePayload interface {
	Payload
	CheckStore(ctx context.Context, db *gorm.DB, caller *auth.Identity) *models.FieldError
}

// Request wraps a freshly decoded payload with no capabilities attached.
type Request[P Payload] struct {
	payload P
}

// NewRequest starts the pipeline for a decoded payload.
func NewRequest[P Payload](payload P) Request[P] {
	return Request[P]{payload: payload}
}

// Bind attaches the store handle for the lifetime of the command.
func (r Request[P]) Bind(db *gorm.DB) (Bound[P], error) {
	if db == nil {
		return Bound[P]{}, ErrStoreUnavailable
	}
	return Bound[P]{payload: r.payload, db: db}, nil
}

// Bound is a request with a store handle attached.
type Bound[P Payload] struct {
	payload P
	db      *gorm.DB
}

// Authenticate attaches the caller identity. Operations that are
// anonymous-eligible skip this stage and validate directly.
func (b Bound[P]) Authenticate(caller *auth.Identity) (Authed[P], error) {
	if caller == nil {
		return Authed[P]{}, ErrNotSignedIn
	}
	return Authed[P]{payload: b.payload, db: b.db, caller: caller}, nil
}

// Validate runs the check sequence for an anonymous operation.
func (b Bound[P]) Validate(ctx context.Context) (Command[P], *models.FieldError) {
	return validate(ctx, b.payload, b.db, nil)
}

// Authed is a request with both a store handle and a caller identity.
type Authed[P Payload] struct {
	payload P
	db      *gorm.DB
	caller  *auth.Identity
}

// Validate runs the check sequence for an authenticated operation.
func (a Authed[P]) Validate(ctx context.Context) (Command[P], *models.FieldError) {
	return validate(ctx, a.payload, a.db, a.caller)
}

func validate[P Payload](ctx context.Context, payload P, db *gorm.DB, caller *auth.Identity) (Command[P], *models.FieldError) {
	if ferr := payload.Check(); ferr != nil {
		return Command[P]{}, ferr
	}
	if sp, ok := Payload(payload).(StorePayload); ok {
		if ferr := sp.CheckStore(ctx, db, caller); ferr != nil {
			return Command[P]{}, ferr
		}
	}
	return Command[P]{payload: payload, db: db, caller: caller}, nil
}

// Command is a validated, capability-complete command object.
type Command[P Payload] struct {
	payload P
	db      *gorm.DB
	caller  *auth.Identity
}

// Payload returns the validated, normalized payload.
func (c Command[P]) Payload() P { return c.payload }

// DB returns the bound store handle.
func (c Command[P]) DB() *gorm.DB { return c.db }

// Caller returns the attached identity, or nil for anonymous commands.
func (c Command[P]) Caller() *auth.Identity { return c.caller }
