// Package service holds the request payloads and the command executors that
// run once a payload has passed the pipeline.
package service

import (
	"context"
	"strings"

	"quill/internal/auth"
	"quill/internal/models"
	"quill/internal/pipeline"
	"quill/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost matches the original deployment. Deliberately low; raising it
// invalidates no stored hashes but slows signup-heavy load tests.
const bcryptCost = 6

const maxCredentialLen = 50

// AccountService executes account creation and login commands.
type AccountService struct {
	users     repository.UserRepository
	jwtSecret string
}

// NewAccountService creates a new AccountService.
func NewAccountService(users repository.UserRepository, jwtSecret string) *AccountService {
	return &AccountService{users: users, jwtSecret: jwtSecret}
}

// AuthResult is the success record for both signup and login.
type AuthResult struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
}

// CreateAccount is the signup payload. Pointer fields distinguish absent
// from empty; Check leaves the normalized values in unexported fields.
type CreateAccount struct {
	Username        *string `json:"username"`
	Password        *string `json:"password"`
	ConfirmPassword *string `json:"confirm_password"`

	username string
	password string

	// usernameTaken is the store check; tests may override it.
	usernameTaken func(ctx context.Context, db *gorm.DB, username string) (bool, error)
}

// Check runs the pure signup checks in order; the first failure wins.
func (p *CreateAccount) Check() *models.FieldError {
	if p.Username == nil || strings.TrimSpace(*p.Username) == "" {
		return models.NewFieldError("username", "Username is required")
	}
	if p.Password == nil || *p.Password == "" {
		return models.NewFieldError("password", "Password is required")
	}
	if p.ConfirmPassword == nil || *p.Password != *p.ConfirmPassword {
		return models.NewFieldError("confirm_password", "Passwords does not match")
	}

	p.username = strings.TrimSpace(*p.Username)
	p.password = *p.Password

	if len(p.username) > maxCredentialLen {
		return models.NewFieldError("username", "Username should not be more than 50 characters")
	}
	if len(p.password) > maxCredentialLen {
		return models.NewFieldError("password", "Password should not be more than 50 characters")
	}
	return nil
}

// CheckStore verifies username uniqueness. It only runs once every pure
// check has passed.
func (p *CreateAccount) CheckStore(ctx context.Context, db *gorm.DB, _ *auth.Identity) *models.FieldError {
	taken := p.usernameTaken
	if taken == nil {
		taken = repository.UsernameTaken
	}

	isTaken, err := taken(ctx, db, p.username)
	if err != nil {
		return models.NewFieldError("username", "Cannot verify uniqueness of username")
	}
	if isTaken {
		return models.NewFieldError("username", "Username is already taken")
	}
	return nil
}

// CreateAccount hashes the password, inserts the account row, and issues an
// identity token.
func (s *AccountService) CreateAccount(ctx context.Context, cmd pipeline.Command[*CreateAccount]) (*AuthResult, error) {
	p := cmd.Payload()

	hash, err := bcrypt.GenerateFromPassword([]byte(p.password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: p.username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthResult{ID: user.ID, Username: user.Username, AccessToken: token}, nil
}

// Login is the login payload.
type Login struct {
	Username *string `json:"username"`
	Password *string `json:"password"`

	username string
	password string
}

// Check runs the pure login checks in order.
func (p *Login) Check() *models.FieldError {
	if p.Username == nil || strings.TrimSpace(*p.Username) == "" {
		return models.NewFieldError("username", "Username is required")
	}
	if p.Password == nil || *p.Password == "" {
		return models.NewFieldError("password", "Password is required")
	}

	p.username = strings.TrimSpace(*p.Username)
	p.password = *p.Password
	return nil
}

// Login verifies credentials and issues an identity token with the standard
// two-week expiry. Failures are tagged per cause (unknown username vs wrong
// password); see DESIGN.md for the disclosure trade-off.
func (s *AccountService) Login(ctx context.Context, cmd pipeline.Command[*Login]) (*AuthResult, error) {
	p := cmd.Payload()

	user, err := s.users.GetByUsername(ctx, p.username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewFieldError("username", "Username does not exists")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(p.password)); err != nil {
		return nil, models.NewFieldError("password", "Password is incorrect")
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthResult{ID: user.ID, Username: user.Username, AccessToken: token}, nil
}
