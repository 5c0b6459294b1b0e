package application

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/creamio/backoffice-api/internal/domain/entity"
	"github.com/creamio/backoffice-api/internal/domain/repository"
	"github.com/creamio/backoffice-api/pkg/apierror"
	"github.com/creamio/backoffice-api/pkg/helpers"
	"github.com/creamio/backoffice-api/pkg/validation"
)

// creationTimeFormat is the fixed rendering format for record timestamps.
const creationTimeFormat = "02-01-2006 15:04:05"

var defaultRoles = []string{"ROLE_USER"}

// Service owns the user-management operations: JSON parsing with create vs.
// merge semantics, validation, credential hashing and persistence. Every
// failure is returned as an *apierror.APIError carrying the response status.
type Service struct {
	Users     repository.UserRepository
	Tokens    repository.TokenRepository
	Validator *validation.Validator
	Logger    *logrus.Logger
	Loc       *time.Location
}

func NewService(users repository.UserRepository, tokens repository.TokenRepository, logger *logrus.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		Users:     users,
		Tokens:    tokens,
		Validator: validation.New(),
		Logger:    logger,
		Loc:       loc,
	}
}

// userPayload is the inbound JSON shape. Pointer fields distinguish absent
// from empty, which is what gives PATCH its merge semantics. Identifier,
// password hash and creation time deliberately have no inbound field.
type userPayload struct {
	Username      *string   `json:"username"`
	Email         *string   `json:"email"`
	PlainPassword *string   `json:"plainPassword"`
	FirstName     *string   `json:"firstName"`
	LastName      *string   `json:"lastName"`
	Job           *string   `json:"job"`
	Description   *string   `json:"description"`
	Roles         *[]string `json:"roles"`
}

func (p *userPayload) applyTo(u *entity.User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PlainPassword != nil {
		u.PlainPassword = *p.PlainPassword
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Job != nil {
		u.Job = *p.Job
	}
	if p.Description != nil {
		u.Description = *p.Description
	}
	if p.Roles != nil {
		u.Roles = *p.Roles
	}
}

// Create builds a new record from the JSON body, validates it, hashes the
// plain password and persists. Client-supplied identifiers and timestamps are
// ignored; the id and creation time are assigned server-side.
func (s *Service) Create(ctx context.Context, body []byte) (*entity.User, error) {
	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apierror.New(http.StatusBadRequest, "Malformed json content in request")
	}

	u := &entity.User{}
	payload.applyTo(u)
	if len(u.Roles) == 0 {
		u.Roles = append([]string(nil), defaultRoles...)
	}

	if violations := s.Validator.ValidateNew(u); len(violations) > 0 {
		return nil, validationError(violations)
	}

	hash, err := helpers.HashPassword(u.PlainPassword)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	u.ID = uuid.New()
	u.CreationTime = time.Now().UTC()
	u.EraseCredentials()

	if err := s.Users.Create(ctx, u); err != nil {
		return nil, mapPersistError(err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user created")
	}
	return u, nil
}

// Patch merges the JSON body onto the stored record: only fields present in
// the payload overwrite existing values. A supplied plain password is
// re-hashed; an absent one leaves the stored hash untouched.
func (s *Service) Patch(ctx context.Context, id uuid.UUID, body []byte) (*entity.User, error) {
	stored, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}

	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apierror.New(http.StatusBadRequest, "Malformed json content in request")
	}

	merged := *stored
	payload.applyTo(&merged)

	if violations := s.Validator.Validate(&merged); len(violations) > 0 {
		return nil, validationError(violations)
	}

	if payload.PlainPassword != nil {
		hash, err := helpers.HashPassword(merged.PlainPassword)
		if err != nil {
			return nil, err
		}
		merged.Password = hash
	}
	merged.EraseCredentials()

	if err := s.Users.Update(ctx, &merged); err != nil {
		return nil, mapPersistError(err)
	}
	return &merged, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		return mapLookupError(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*entity.User, error) {
	return s.Users.FindAll(ctx)
}

type loginPayload struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Login verifies the credentials and mints an opaque bearer token bound to the
// user. Unknown usernames and wrong passwords produce the same generic 401.
func (s *Service) Login(ctx context.Context, body []byte) (*entity.APIToken, error) {
	var payload loginPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apierror.New(http.StatusBadRequest, "Invalid json content in login request")
	}
	if payload.Username == nil || payload.Password == nil {
		return nil, apierror.New(http.StatusBadRequest, "Missing username or password in login request")
	}

	u, err := s.Users.FindByUsername(ctx, *payload.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.New(http.StatusUnauthorized, apierror.BadCredentials)
		}
		return nil, err
	}
	if !helpers.VerifyPassword(*payload.Password, u.Password) {
		return nil, apierror.New(http.StatusUnauthorized, apierror.BadCredentials)
	}

	hash, err := helpers.GenerateTokenHash()
	if err != nil {
		return nil, err
	}
	token := &entity.APIToken{
		Hash:      hash,
		CreatedAt: time.Now().UTC(),
		UserID:    u.ID,
	}
	if err := s.Tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("api token issued")
	}
	return token, nil
}

// UserView is the outbound representation of a record. The password family
// (hash, salt, plain password) is excluded by construction.
type UserView struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Job          string   `json:"job,omitempty"`
	Description  string   `json:"description,omitempty"`
	Roles        []string `json:"roles"`
	CreationTime string   `json:"creationTime"`
}

func (s *Service) View(u *entity.User) UserView {
	return UserView{
		ID:           u.ID.String(),
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Job:          u.Job,
		Description:  u.Description,
		Roles:        u.Roles,
		CreationTime: u.CreationTime.In(s.Loc).Format(creationTimeFormat),
	}
}

func (s *Service) Views(users []*entity.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, s.View(u))
	}
	return out
}

func validationError(violations []validation.Violation) *apierror.APIError {
	return apierror.New(http.StatusBadRequest, apierror.ValidationFailed).
		Set(apierror.ViolationsKey, validation.ViolationMap(violations))
}

func mapLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.New(http.StatusNotFound, apierror.ResourceNotFound)
	}
	return err
}

func mapPersistError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return apierror.New(http.StatusBadRequest, apierror.ValidationFailed).
			Set(apierror.ViolationsKey, map[string]string{"username": "already in use"})
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apierror.New(http.StatusBadRequest, apierror.ValidationFailed).
			Set(apierror.ViolationsKey, map[string]string{"email": "already in use"})
	}
	return err
}
