package application

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamio/backoffice-api/internal/infrastructure/memory"
	"github.com/creamio/backoffice-api/pkg/apierror"
	"github.com/creamio/backoffice-api/pkg/helpers"
)

const createBody = `{"username":"jdoe","email":"j@x.com","firstName":"John","lastName":"Doe","plainPassword":"secret1"}`

func newTestService() (*Service, *memory.UserRepository, *memory.TokenRepository) {
	users := memory.NewUserRepository()
	tokens := memory.NewTokenRepository()
	return NewService(users, tokens, nil, time.UTC), users, tokens
}

func asAPIError(t *testing.T, err error) *apierror.APIError {
	t.Helper()
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr
}

func TestCreateAssignsServerSideFields(t *testing.T) {
	svc, _, _ := newTestService()

	u, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.False(t, u.CreationTime.IsZero())
	assert.Empty(t, u.PlainPassword, "plain password must be erased before persistence")
	assert.True(t, helpers.VerifyPassword("secret1", u.Password))
	assert.Equal(t, []string{"ROLE_USER"}, u.Roles)
}

func TestCreateIgnoresClientSuppliedIdentifier(t *testing.T) {
	svc, _, _ := newTestService()
	body := `{"id":"6e7f3c24-95f0-4a9e-b9a4-86a0a1a5c6ff","username":"jdoe","email":"j@x.com","firstName":"John","lastName":"Doe","plainPassword":"secret1"}`

	u, err := svc.Create(context.Background(), []byte(body))
	require.NoError(t, err)
	assert.NotEqual(t, "6e7f3c24-95f0-4a9e-b9a4-86a0a1a5c6ff", u.ID.String())
}

func TestCreateRejectsMalformedJSON(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), []byte(`{"username":`))
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestCreateValidationFailureIsNotPersisted(t *testing.T) {
	svc, users, _ := newTestService()
	body := `{"username":"secret1","email":"j@x.com","firstName":"John","lastName":"Doe","plainPassword":"secret1"}`

	_, err := svc.Create(context.Background(), []byte(body))
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, apierror.ValidationFailed, apiErr.Reason)

	violations, ok := apiErr.Extra[apierror.ViolationsKey].(map[string]string)
	require.True(t, ok)
	assert.Contains(t, violations, "plainPassword")

	all, err := users.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	body := `{"username":"jdoe","email":"other@x.com","firstName":"Jane","lastName":"Doe","plainPassword":"secret2"}`
	_, err = svc.Create(context.Background(), []byte(body))
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	violations := apiErr.Extra[apierror.ViolationsKey].(map[string]string)
	assert.Equal(t, "already in use", violations["username"])
}

func TestPatchMergesOnlyPresentFields(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	patched, err := svc.Patch(context.Background(), created.ID, []byte(`{"job":"CTO"}`))
	require.NoError(t, err)

	assert.Equal(t, "CTO", patched.Job)
	assert.Equal(t, "jdoe", patched.Username)
	assert.Equal(t, "j@x.com", patched.Email)
	assert.Equal(t, created.CreationTime, patched.CreationTime)
}

func TestPatchWithoutPasswordKeepsStoredHash(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	patched, err := svc.Patch(context.Background(), created.ID, []byte(`{"firstName":"Johnny"}`))
	require.NoError(t, err)

	assert.Equal(t, created.Password, patched.Password)
	assert.True(t, helpers.VerifyPassword("secret1", patched.Password))
}

func TestPatchWithPasswordRehashes(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	patched, err := svc.Patch(context.Background(), created.ID, []byte(`{"plainPassword":"newsecret"}`))
	require.NoError(t, err)

	assert.NotEqual(t, created.Password, patched.Password)
	assert.True(t, helpers.VerifyPassword("newsecret", patched.Password))
	assert.Empty(t, patched.PlainPassword)
}

func TestPatchPasswordEqualToUsernameRejected(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	_, err = svc.Patch(context.Background(), created.ID, []byte(`{"plainPassword":"jdoe"}`))
	apiErr := asAPIError(t, err)
	assert.Equal(t, apierror.ValidationFailed, apiErr.Reason)
}

func TestPatchUnknownRecord(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Patch(context.Background(), uuid.New(), []byte(`{}`))
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, apierror.ResourceNotFound, apiErr.Reason)
}

func TestGetAndDelete(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Username, got.Username)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestLoginMintsToken(t *testing.T) {
	svc, _, tokens := newTestService()
	created, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), []byte(`{"username":"jdoe","password":"secret1"}`))
	require.NoError(t, err)

	assert.NotEmpty(t, token.Hash)
	assert.Equal(t, created.ID, token.UserID)
	assert.Equal(t, 1, tokens.Count())

	// multiple tokens per user are allowed
	_, err = svc.Login(context.Background(), []byte(`{"username":"jdoe","password":"secret1"}`))
	require.NoError(t, err)
	assert.Equal(t, 2, tokens.Count())
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _, tokens := newTestService()

	_, err := svc.Login(context.Background(), []byte(`{"username":"ghost","password":"whatever"}`))
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, apierror.BadCredentials, apiErr.Reason)
	assert.Zero(t, tokens.Count(), "no token minted on failed login")
}

func TestLoginWrongPasswordSameGenericReason(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), []byte(`{"username":"jdoe","password":"wrong"}`))
	apiErr := asAPIError(t, err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, apierror.BadCredentials, apiErr.Reason)
}

func TestLoginMalformedAndMissingFields(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Login(context.Background(), []byte(`not json`))
	assert.Equal(t, http.StatusBadRequest, asAPIError(t, err).StatusCode)

	_, err = svc.Login(context.Background(), []byte(`{"username":"jdoe"}`))
	assert.Equal(t, http.StatusBadRequest, asAPIError(t, err).StatusCode)
}

func TestViewExcludesPasswordFamily(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	view := svc.View(created)
	assert.Equal(t, created.ID.String(), view.ID)
	assert.Equal(t, "jdoe", view.Username)
	_, parseErr := uuid.Parse(view.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, created.CreationTime.Format("02-01-2006 15:04:05"), view.CreationTime)
}

func TestViewFormatsTimestampInConfiguredZone(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	svc := NewService(memory.NewUserRepository(), memory.NewTokenRepository(), nil, paris)

	created, err := svc.Create(context.Background(), []byte(createBody))
	require.NoError(t, err)

	view := svc.View(created)
	assert.Equal(t, created.CreationTime.In(paris).Format("02-01-2006 15:04:05"), view.CreationTime)
}

func TestMapLookupErrorPassesThroughUnknownErrors(t *testing.T) {
	boom := errors.New("connection refused")
	assert.Equal(t, boom, mapLookupError(boom))
}
