package handlers

import (
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/creamio/backoffice-api/internal/application"
	"github.com/creamio/backoffice-api/pkg/apierror"
	"github.com/creamio/backoffice-api/pkg/response"
)

const (
	acceptedContentType = "application/json"
	listResultsFor      = "users-list"
	loginResultsFor     = "login"
)

// UserHandler exposes the back-office user CRUD and login endpoints. Each
// handler is a sequence of gates; the first failing gate raises a typed error
// and nothing is persisted.
type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Create handles POST /users. Gates: json content type, parse+hash, validate,
// persist. Responds 201 with a Location header to the read endpoint.
func (h *UserHandler) Create(c *gin.Context) {
	if !hasJSONContentType(c) {
		abortWith(c, apierror.New(http.StatusBadRequest, apierror.InvalidContentType))
		return
	}
	body, err := readBody(c)
	if err != nil {
		abortWith(c, err)
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), body)
	if err != nil {
		abortWith(c, err)
		return
	}
	location := c.Request.URL.Path + "/" + u.ID.String()
	response.Created(c, u.ID.String(), location)
}

// Patch handles PATCH /users/:id with partial merge semantics.
func (h *UserHandler) Patch(c *gin.Context) {
	if !hasJSONContentType(c) {
		abortWith(c, apierror.New(http.StatusBadRequest, apierror.InvalidContentType))
		return
	}
	id, err := parseID(c)
	if err != nil {
		abortWith(c, err)
		return
	}
	body, err := readBody(c)
	if err != nil {
		abortWith(c, err)
		return
	}
	if _, err := h.Svc.Patch(c.Request.Context(), id, body); err != nil {
		abortWith(c, err)
		return
	}
	response.WithoutResults(c, http.StatusOK, id.String())
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		abortWith(c, err)
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		abortWith(c, err)
		return
	}
	response.WithResults(c, http.StatusOK, u.ID.String(), gin.H{"user": h.Svc.View(u)})
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		abortWith(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		abortWith(c, err)
		return
	}
	response.WithoutResults(c, http.StatusOK, id.String())
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	response.WithResults(c, http.StatusOK, listResultsFor, gin.H{"users": h.Svc.Views(users)})
}

// Login handles POST /login, minting a bearer token on valid credentials.
func (h *UserHandler) Login(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		abortWith(c, err)
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), body)
	if err != nil {
		abortWith(c, err)
		return
	}
	response.WithResults(c, http.StatusOK, loginResultsFor, gin.H{"token": token.Hash})
}

func hasJSONContentType(c *gin.Context) bool {
	mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	return err == nil && mediaType == acceptedContentType
}

// parseID returns the :id path parameter as a UUID. Malformed identifiers map
// to 404, matching the documented contract.
func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierror.New(http.StatusNotFound, apierror.InvalidUUID)
	}
	return id, nil
}

func readBody(c *gin.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, apierror.New(http.StatusBadRequest, "Unreadable request body")
	}
	return body, nil
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
