// Package handlers implements the HTTP API around the storage layer.
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/grantbelcher/DevConnector/database"
	"github.com/grantbelcher/DevConnector/middleware"
	"github.com/grantbelcher/DevConnector/models"
	"github.com/grantbelcher/DevConnector/token"
)

const storageTimeout = 10 * time.Second

// UserStore, ProfileStore and PostStore are the storage operations the
// handlers depend on; database.DB satisfies them, tests use fakes.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type ProfileStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, in models.ProfileInput) (*models.Profile, error)
	AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error)
	AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error)
}

type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Delete(ctx context.Context, postID, requester primitive.ObjectID) error
	Like(ctx context.Context, postID, requester primitive.ObjectID) ([]models.Like, error)
	Unlike(ctx context.Context, postID, requester primitive.ObjectID) ([]models.Like, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) ([]models.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID, requester primitive.ObjectID) ([]models.Comment, error)
}

// API holds the handler dependencies, threaded in from main.
type API struct {
	users    UserStore
	profiles ProfileStore
	posts    PostStore
	tokens   *token.Service

	githubToken string
	httpClient  *http.Client
}

func NewAPI(users UserStore, profiles ProfileStore, posts PostStore, tokens *token.Service, githubToken string) *API {
	return &API{
		users:       users,
		profiles:    profiles,
		posts:       posts,
		tokens:      tokens,
		githubToken: githubToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

func storageContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), storageTimeout)
}

// requester returns the authenticated user's id set by the auth gate.
func requester(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middleware.UserIDKey))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathID parses an object-id path param. A malformed id reads as the
// resource being absent.
func pathID(c *gin.Context, param, notFoundMsg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": notFoundMsg})
		return primitive.NilObjectID, false
	}
	return id, true
}

type fieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// bindErrors translates a binding failure into the validation envelope,
// using per-route messages keyed by lowercased field name.
func bindErrors(err error, messages map[string]string) []fieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []fieldError{{Msg: "Invalid request body"}}
	}

	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		param := strings.ToLower(fe.Field())
		msg, ok := messages[param]
		if !ok {
			msg = param + " is invalid"
		}
		out = append(out, fieldError{Msg: msg, Param: param})
	}
	return out
}

// storeError maps storage failures onto the response envelope:
// 403 for ownership failures, 404 for anything absent, 400 for
// like-state conflicts, 500 otherwise.
func storeError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": notFoundMsg})
	case errors.Is(err, database.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"msg": "User not authorized"})
	case errors.Is(err, database.ErrAlreadyLiked):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post already liked"})
	case errors.Is(err, database.ErrNotLiked):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post has not yet been liked"})
	default:
		log.Printf("storage error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
	}
}
