package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/grantbelcher/DevConnector/database"
	"github.com/grantbelcher/DevConnector/gravatar"
	"github.com/grantbelcher/DevConnector/models"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
}

var registerMessages = map[string]string{
	"username": "invalid username",
	"email":    "please add an email address",
	"password": "password must be at least 5 characters",
}

// Register creates an account and returns a signed token for it.
func (a *API) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": bindErrors(err, registerMessages)})
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Avatar:   gravatar.URL(req.Email),
		Date:     time.Now().Unix(),
	}

	if err := a.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Msg: "User already exists"}}})
			return
		}
		storeError(c, err, "User not found")
		return
	}

	tok, err := a.tokens.Issue(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok})
}
