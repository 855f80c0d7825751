package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/grantbelcher/DevConnector/database"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var loginMessages = map[string]string{
	"email":    "please add an email address",
	"password": "password is required",
}

// Login checks credentials and returns a signed token.
func (a *API) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindErrors(err, loginMessages)})
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	user, err := a.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Msg: "Invalid Credentials"}}})
			return
		}
		storeError(c, err, "User not found")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Msg: "Invalid Credentials"}}})
		return
	}

	tok, err := a.tokens.Issue(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// CurrentUser returns the caller's account record, password excluded.
func (a *API) CurrentUser(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		storeError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}
