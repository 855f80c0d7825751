package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grantbelcher/DevConnector/models"
)

const postNotFoundMsg = "Post not found"

type PostInput struct {
	Text string `json:"text" binding:"required"`
}

var postMessages = map[string]string{
	"text": "Text is required",
}

// CreatePost creates a post stamped with the caller's name and avatar
// as they are at creation time.
func (a *API) CreatePost(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindErrors(err, postMessages)})
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		storeError(c, err, "User not found")
		return
	}

	post := &models.Post{
		User:   user.ID,
		Name:   user.Username,
		Avatar: user.Avatar,
		Text:   in.Text,
		Date:   time.Now().Unix(),
	}

	if err := a.posts.Create(ctx, post); err != nil {
		storeError(c, err, postNotFoundMsg)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Posts lists every post, newest first.
func (a *API) Posts(c *gin.Context) {
	ctx, cancel := storageContext(c)
	defer cancel()

	posts, err := a.posts.FindAll(ctx)
	if err != nil {
		storeError(c, err, postNotFoundMsg)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Post returns a single post by id.
func (a *API) Post(c *gin.Context) {
	postID, ok := pathID(c, "id", postNotFoundMsg)
	if !ok {
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	post, err := a.posts.FindByID(ctx, postID)
	if err != nil {
		storeError(c, err, postNotFoundMsg)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post. Author only.
func (a *API) DeletePost(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	postID, ok := pathID(c, "id", postNotFoundMsg)
	if !ok {
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	if err := a.posts.Delete(ctx, postID, userID); err != nil {
		storeError(c, err, postNotFoundMsg)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

// LikePost adds the caller to the post's likes, once.
func (a *API) LikePost(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	postID, ok := pathID(c, "id", postNotFoundMsg)
	if !ok {
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	likes, err := a.posts.Like(ctx, postID, userID)
	if err != nil {
		storeError(c, err, postNotFoundMsg)
		return
	}

	c.JSON(http.StatusOK, likes)
}

// UnlikePost removes the caller's like.
func (a *API) UnlikePost(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	postID, ok := pathID(c, "id", postNotFoundMsg)
	if !ok {
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	likes, err := a.posts.Unlike(ctx, postID, userID)
	if err != nil {
		storeError(c, err, postNotFoundMsg)
		return
	}

	c.JSON(http.StatusOK, likes)
}

// AddComment prepends a comment stamped with the caller's name/avatar.
func (a *API) AddComment(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	postID, ok := pathID(c, "id", postNotFoundMsg)
	if !ok {
		return
	}

	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindErrors(err, postMessages)})
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		storeError(c, err, "User not found")
		return
	}

	comment := models.Comment{
		User:   user.ID,
		Name:   user.Username,
		Avatar: user.Avatar,
		Text:   in.Text,
		Date:   time.Now().Unix(),
	}

	comments, err := a.posts.AddComment(ctx, postID, comment)
	if err != nil {
		storeError(c, err, postNotFoundMsg)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// DeleteComment removes a comment. Comment author only.
func (a *API) DeleteComment(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	postID, ok := pathID(c, "id", postNotFoundMsg)
	if !ok {
		return
	}

	commentID, ok := pathID(c, "comment_id", "Comment not found")
	if !ok {
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	comments, err := a.posts.RemoveComment(ctx, postID, commentID, userID)
	if err != nil {
		storeError(c, err, "Comment not found")
		return
	}

	c.JSON(http.StatusOK, comments)
}
