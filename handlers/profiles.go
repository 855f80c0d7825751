package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/grantbelcher/DevConnector/models"
)

const noProfileMsg = "There is no profile for this user"

// MyProfile returns the caller's own profile.
func (a *API) MyProfile(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	profile, err := a.profiles.FindByUser(ctx, userID)
	if err != nil {
		storeError(c, err, noProfileMsg)
		return
	}

	c.JSON(http.StatusOK, profile)
}

var profileMessages = map[string]string{
	"status": "Status is required",
	"skills": "Skills is required",
}

// UpsertProfile creates or partially updates the caller's profile.
// A user has at most one profile; absent fields are left untouched.
func (a *API) UpsertProfile(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	var in models.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": bindErrors(err, profileMessages)})
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	profile, err := a.profiles.Upsert(ctx, userID, in)
	if err != nil {
		storeError(c, err, noProfileMsg)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// AllProfiles lists every profile. Public.
func (a *API) AllProfiles(c *gin.Context) {
	ctx, cancel := storageContext(c)
	defer cancel()

	profiles, err := a.profiles.FindAll(ctx)
	if err != nil {
		storeError(c, err, noProfileMsg)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// ProfileByUser returns the profile owned by the given user id. Public.
func (a *API) ProfileByUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id", "Profile not found")
	if !ok {
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	profile, err := a.profiles.FindByUser(ctx, userID)
	if err != nil {
		storeError(c, err, "Profile not found")
		return
	}

	c.JSON(http.StatusOK, profile)
}

type ExperienceInput struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        int64  `json:"from" binding:"required"`
	To          int64  `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

var experienceMessages = map[string]string{
	"title":   "Title is required",
	"company": "Company is required",
	"from":    "From date is required",
}

// AddExperience prepends a work-history entry to the caller's profile.
func (a *API) AddExperience(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	var in ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": bindErrors(err, experienceMessages)})
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	exp := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}

	profile, err := a.profiles.AddExperience(ctx, userID, exp)
	if err != nil {
		storeError(c, err, noProfileMsg)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteExperience splices an entry out of the caller's work history.
func (a *API) DeleteExperience(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, "exp_id", "Experience entry not found")
	if !ok {
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	profile, err := a.profiles.RemoveExperience(ctx, userID, entryID)
	if err != nil {
		storeError(c, err, "Experience entry not found")
		return
	}

	c.JSON(http.StatusOK, profile)
}

type EducationInput struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         int64  `json:"from" binding:"required"`
	To           int64  `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

var educationMessages = map[string]string{
	"school":       "School is required",
	"degree":       "Degree is required",
	"fieldofstudy": "Field of study is required",
	"from":         "From date is required",
}

// AddEducation prepends a schooling entry to the caller's profile.
func (a *API) AddEducation(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	var in EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": bindErrors(err, educationMessages)})
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	edu := models.Education{
		ID:           primitive.NewObjectID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}

	profile, err := a.profiles.AddEducation(ctx, userID, edu)
	if err != nil {
		storeError(c, err, noProfileMsg)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteEducation splices an entry out of the caller's schooling list.
func (a *API) DeleteEducation(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}

	entryID, ok := pathID(c, "edu_id", "Education entry not found")
	if !ok {
		return
	}

	ctx, cancel := storageContext(c)
	defer cancel()

	profile, err := a.profiles.RemoveEducation(ctx, userID, entryID)
	if err != nil {
		storeError(c, err, "Education entry not found")
		return
	}

	c.JSON(http.StatusOK, profile)
}
