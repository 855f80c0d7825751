package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Status         string             `bson:"status" json:"status"`
	Skills         []string           `bson:"skills" json:"skills"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	Social         *Social            `bson:"social,omitempty" json:"social,omitempty"`
	Date           int64              `bson:"date" json:"date"`
}

type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        int64              `bson:"from" json:"from"`
	To          int64              `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	From         int64              `bson:"from" json:"from"`
	To           int64              `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// ProfileInput is the sparse field set accepted on profile submission.
// Only Status and Skills are mandatory; everything else is optional.
type ProfileInput struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" binding:"required"`
	Skills         string `json:"skills" binding:"required"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// SplitSkills turns comma-separated input into trimmed, ordered skills.
// Empty elements are dropped.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			skills = append(skills, t)
		}
	}
	return skills
}

// BuildProfileUpdate produces a $set document containing only the fields
// present in the input, so an update never nulls fields the caller omitted.
func BuildProfileUpdate(in ProfileInput) bson.M {
	set := bson.M{
		"status": in.Status,
		"skills": SplitSkills(in.Skills),
	}
	if in.Company != "" {
		set["company"] = in.Company
	}
	if in.Website != "" {
		set["website"] = in.Website
	}
	if in.Location != "" {
		set["location"] = in.Location
	}
	if in.Bio != "" {
		set["bio"] = in.Bio
	}
	if in.GithubUsername != "" {
		set["githubusername"] = in.GithubUsername
	}

	social := bson.M{}
	if in.Youtube != "" {
		social["youtube"] = in.Youtube
	}
	if in.Twitter != "" {
		social["twitter"] = in.Twitter
	}
	if in.Facebook != "" {
		social["facebook"] = in.Facebook
	}
	if in.Linkedin != "" {
		social["linkedin"] = in.Linkedin
	}
	if in.Instagram != "" {
		social["instagram"] = in.Instagram
	}
	if len(social) > 0 {
		set["social"] = social
	}

	return set
}
