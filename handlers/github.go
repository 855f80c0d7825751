package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// GithubRepos returns the five most recent public repos for the given
// GitHub username. Public; used by profile pages for users who set a
// githubusername.
func (a *API) GithubRepos(c *gin.Context) {
	username := c.Param("username")

	uri := fmt.Sprintf(
		"https://api.github.com/users/%s/repos?per_page=5&sort=created:asc",
		url.PathEscape(username),
	)

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, uri, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if a.githubToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.githubToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		log.Printf("github request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusNotFound, gin.H{"msg": "No Github profile found"})
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
