package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/grantbelcher/DevConnector/handlers"
	"github.com/grantbelcher/DevConnector/models"
	"github.com/grantbelcher/DevConnector/routes"
	"github.com/grantbelcher/DevConnector/token"
)

type env struct {
	router   *gin.Engine
	users    *fakeUserStore
	profiles *fakeProfileStore
	posts    *fakePostStore
	tokens   *token.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	posts := newFakePostStore()
	tokens := token.New("test-secret", token.DefaultTTL)

	api := handlers.NewAPI(users, profiles, posts, tokens, "")
	router := routes.Setup(api, tokens, []string{"http://localhost:3000"})

	return &env{
		router:   router,
		users:    users,
		profiles: profiles,
		posts:    posts,
		tokens:   tokens,
	}
}

// do performs a request against the full router; body is marshalled to
// JSON when non-nil, tok goes in the x-auth-token header when set.
func (e *env) do(t *testing.T, method, path string, body interface{}, tok string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("x-auth-token", tok)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), into))
}

// firstErrMsg returns the msg of the first entry of a validation-style
// {errors: [{msg}]} body.
func firstErrMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	decode(t, w, &body)
	require.NotEmpty(t, body.Errors)
	return body.Errors[0].Msg
}

// seedUser creates an account directly in the store and returns it with
// a valid token, bypassing the register route.
func (e *env) seedUser(t *testing.T, username, email, password string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Avatar:   "https://www.gravatar.com/avatar/x?s=200&r=pg&d=mm",
		Date:     time.Now().Unix(),
	}
	require.NoError(t, e.users.Create(context.Background(), user))

	tok, err := e.tokens.Issue(user.ID.Hex())
	require.NoError(t, err)
	return user, tok
}
