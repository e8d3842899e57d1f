package api

import (
	"context"
	"net/http"

	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

// AuthData is the auth endpoints' response body.
type AuthData struct {
	Envelope
	User *models.UserProfile `json:"user"`
}

// AuthAPI wraps the /auth endpoints.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth facade.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Signup registers a new account. It does not log the user in.
func (a *AuthAPI) Signup(ctx context.Context, data models.SignupData) Result[Envelope] {
	return doJSON[Envelope](ctx, a.client, http.MethodPost, "/auth/signup", data)
}

// Login exchanges credentials for a session cookie. The profile comes back
// in the response body; the cookie lands in the client's jar.
func (a *AuthAPI) Login(ctx context.Context, creds models.Credentials) Result[AuthData] {
	return doJSON[AuthData](ctx, a.client, http.MethodPost, "/auth/login", creds)
}

// Logout invalidates the server-side session.
func (a *AuthAPI) Logout(ctx context.Context) Result[Envelope] {
	return doJSON[Envelope](ctx, a.client, http.MethodGet, "/auth/logout", nil)
}

// Profile fetches the current user's profile; it answers "who am I" for an
// untrusted, possibly-absent session cookie.
func (a *AuthAPI) Profile(ctx context.Context) Result[AuthData] {
	return doJSON[AuthData](ctx, a.client, http.MethodGet, "/auth/profile", nil)
}
