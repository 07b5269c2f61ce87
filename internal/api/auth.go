package api

import (
	"context"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/apierr"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// ObtainToken exchanges credentials for an access/refresh pair.
func (g *Gateway) ObtainToken(ctx context.Context, username, password string) (string, string, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := g.Post(ctx, "/token/", body, &out); err != nil {
		return "", "", err
	}
	return out.Access, out.Refresh, nil
}

// RefreshToken exchanges a refresh token for a new access token.
func (g *Gateway) RefreshToken(ctx context.Context, refresh string) (string, error) {
	body := map[string]string{"refresh": refresh}
	var out struct {
		Access string `json:"access"`
	}
	if err := g.Post(ctx, "/token/refresh/", body, &out); err != nil {
		return "", err
	}
	return out.Access, nil
}

// RegistrationDraft is the new-account payload. The backend uses the email
// as the username.
type RegistrationDraft struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password2"`
	FirstName       string `json:"first_name"`
}

// Validate catches the obvious rejections locally; password strength and
// email uniqueness remain server-side.
func (d RegistrationDraft) Validate() error {
	ve := &apierr.ValidationError{}
	if strings.TrimSpace(d.Email) == "" {
		ve.Add("email", "email is required")
	}
	if d.Password == "" {
		ve.Add("password", "password is required")
	}
	if d.Password != d.PasswordConfirm {
		ve.Add("password", "passwords do not match")
	}
	if strings.TrimSpace(d.FirstName) == "" {
		ve.Add("first_name", "first name is required")
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

// Register creates a new account and returns the backend's confirmation
// message.
func (g *Gateway) Register(ctx context.Context, draft RegistrationDraft) (string, error) {
	if err := draft.Validate(); err != nil {
		return "", err
	}
	var out struct {
		Message string        `json:"message"`
		User    model.Profile `json:"user"`
	}
	if err := g.Post(ctx, "/accounts/register/", draft, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Profile fetches the authenticated user's account record.
func (g *Gateway) Profile(ctx context.Context) (model.Profile, error) {
	var out model.Profile
	if err := g.Get(ctx, "/accounts/me/", &out); err != nil {
		return model.Profile{}, err
	}
	return out, nil
}

// UpdateProfile replaces the account record and returns the updated copy.
func (g *Gateway) UpdateProfile(ctx context.Context, profile model.Profile) (model.Profile, error) {
	var out model.Profile
	if err := g.Put(ctx, "/accounts/me/", profile, &out); err != nil {
		return model.Profile{}, err
	}
	return out, nil
}

// ChangePassword rotates the account password. The backend checks the old
// password and that both new spellings agree; the local check only catches
// the mismatch before a round trip.
func (g *Gateway) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) error {
	if newPassword != confirm {
		return apierr.NewValidation("new_password2", "new passwords do not match")
	}
	body := map[string]string{
		"old_password":  oldPassword,
		"new_password1": newPassword,
		"new_password2": confirm,
	}
	return g.Post(ctx, "/accounts/change-password/", body, nil)
}
