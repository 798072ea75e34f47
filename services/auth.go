package services

import (
	"errors"

	"github.com/delivery-desk/v2/internal/auth"
	"github.com/delivery-desk/v2/internal/upload"
)

// AuthClient implements the auth.API interface against the identity
// endpoints. It is stateless: sessions live in the store, transitions in
// the manager.
type AuthClient struct {
	api *ApiClient
}

var _ auth.API = (*AuthClient)(nil)

func NewAuthClient(api *ApiClient) *AuthClient {
	return &AuthClient{api: api}
}

// Login exchanges credentials for a session. A 401 here means the
// credentials were wrong, not that a session expired.
func (s *AuthClient) Login(email, password string) (*auth.Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var response struct {
		Token string           `json:"token"`
		User  auth.UserProfile `json:"user"`
	}
	if err := s.api.Post("/auth/login", payload, &response); err != nil {
		if errors.Is(err, auth.ErrSessionExpired) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	response.User.AvatarURL = s.api.ResolveAssetURL(response.User.AvatarURL)
	return &auth.Session{Token: response.Token, User: response.User}, nil
}

// Logout invalidates the session server-side
func (s *AuthClient) Logout() error {
	return s.api.Post("/auth/logout", nil, nil)
}

// UpdateProfile renames the user and returns the updated profile
func (s *AuthClient) UpdateProfile(name string) (*auth.UserProfile, error) {
	payload := map[string]string{"name": name}

	var user auth.UserProfile
	if err := s.api.Patch("/auth/profile", payload, &user); err != nil {
		return nil, err
	}

	user.AvatarURL = s.api.ResolveAssetURL(user.AvatarURL)
	return &user, nil
}

// ChangePassword rotates the password; the session token stays valid
func (s *AuthClient) ChangePassword(current, next string) error {
	payload := map[string]string{
		"current": current,
		"next":    next,
	}
	return s.api.Post("/auth/change-password", payload, nil)
}

// UploadAvatar sends the already-validated candidate under the
// profile_image category and returns the stored file's URL.
func (s *AuthClient) UploadAvatar(candidate upload.Candidate) (*auth.UploadResult, error) {
	fields := map[string]string{"category": "profile_image"}

	var result auth.UploadResult
	if err := s.api.Upload("/files/upload", "file", candidate.Filename, candidate.Bytes, fields, &result); err != nil {
		return nil, err
	}

	result.URL = s.api.ResolveAssetURL(result.URL)
	return &result, nil
}
