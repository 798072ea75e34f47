package auth

import "github.com/delivery-desk/v2/internal/upload"

// Credentials contains login request data before normalization
type Credentials struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

// UserProfile represents the authenticated user as returned by the API
type UserProfile struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Session pairs the opaque bearer token with the user it belongs to.
// The token is never parsed client-side.
type Session struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// UploadResult is the response of a successful file upload
type UploadResult struct {
	URL  string `json:"url"`
	File string `json:"file"`
}

// API defines the remote identity operations the session manager drives.
// Implementations are stateless; retries and session bookkeeping belong
// to the caller.
type API interface {
	Login(email, password string) (*Session, error)
	Logout() error
	UpdateProfile(name string) (*UserProfile, error)
	ChangePassword(current, next string) error
	UploadAvatar(candidate upload.Candidate) (*UploadResult, error)
}
