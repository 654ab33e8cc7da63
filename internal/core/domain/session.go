package domain

// Session is an authenticated session: the signed-in user plus the opaque
// bearer token authorizing backend calls.
type Session struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
