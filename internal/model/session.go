package model

// Session is the current token pair. An empty AccessToken is the sole
// unauthenticated signal.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// Authenticated reports whether an access token is present.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}
