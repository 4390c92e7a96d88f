package types

import (
	"time"

	"golang.org/x/oauth2"
)

// OAuth2Token converts the token response into an oauth2.Token, using now as
// the issue time. The expiry is left zero when the provider sent no lifetime.
func (a *AccessToken) OAuth2Token(now time.Time) *oauth2.Token {
	if a == nil {
		return nil
	}
	tok := &oauth2.Token{
		AccessToken: a.Token,
		TokenType:   a.TokenType,
	}
	if a.ExpiresIn > 0 {
		tok.Expiry = now.Add(time.Duration(a.ExpiresIn) * time.Second)
	}
	return tok
}
