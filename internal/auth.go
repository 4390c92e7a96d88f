package internal

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
)

// Paths below the versioned Graph and dialog roots.
const (
	TokenEndpointPath = "/oauth/access_token"
	DialogPath        = "/dialog/oauth"
)

// Token endpoint grant types.
const (
	GrantExchangeToken     = "fb_exchange_token"
	GrantClientCredentials = "client_credentials"
)

// Wire names of the OAuth query parameters.
const (
	ParamClientID       = "client_id"
	ParamClientSecret   = "client_secret"
	ParamRedirectURI    = "redirect_uri"
	ParamState          = "state"
	ParamScope          = "scope"
	ParamCode           = "code"
	ParamGrantType      = "grant_type"
	ParamExchangeToken  = "fb_exchange_token"
	ParamAccessToken    = "access_token"
	ParamLocale         = "locale"
	ParamAppSecretProof = "appsecret_proof"
)

// AppSecretProof signs accessToken with the app secret, as Graph expects in the
// appsecret_proof parameter.
func AppSecretProof(appSecret, accessToken string) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write([]byte(accessToken))
	return hex.EncodeToString(mac.Sum(nil))
}

// CodeExchangeQuery builds the query that trades an authorization code for a
// user access token.
func CodeExchangeQuery(clientID, clientSecret, redirectURI, code string) url.Values {
	return url.Values{
		ParamClientID:     {clientID},
		ParamRedirectURI:  {redirectURI},
		ParamClientSecret: {clientSecret},
		ParamCode:         {code},
	}
}

// ExchangeTokenQuery builds the query that trades a token for a long-lived one.
func ExchangeTokenQuery(clientID, clientSecret, token string) url.Values {
	return url.Values{
		ParamGrantType:     {GrantExchangeToken},
		ParamClientID:      {clientID},
		ParamClientSecret:  {clientSecret},
		ParamExchangeToken: {token},
	}
}

// ClientCredentialsQuery builds the query that requests an app access token.
func ClientCredentialsQuery(clientID, clientSecret string) url.Values {
	return url.Values{
		ParamGrantType:    {GrantClientCredentials},
		ParamClientID:     {clientID},
		ParamClientSecret: {clientSecret},
	}
}
