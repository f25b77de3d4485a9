package keycloak

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Client obtém o bearer token do Keycloak via resource owner password grant
// (client público, sem secret). A renovação fica por conta do TokenSource.
type Client struct {
	config   *oauth2.Config
	username string
	password string
}

func NewClient(serverURL, realm, clientID, username, password string) *Client {
	tokenURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", serverURL, realm)

	return &Client{
		config: &oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{TokenURL: tokenURL},
		},
		username: username,
		password: password,
	}
}

// HTTPClient devolve um *http.Client que injeta e renova o bearer token
// automaticamente em cada request para a fonte.
func (c *Client) HTTPClient(ctx context.Context) (*http.Client, error) {
	token, err := c.config.PasswordCredentialsToken(ctx, c.username, c.password)
	if err != nil {
		return nil, fmt.Errorf("keycloak.HTTPClient - failed to obtain token: %w", err)
	}

	return oauth2.NewClient(ctx, c.config.TokenSource(ctx, token)), nil
}
