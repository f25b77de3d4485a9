package shepard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"shepardviz/src/domain"
)

// ShepardClient fala com a API REST do ShepardDB. O *http.Client recebido
// já deve injetar o bearer token (ver infra/keycloak).
type ShepardClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewShepardClient(host string, httpClient *http.Client) *ShepardClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &ShepardClient{
		baseURL:    host + "/api",
		httpClient: httpClient,
	}
}

func (c *ShepardClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("shepard: failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("shepard: failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shepard: %s %s failed: %w: %w", method, path, domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("shepard: %s %s: %w", method, path, domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		// 401/403 (token inválido) e 5xx caem todos na mesma indisponibilidade.
		return fmt.Errorf("shepard: %s %s returned status %d: %w", method, path, resp.StatusCode, domain.ErrSourceUnavailable)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("shepard: failed to decode response of %s %s: %w", method, path, err)
	}

	return nil
}

func collectionPath(collectionID string) string {
	return "/collections/" + url.PathEscape(collectionID)
}

func entityPath(collectionID, entityID string) string {
	return collectionPath(collectionID) + "/dataObjects/" + url.PathEscape(entityID)
}

// Timeout default aplicado por request quando o caller não estabelece um
// deadline próprio.
const defaultRequestTimeout = 30 * time.Second

func withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultRequestTimeout)
}
