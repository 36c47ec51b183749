// Package session_server talks to Mojang's session server to verify that
// an online-mode client actually owns the account it claims, after the
// encryption handshake completes.
package session_server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-mclib/server/crypto"
)

// SessionServerClient verifies logins against Mojang's session server.
type SessionServerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSessionServerClient creates a client pointed at the production
// session server.
func NewSessionServerClient() *SessionServerClient {
	return NewClientWithURL("https://sessionserver.mojang.com")
}

// NewClientWithURL creates a client pointed at a custom base URL, useful
// for tests against a local stub.
func NewClientWithURL(baseURL string) *SessionServerClient {
	return &SessionServerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// HasJoinedResponse is the body of a successful /hasJoined call.
type HasJoinedResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Properties []Property `json:"properties"`
}

// Property is a signed profile property (e.g. "textures").
type Property struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// ErrorResponse is Mojang's error body shape.
type ErrorResponse struct {
	Error        string `json:"error"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Path         string `json:"path,omitempty"`
}

func (e ErrorResponse) String() string {
	if e.ErrorMessage != "" {
		return fmt.Sprintf("%s: %s (path: %s)", e.Error, e.ErrorMessage, e.Path)
	}
	return fmt.Sprintf("%s (path: %s)", e.Error, e.Path)
}

// HasJoined asks Mojang whether username has started a join with the
// given server hash. A nil response with a nil error means the session
// server returned 204 (no such session, or it already expired) — the
// caller should treat this as "user is not logged in".
func (c *SessionServerClient) HasJoined(username, serverID string, ip ...string) (*HasJoinedResponse, error) {
	url := fmt.Sprintf("%s/session/minecraft/hasJoined?username=%s&serverId=%s",
		c.baseURL, username, serverID)

	if len(ip) > 0 && ip[0] != "" {
		url += "&ip=" + ip[0]
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create hasJoined request: %w", err)
	}
	req.Header.Set("User-Agent", "go-mclib-server/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send hasJoined request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == 204 {
		return nil, nil
	}

	if resp.StatusCode != 200 {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("hasJoined failed: %s (status %d)", string(body), resp.StatusCode)
		}
		return nil, fmt.Errorf("hasJoined failed: %s (status %d)", errResp.String(), resp.StatusCode)
	}

	var hasJoinedResp HasJoinedResponse
	if err := json.Unmarshal(body, &hasJoinedResp); err != nil {
		return nil, fmt.Errorf("failed to parse hasJoined response: %w", err)
	}

	return &hasJoinedResp, nil
}

// ComputeServerHash computes the serverId query parameter for hasJoined:
// SHA-1 over the (empty, for a vanilla-compatible handshake) server ID,
// the shared secret, and the plaintext DER-encoded public key, rendered
// as a signed hex integer via crypto.MinecraftSHA1Builder.
func ComputeServerHash(serverID string, sharedSecret, publicKey []byte) string {
	hasher := crypto.NewMinecraftSHA1()

	hasher.Write([]byte(serverID))
	hasher.Write(sharedSecret)
	hasher.Write(publicKey)

	return hasher.HexDigest()
}
