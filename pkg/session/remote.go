package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/nexaboard/nexaboard/pkg/identity"
)

const defaultRequestTimeout = 10 * time.Second

// APIClient is a thin HTTP client for the NexaBoard backend. It carries
// a cookie jar so the server-managed session cookie survives across
// calls made through the same client.
type APIClient struct {
	base string
	http *http.Client
}

// NewAPIClient builds a client for the backend at baseURL, e.g.
// "http://localhost:8080".
func NewAPIClient(baseURL string) (*APIClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("session: build cookie jar: %w", err)
	}
	return &APIClient{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Jar: jar, Timeout: defaultRequestTimeout},
	}, nil
}

// resetJar discards every stored cookie, making the server-backed
// artifact locally unusable.
func (c *APIClient) resetJar() {
	jar, err := cookiejar.New(nil)
	if err == nil {
		c.http.Jar = jar
	}
}

// do issues a JSON request and decodes a JSON body into out when the
// response is 2xx. Non-2xx responses are returned as an apiError
// carrying the status code and the plain-text reason from the server.
func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		reason := strings.TrimSpace(string(raw))
		// The server wraps errors in {"error": "..."}; older deployments
		// returned plain text.
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
			reason = envelope.Error
		}
		return &apiError{status: resp.StatusCode, reason: reason}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

type apiError struct {
	status int
	reason string
}

func (e *apiError) Error() string {
	if e.reason == "" {
		return fmt.Sprintf("server returned status %d", e.status)
	}
	return e.reason
}

// RemoteVerifier delegates credential checks to the backend. The server
// sets the session cookie on the shared APIClient as a side effect of a
// successful call, which is why CookieBackend.Issue has nothing to do.
type RemoteVerifier struct {
	api *APIClient
}

func NewRemoteVerifier(api *APIClient) *RemoteVerifier {
	return &RemoteVerifier{api: api}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (v *RemoteVerifier) Verify(ctx context.Context, email, password string) (*identity.Identity, error) {
	var id identity.Identity
	err := v.api.do(ctx, http.MethodPost, "/api/auth/login", credentialsRequest{Email: email, Password: password}, &id)
	if err != nil {
		var ae *apiError
		if errors.As(err, &ae) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, ae.Error())
		}
		return nil, err
	}
	return &id, nil
}

func (v *RemoteVerifier) Register(ctx context.Context, email, password, name string, role identity.Role) (*identity.Identity, error) {
	var id identity.Identity
	err := v.api.do(ctx, http.MethodPost, "/api/auth/register", credentialsRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     string(role),
	}, &id)
	if err != nil {
		var ae *apiError
		if errors.As(err, &ae) {
			if ae.status == http.StatusConflict {
				return nil, fmt.Errorf("%w: %s", ErrUserExists, ae.Error())
			}
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, ae.Error())
		}
		return nil, err
	}
	return &id, nil
}

// CookieBackend implements Backend for the server-backed variant: the
// artifact is an opaque cookie the client never inspects, only presents.
type CookieBackend struct {
	api *APIClient
}

func NewCookieBackend(api *APIClient) *CookieBackend {
	return &CookieBackend{api: api}
}

func (b *CookieBackend) Issue(context.Context, *identity.Identity) error {
	// The server set the cookie during the authentication round trip.
	return nil
}

func (b *CookieBackend) Recover(ctx context.Context) *identity.Identity {
	var id identity.Identity
	if err := b.api.do(ctx, http.MethodGet, "/api/auth/me", nil, &id); err != nil {
		return nil
	}
	return &id
}

func (b *CookieBackend) Revoke(ctx context.Context) error {
	err := b.api.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	b.api.resetJar()
	return err
}

