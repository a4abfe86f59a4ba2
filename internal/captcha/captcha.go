// Package captcha verifies that a contribution submission originated from a
// human, by calling an external attestation endpoint (reCAPTCHA-compatible
// wire shape: POST form, JSON {success, score} reply).
//
// Policy: a token passes only when the remote service reports success AND a
// confidence score of at least MinScore. Every failure mode (network error,
// non-200 status, malformed body, low score) fails closed: the gate rejects
// and the caller must not persist anything.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MinScore is the fixed confidence threshold below which a verification is
// rejected even when the remote service reports success.
const MinScore = 0.5

// ErrFailed indicates the token did not pass verification. Callers surface
// it so the client can present a retry affordance.
var ErrFailed = errors.New("captcha verification failed")

// verifyURL is a var to allow test overrides via httptest.
var verifyURL = "https://www.google.com/recaptcha/api/siteverify"

// VerifyURL returns the current verification endpoint URL.
// Exposed for use by integration tests via httptest servers.
func VerifyURL() string { return verifyURL }

// SetVerifyURL overrides the verification endpoint URL.
// Intended for use in tests only.
func SetVerifyURL(u string) { verifyURL = u }

// Verifier is the narrow contract consumed by the request service. It is an
// interface so tests can substitute a stub without a network round trip.
type Verifier interface {
	// Verify checks the attestation token for the named action. A nil
	// return means the submission may proceed; ErrFailed means it must not.
	Verify(ctx context.Context, token, action string) error
}

// Client is the production Verifier backed by an HTTPS verification endpoint.
type Client struct {
	// Secret is the server-side shared secret for the verification API.
	Secret string
	// HTTPClient is used for the outbound call. When nil, a client with a
	// 10 second timeout is used.
	HTTPClient *http.Client
}

// verifyResponse is the wire shape of the verification reply.
type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify implements Verifier.
//
// The token and the expected action name are posted as form fields. Any
// transport or decode failure is mapped to ErrFailed (wrapped with the
// underlying cause); the gate never fails open.
func (c *Client) Verify(ctx context.Context, token, action string) error {
	if strings.TrimSpace(token) == "" {
		return ErrFailed
	}

	form := url.Values{}
	form.Set("secret", c.Secret)
	form.Set("response", token)
	if action != "" {
		form.Set("action", action)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: verification endpoint returned %d", ErrFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrFailed, err)
	}

	var vr verifyResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrFailed, err)
	}

	if !vr.Success || vr.Score < MinScore {
		return ErrFailed
	}
	return nil
}
