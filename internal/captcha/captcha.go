package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Verifier checks a client captcha token. A nil Verifier means verification
// is disabled.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// HTTPVerifier posts the token to a siteverify-style endpoint.
type HTTPVerifier struct {
	Endpoint string
	Secret   string
	Client   *http.Client
}

func New(endpoint, secret string) *HTTPVerifier {
	return &HTTPVerifier{
		Endpoint: endpoint,
		Secret:   secret,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if token == "" {
		return fmt.Errorf("missing captcha token")
	}

	form := url.Values{
		"secret":   {v.Secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha verification unreachable: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("captcha verification: bad response: %w", err)
	}
	if !body.Success {
		if len(body.ErrorCodes) > 0 {
			return fmt.Errorf("captcha rejected: %s", strings.Join(body.ErrorCodes, ", "))
		}
		return fmt.Errorf("captcha rejected")
	}
	return nil
}
