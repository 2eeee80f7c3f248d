package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
)

const defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// ErrVerificationFailed means the token was checked and rejected.
var ErrVerificationFailed = errors.New("captcha verification failed")

// Verifier validates Cloudflare Turnstile tokens submitted with public
// ticket forms. When disabled it accepts everything.
type Verifier struct {
	cfg       config.TurnstileConfig
	verifyURL string
	client    *http.Client
	logger    *zap.Logger
}

// NewVerifier builds a Verifier against the Cloudflare endpoint.
func NewVerifier(cfg config.TurnstileConfig, logger *zap.Logger) *Verifier {
	return &Verifier{
		cfg:       cfg,
		verifyURL: defaultVerifyURL,
		client:    &http.Client{Timeout: 5 * time.Second},
		logger:    logger,
	}
}

// NewVerifierWithEndpoint is NewVerifier pointed at a custom endpoint.
func NewVerifierWithEndpoint(cfg config.TurnstileConfig, endpoint string, logger *zap.Logger) *Verifier {
	v := NewVerifier(cfg, logger)
	v.verifyURL = endpoint
	return v
}

// Enabled reports whether submissions require a token.
func (v *Verifier) Enabled() bool {
	return v.cfg.Enabled
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a token with the verification service. A transport error
// or timeout is treated as a failed verification; there is no retry.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	if !v.cfg.Enabled {
		return nil
	}
	if token == "" {
		return ErrVerificationFailed
	}

	form := url.Values{}
	form.Set("secret", v.cfg.SecretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Error("turnstile verification error", zap.Error(err))
		return ErrVerificationFailed
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		v.logger.Error("turnstile response decode error", zap.Error(err))
		return ErrVerificationFailed
	}
	if !result.Success {
		v.logger.Warn("turnstile verification rejected", zap.Strings("error_codes", result.ErrorCodes))
		return ErrVerificationFailed
	}
	return nil
}
