package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/helpdesk/internal/config"
)

func TestVerifyDisabled(t *testing.T) {
	v := NewVerifier(config.TurnstileConfig{Enabled: false}, zaptest.NewLogger(t))
	assert.NoError(t, v.Verify(context.Background(), "", ""))
	assert.False(t, v.Enabled())
}

func TestVerifyEmptyToken(t *testing.T) {
	v := NewVerifier(config.TurnstileConfig{Enabled: true, SecretKey: "s"}, zaptest.NewLogger(t))
	assert.ErrorIs(t, v.Verify(context.Background(), "", "1.2.3.4"), ErrVerificationFailed)
}

func TestVerifyAgainstEndpoint(t *testing.T) {
	t.Run("accepted token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "secret-key", r.PostForm.Get("secret"))
			assert.Equal(t, "tok", r.PostForm.Get("response"))
			assert.Equal(t, "1.2.3.4", r.PostForm.Get("remoteip"))
			_, _ = w.Write([]byte(`{"success": true}`))
		}))
		defer server.Close()

		v := NewVerifierWithEndpoint(config.TurnstileConfig{Enabled: true, SecretKey: "secret-key"}, server.URL, zaptest.NewLogger(t))
		assert.NoError(t, v.Verify(context.Background(), "tok", "1.2.3.4"))
	})

	t.Run("rejected token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
		}))
		defer server.Close()

		v := NewVerifierWithEndpoint(config.TurnstileConfig{Enabled: true, SecretKey: "secret-key"}, server.URL, zaptest.NewLogger(t))
		assert.ErrorIs(t, v.Verify(context.Background(), "tok", ""), ErrVerificationFailed)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		v := NewVerifierWithEndpoint(config.TurnstileConfig{Enabled: true, SecretKey: "secret-key"}, server.URL, zaptest.NewLogger(t))
		assert.ErrorIs(t, v.Verify(context.Background(), "tok", ""), ErrVerificationFailed)
	})
}
