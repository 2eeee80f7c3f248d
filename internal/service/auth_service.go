package service

import (
	"crypto/subtle"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/store"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// AuthService verifies technician credentials against the employee store
// and issues sessions. Records still carrying a legacy plaintext authcode
// are migrated to a bcrypt hash on their first successful login.
type AuthService struct {
	store      *store.Store
	sessions   *auth.SessionManager
	bcryptCost int
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, st *store.Store, logger *zap.Logger, metrics *observability.Metrics) *AuthService {
	return &AuthService{
		store:      st,
		sessions:   auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL()),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
		metrics:    metrics,
	}
}

// SessionManager exposes the session manager for middleware and handlers.
func (s *AuthService) SessionManager() *auth.SessionManager {
	return s.sessions
}

// Login runs the credential state machine for one attempt and returns a
// signed technician session on success. All failure paths cost one bcrypt
// comparison and return the same generic error, so neither latency nor the
// response reveals whether the username exists.
func (s *AuthService) Login(username, password string) (string, time.Time, error) {
	employees, err := s.store.Employees()
	if err != nil {
		return "", time.Time{}, err
	}

	var employee *domain.Employee
	for i := range employees {
		if employees[i].Username == username {
			employee = &employees[i]
			break
		}
	}

	if employee == nil {
		return "", time.Time{}, s.fail(username, password)
	}

	switch employee.Credential() {
	case domain.CredentialLegacy:
		if subtle.ConstantTimeCompare([]byte(password), []byte(employee.LegacyAuthcode)) != 1 {
			return "", time.Time{}, s.fail(username, password)
		}
		if err := s.migrate(username, password); err != nil {
			return "", time.Time{}, err
		}
		s.logger.Info("technician logged in using legacy password and was auto-migrated",
			zap.String("username", username))
		s.metrics.RecordLogin("migrated")

	case domain.CredentialHashed:
		if err := auth.ComparePassword(employee.PasswordHash, password); err != nil {
			return "", time.Time{}, s.failWithoutBurn(username)
		}
		s.logger.Info("technician logged in", zap.String("username", username))
		s.metrics.RecordLogin("success")

	default:
		return "", time.Time{}, s.fail(username, password)
	}

	return s.sessions.Issue(username)
}

// migrate replaces the legacy authcode with a bcrypt hash under the store
// lock. The transition happens exactly once per legacy record.
func (s *AuthService) migrate(username, password string) error {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.store.UpdateEmployees(func(employees []domain.Employee) ([]domain.Employee, error) {
		for i := range employees {
			if employees[i].Username == username {
				employees[i].Migrate(hash)
				break
			}
		}
		return employees, nil
	})
}

func (s *AuthService) fail(username, password string) error {
	auth.BurnComparison(password)
	return s.failWithoutBurn(username)
}

// failWithoutBurn is for paths that already spent a bcrypt comparison.
func (s *AuthService) failWithoutBurn(username string) error {
	s.logger.Warn("failed login attempt", zap.String("username", username))
	s.metrics.RecordLogin("failure")
	return apperrors.NewUnauthorized("invalid credentials")
}
