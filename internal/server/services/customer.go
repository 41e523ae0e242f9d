// Package services contains server-side business logic: the authorization
// gate, customer accounts and sessions, and customer addresses. Every
// operation runs in exactly one dbx.WithTx unit of work.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/dbx"
	"github.com/dmitrijs2005/addrkeeper/internal/logging"
	"github.com/dmitrijs2005/addrkeeper/internal/server/auth"
	"github.com/dmitrijs2005/addrkeeper/internal/server/config"
	"github.com/dmitrijs2005/addrkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SignupRequest carries the fields of a new account. LastName is optional.
type SignupRequest struct {
	FirstName     string
	LastName      string
	Email         string
	ContactNumber string
	Password      string
}

// LoginResult is a freshly created session together with its customer.
type LoginResult struct {
	Customer *models.Customer
	Session  *models.CustomerAuth
}

// CustomerService handles signup, login/logout and profile maintenance.
type CustomerService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	gate            *Gate
	hasher          *auth.PasswordHasher
	issuer          *auth.TokenIssuer
	sessionValidity time.Duration
	now             Clock
	log             logging.Logger
}

// NewCustomerService constructs a CustomerService from repositories and server config.
// A nil clock means time.Now.
func NewCustomerService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, now Clock, log logging.Logger) *CustomerService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &CustomerService{
		db:          db,
		repomanager: m,
		gate:        NewGate(m, now),
		hasher: auth.NewPasswordHasher(auth.HasherParams{
			Time:      cfg.HashTime,
			MemoryKB:  cfg.HashMemoryKB,
			Threads:   cfg.HashThreads,
			KeyLength: auth.DefaultHasherParams.KeyLength,
		}),
		issuer:          auth.NewTokenIssuer(),
		sessionValidity: cfg.SessionValidityDuration,
		now:             now,
		log:             log.With("module", "customers"),
	}
}

// Signup validates req and stores a new customer with a freshly salted digest.
func (s *CustomerService) Signup(ctx context.Context, req SignupRequest) (*models.Customer, error) {
	if req.FirstName == "" || req.Email == "" || req.ContactNumber == "" || req.Password == "" {
		return nil, common.ErrSignupMissingRequired
	}

	c, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Customer, error) {
		repo := s.repomanager.Customers(tx)

		_, err := repo.GetByContactNumber(ctx, req.ContactNumber)
		if err == nil {
			return nil, common.ErrSignupContactTaken
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}

		if !auth.IsValidEmail(req.Email) {
			return nil, common.ErrSignupInvalidEmail
		}
		if !auth.IsValidContactNumber(req.ContactNumber) {
			return nil, common.ErrSignupInvalidContact
		}
		if !auth.IsStrongPassword(req.Password) {
			return nil, common.ErrSignupWeakPassword
		}

		salt, digest := s.hasher.Hash(req.Password)
		return repo.Create(ctx, &models.Customer{
			UUID:          uuid.NewString(),
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Email:         req.Email,
			ContactNumber: req.ContactNumber,
			Password:      digest,
			Salt:          salt,
		})
	})
	if err != nil {
		s.logFailure(ctx, "signup failed", err)
		return nil, err
	}

	s.log.Info(ctx, "customer registered", "customer_id", c.UUID)
	return c, nil
}

// Login checks the credential pair and opens a new session that expires
// after the configured validity. Concurrent logins get independent sessions.
func (s *CustomerService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if !auth.IsValidEmail(email) || !auth.IsStrongPassword(password) {
		metrics.RecordLogin(metrics.OutcomeMalformed)
		return nil, common.ErrLoginMalformedRequest
	}

	res, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*LoginResult, error) {
		c, err := s.repomanager.Customers(tx).GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrLoginUnknownAccount
			}
			return nil, err
		}

		if !s.hasher.Verify(password, c.Salt, c.Password) {
			return nil, common.ErrLoginBadCredentials
		}

		loginAt := s.now()
		expiresAt := loginAt.Add(s.sessionValidity)

		token, err := s.issuer.Issue(c.UUID, []byte(c.Password), loginAt, expiresAt)
		if err != nil {
			return nil, err
		}

		session, err := s.repomanager.Sessions(tx).Create(ctx, &models.CustomerAuth{
			UUID:         uuid.NewString(),
			CustomerID:   c.ID,
			CustomerUUID: c.UUID,
			AccessToken:  token,
			LoginAt:      loginAt,
			ExpiresAt:    expiresAt,
		})
		if err != nil {
			return nil, err
		}

		return &LoginResult{Customer: c, Session: session}, nil
	})
	if err != nil {
		metrics.RecordLogin(loginOutcome(err))
		s.logFailure(ctx, "login failed", err)
		return nil, err
	}

	metrics.RecordLogin(metrics.OutcomeSuccess)
	s.log.Info(ctx, "customer logged in", "customer_id", res.Customer.UUID, "session_id", res.Session.UUID)
	return res, nil
}

// Logout closes the session behind token. A second logout with the same
// token fails with common.ErrLoggedOut.
func (s *CustomerService) Logout(ctx context.Context, token string) (*models.CustomerAuth, error) {
	session, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.CustomerAuth, error) {
		session, err := s.gate.Authorize(ctx, tx, token)
		if err != nil {
			return nil, err
		}

		at := s.now()
		if err := s.repomanager.Sessions(tx).SetLogoutAt(ctx, session.ID, at); err != nil {
			return nil, err
		}
		session.LogoutAt = &at
		return session, nil
	})
	if err != nil {
		s.logFailure(ctx, "logout failed", err)
		return nil, err
	}

	s.log.Info(ctx, "customer logged out", "customer_id", session.CustomerUUID, "session_id", session.UUID)
	return session, nil
}

// UpdateProfile replaces the first and last name of the session's customer.
func (s *CustomerService) UpdateProfile(ctx context.Context, token, firstName, lastName string) (*models.Customer, error) {
	c, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Customer, error) {
		session, err := s.gate.Authorize(ctx, tx, token)
		if err != nil {
			return nil, err
		}

		if firstName == "" {
			return nil, common.ErrUpdateFirstNameEmpty
		}

		repo := s.repomanager.Customers(tx)
		c, err := repo.GetByID(ctx, session.CustomerID)
		if err != nil {
			return nil, err
		}
		if err := repo.UpdateName(ctx, c.ID, firstName, lastName); err != nil {
			return nil, err
		}
		c.FirstName, c.LastName = firstName, lastName
		return c, nil
	})
	if err != nil {
		s.logFailure(ctx, "profile update failed", err)
		return nil, err
	}
	return c, nil
}

// UpdatePassword replaces the customer's password after verifying the old
// one. The new digest gets a fresh salt.
func (s *CustomerService) UpdatePassword(ctx context.Context, token, oldPassword, newPassword string) (*models.Customer, error) {
	c, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Customer, error) {
		session, err := s.gate.Authorize(ctx, tx, token)
		if err != nil {
			return nil, err
		}

		if oldPassword == "" || newPassword == "" {
			return nil, common.ErrUpdateMissingField
		}
		if !auth.IsStrongPassword(newPassword) {
			return nil, common.ErrUpdateWeakPassword
		}

		repo := s.repomanager.Customers(tx)
		c, err := repo.GetByID(ctx, session.CustomerID)
		if err != nil {
			return nil, err
		}
		if !s.hasher.Verify(oldPassword, c.Salt, c.Password) {
			return nil, common.ErrUpdateWrongPassword
		}

		salt, digest := s.hasher.Hash(newPassword)
		if err := repo.UpdatePassword(ctx, c.ID, salt, digest); err != nil {
			return nil, err
		}
		c.Salt, c.Password = salt, digest
		return c, nil
	})
	if err != nil {
		s.logFailure(ctx, "password update failed", err)
		return nil, err
	}

	s.log.Info(ctx, "customer password changed", "customer_id", c.UUID)
	return c, nil
}

// Authorize runs the gate in a read-only unit of work, for surfaces that
// only need to know who the token belongs to.
func (s *CustomerService) Authorize(ctx context.Context, token string) (*models.CustomerAuth, error) {
	return dbx.WithTxResult(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) (*models.CustomerAuth, error) {
		return s.gate.Authorize(ctx, tx, token)
	})
}

func (s *CustomerService) logFailure(ctx context.Context, msg string, err error) {
	logFailure(ctx, s.log, msg, err)
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, common.ErrLoginUnknownAccount):
		return metrics.OutcomeUnknown
	case errors.Is(err, common.ErrLoginBadCredentials):
		return metrics.OutcomeBadPassword
	default:
		return metrics.OutcomeStoreFailure
	}
}

// logFailure logs domain failures at Warn with their code and anything else
// at Error.
func logFailure(ctx context.Context, log logging.Logger, msg string, err error) {
	if ce, ok := common.AsCoded(err); ok {
		log.Warn(ctx, msg, "code", ce.Code)
		return
	}
	log.Error(ctx, msg, "error", err)
}
