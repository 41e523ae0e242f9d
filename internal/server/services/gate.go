package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/dbx"
	"github.com/dmitrijs2005/addrkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/repomanager"
)

// Clock returns the current instant. Services take one so expiry can be
// tested deterministically.
type Clock func() time.Time

// Gate resolves a presented access token to an active session. Every
// protected operation calls Authorize inside its own unit of work before
// touching data.
type Gate struct {
	repomanager repomanager.RepositoryManager
	now         Clock
}

func NewGate(m repomanager.RepositoryManager, now Clock) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{repomanager: m, now: now}
}

// Authorize classifies the session behind token. Checks run in a fixed
// order: unknown token, then expiry, then logout.
func (g *Gate) Authorize(ctx context.Context, tx dbx.DBTX, token string) (*models.CustomerAuth, error) {
	if token == "" {
		metrics.RecordAuthorization(metrics.OutcomeNotFound)
		return nil, common.ErrNotLoggedIn
	}

	session, err := g.repomanager.Sessions(tx).GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			metrics.RecordAuthorization(metrics.OutcomeNotFound)
			return nil, common.ErrNotLoggedIn
		}
		metrics.RecordAuthorization(metrics.OutcomeStoreFailure)
		return nil, err
	}

	switch session.StateAt(g.now()) {
	case models.SessionExpired:
		metrics.RecordAuthorization(metrics.OutcomeExpired)
		return nil, common.ErrExpired
	case models.SessionLoggedOut:
		metrics.RecordAuthorization(metrics.OutcomeLoggedOut)
		return nil, common.ErrLoggedOut
	}

	metrics.RecordAuthorization(metrics.OutcomeSuccess)
	return session, nil
}
