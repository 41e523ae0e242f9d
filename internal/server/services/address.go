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
	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
	"github.com/dmitrijs2005/addrkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AddressRequest carries a new address. StateID is the state's external id.
type AddressRequest struct {
	FlatBuildingName string
	Locality         string
	City             string
	Pincode          string
	StateID          string
}

// AddressService manages the addresses a customer owns.
type AddressService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gate        *Gate
	log         logging.Logger
}

func NewAddressService(db *sql.DB, m repomanager.RepositoryManager, now Clock, log logging.Logger) *AddressService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &AddressService{
		db:          db,
		repomanager: m,
		gate:        NewGate(m, now),
		log:         log.With("module", "addresses"),
	}
}

// Save stores the address and its ownership row in one transaction.
func (s *AddressService) Save(ctx context.Context, token string, req AddressRequest) (*models.Address, error) {
	a, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Address, error) {
		session, err := s.gate.Authorize(ctx, tx, token)
		if err != nil {
			return nil, err
		}

		if req.FlatBuildingName == "" || req.Locality == "" || req.City == "" || req.Pincode == "" {
			return nil, common.ErrAddressMissingField
		}
		if !auth.IsValidPincode(req.Pincode) {
			return nil, common.ErrAddressInvalidPin
		}

		state, err := s.repomanager.States(tx).GetByUUID(ctx, req.StateID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrStateNotFound
			}
			return nil, err
		}

		repo := s.repomanager.Addresses(tx)
		a, err := repo.Create(ctx, &models.Address{
			UUID:             uuid.NewString(),
			FlatBuildingName: req.FlatBuildingName,
			Locality:         req.Locality,
			City:             req.City,
			Pincode:          req.Pincode,
			Active:           true,
			State:            *state,
		})
		if err != nil {
			return nil, err
		}
		if err := repo.CreateOwnership(ctx, session.CustomerID, a.ID); err != nil {
			return nil, err
		}
		return a, nil
	})
	if err != nil {
		logFailure(ctx, s.log, "address save failed", err)
		return nil, err
	}

	s.log.Info(ctx, "address saved", "address_id", a.UUID)
	return a, nil
}

// List returns the addresses owned by the session's customer.
func (s *AddressService) List(ctx context.Context, token string) ([]*models.Address, error) {
	list, err := dbx.WithTxResult(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) ([]*models.Address, error) {
		session, err := s.gate.Authorize(ctx, tx, token)
		if err != nil {
			return nil, err
		}
		return s.repomanager.Addresses(tx).ListByCustomer(ctx, session.CustomerID)
	})
	if err != nil {
		logFailure(ctx, s.log, "address list failed", err)
		return nil, err
	}
	return list, nil
}

// Delete removes an address owned by the session's customer. An address of
// another customer is reported exactly like a missing one.
func (s *AddressService) Delete(ctx context.Context, token, addressID string) (*models.Address, error) {
	a, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Address, error) {
		session, err := s.gate.Authorize(ctx, tx, token)
		if err != nil {
			return nil, err
		}

		if addressID == "" {
			return nil, common.ErrAddressIDMissing
		}

		repo := s.repomanager.Addresses(tx)
		a, err := repo.GetByUUID(ctx, addressID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrAddressNotFound
			}
			return nil, err
		}

		owner, err := repo.GetOwnerID(ctx, a.ID)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		if err != nil || owner != session.CustomerID {
			return nil, common.ErrAddressNotOwned
		}

		if err := repo.DeleteOwnership(ctx, a.ID); err != nil {
			return nil, err
		}
		if err := repo.Delete(ctx, a.ID); err != nil {
			return nil, err
		}
		return a, nil
	})
	if err != nil {
		logFailure(ctx, s.log, "address delete failed", err)
		return nil, err
	}

	s.log.Info(ctx, "address deleted", "address_id", a.UUID)
	return a, nil
}

// ListStates returns the state reference data. No session is required.
func (s *AddressService) ListStates(ctx context.Context) ([]*models.State, error) {
	return dbx.WithTxResult(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) ([]*models.State, error) {
		return s.repomanager.States(tx).List(ctx)
	})
}
