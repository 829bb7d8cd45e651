// Package linking owns the linked-identity lifecycle: connecting a verified
// Telegram identity to a local user, refreshing that link and revoking it.
// Persistence goes through the repositories; every state-changing operation
// runs in one transaction.
package linking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/common"
	"github.com/dmitrijs2005/tgauth/internal/dbx"
	"github.com/dmitrijs2005/tgauth/internal/logging"
	"github.com/dmitrijs2005/tgauth/internal/server/models"
	"github.com/dmitrijs2005/tgauth/internal/server/repositories/identities"
	"github.com/dmitrijs2005/tgauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tgauth/internal/telegram"
	"github.com/google/uuid"
)

// Status is the state a lifecycle operation ended in.
type Status string

const (
	StatusCreated       Status = "created"
	StatusUpdated       Status = "updated"
	StatusAlreadyLinked Status = "already_linked"
	StatusConflict      Status = "conflict"
	StatusRevoked       Status = "revoked"
	StatusNotFound      Status = "not_found"
)

var (
	// ErrConflict means the Telegram account is linked to a different user.
	ErrConflict = errors.New("telegram account is linked to another user")
	// ErrUserLinked means the user already holds a different Telegram account.
	ErrUserLinked = errors.New("user already has another telegram account linked")
	// ErrNoUser is returned for an empty user reference.
	ErrNoUser = errors.New("user reference is required")
)

// Result reports the outcome of a lifecycle operation. ConflictingUserID is
// set when the Telegram account belongs to someone else.
type Result struct {
	Status            Status
	Identity          *models.LinkedIdentity
	ConflictingUserID string
}

// Failure maps the status to the lifecycle failure kinds, "" when none.
func (r Result) Failure() telegram.FailureKind {
	switch r.Status {
	case StatusConflict:
		return telegram.StoreConflict
	case StatusNotFound:
		return telegram.StoreNotFound
	default:
		return ""
	}
}

// Service runs the lifecycle operations against the configured store.
type Service struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
	newID       func() string
}

func NewService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *Service {
	return &Service{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "linking"),
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

// CanRevoke reports that users may unlink their Telegram account.
func (s *Service) CanRevoke() bool { return true }

// CanConnectExistingUser reports that existing users may link an account.
func (s *Service) CanConnectExistingUser() bool { return true }

// Connect links the verified identity to userID. It never moves a link
// between users: when the Telegram account or the user is already linked
// elsewhere the result is StatusConflict and the error says which side.
func (s *Service) Connect(ctx context.Context, userID string, o telegram.Outcome) (Result, error) {
	return s.link(ctx, "connect", userID, o, false)
}

// Reconnect is Connect that refreshes an existing link of userID instead
// of reporting it: the stored uid and info are replaced by the new identity.
func (s *Service) Reconnect(ctx context.Context, userID string, o telegram.Outcome) (Result, error) {
	return s.link(ctx, "reconnect", userID, o, true)
}

func (s *Service) link(ctx context.Context, op, userID string, o telegram.Outcome, refresh bool) (Result, error) {
	if userID == "" {
		return Result{}, ErrNoUser
	}
	id := o.Identity()
	if id == nil {
		return Result{}, rejected(o)
	}

	var res Result
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		res, err = s.linkTx(ctx, s.repomanager.Identities(tx), userID, id, refresh)
		return err
	})

	if errors.Is(err, common.ErrorConflict) {
		// lost a race against a concurrent writer
		res = Result{Status: StatusConflict}
		err = fmt.Errorf("%w: %v", ErrConflict, err)
	}

	if err != nil && res.Status != StatusConflict {
		s.logger.Error(ctx, "link failed", "op", op, "user_id", userID, "uid", id.ID, "error", err)
		return Result{}, err
	}

	s.logger.Info(ctx, "link "+op, "status", res.Status, "user_id", userID, "uid", id.ID)
	return res, err
}

func (s *Service) linkTx(ctx context.Context, repo identities.Repository, userID string, id *telegram.VerifiedIdentity, refresh bool) (Result, error) {
	byUID, err := find(repo.FindByProviderUID(ctx, common.ProviderTelegram, id.ID))
	if err != nil {
		return Result{}, err
	}
	if byUID != nil && byUID.UserID != userID {
		return Result{Status: StatusConflict, ConflictingUserID: byUID.UserID}, ErrConflict
	}

	byUser := byUID
	if byUser == nil {
		if byUser, err = find(repo.FindByUser(ctx, userID, common.ProviderTelegram)); err != nil {
			return Result{}, err
		}
	}

	now := s.now().UTC()

	switch {
	case byUser == nil:
		li := &models.LinkedIdentity{
			ID:          s.newID(),
			UserID:      userID,
			Provider:    common.ProviderTelegram,
			ProviderUID: id.ID,
			Info:        id.Info(),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		created, err := repo.Create(ctx, li)
		if err != nil {
			return Result{}, err
		}
		return Result{Status: StatusCreated, Identity: created}, nil

	case !refresh && byUser.ProviderUID == id.ID:
		return Result{Status: StatusAlreadyLinked, Identity: byUser}, nil

	case !refresh:
		return Result{Status: StatusConflict, Identity: byUser}, ErrUserLinked

	default:
		byUser.ProviderUID = id.ID
		byUser.Info = id.Info()
		byUser.UpdatedAt = now
		if err := repo.Update(ctx, byUser); err != nil {
			return Result{}, err
		}
		return Result{Status: StatusUpdated, Identity: byUser}, nil
	}
}

// Revoke removes the Telegram link of userID. StatusNotFound is reported
// without error when there is nothing to remove.
func (s *Service) Revoke(ctx context.Context, userID string) (Result, error) {
	if userID == "" {
		return Result{}, ErrNoUser
	}

	var res Result
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Identities(tx)

		li, err := find(repo.FindByUser(ctx, userID, common.ProviderTelegram))
		if err != nil {
			return err
		}
		if li == nil {
			res = Result{Status: StatusNotFound}
			return nil
		}

		if err := repo.Delete(ctx, li.ID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				res = Result{Status: StatusNotFound}
				return nil
			}
			return err
		}
		res = Result{Status: StatusRevoked, Identity: li}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "revoke failed", "user_id", userID, "error", err)
		return Result{}, err
	}

	s.logger.Info(ctx, "link revoke", "status", res.Status, "user_id", userID)
	return res, nil
}

// Resolve returns the link of a verified identity, used at login. The
// stored info is refreshed when the profile changed. common.ErrorNotFound
// means the Telegram account is not linked to anyone yet.
func (s *Service) Resolve(ctx context.Context, o telegram.Outcome) (*models.LinkedIdentity, error) {
	id := o.Identity()
	if id == nil {
		return nil, rejected(o)
	}

	repo := s.repomanager.Identities(s.db)
	li, err := repo.FindByProviderUID(ctx, common.ProviderTelegram, id.ID)
	if err != nil {
		return nil, err
	}

	info := id.Info()
	if profileChanged(li.Info, info) {
		li.Info = info
		li.UpdatedAt = s.now().UTC()
		if err := repo.Update(ctx, li); err != nil {
			s.logger.Warn(ctx, "info refresh failed", "uid", id.ID, "error", err)
		}
	}
	return li, nil
}

// Describe returns how the user's Telegram account is shown in account
// settings, "" when nothing is linked.
func (s *Service) Describe(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", nil
	}

	li, err := find(s.repomanager.Identities(s.db).FindByUser(ctx, userID, common.ProviderTelegram))
	if err != nil {
		return "", err
	}
	if li == nil {
		return "", nil
	}
	return telegram.DisplayNameFromInfo(li.Info, li.ProviderUID), nil
}

// find turns common.ErrorNotFound into a nil record.
// rejected wraps the failure of an outcome that carries no identity.
func rejected(o telegram.Outcome) error {
	if err := o.Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}
	return common.ErrorUnauthorized
}

func find(li *models.LinkedIdentity, err error) (*models.LinkedIdentity, error) {
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return li, err
}

// auth_date changes on every login and does not count.
func profileChanged(old, cur map[string]string) bool {
	for _, k := range []string{telegram.FieldUsername, telegram.FieldFirstName, telegram.FieldLastName, telegram.FieldPhotoURL} {
		if old[k] != cur[k] {
			return true
		}
	}
	return false
}
