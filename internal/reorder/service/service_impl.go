package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/authctx"
	"github.com/signdesk/signdesk/internal/clock"
	"github.com/signdesk/signdesk/internal/notify"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
	"github.com/signdesk/signdesk/internal/reorder/domain"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   domain.Repository
	Orders orderdomain.Repository
	Notify notify.Service
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	repo   domain.Repository
	orders orderdomain.Repository
	notify notify.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("reorder.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		orders: p.Orders,
		notify: p.Notify,
	}
}

func (s *Service) ListByOrder(ctx context.Context, orderID string) ([]domain.Reorder, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(orderID))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListByOriginalOrder(ctx, s.db, parsed)
}

func (s *Service) Create(ctx context.Context, req domain.CreateReorderRequest) (domain.Reorder, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.Reorder{}, domain.ErrUnauthenticated
	}

	if !orderdomain.IsValidInstallationType(req.InstallationType) {
		return domain.Reorder{}, domain.ErrInvalidInstallationType
	}

	originalID, err := snowflake.ParseString(strings.TrimSpace(req.OriginalOrderID))
	if err != nil || originalID == 0 {
		return domain.Reorder{}, domain.ErrInvalidID
	}
	listingAgentID, err := snowflake.ParseString(strings.TrimSpace(req.ListingAgentID))
	if err != nil || listingAgentID == 0 {
		return domain.Reorder{}, domain.ErrInvalidID
	}

	original, err := s.orders.FindByID(ctx, s.db, originalID)
	if err != nil {
		return domain.Reorder{}, err
	}
	if original == nil {
		return domain.Reorder{}, domain.ErrOriginalNotFound
	}

	// Eligibility and access are both verified before anything is
	// written; a rejected create leaves no trace in the store.
	if !original.EligibleForReorder() {
		return domain.Reorder{}, domain.ErrNotEligible
	}
	if err := accessible(caller, original); err != nil {
		return domain.Reorder{}, err
	}

	now := s.clock.Now()
	reorder := domain.Reorder{
		ID:               s.genID.Generate(),
		ReorderID:        domain.NewReorderID(now),
		OriginalOrderID:  originalID,
		InstallationType: req.InstallationType,
		ZipCode:          strings.TrimSpace(req.ZipCode),
		AdditionalInfo:   req.AdditionalInfo,
		ListingAgentID:   listingAgentID,
		Status:           orderdomain.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, &reorder); err != nil {
		return domain.Reorder{}, err
	}

	s.log.Info("reorder created",
		zap.String("reorder_id", reorder.ReorderID),
		zap.String("original_order_id", original.OrderID),
	)
	s.notify.ReorderCreated(reorder, *original)

	return reorder, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateReorderRequest) (domain.Reorder, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.Reorder{}, domain.ErrUnauthenticated
	}

	reorder, _, err := s.findWithOriginal(ctx, id, caller)
	if err != nil {
		return domain.Reorder{}, err
	}

	if req.InstallationType != nil {
		if !orderdomain.IsValidInstallationType(*req.InstallationType) {
			return domain.Reorder{}, domain.ErrInvalidInstallationType
		}
		reorder.InstallationType = *req.InstallationType
	}
	if req.Status != nil {
		if !orderdomain.IsValidStatus(*req.Status) {
			return domain.Reorder{}, domain.ErrInvalidStatus
		}
		reorder.Status = *req.Status
	}
	if req.ZipCode != nil {
		reorder.ZipCode = strings.TrimSpace(*req.ZipCode)
	}
	if req.AdditionalInfo != nil {
		reorder.AdditionalInfo = *req.AdditionalInfo
	}
	reorder.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, reorder); err != nil {
		return domain.Reorder{}, err
	}

	return *reorder, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}

	reorder, _, err := s.findWithOriginal(ctx, id, caller)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, s.db, reorder.ID)
}

// findWithOriginal loads a reorder and enforces the caller's access
// through the originating order.
func (s *Service) findWithOriginal(ctx context.Context, id string, caller authctx.Identity) (*domain.Reorder, *orderdomain.Order, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, nil, domain.ErrInvalidID
	}

	reorder, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, nil, err
	}
	if reorder == nil {
		return nil, nil, domain.ErrNotFound
	}

	original, err := s.orders.FindByID(ctx, s.db, reorder.OriginalOrderID)
	if err != nil {
		return nil, nil, err
	}
	if original == nil {
		return nil, nil, domain.ErrOriginalNotFound
	}
	if err := accessible(caller, original); err != nil {
		return nil, nil, err
	}

	return reorder, original, nil
}

func accessible(caller authctx.Identity, order *orderdomain.Order) error {
	if caller.Role == userdomain.RoleAgent && order.AgentID != caller.UserID {
		return domain.ErrAccessDenied
	}
	if caller.Role == userdomain.RoleAdminAgent && caller.OfficeID != nil && order.OfficeID != *caller.OfficeID {
		return domain.ErrAccessDenied
	}
	return nil
}
