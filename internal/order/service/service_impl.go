package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/authctx"
	"github.com/signdesk/signdesk/internal/clock"
	"github.com/signdesk/signdesk/internal/notify"
	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	"github.com/signdesk/signdesk/internal/order/domain"
	reorderdomain "github.com/signdesk/signdesk/internal/reorder/domain"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	vendordomain "github.com/signdesk/signdesk/internal/vendors/domain"
	"github.com/signdesk/signdesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Offices  officedomain.Repository
	Users    userdomain.Repository
	Vendors  vendordomain.Repository
	Reorders reorderdomain.Repository
	Notify   notify.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	offices  officedomain.Repository
	users    userdomain.Repository
	vendors  vendordomain.Repository
	reorders reorderdomain.Repository
	notify   notify.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("order.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		offices:  p.Offices,
		users:    p.Users,
		vendors:  p.Vendors,
		reorders: p.Reorders,
		notify:   p.Notify,
	}
}

// cutoff is the lower bound of the two-year visibility window.
func (s *Service) cutoff() time.Time {
	return s.clock.Now().AddDate(-2, 0, 0)
}

func (s *Service) List(ctx context.Context, req domain.ListOrdersRequest) (domain.ListOrdersResponse, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.ListOrdersResponse{}, domain.ErrUnauthenticated
	}

	filter := domain.Filter{
		Cutoff:           s.cutoff(),
		Status:           strings.TrimSpace(req.Status),
		InstallationType: strings.TrimSpace(req.InstallationType),
		Search:           strings.TrimSpace(req.Search),
		SearchColumns:    domain.OrderSearchColumns,
	}
	if err := parseIDInto(req.OfficeID, &filter.OfficeID); err != nil {
		return domain.ListOrdersResponse{}, err
	}
	if err := parseIDInto(req.AgentID, &filter.AgentID); err != nil {
		return domain.ListOrdersResponse{}, err
	}
	scopeToCaller(caller, &filter)

	page := pagination.Pagination{Page: req.Page, Limit: req.Limit}

	total, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return domain.ListOrdersResponse{}, err
	}

	orders, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListOrdersResponse{}, err
	}

	views, err := s.compose(ctx, orders, true)
	if err != nil {
		return domain.ListOrdersResponse{}, err
	}

	return domain.ListOrdersResponse{
		Orders:     views,
		Pagination: domain.PageMetaFrom(pagination.BuildPageInfo(total, page)),
	}, nil
}

func (s *Service) ListSignRequests(ctx context.Context, req domain.ListSignRequestsRequest) (domain.ListSignRequestsResponse, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.ListSignRequestsResponse{}, domain.ErrUnauthenticated
	}

	// The office filter is mandatory and is checked before any store
	// access.
	if strings.TrimSpace(req.OfficeID) == "" {
		return domain.ListSignRequestsResponse{}, domain.ErrOfficeRequired
	}

	filter := domain.Filter{
		Cutoff:        s.cutoff(),
		Search:        strings.TrimSpace(req.Search),
		SearchColumns: domain.SignRequestSearchColumns,
	}
	if err := parseIDInto(req.OfficeID, &filter.OfficeID); err != nil {
		return domain.ListSignRequestsResponse{}, err
	}
	if err := parseIDInto(req.AgentID, &filter.AgentID); err != nil {
		return domain.ListSignRequestsResponse{}, err
	}
	scopeToCaller(caller, &filter)

	page := pagination.Pagination{Page: req.Page, Limit: req.Limit}

	total, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return domain.ListSignRequestsResponse{}, err
	}

	orders, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListSignRequestsResponse{}, err
	}

	views, err := s.compose(ctx, orders, false)
	if err != nil {
		return domain.ListSignRequestsResponse{}, err
	}

	return domain.ListSignRequestsResponse{
		PageInfo: pagination.BuildPageInfo(total, page),
		Orders:   views,
	}, nil
}

func (s *Service) Stats(ctx context.Context, req domain.StatsRequest) (domain.Stats, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.Stats{}, domain.ErrUnauthenticated
	}

	if strings.TrimSpace(req.OfficeID) == "" {
		return domain.Stats{}, domain.ErrOfficeRequired
	}

	filter := domain.Filter{Cutoff: s.cutoff()}
	if err := parseIDInto(req.OfficeID, &filter.OfficeID); err != nil {
		return domain.Stats{}, err
	}
	if err := parseIDInto(req.AgentID, &filter.AgentID); err != nil {
		return domain.Stats{}, err
	}
	scopeToCaller(caller, &filter)

	total, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return domain.Stats{}, err
	}

	eligibleFilter := filter
	eligibleFilter.EligibleOnly = true
	eligible, err := s.repo.Count(ctx, s.db, eligibleFilter)
	if err != nil {
		return domain.Stats{}, err
	}

	breakdown, err := s.repo.Stats(ctx, s.db, filter)
	if err != nil {
		return domain.Stats{}, err
	}

	return domain.Stats{
		TotalOrders:         total,
		EligibleForOrdering: eligible,
		Breakdown:           breakdown,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.OrderView, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.OrderView{}, domain.ErrUnauthenticated
	}

	order, err := s.find(ctx, id)
	if err != nil {
		return domain.OrderView{}, err
	}
	if err := accessible(caller, order); err != nil {
		return domain.OrderView{}, err
	}

	views, err := s.compose(ctx, []domain.Order{*order}, true)
	if err != nil {
		return domain.OrderView{}, err
	}
	return views[0], nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderView, error) {
	if _, ok := authctx.IdentityFromContext(ctx); !ok {
		return domain.OrderView{}, domain.ErrUnauthenticated
	}

	if !domain.IsValidInstallationType(req.InstallationType) {
		return domain.OrderView{}, domain.ErrInvalidInstallationType
	}

	officeID, err := snowflake.ParseString(strings.TrimSpace(req.OfficeID))
	if err != nil || officeID == 0 {
		return domain.OrderView{}, domain.ErrInvalidID
	}
	agentID, err := snowflake.ParseString(strings.TrimSpace(req.AgentID))
	if err != nil || agentID == 0 {
		return domain.OrderView{}, domain.ErrInvalidID
	}

	var vendorID *snowflake.ID
	if raw := strings.TrimSpace(req.VendorID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.OrderView{}, domain.ErrInvalidID
		}
		vendorID = &parsed
	} else {
		// Assign the vendor covering the order's zip code, when one
		// exists.
		assigned, err := s.vendorForZip(ctx, req.ZipCode)
		if err != nil {
			return domain.OrderView{}, err
		}
		vendorID = assigned
	}

	now := s.clock.Now()
	order := domain.Order{
		ID:                  s.genID.Generate(),
		OrderID:             domain.NewOrderID(now),
		OfficeID:            officeID,
		AgentID:             agentID,
		VendorID:            vendorID,
		InstallationType:    req.InstallationType,
		PropertyType:        strings.TrimSpace(req.PropertyType),
		StreetAddress:       strings.TrimSpace(req.StreetAddress),
		City:                strings.TrimSpace(req.City),
		State:               strings.TrimSpace(req.State),
		ZipCode:             strings.TrimSpace(req.ZipCode),
		ContactName:         strings.TrimSpace(req.ContactName),
		ContactPhone:        strings.TrimSpace(req.ContactPhone),
		ContactEmail:        strings.TrimSpace(req.ContactEmail),
		ListingDate:         req.ListingDate,
		ExpirationDate:      req.ExpirationDate,
		InstallationDate:    req.InstallationDate,
		CompletionDate:      req.CompletionDate,
		Directions:          req.Directions,
		AdditionalInfo:      req.AdditionalInfo,
		UnderwaterSprinkler: req.UnderwaterSprinkler,
		InvisibleDogFence:   req.InvisibleDogFence,
		Status:              domain.StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.OrderView{}, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.OrderID),
		zap.String("installation_type", order.InstallationType),
	)
	s.notify.OrderCreated(order)

	views, err := s.compose(ctx, []domain.Order{order}, false)
	if err != nil {
		return domain.OrderView{}, err
	}
	return views[0], nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateOrderRequest) (domain.OrderView, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.OrderView{}, domain.ErrUnauthenticated
	}

	order, err := s.find(ctx, id)
	if err != nil {
		return domain.OrderView{}, err
	}
	if err := accessible(caller, order); err != nil {
		return domain.OrderView{}, err
	}

	if req.InstallationType != nil {
		if !domain.IsValidInstallationType(*req.InstallationType) {
			return domain.OrderView{}, domain.ErrInvalidInstallationType
		}
		order.InstallationType = *req.InstallationType
	}
	if req.Status != nil {
		if !domain.IsValidStatus(*req.Status) {
			return domain.OrderView{}, domain.ErrInvalidStatus
		}
		order.Status = *req.Status
	}
	if req.VendorID != nil {
		if raw := strings.TrimSpace(*req.VendorID); raw == "" {
			order.VendorID = nil
		} else {
			parsed, err := snowflake.ParseString(raw)
			if err != nil {
				return domain.OrderView{}, domain.ErrInvalidID
			}
			order.VendorID = &parsed
		}
	}
	if req.PropertyType != nil {
		order.PropertyType = strings.TrimSpace(*req.PropertyType)
	}
	if req.StreetAddress != nil {
		order.StreetAddress = strings.TrimSpace(*req.StreetAddress)
	}
	if req.City != nil {
		order.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		order.State = strings.TrimSpace(*req.State)
	}
	if req.ZipCode != nil {
		order.ZipCode = strings.TrimSpace(*req.ZipCode)
	}
	if req.ContactName != nil {
		order.ContactName = strings.TrimSpace(*req.ContactName)
	}
	if req.ContactPhone != nil {
		order.ContactPhone = strings.TrimSpace(*req.ContactPhone)
	}
	if req.ContactEmail != nil {
		order.ContactEmail = strings.TrimSpace(*req.ContactEmail)
	}
	if req.ListingDate != nil {
		order.ListingDate = req.ListingDate
	}
	if req.ExpirationDate != nil {
		order.ExpirationDate = req.ExpirationDate
	}
	if req.InstallationDate != nil {
		order.InstallationDate = req.InstallationDate
	}
	if req.CompletionDate != nil {
		order.CompletionDate = req.CompletionDate
	}
	if req.Directions != nil {
		order.Directions = *req.Directions
	}
	if req.AdditionalInfo != nil {
		order.AdditionalInfo = *req.AdditionalInfo
	}
	if req.UnderwaterSprinkler != nil {
		order.UnderwaterSprinkler = *req.UnderwaterSprinkler
	}
	if req.InvisibleDogFence != nil {
		order.InvisibleDogFence = *req.InvisibleDogFence
	}
	order.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, order); err != nil {
		return domain.OrderView{}, err
	}

	s.notify.OrderUpdated(*order)

	views, err := s.compose(ctx, []domain.Order{*order}, false)
	if err != nil {
		return domain.OrderView{}, err
	}
	return views[0], nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	order, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, order.ID)
}

func (s *Service) CheckReorderEligibility(ctx context.Context, id string) (bool, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return false, err
	}
	return order.EligibleForReorder(), nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Order, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) vendorForZip(ctx context.Context, zip string) (*snowflake.ID, error) {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return nil, nil
	}

	vendors, err := s.vendors.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for _, v := range vendors {
		if v.ServesZip(zip) {
			id := v.ID
			return &id, nil
		}
	}
	return nil, nil
}

// compose decorates orders with their display fields and related
// records. Reorders are fetched with a single query over the page's
// order ids so the row count of the listing itself stays untouched.
func (s *Service) compose(ctx context.Context, orders []domain.Order, withReorders bool) ([]domain.OrderView, error) {
	officeIDs := make([]snowflake.ID, 0, len(orders))
	agentIDs := make([]snowflake.ID, 0, len(orders))
	vendorIDs := make([]snowflake.ID, 0, len(orders))
	orderIDs := make([]snowflake.ID, 0, len(orders))

	seenOffices := map[snowflake.ID]bool{}
	seenAgents := map[snowflake.ID]bool{}
	seenVendors := map[snowflake.ID]bool{}
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
		if !seenOffices[order.OfficeID] {
			seenOffices[order.OfficeID] = true
			officeIDs = append(officeIDs, order.OfficeID)
		}
		if !seenAgents[order.AgentID] {
			seenAgents[order.AgentID] = true
			agentIDs = append(agentIDs, order.AgentID)
		}
		if order.VendorID != nil && !seenVendors[*order.VendorID] {
			seenVendors[*order.VendorID] = true
			vendorIDs = append(vendorIDs, *order.VendorID)
		}
	}

	offices, err := s.offices.FindByIDs(ctx, s.db, officeIDs)
	if err != nil {
		return nil, err
	}
	agents, err := s.users.FindByIDs(ctx, s.db, agentIDs)
	if err != nil {
		return nil, err
	}
	vendors, err := s.vendors.FindByIDs(ctx, s.db, vendorIDs)
	if err != nil {
		return nil, err
	}

	officeRefs := make(map[snowflake.ID]*domain.OfficeRef, len(offices))
	for _, office := range offices {
		officeRefs[office.ID] = &domain.OfficeRef{ID: office.ID, Name: office.Name}
	}
	agentRefs := make(map[snowflake.ID]*domain.AgentRef, len(agents))
	for _, agent := range agents {
		agentRefs[agent.ID] = &domain.AgentRef{
			ID:        agent.ID,
			FirstName: agent.FirstName,
			LastName:  agent.LastName,
			Email:     agent.Email,
		}
	}
	vendorRefs := make(map[snowflake.ID]*domain.VendorRef, len(vendors))
	for _, vendor := range vendors {
		vendorRefs[vendor.ID] = &domain.VendorRef{ID: vendor.ID, Name: vendor.Name}
	}

	reordersByOrder := map[snowflake.ID][]reorderdomain.Reorder{}
	if withReorders {
		reorders, err := s.reorders.ListByOriginalOrders(ctx, s.db, orderIDs)
		if err != nil {
			return nil, err
		}
		for _, reorder := range reorders {
			reordersByOrder[reorder.OriginalOrderID] = append(reordersByOrder[reorder.OriginalOrderID], reorder)
		}
	}

	views := make([]domain.OrderView, 0, len(orders))
	for _, order := range orders {
		view := domain.OrderView{
			Order:    order,
			Address:  order.Address(),
			CanOrder: order.CanOrder(),
			Office:   officeRefs[order.OfficeID],
			Agent:    agentRefs[order.AgentID],
			Reorders: reordersByOrder[order.ID],
		}
		if order.VendorID != nil {
			view.Vendor = vendorRefs[*order.VendorID]
		}
		views = append(views, view)
	}
	return views, nil
}

// scopeToCaller forces the caller's visibility onto the filter,
// silently overriding whatever the client asked for.
func scopeToCaller(caller authctx.Identity, filter *domain.Filter) {
	switch {
	case caller.Role == userdomain.RoleAgent:
		id := caller.UserID
		filter.AgentID = &id
	case caller.Role == userdomain.RoleAdminAgent && caller.OfficeID != nil:
		filter.OfficeID = caller.OfficeID
	}
}

func accessible(caller authctx.Identity, order *domain.Order) error {
	if caller.Role == userdomain.RoleAgent && order.AgentID != caller.UserID {
		return domain.ErrAccessDenied
	}
	if caller.Role == userdomain.RoleAdminAgent && caller.OfficeID != nil && order.OfficeID != *caller.OfficeID {
		return domain.ErrAccessDenied
	}
	return nil
}

func parseIDInto(raw string, dst **snowflake.ID) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := snowflake.ParseString(raw)
	if err != nil || parsed == 0 {
		return domain.ErrInvalidID
	}
	*dst = &parsed
	return nil
}
