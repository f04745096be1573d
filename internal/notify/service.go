package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	ccemaildomain "github.com/signdesk/signdesk/internal/ccemail/domain"
	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
	"github.com/signdesk/signdesk/internal/providers/email"
	reorderdomain "github.com/signdesk/signdesk/internal/reorder/domain"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	vendordomain "github.com/signdesk/signdesk/internal/vendors/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sendTimeout = 30 * time.Second

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Provider email.Provider
	Offices  officedomain.Repository
	Users    userdomain.Repository
	Vendors  vendordomain.Repository
	CCEmails ccemaildomain.Repository
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	provider email.Provider
	offices  officedomain.Repository
	users    userdomain.Repository
	vendors  vendordomain.Repository
	ccEmails ccemaildomain.Repository

	wg sync.WaitGroup
}

func New(p Params) Service {
	return &service{
		db:       p.DB,
		log:      p.Log.Named("notify"),
		provider: p.Provider,
		offices:  p.Offices,
		users:    p.Users,
		vendors:  p.Vendors,
		ccEmails: p.CCEmails,
	}
}

func (s *service) OrderCreated(order orderdomain.Order) {
	s.dispatch(func(ctx context.Context) error {
		return s.sendOrderNotification(ctx, order, "New")
	}, "order created notification", order.OrderID)
}

func (s *service) OrderUpdated(order orderdomain.Order) {
	s.dispatch(func(ctx context.Context) error {
		return s.sendOrderNotification(ctx, order, "Updated")
	}, "order updated notification", order.OrderID)
}

func (s *service) ReorderCreated(reorder reorderdomain.Reorder, original orderdomain.Order) {
	s.dispatch(func(ctx context.Context) error {
		return s.sendReorderNotification(ctx, reorder, original)
	}, "reorder notification", reorder.ReorderID)
}

func (s *service) Wait() {
	s.wg.Wait()
}

func (s *service) dispatch(send func(context.Context) error, kind, ref string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			s.log.Warn("failed to send "+kind,
				zap.String("ref", ref),
				zap.Error(err),
			)
			return
		}
		s.log.Info(kind+" sent", zap.String("ref", ref))
	}()
}

func (s *service) sendOrderNotification(ctx context.Context, order orderdomain.Order, kind string) error {
	office, agent, err := s.resolveParties(ctx, order)
	if err != nil {
		return err
	}

	recipients := make([]string, 0, 3)
	if agent != nil && agent.Email != "" {
		recipients = append(recipients, agent.Email)
	}

	var vendor *vendordomain.Vendor
	if order.VendorID != nil {
		vendor, err = s.vendors.FindByID(ctx, s.db, *order.VendorID)
		if err != nil {
			return err
		}
	}
	switch {
	case vendor != nil && vendor.Email != "":
		recipients = append(recipients, vendor.Email)
	case office != nil && office.Email != "":
		recipients = append(recipients, office.Email)
	}

	if len(recipients) == 0 {
		s.log.Warn("no recipients for order notification", zap.String("order_id", order.OrderID))
		return nil
	}

	cc, err := s.officeCC(ctx, order)
	if err != nil {
		return err
	}

	return s.provider.Send(ctx, email.Message{
		To:      recipients,
		CC:      cc,
		Subject: fmt.Sprintf("%s Sign Order - %s", kind, order.OrderID),
		HTML:    renderOrderHTML(order, office, agent, kind),
	})
}

func (s *service) sendReorderNotification(ctx context.Context, reorder reorderdomain.Reorder, original orderdomain.Order) error {
	office, originalAgent, err := s.resolveParties(ctx, original)
	if err != nil {
		return err
	}

	listingAgent, err := s.users.FindByID(ctx, s.db, reorder.ListingAgentID)
	if err != nil {
		return err
	}

	recipients := make([]string, 0, 2)
	if listingAgent != nil && listingAgent.Email != "" {
		recipients = append(recipients, listingAgent.Email)
	}
	if originalAgent != nil && originalAgent.Email != "" && (listingAgent == nil || originalAgent.Email != listingAgent.Email) {
		recipients = append(recipients, originalAgent.Email)
	}
	if len(recipients) == 0 {
		s.log.Warn("no recipients for reorder notification", zap.String("reorder_id", reorder.ReorderID))
		return nil
	}

	cc, err := s.officeCC(ctx, original)
	if err != nil {
		return err
	}

	return s.provider.Send(ctx, email.Message{
		To:      recipients,
		CC:      cc,
		Subject: fmt.Sprintf("New Reorder - %s (Original: %s)", reorder.ReorderID, original.OrderID),
		HTML:    renderReorderHTML(reorder, original, office, listingAgent),
	})
}

func (s *service) resolveParties(ctx context.Context, order orderdomain.Order) (*officedomain.Office, *userdomain.User, error) {
	office, err := s.offices.FindByID(ctx, s.db, order.OfficeID)
	if err != nil {
		return nil, nil, err
	}
	agent, err := s.users.FindByID(ctx, s.db, order.AgentID)
	if err != nil {
		return nil, nil, err
	}
	return office, agent, nil
}

func (s *service) officeCC(ctx context.Context, order orderdomain.Order) ([]string, error) {
	records, err := s.ccEmails.ListActiveByOffice(ctx, s.db, order.OfficeID)
	if err != nil {
		return nil, err
	}
	cc := make([]string, 0, len(records))
	for _, record := range records {
		cc = append(cc, record.Email)
	}
	return cc, nil
}
