package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/signdesk/signdesk/internal/authctx"
	"github.com/signdesk/signdesk/internal/clock"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
	orderrepo "github.com/signdesk/signdesk/internal/order/repository"
	"github.com/signdesk/signdesk/internal/reorder/domain"
	"github.com/signdesk/signdesk/internal/reorder/repository"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type notifyStub struct{}

func (notifyStub) OrderCreated(orderdomain.Order)                   {}
func (notifyStub) OrderUpdated(orderdomain.Order)                   {}
func (notifyStub) ReorderCreated(domain.Reorder, orderdomain.Order) {}
func (notifyStub) Wait()                                            {}

var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func setupReorderService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&orderdomain.Order{}, &domain.Reorder{}); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clock.NewFakeClock(testNow),
		Repo:   repository.Provide(),
		Orders: orderrepo.Provide(),
		Notify: notifyStub{},
	})
	return svc, db, node
}

func insertOriginal(t *testing.T, db *gorm.DB, node *snowflake.Node, status, installationType string, agentID snowflake.ID) orderdomain.Order {
	t.Helper()
	order := orderdomain.Order{
		ID:               node.Generate(),
		OrderID:          orderdomain.NewOrderID(testNow),
		OfficeID:         node.Generate(),
		AgentID:          agentID,
		InstallationType: installationType,
		PropertyType:     "Residential",
		StreetAddress:    "123 Elm St",
		City:             "Springfield",
		State:            "IL",
		ZipCode:          "62704",
		Status:           status,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}
	return order
}

func reorderCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&domain.Reorder{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	return count
}

func TestCreateReorderForCompletedOrder(t *testing.T) {
	svc, db, node := setupReorderService(t)
	agentID := node.Generate()
	original := insertOriginal(t, db, node, orderdomain.StatusCompleted, orderdomain.TypeInstallation, agentID)

	ctx := authctx.WithIdentity(context.Background(), authctx.Identity{UserID: agentID, Role: userdomain.RoleAgent})
	created, err := svc.Create(ctx, domain.CreateReorderRequest{
		OriginalOrderID:  original.ID.String(),
		InstallationType: orderdomain.TypeInstallation,
		ZipCode:          "62704",
		ListingAgentID:   agentID.String(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(created.ReorderID, "RO-") {
		t.Fatalf("expected RO- prefix, got %s", created.ReorderID)
	}
	if created.Status != orderdomain.StatusPending {
		t.Fatalf("expected PENDING status, got %s", created.Status)
	}
	if created.OriginalOrderID != original.ID {
		t.Fatal("reorder not linked to original order")
	}
}

func TestCreateReorderRejectsIneligibleOriginal(t *testing.T) {
	svc, db, node := setupReorderService(t)
	agentID := node.Generate()
	original := insertOriginal(t, db, node, orderdomain.StatusPending, orderdomain.TypeInstallation, agentID)

	ctx := authctx.WithIdentity(context.Background(), authctx.Identity{UserID: agentID, Role: userdomain.RoleAgent})
	_, err := svc.Create(ctx, domain.CreateReorderRequest{
		OriginalOrderID:  original.ID.String(),
		InstallationType: orderdomain.TypeInstallation,
		ZipCode:          "62704",
		ListingAgentID:   agentID.String(),
	})
	if err != domain.ErrNotEligible {
		t.Fatalf("expected ErrNotEligible, got %v", err)
	}

	// A rejected create leaves nothing behind.
	if count := reorderCount(t, db); count != 0 {
		t.Fatalf("expected no reorders, got %d", count)
	}
}

func TestCreateReorderDeniesOtherAgentsOrder(t *testing.T) {
	svc, db, node := setupReorderService(t)
	ownerID := node.Generate()
	callerID := node.Generate()
	original := insertOriginal(t, db, node, orderdomain.StatusCompleted, orderdomain.TypeInstallation, ownerID)

	ctx := authctx.WithIdentity(context.Background(), authctx.Identity{UserID: callerID, Role: userdomain.RoleAgent})
	_, err := svc.Create(ctx, domain.CreateReorderRequest{
		OriginalOrderID:  original.ID.String(),
		InstallationType: orderdomain.TypeInstallation,
		ZipCode:          "62704",
		ListingAgentID:   callerID.String(),
	})
	if err != domain.ErrAccessDenied {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if count := reorderCount(t, db); count != 0 {
		t.Fatalf("expected no reorders, got %d", count)
	}
}

func TestCreateReorderForRemovalIgnoresStatus(t *testing.T) {
	svc, db, node := setupReorderService(t)
	agentID := node.Generate()
	original := insertOriginal(t, db, node, orderdomain.StatusPending, orderdomain.TypeRemoval, agentID)

	ctx := authctx.WithIdentity(context.Background(), authctx.Identity{UserID: agentID, Role: userdomain.RoleAgent})
	if _, err := svc.Create(ctx, domain.CreateReorderRequest{
		OriginalOrderID:  original.ID.String(),
		InstallationType: orderdomain.TypeRemoval,
		ZipCode:          "62704",
		ListingAgentID:   agentID.String(),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestCreateReorderMissingOriginal(t *testing.T) {
	svc, _, node := setupReorderService(t)

	ctx := authctx.WithIdentity(context.Background(), authctx.Identity{UserID: node.Generate(), Role: userdomain.RoleITAdmin})
	_, err := svc.Create(ctx, domain.CreateReorderRequest{
		OriginalOrderID:  node.Generate().String(),
		InstallationType: orderdomain.TypeInstallation,
		ZipCode:          "62704",
		ListingAgentID:   node.Generate().String(),
	})
	if err != domain.ErrOriginalNotFound {
		t.Fatalf("expected ErrOriginalNotFound, got %v", err)
	}
}
