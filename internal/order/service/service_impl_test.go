package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/signdesk/signdesk/internal/authctx"
	ccemaildomain "github.com/signdesk/signdesk/internal/ccemail/domain"
	"github.com/signdesk/signdesk/internal/clock"
	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	officerepo "github.com/signdesk/signdesk/internal/office/repository"
	"github.com/signdesk/signdesk/internal/order/domain"
	"github.com/signdesk/signdesk/internal/order/repository"
	reorderdomain "github.com/signdesk/signdesk/internal/reorder/domain"
	reorderrepo "github.com/signdesk/signdesk/internal/reorder/repository"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	userrepo "github.com/signdesk/signdesk/internal/user/repository"
	vendordomain "github.com/signdesk/signdesk/internal/vendors/domain"
	vendorrepo "github.com/signdesk/signdesk/internal/vendors/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type notifyStub struct {
	mu       sync.Mutex
	created  int
	updated  int
	reorders int
}

func (n *notifyStub) OrderCreated(order domain.Order) {
	n.mu.Lock()
	n.created++
	n.mu.Unlock()
}

func (n *notifyStub) OrderUpdated(order domain.Order) {
	n.mu.Lock()
	n.updated++
	n.mu.Unlock()
}

func (n *notifyStub) ReorderCreated(reorder reorderdomain.Reorder, original domain.Order) {
	n.mu.Lock()
	n.reorders++
	n.mu.Unlock()
}

func (n *notifyStub) Wait() {}

func (n *notifyStub) CreatedCalls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.created
}

var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func setupOrderService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node, *notifyStub) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(
		&officedomain.Office{},
		&userdomain.User{},
		&vendordomain.Vendor{},
		&domain.Order{},
		&reorderdomain.Reorder{},
		&ccemaildomain.CCEmail{},
	); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	notifier := &notifyStub{}
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.NewFakeClock(testNow),
		Repo:     repository.Provide(),
		Offices:  officerepo.Provide(),
		Users:    userrepo.Provide(),
		Vendors:  vendorrepo.Provide(),
		Reorders: reorderrepo.Provide(),
		Notify:   notifier,
	})
	return svc, db, node, notifier
}

func adminCtx(node *snowflake.Node) context.Context {
	return authctx.WithIdentity(context.Background(), authctx.Identity{
		UserID: node.Generate(),
		Email:  "admin@example.com",
		Role:   userdomain.RoleITAdmin,
	})
}

func agentCtx(agentID snowflake.ID) context.Context {
	return authctx.WithIdentity(context.Background(), authctx.Identity{
		UserID: agentID,
		Email:  "agent@example.com",
		Role:   userdomain.RoleAgent,
	})
}

func insertOrder(t *testing.T, db *gorm.DB, order domain.Order) domain.Order {
	t.Helper()
	if order.Status == "" {
		order.Status = domain.StatusPending
	}
	if order.InstallationType == "" {
		order.InstallationType = domain.TypeInstallation
	}
	if order.PropertyType == "" {
		order.PropertyType = "Residential"
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}
	return order
}

func TestListHidesOrdersInstalledOverTwoYearsAgo(t *testing.T) {
	svc, db, node, _ := setupOrderService(t)
	officeID := node.Generate()
	agentID := node.Generate()

	recent := testNow.AddDate(-1, 0, 0)
	boundary := testNow.AddDate(-2, 0, 0)
	old := testNow.AddDate(-3, 0, 0)

	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-1", OfficeID: officeID, AgentID: agentID})
	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-2", OfficeID: officeID, AgentID: agentID, InstallationDate: &recent})
	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-3", OfficeID: officeID, AgentID: agentID, InstallationDate: &boundary})
	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-4", OfficeID: officeID, AgentID: agentID, InstallationDate: &old})

	resp, err := svc.List(adminCtx(node), domain.ListOrdersRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	// Orders with no installation date, a recent one or one exactly on
	// the boundary stay visible; only the three-year-old order drops.
	if resp.Pagination.Total != 3 {
		t.Fatalf("expected 3 visible orders, got %d", resp.Pagination.Total)
	}
	for _, view := range resp.Orders {
		if view.OrderID == "SO-4" {
			t.Fatal("order installed three years ago should not be visible")
		}
	}
}

func TestListScopesAgentToOwnOrders(t *testing.T) {
	svc, db, node, _ := setupOrderService(t)
	officeID := node.Generate()
	agentID := node.Generate()
	otherAgentID := node.Generate()

	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-own", OfficeID: officeID, AgentID: agentID})
	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-other", OfficeID: officeID, AgentID: otherAgentID})

	// The agent asks for the other agent's orders; the requested filter
	// is silently replaced, not rejected.
	resp, err := svc.List(agentCtx(agentID), domain.ListOrdersRequest{AgentID: otherAgentID.String()})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if resp.Pagination.Total != 1 {
		t.Fatalf("expected 1 order, got %d", resp.Pagination.Total)
	}
	if resp.Orders[0].OrderID != "SO-own" {
		t.Fatalf("expected own order, got %s", resp.Orders[0].OrderID)
	}
}

func TestListScopesAdminAgentToOffice(t *testing.T) {
	svc, db, node, _ := setupOrderService(t)
	officeID := node.Generate()
	otherOfficeID := node.Generate()
	adminAgentID := node.Generate()

	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-office", OfficeID: officeID, AgentID: node.Generate()})
	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-elsewhere", OfficeID: otherOfficeID, AgentID: node.Generate()})

	ctx := authctx.WithIdentity(context.Background(), authctx.Identity{
		UserID:   adminAgentID,
		Role:     userdomain.RoleAdminAgent,
		OfficeID: &officeID,
	})

	resp, err := svc.List(ctx, domain.ListOrdersRequest{OfficeID: otherOfficeID.String()})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if resp.Pagination.Total != 1 {
		t.Fatalf("expected 1 order, got %d", resp.Pagination.Total)
	}
	if resp.Orders[0].OrderID != "SO-office" {
		t.Fatalf("expected the office's order, got %s", resp.Orders[0].OrderID)
	}
}

func TestListPaginatesNewestFirst(t *testing.T) {
	svc, db, node, _ := setupOrderService(t)
	officeID := node.Generate()
	agentID := node.Generate()

	for i := 0; i < 7; i++ {
		insertOrder(t, db, domain.Order{
			ID:        node.Generate(),
			OrderID:   domain.NewOrderID(testNow.Add(time.Duration(i) * time.Second)),
			OfficeID:  officeID,
			AgentID:   agentID,
			CreatedAt: testNow.Add(time.Duration(i) * time.Second),
		})
	}

	first, err := svc.List(adminCtx(node), domain.ListOrdersRequest{Page: 1})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if first.Pagination.Total != 7 || first.Pagination.Pages != 2 {
		t.Fatalf("expected total 7 over 2 pages, got %d over %d", first.Pagination.Total, first.Pagination.Pages)
	}
	if len(first.Orders) != 5 {
		t.Fatalf("expected default limit of 5, got %d", len(first.Orders))
	}

	second, err := svc.List(adminCtx(node), domain.ListOrdersRequest{Page: 2})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(second.Orders) != 2 {
		t.Fatalf("expected 2 orders on page 2, got %d", len(second.Orders))
	}

	past, err := svc.List(adminCtx(node), domain.ListOrdersRequest{Page: 5})
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if len(past.Orders) != 0 || past.Pagination.Total != 7 {
		t.Fatalf("expected empty page with intact total, got %d orders, total %d", len(past.Orders), past.Pagination.Total)
	}
}

func TestListSearchMatchesAddressColumns(t *testing.T) {
	svc, db, node, _ := setupOrderService(t)
	officeID := node.Generate()
	agentID := node.Generate()

	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-elm", OfficeID: officeID, AgentID: agentID, StreetAddress: "123 Elm St", City: "Springfield"})
	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-oak", OfficeID: officeID, AgentID: agentID, StreetAddress: "456 Oak Ave", City: "Shelbyville"})

	resp, err := svc.List(adminCtx(node), domain.ListOrdersRequest{Search: "ELM"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if resp.Pagination.Total != 1 {
		t.Fatalf("expected 1 match, got %d", resp.Pagination.Total)
	}
	if resp.Orders[0].OrderID != "SO-elm" {
		t.Fatalf("expected SO-elm, got %s", resp.Orders[0].OrderID)
	}
}

func TestListRejectsZeroIDFilter(t *testing.T) {
	svc, _, node, _ := setupOrderService(t)

	if _, err := svc.List(adminCtx(node), domain.ListOrdersRequest{OfficeID: "0"}); err != domain.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID for office filter 0, got %v", err)
	}
	if _, err := svc.List(adminCtx(node), domain.ListOrdersRequest{AgentID: "0"}); err != domain.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID for agent filter 0, got %v", err)
	}
}

func TestListSignRequestsRequiresOffice(t *testing.T) {
	svc, _, node, _ := setupOrderService(t)

	_, err := svc.ListSignRequests(adminCtx(node), domain.ListSignRequestsRequest{})
	if err != domain.ErrOfficeRequired {
		t.Fatalf("expected ErrOfficeRequired, got %v", err)
	}
}

func TestStatsRequiresOffice(t *testing.T) {
	svc, _, node, _ := setupOrderService(t)

	_, err := svc.Stats(adminCtx(node), domain.StatsRequest{})
	if err != domain.ErrOfficeRequired {
		t.Fatalf("expected ErrOfficeRequired, got %v", err)
	}
}

func TestStatsEligibleCountKeepsTwoYearWindow(t *testing.T) {
	svc, db, node, _ := setupOrderService(t)
	officeID := node.Generate()
	agentID := node.Generate()

	completed := testNow.AddDate(0, -1, 0)
	old := testNow.AddDate(-3, 0, 0)

	// Visible and eligible: completed with a completion date.
	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-done", OfficeID: officeID, AgentID: agentID, Status: domain.StatusCompleted, CompletionDate: &completed})
	// Visible but not eligible: still pending, no completion date.
	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-pending", OfficeID: officeID, AgentID: agentID})
	// A removal would be eligible, but it fell out of the two-year
	// window, so it is excluded from both counts.
	insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-removal", OfficeID: officeID, AgentID: agentID, InstallationType: domain.TypeRemoval, InstallationDate: &old})

	stats, err := svc.Stats(adminCtx(node), domain.StatsRequest{OfficeID: officeID.String()})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalOrders != 2 {
		t.Fatalf("expected 2 total orders, got %d", stats.TotalOrders)
	}
	if stats.EligibleForOrdering != 1 {
		t.Fatalf("expected 1 eligible order, got %d", stats.EligibleForOrdering)
	}
}

func TestCreateAssignsVendorByZip(t *testing.T) {
	svc, db, node, notifier := setupOrderService(t)
	officeID := node.Generate()
	agentID := node.Generate()

	vendor := vendordomain.Vendor{
		ID:           node.Generate(),
		Name:         "Acme Signs",
		IsActive:     true,
		ServiceAreas: datatypes.NewJSONSlice([]string{"12345", "12346"}),
	}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatal(err)
	}

	created, err := svc.Create(adminCtx(node), domain.CreateOrderRequest{
		OfficeID:         officeID.String(),
		AgentID:          agentID.String(),
		InstallationType: domain.TypeInstallation,
		PropertyType:     "Residential",
		StreetAddress:    "123 Elm St",
		City:             "Springfield",
		State:            "IL",
		ZipCode:          "12345",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Order.VendorID == nil || *created.Order.VendorID != vendor.ID {
		t.Fatal("expected the vendor covering the zip code to be assigned")
	}
	if created.Order.Status != domain.StatusPending {
		t.Fatalf("expected PENDING status, got %s", created.Order.Status)
	}
	if notifier.CreatedCalls() != 1 {
		t.Fatalf("expected 1 creation notification, got %d", notifier.CreatedCalls())
	}
}

func TestGetByIDDeniesOtherAgentsOrder(t *testing.T) {
	svc, db, node, _ := setupOrderService(t)
	agentID := node.Generate()
	order := insertOrder(t, db, domain.Order{ID: node.Generate(), OrderID: "SO-x", OfficeID: node.Generate(), AgentID: node.Generate()})

	_, err := svc.GetByID(agentCtx(agentID), order.ID.String())
	if err != domain.ErrAccessDenied {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}
