package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/signdesk/signdesk/internal/authctx"
	"github.com/signdesk/signdesk/internal/ccemail/domain"
	"github.com/signdesk/signdesk/internal/ccemail/repository"
	"github.com/signdesk/signdesk/internal/clock"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func setupCCEmailService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.CCEmail{}); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(testNow),
		Repo:  repository.Provide(),
	})
	return svc, db, node
}

func adminIdentity(node *snowflake.Node) context.Context {
	return authctx.WithIdentity(context.Background(), authctx.Identity{
		UserID: node.Generate(),
		Role:   userdomain.RoleITAdmin,
	})
}

func TestCreateRejectsActiveDuplicate(t *testing.T) {
	svc, _, node := setupCCEmailService(t)
	ctx := adminIdentity(node)
	officeID := node.Generate()

	req := domain.CreateCCEmailRequest{Email: "Billing@Example.com", OfficeID: officeID.String()}
	created, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "billing@example.com" {
		t.Fatalf("expected lowercased email, got %s", created.Email)
	}

	// Same email, office and (absent) agent is an active duplicate.
	if _, err := svc.Create(ctx, req); err != domain.ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// A different agent scope is a distinct recipient.
	agentID := node.Generate()
	if _, err := svc.Create(ctx, domain.CreateCCEmailRequest{
		Email:    "billing@example.com",
		OfficeID: officeID.String(),
		AgentID:  agentID.String(),
	}); err != nil {
		t.Fatalf("create with agent scope: %v", err)
	}
}

func TestDeleteDeactivatesAndAllowsRecreate(t *testing.T) {
	svc, db, node := setupCCEmailService(t)
	callerID := node.Generate()
	ctx := authctx.WithIdentity(context.Background(), authctx.Identity{UserID: callerID, Role: userdomain.RoleSignAdmin})
	officeID := node.Generate()

	created, err := svc.Create(ctx, domain.CreateCCEmailRequest{Email: "cc@example.com", OfficeID: officeID.String()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var stored domain.CCEmail
	if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("row should survive the delete: %v", err)
	}
	if stored.IsActive {
		t.Fatal("expected the record to be deactivated, not removed")
	}
	if stored.ModifiedBy == nil || *stored.ModifiedBy != callerID {
		t.Fatal("expected the deleting caller to be recorded")
	}

	// The slot is free again once the old record is inactive.
	if _, err := svc.Create(ctx, domain.CreateCCEmailRequest{Email: "cc@example.com", OfficeID: officeID.String()}); err != nil {
		t.Fatalf("recreate after delete: %v", err)
	}
}

func TestCreateRejectsMalformedEmail(t *testing.T) {
	svc, _, node := setupCCEmailService(t)
	ctx := adminIdentity(node)

	_, err := svc.Create(ctx, domain.CreateCCEmailRequest{Email: "not-an-email", OfficeID: node.Generate().String()})
	if err != domain.ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestAgentCannotCreateForAnotherAgent(t *testing.T) {
	svc, _, node := setupCCEmailService(t)
	agentID := node.Generate()
	officeID := node.Generate()
	ctx := authctx.WithIdentity(context.Background(), authctx.Identity{
		UserID:   agentID,
		Role:     userdomain.RoleAgent,
		OfficeID: &officeID,
	})

	_, err := svc.Create(ctx, domain.CreateCCEmailRequest{
		Email:    "cc@example.com",
		OfficeID: officeID.String(),
		AgentID:  node.Generate().String(),
	})
	if err != domain.ErrAccessDenied {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestListScopesAdminAgentToOffice(t *testing.T) {
	svc, _, node := setupCCEmailService(t)
	officeID := node.Generate()
	otherOfficeID := node.Generate()

	admin := adminIdentity(node)
	if _, err := svc.Create(admin, domain.CreateCCEmailRequest{Email: "a@example.com", OfficeID: officeID.String()}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(admin, domain.CreateCCEmailRequest{Email: "b@example.com", OfficeID: otherOfficeID.String()}); err != nil {
		t.Fatal(err)
	}

	ctx := authctx.WithIdentity(context.Background(), authctx.Identity{
		UserID:   node.Generate(),
		Role:     userdomain.RoleAdminAgent,
		OfficeID: &officeID,
	})
	resp, err := svc.List(ctx, domain.ListCCEmailsRequest{OfficeID: otherOfficeID.String()})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 record, got %d", resp.Total)
	}
	if resp.CCEmails[0].Email != "a@example.com" {
		t.Fatalf("expected the caller's office record, got %s", resp.CCEmails[0].Email)
	}
}
