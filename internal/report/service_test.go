package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/signdesk/signdesk/internal/clock"
	"github.com/signdesk/signdesk/internal/config"
	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	officerepo "github.com/signdesk/signdesk/internal/office/repository"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
	orderrepo "github.com/signdesk/signdesk/internal/order/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func setupReportService(t *testing.T) (Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&officedomain.Office{}, &orderdomain.Order{}); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	svc := New(Params{
		Config:  config.Config{ReportStoragePath: filepath.Join(t.TempDir(), "reports")},
		DB:      db,
		Log:     zap.NewNop(),
		Clock:   clock.NewFakeClock(testNow),
		Orders:  orderrepo.Provide(),
		Offices: officerepo.Provide(),
	})
	return svc, db, node
}

func insertReportOrder(t *testing.T, db *gorm.DB, node *snowflake.Node, officeID snowflake.ID, installationType string) {
	t.Helper()
	order := orderdomain.Order{
		ID:               node.Generate(),
		OrderID:          orderdomain.NewOrderID(testNow) + "-" + node.Generate().String(),
		OfficeID:         officeID,
		AgentID:          node.Generate(),
		InstallationType: installationType,
		PropertyType:     "Residential",
		StreetAddress:    "123 Elm St",
		City:             "Springfield",
		State:            "IL",
		ZipCode:          "62704",
		Status:           orderdomain.StatusPending,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}
}

func TestValidFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"report_1700000000000.pdf", true},
		{"report_1.pdf", true},
		{"report_.pdf", false},
		{"report_abc.pdf", false},
		{"../report_1.pdf", false},
		{"report_1.pdf.exe", false},
		{"other_1.pdf", false},
	}

	for _, tt := range tests {
		if got := ValidFilename(tt.name); got != tt.want {
			t.Fatalf("ValidFilename(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPreviewGroupsByOfficeAndType(t *testing.T) {
	svc, db, node := setupReportService(t)

	officeA := officedomain.Office{ID: node.Generate(), Name: "Downtown", IsActive: true}
	officeB := officedomain.Office{ID: node.Generate(), Name: "Uptown", IsActive: true}
	if err := db.Create(&officeA).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&officeB).Error; err != nil {
		t.Fatal(err)
	}

	insertReportOrder(t, db, node, officeA.ID, orderdomain.TypeInstallation)
	insertReportOrder(t, db, node, officeA.ID, orderdomain.TypeInstallation)
	insertReportOrder(t, db, node, officeA.ID, orderdomain.TypeRemoval)
	insertReportOrder(t, db, node, officeB.ID, orderdomain.TypeRepair)

	summary, err := svc.Preview(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}

	if summary.TotalOrders != 4 {
		t.Fatalf("expected 4 orders, got %d", summary.TotalOrders)
	}
	if summary.TotalOffices != 2 {
		t.Fatalf("expected 2 offices, got %d", summary.TotalOffices)
	}
	if summary.Data["Downtown"][orderdomain.TypeInstallation] != 2 {
		t.Fatalf("expected 2 installations for Downtown, got %d", summary.Data["Downtown"][orderdomain.TypeInstallation])
	}
	if summary.Data["Uptown"][orderdomain.TypeRepair] != 1 {
		t.Fatalf("expected 1 repair for Uptown, got %d", summary.Data["Uptown"][orderdomain.TypeRepair])
	}
}

func TestPreviewNoData(t *testing.T) {
	svc, _, _ := setupReportService(t)

	_, err := svc.Preview(context.Background(), Filter{})
	if err != ErrNoData {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestGenerateWritesDownloadableFile(t *testing.T) {
	svc, db, node := setupReportService(t)

	office := officedomain.Office{ID: node.Generate(), Name: "Downtown", IsActive: true}
	if err := db.Create(&office).Error; err != nil {
		t.Fatal(err)
	}
	insertReportOrder(t, db, node, office.ID, orderdomain.TypeInstallation)

	result, err := svc.Generate(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !ValidFilename(result.Filename) {
		t.Fatalf("generated filename %q does not match the download pattern", result.Filename)
	}
	if result.DownloadURL != "/api/reports/download/"+result.Filename {
		t.Fatalf("unexpected download url %q", result.DownloadURL)
	}

	if _, err := svc.Resolve(result.Filename); err != nil {
		t.Fatalf("resolve: %v", err)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	svc, _, _ := setupReportService(t)

	if _, err := svc.Resolve("../../etc/passwd"); err != ErrInvalidFilename {
		t.Fatalf("expected ErrInvalidFilename, got %v", err)
	}
	if _, err := svc.Resolve("report_999999.pdf"); err != ErrFileNotFound {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}
