package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/signdesk/signdesk/pkg/db/pagination"
)

func TestEligibleForReorder(t *testing.T) {
	completion := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		order Order
		want  bool
	}{
		{"completed installation", Order{Status: StatusCompleted, InstallationType: TypeInstallation}, true},
		{"pending removal", Order{Status: StatusPending, InstallationType: TypeRemoval}, true},
		{"pending installation", Order{Status: StatusPending, InstallationType: TypeInstallation}, false},
		{"cancelled repair", Order{Status: StatusCancelled, InstallationType: TypeRepair}, false},
		{"completion date alone is not enough", Order{Status: StatusPending, InstallationType: TypeInstallation, CompletionDate: &completion}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.order.EligibleForReorder(); got != tt.want {
				t.Fatalf("EligibleForReorder() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The write-path rule keys off status while the display rule keys off
// the completion date. An order marked COMPLETED without a completion
// date recorded is reorderable but shows as not orderable, and the
// other way around.
func TestEligibilityRulesDiverge(t *testing.T) {
	completion := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	completedNoDate := Order{Status: StatusCompleted, InstallationType: TypeInstallation}
	if !completedNoDate.EligibleForReorder() || completedNoDate.CanOrder() {
		t.Fatal("COMPLETED without completion date: reorderable but not displayed as orderable")
	}

	datedNotCompleted := Order{Status: StatusInProgress, InstallationType: TypeInstallation, CompletionDate: &completion}
	if datedNotCompleted.EligibleForReorder() || !datedNotCompleted.CanOrder() {
		t.Fatal("completion date without COMPLETED status: displayed as orderable but not reorderable")
	}
}

func TestAddress(t *testing.T) {
	order := Order{StreetAddress: "123 Elm St", City: "Springfield", State: "IL", ZipCode: "62704"}
	if got := order.Address(); got != "123 Elm St, Springfield, IL 62704" {
		t.Fatalf("Address() = %q", got)
	}
}

// The orders listing nests its page metadata under a pagination key
// with a pages count; the sign request listing keeps the flat fields.
func TestListingResponseShapes(t *testing.T) {
	orders, err := json.Marshal(ListOrdersResponse{
		Pagination: PageMeta{Page: 1, Limit: 5, Total: 7, Pages: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	var nested struct {
		Pagination map[string]json.Number `json:"pagination"`
	}
	if err := json.Unmarshal(orders, &nested); err != nil {
		t.Fatal(err)
	}
	if nested.Pagination == nil {
		t.Fatalf("expected a nested pagination object, got %s", orders)
	}
	if nested.Pagination["pages"] != "2" || nested.Pagination["total"] != "7" {
		t.Fatalf("unexpected pagination block: %s", orders)
	}

	signRequests, err := json.Marshal(ListSignRequestsResponse{
		PageInfo: pagination.BuildPageInfo(7, pagination.Pagination{Page: 1, Limit: 5}),
	})
	if err != nil {
		t.Fatal(err)
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(signRequests, &flat); err != nil {
		t.Fatal(err)
	}
	if _, ok := flat["totalPages"]; !ok {
		t.Fatalf("expected flat totalPages field, got %s", signRequests)
	}
	if _, ok := flat["pagination"]; ok {
		t.Fatalf("sign request listing should not nest pagination: %s", signRequests)
	}
}

func TestNewOrderID(t *testing.T) {
	at := time.UnixMilli(1700000000000).UTC()
	if got := NewOrderID(at); got != "SO-1700000000000" {
		t.Fatalf("NewOrderID() = %q", got)
	}
}
