// Package report aggregates orders by office and installation type and
// renders the result as a downloadable PDF.
package report

import (
	"context"
	"errors"
	"regexp"
	"time"
)

// Filenames are restricted to the exact shape we generate; anything
// else is rejected before touching the filesystem.
var filenamePattern = regexp.MustCompile(`^report_\d+\.pdf$`)

func ValidFilename(name string) bool {
	return filenamePattern.MatchString(name)
}

type Filter struct {
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	OfficeID         string     `json:"officeId"`
	VendorID         string     `json:"vendorId"`
	InstallationType string     `json:"installationType"`
}

// Data maps office name to installation type to order count.
type Data map[string]map[string]int64

type Summary struct {
	TotalOrders  int64  `json:"totalOrders"`
	TotalOffices int    `json:"totalOffices"`
	Data         Data   `json:"data"`
	Filters      Filter `json:"filters"`
}

type GenerateResult struct {
	Message     string `json:"message"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"downloadUrl"`
	Data        Data   `json:"data"`
}

type Service interface {
	// Preview returns the aggregation without producing a file.
	Preview(ctx context.Context, filter Filter) (Summary, error)
	// Generate renders the aggregation to a PDF on disk and returns
	// its filename.
	Generate(ctx context.Context, filter Filter) (GenerateResult, error)
	// Resolve validates a download filename and returns the absolute
	// path of the stored file.
	Resolve(filename string) (string, error)
}

var (
	ErrNoData          = errors.New("no_report_data")
	ErrInvalidFilename = errors.New("invalid_filename")
	ErrFileNotFound    = errors.New("file_not_found")
	ErrInvalidID       = errors.New("invalid_id")
)
