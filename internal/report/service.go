package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/clock"
	"github.com/signdesk/signdesk/internal/config"
	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config  config.Config
	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Orders  orderdomain.Repository
	Offices officedomain.Repository
}

type service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	orders     orderdomain.Repository
	offices    officedomain.Repository
	storageDir string
}

func New(p Params) Service {
	return &service{
		db:         p.DB,
		log:        p.Log.Named("report.service"),
		clock:      p.Clock,
		orders:     p.Orders,
		offices:    p.Offices,
		storageDir: p.Config.ReportStoragePath,
	}
}

func (s *service) Preview(ctx context.Context, filter Filter) (Summary, error) {
	data, total, err := s.aggregate(ctx, filter)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		TotalOrders:  total,
		TotalOffices: len(data),
		Data:         data,
		Filters:      filter,
	}, nil
}

func (s *service) Generate(ctx context.Context, filter Filter) (GenerateResult, error) {
	data, _, err := s.aggregate(ctx, filter)
	if err != nil {
		return GenerateResult{}, err
	}

	pdf, err := render(data, filter, s.clock.Now())
	if err != nil {
		return GenerateResult{}, err
	}

	if err := os.MkdirAll(s.storageDir, 0o755); err != nil {
		return GenerateResult{}, err
	}

	filename := fmt.Sprintf("report_%d.pdf", s.clock.Now().UnixMilli())
	if err := os.WriteFile(filepath.Join(s.storageDir, filename), pdf, 0o644); err != nil {
		return GenerateResult{}, err
	}

	s.log.Info("report generated",
		zap.String("filename", filename),
		zap.Int("offices", len(data)),
	)

	return GenerateResult{
		Message:     "Report generated successfully",
		Filename:    filename,
		DownloadURL: "/api/reports/download/" + filename,
		Data:        data,
	}, nil
}

func (s *service) Resolve(filename string) (string, error) {
	if !ValidFilename(filename) {
		return "", ErrInvalidFilename
	}

	path := filepath.Join(s.storageDir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", ErrFileNotFound
	}
	return path, nil
}

// aggregate groups the matching orders by office name and installation
// type. ErrNoData is returned when nothing matches.
func (s *service) aggregate(ctx context.Context, filter Filter) (Data, int64, error) {
	compiled := orderdomain.Filter{
		CreatedFrom:      filter.StartDate,
		CreatedTo:        filter.EndDate,
		InstallationType: strings.TrimSpace(filter.InstallationType),
	}
	if raw := strings.TrimSpace(filter.OfficeID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, 0, ErrInvalidID
		}
		compiled.OfficeID = &parsed
	}
	if raw := strings.TrimSpace(filter.VendorID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, 0, ErrInvalidID
		}
		compiled.VendorID = &parsed
	}

	counts, err := s.orders.CountByOfficeAndType(ctx, s.db, compiled)
	if err != nil {
		return nil, 0, err
	}
	if len(counts) == 0 {
		return nil, 0, ErrNoData
	}

	officeIDs := make([]snowflake.ID, 0, len(counts))
	seen := map[snowflake.ID]bool{}
	for _, row := range counts {
		if !seen[row.OfficeID] {
			seen[row.OfficeID] = true
			officeIDs = append(officeIDs, row.OfficeID)
		}
	}

	offices, err := s.offices.FindByIDs(ctx, s.db, officeIDs)
	if err != nil {
		return nil, 0, err
	}
	names := make(map[snowflake.ID]string, len(offices))
	for _, office := range offices {
		names[office.ID] = office.Name
	}

	data := Data{}
	var total int64
	for _, row := range counts {
		name := names[row.OfficeID]
		if name == "" {
			name = row.OfficeID.String()
		}
		if data[name] == nil {
			data[name] = map[string]int64{}
		}
		data[name][row.InstallationType] += row.Count
		total += row.Count
	}

	return data, total, nil
}
