package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
)

// render lays the aggregated counts out as a one-page table, one row
// per office with a grand total at the bottom.
func render(data Data, filter Filter, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Sign Order Report", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Generated: "+generatedAt.Format("January 2, 2006 15:04 MST"), props.Text{
			Size:  9,
			Align: align.Left,
		}),
	)

	for _, line := range filterLines(filter) {
		m.AddRow(6,
			text.NewCol(12, line, props.Text{Size: 9, Align: align.Left}),
		)
	}

	m.AddRow(10,
		headerCell(4, "Office"),
		headerCell(2, "Installations"),
		headerCell(2, "Removals"),
		headerCell(2, "Repairs"),
		headerCell(2, "Total"),
	)

	officeNames := make([]string, 0, len(data))
	for name := range data {
		officeNames = append(officeNames, name)
	}
	sort.Strings(officeNames)

	var grandTotal int64
	for _, name := range officeNames {
		byType := data[name]
		installations := byType[orderdomain.TypeInstallation]
		removals := byType[orderdomain.TypeRemoval]
		repairs := byType[orderdomain.TypeRepair]
		total := installations + removals + repairs
		grandTotal += total

		m.AddRow(8,
			bodyCell(4, name, align.Left),
			bodyCell(2, fmt.Sprintf("%d", installations), align.Center),
			bodyCell(2, fmt.Sprintf("%d", removals), align.Center),
			bodyCell(2, fmt.Sprintf("%d", repairs), align.Center),
			bodyCell(2, fmt.Sprintf("%d", total), align.Center),
		)
	}

	m.AddRows(row.New(10).Add(
		text.NewCol(10, "Grand Total", props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
		text.NewCol(2, fmt.Sprintf("%d", grandTotal), props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func filterLines(filter Filter) []string {
	var lines []string
	if filter.StartDate != nil && filter.EndDate != nil {
		lines = append(lines, fmt.Sprintf("Date Range: %s - %s",
			filter.StartDate.Format("01/02/2006"),
			filter.EndDate.Format("01/02/2006"),
		))
	}
	if filter.OfficeID != "" {
		lines = append(lines, "Office: "+filter.OfficeID)
	}
	if filter.VendorID != "" {
		lines = append(lines, "Vendor: "+filter.VendorID)
	}
	if filter.InstallationType != "" {
		lines = append(lines, "Installation Type: "+filter.InstallationType)
	}
	return lines
}

func headerCell(size int, label string) core.Col {
	return text.NewCol(size, label, props.Text{
		Size:  10,
		Style: fontstyle.Bold,
		Align: align.Center,
	})
}

func bodyCell(size int, value string, a align.Type) core.Col {
	return text.NewCol(size, value, props.Text{
		Size:  9,
		Align: a,
	})
}
