package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/AngelCh415/campaign-analytics/internal/models"
)

const sheetName = "Campaigns"

// WriteXLSX writes rows as a single-sheet workbook. Counters and defined ratios are
// stored as numbers; undefined ratios as the text "N/A".
func WriteXLSX(w io.Writer, rows []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.Date.Format("2006-01-02"), r.Campaign, r.Channel,
			r.Budget, r.Visits, r.Clicks, r.Applications,
			r.CreditApprovals, r.CardApprovals, r.Churn,
			cellRatio(r.ClickRate), cellRatio(r.ApplicationRate), cellRatio(r.CreditApprovalRate),
			cellRatio(r.CardApprovalRate), cellRatio(r.CostPerApproval),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("export: row %d: %w", i, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("export: freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func cellRatio(r models.Ratio) interface{} {
	if !r.Valid {
		return models.NotAvailable
	}
	return r.Value
}
