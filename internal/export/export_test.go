package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AngelCh415/campaign-analytics/internal/models"
)

func rows() []models.Record {
	return []models.Record{
		{
			Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Campaign: "Promoção A", Channel: "TV",
			Budget: 1000, Visits: 500, Clicks: 100, Applications: 50, CreditApprovals: 20, CardApprovals: 10, Churn: 5,
			ClickRate: models.Div(100, 500), CostPerApproval: models.Div(1000, 20),
		},
		{
			Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Campaign: "Promoção B", Channel: "Email",
			Budget: 2000,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, rows()))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, "2024-01-02", records[1][0])
	assert.Equal(t, "Promoção A", records[1][1])
	assert.Equal(t, "0.2000", records[1][10])
	assert.Equal(t, "50.00", records[1][14])
	assert.Equal(t, models.NotAvailable, records[2][14])
}

func TestWriteXLSX(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteXLSX(buf, rows()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "date", got[0][0])
	assert.Equal(t, "cost_per_approval", got[0][14])
	assert.Equal(t, "Promoção B", got[2][1])
	assert.Equal(t, models.NotAvailable, got[2][14])
}
