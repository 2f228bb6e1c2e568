package logsheet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/logsheet"
)

func meta() logsheet.Meta {
	return logsheet.Meta{
		Trip: domain.Trip{
			CurrentLocation: "Reno, NV",
			DropoffLocation: "San Francisco, CA",
			CreatedAt:       time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC),
		},
		Driver: domain.Driver{
			Carrier:             "National Freight Services Inc.",
			MainOfficeAddress:   "1 Main St",
			HomeTerminalAddress: "2 Depot Rd",
			LicenseNumber:       "ABC-1234",
			TrailerNumber:       "TRL-5678",
		},
		Route: domain.Route{
			ToPickup:  domain.RouteLeg{DistanceMeters: 100000},
			ToDropoff: domain.RouteLeg{DistanceMeters: 60934},
		},
	}
}

func TestRender_DrivingRow(t *testing.T) {
	sheet := logsheet.Render(domain.DutyStatusLog{Driving: []int{6, 7, 8}}, meta())

	require.Len(t, sheet.Rows, 4)
	driving := sheet.Rows[2]
	assert.Equal(t, domain.StatusDriving, driving.Status)
	assert.Equal(t, 3, driving.Number)
	assert.Equal(t, 3, driving.Total)

	marked := 0
	for _, on := range driving.Cells {
		if on {
			marked++
		}
	}
	assert.Equal(t, 3, marked, "exactly three driving cells are marked")
	assert.True(t, driving.Cells[6] && driving.Cells[7] && driving.Cells[8])
}

func TestRender_RowOrderAndLabels(t *testing.T) {
	sheet := logsheet.Render(domain.DutyStatusLog{}, meta())

	var labels []string
	for _, r := range sheet.Rows {
		labels = append(labels, r.Label)
		assert.Zero(t, r.Total)
	}
	assert.Equal(t, []string{"Off Duty", "Sleeper Berth", "Driving", "On Duty (Not Driving)"}, labels)
}

func TestRender_IgnoresOutOfRangeAndDuplicates(t *testing.T) {
	sheet := logsheet.Render(domain.DutyStatusLog{
		OffDuty: []int{-1, 0, 0, 23, 24, 99},
	}, meta())

	assert.Equal(t, 2, sheet.Rows[0].Total)
	assert.True(t, sheet.Rows[0].Cells[0])
	assert.True(t, sheet.Rows[0].Cells[23])
}

func TestRender_HeaderLabels(t *testing.T) {
	sheet := logsheet.Render(domain.DutyStatusLog{}, meta())

	assert.Equal(t, "Midnight", sheet.HourLabels[0])
	assert.Equal(t, "1", sheet.HourLabels[1])
	assert.Equal(t, "11", sheet.HourLabels[11])
	assert.Equal(t, "Noon", sheet.HourLabels[12])
	assert.Equal(t, "1", sheet.HourLabels[13])
	assert.Equal(t, "11", sheet.HourLabels[23])
}

func TestRender_SummaryFields(t *testing.T) {
	log := domain.DutyStatusLog{
		Driving: []int{6, 7, 9},
		OnDuty:  []int{8, 10},
		Remarks: []domain.Remark{{Label: "Loading", Location: "Sacramento, CA", FromHour: 8, ToHour: 9}},
	}

	sheet := logsheet.Render(log, meta())

	assert.Equal(t, "9", sheet.Day)
	assert.Equal(t, "3", sheet.Month)
	assert.Equal(t, "2026", sheet.Year)
	assert.Equal(t, "Reno, NV", sheet.From)
	assert.Equal(t, "San Francisco, CA", sheet.To)
	assert.Equal(t, "100", sheet.TotalMilesDrivingToday)
	assert.Equal(t, "100", sheet.TotalMileageToday)
	assert.Equal(t, "ABC-1234 / TRL-5678", sheet.TruckNumbers)
	assert.Equal(t, "National Freight Services Inc.", sheet.Carrier)
	assert.Equal(t, 5, sheet.OnDutyHoursToday)
	assert.Equal(t, []string{"Loading, at Sacramento, CA, (From 8AM to 9AM)"}, sheet.Remarks)
}

func TestFormatRemark_Clock(t *testing.T) {
	assert.Equal(t, "Unloading, at Oakland, (From 11AM to 12PM)",
		logsheet.FormatRemark(domain.Remark{Label: "Unloading", Location: "Oakland", FromHour: 11, ToHour: 12}))
	assert.Equal(t, "Unloading, (From 11PM to 12AM)",
		logsheet.FormatRemark(domain.Remark{Label: "Unloading", FromHour: 23, ToHour: 24}))
}
