package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDistrict(t *testing.T) {
	now := time.Date(2025, time.June, 1, 6, 0, 0, 0, time.UTC)
	rec := APIRecord{
		DistrictName:     "Varanasi",
		StateName:        "Uttar Pradesh",
		DistrictCode:     "UP67",
		TotalWorkers:     "145000",
		Wages:            "230000000.5",
		TotalHouseholds:  "98000",
		AvgDaysPerFamily: "42.7",
		CompletedWorks:   "1200",
		BudgetUtilized:   "81.3",
	}

	d := ToDistrict(rec, now)

	assert.Equal(t, "Varanasi", d.Name)
	assert.Equal(t, "Uttar Pradesh", d.State)
	assert.Equal(t, "UP67", d.Code)
	assert.Equal(t, int64(145000), d.TotalWorkers)
	assert.Equal(t, 230000000.5, d.TotalWages)
	assert.Equal(t, int64(98000), d.Households)
	assert.Equal(t, 42, d.EmploymentDays)
	assert.Equal(t, int64(1200), d.WorkCompleted)
	assert.Equal(t, 81.3, d.BudgetUtilization)
	assert.Equal(t, now, d.LastUpdated)
	require.Len(t, d.MonthlyData, 12)
	assert.Equal(t, "Jan", d.MonthlyData[0].Month)
	assert.Equal(t, 2025, d.MonthlyData[0].Year)
}

func TestToDistrict_UnparseableNumbersBecomeZero(t *testing.T) {
	rec := APIRecord{
		DistrictName: "Bastar",
		StateName:    "Chhattisgarh",
		DistrictCode: "CG01",
		TotalWorkers: "NA",
		Wages:        "",
	}

	d := ToDistrict(rec, time.Now())

	assert.Equal(t, int64(0), d.TotalWorkers)
	assert.Equal(t, 0.0, d.TotalWages)
}

func TestToDistrict_SyntheticCode(t *testing.T) {
	rec := APIRecord{
		DistrictName: "North 24 Parganas",
		StateName:    "West Bengal",
	}

	d := ToDistrict(rec, time.Now())

	assert.Equal(t, "West_Bengal_North_24_Parganas", d.Code)
}

func TestToDistrict_DerivedFieldsAreDeterministic(t *testing.T) {
	rec := APIRecord{
		DistrictName: "Kollam",
		StateName:    "Kerala",
		DistrictCode: "KL02",
		TotalWorkers: "50000",
		Wages:        "12000000",
	}
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	first := ToDistrict(rec, now)
	second := ToDistrict(rec, now)

	assert.Equal(t, first.BudgetUtilization, second.BudgetUtilization)
	assert.Equal(t, first.MonthlyData, second.MonthlyData)
	assert.GreaterOrEqual(t, first.BudgetUtilization, 60.0)
	assert.LessOrEqual(t, first.BudgetUtilization, 100.0)
}

func TestToDistrict_MonthlySpreadStaysNearAverage(t *testing.T) {
	rec := APIRecord{
		DistrictName: "Nagpur",
		StateName:    "Maharashtra",
		DistrictCode: "MH09",
		TotalWorkers: "120000",
		Wages:        "240000000",
	}

	d := ToDistrict(rec, time.Now())

	monthlyAvg := float64(120000) / 12
	for _, m := range d.MonthlyData {
		assert.GreaterOrEqual(t, float64(m.Workers), monthlyAvg*0.7-1)
		assert.LessOrEqual(t, float64(m.Workers), monthlyAvg*1.3+1)
	}
}

func TestToDistricts_SkipsNamelessRows(t *testing.T) {
	recs := []APIRecord{
		{DistrictName: "Pune", StateName: "Maharashtra", DistrictCode: "MH13"},
		{DistrictName: "  ", StateName: "Maharashtra"},
	}

	districts := ToDistricts(recs, time.Now())

	require.Len(t, districts, 1)
	assert.Equal(t, "Pune", districts[0].Name)
}
