package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// twoMonthHistory builds the canonical scenario: month A (older) revenue
// 10,000 / fixed 4,000 / variable 1,000 and month B (latest) revenue
// 12,000 / fixed 4,000 / variable 1,000, amounts in cents.
func twoMonthHistory() []Tx {
	return []Tx{
		{Date: date(2026, time.June, 5), Category: "Sales", Credit: 1000000},
		{Date: date(2026, time.June, 10), Category: "Rent", Description: "office rent", Debit: 400000},
		{Date: date(2026, time.June, 15), Category: "Office Supplies", Debit: 100000},
		{Date: date(2026, time.July, 5), Category: "Sales", Credit: 1200000},
		{Date: date(2026, time.July, 10), Category: "Rent", Description: "office rent", Debit: 400000},
		{Date: date(2026, time.July, 15), Category: "Office Supplies", Debit: 100000},
	}
}

func TestProjectWeightedAverages(t *testing.T) {
	res := Project(date(2026, time.July, 31), twoMonthHistory(), 30)

	// avg_revenue = (10000*1 + 12000*3) / 4 = 11500
	if !res.AvgRevenue.Equal(decimal.NewFromInt(11500)) {
		t.Errorf("expected avg revenue 11500, got %s", res.AvgRevenue)
	}
	if !res.AvgFixed.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected avg fixed 4000, got %s", res.AvgFixed)
	}
	if !res.AvgVariable.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected avg variable 1000, got %s", res.AvgVariable)
	}

	wantRatio := decimal.NewFromInt(1000).Div(decimal.NewFromInt(11500))
	if !res.VariableRatio.Equal(wantRatio) {
		t.Errorf("expected variable ratio %s, got %s", wantRatio, res.VariableRatio)
	}

	// No prior-year data: seasonality neutral.
	if !res.Seasonality.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected neutral seasonality, got %s", res.Seasonality)
	}

	// Day-1 predicted balance = balance + (11500 - 4000 - 1000)/30.
	var bridge, day1 *Point
	for i := range res.Points {
		p := &res.Points[i]
		if p.Actual != nil && p.Predicted != nil {
			bridge = p
			if i+1 < len(res.Points) {
				day1 = &res.Points[i+1]
			}
		}
	}
	if bridge == nil || day1 == nil {
		t.Fatal("expected a bridge point followed by predicted points")
	}

	dailyNet := decimal.NewFromInt(6500).Div(decimal.NewFromInt(30))
	wantDay1 := bridge.Predicted.Add(dailyNet).Round(2)
	if !day1.Predicted.Equal(wantDay1) {
		t.Errorf("expected day-1 predicted %s, got %s", wantDay1, day1.Predicted)
	}
}

func TestProjectHorizonScalesDailyRates(t *testing.T) {
	anchor := date(2026, time.July, 31)
	short := Project(anchor, twoMonthHistory(), 30)
	long := Project(anchor, twoMonthHistory(), 60)

	gain := func(r Result) decimal.Decimal {
		last := r.Points[len(r.Points)-1]
		if last.Predicted == nil {
			t.Fatal("expected final point to be predicted")
		}
		return last.Predicted.Sub(r.Balance)
	}

	// The per-day rate is one month's net flow over 30 days regardless of
	// horizon, so 60 days accrues twice the 30-day gain.
	dailyNet := decimal.NewFromInt(6500).Div(decimal.NewFromInt(30))
	wantShort := dailyNet.Mul(decimal.NewFromInt(30)).Round(2)
	wantLong := dailyNet.Mul(decimal.NewFromInt(60)).Round(2)

	if got := gain(short); !got.Equal(wantShort) {
		t.Errorf("expected 30-day gain %s, got %s", wantShort, got)
	}
	if got := gain(long); !got.Equal(wantLong) {
		t.Errorf("expected 60-day gain %s, got %s", wantLong, got)
	}
}

func TestProjectPointShape(t *testing.T) {
	anchor := date(2026, time.July, 31)
	res := Project(anchor, twoMonthHistory(), 30)

	var bridges, predicted, actuals int
	for _, p := range res.Points {
		switch {
		case p.Actual != nil && p.Predicted != nil:
			bridges++
			if !p.Date.Equal(anchor) {
				t.Errorf("bridge point must sit on the anchor date, got %s", p.Date)
			}
		case p.Predicted != nil:
			predicted++
		case p.Actual != nil:
			actuals++
		default:
			t.Error("point with neither actual nor predicted balance")
		}
	}
	if bridges != 1 {
		t.Errorf("expected exactly one bridge point, got %d", bridges)
	}
	if predicted != 30 {
		t.Errorf("expected 30 predicted points, got %d", predicted)
	}
	if actuals != 6 {
		t.Errorf("expected 6 actual points (one per transaction date), got %d", actuals)
	}
}

func TestProjectZeroHistory(t *testing.T) {
	res := Project(date(2026, time.July, 31), nil, 30)

	if !res.VariableRatio.IsZero() {
		t.Errorf("expected zero variable ratio, got %s", res.VariableRatio)
	}
	if res.Runway != "cash-flow positive" {
		t.Errorf("expected cash-flow positive runway, got %q", res.Runway)
	}
	if len(res.Points) != 31 { // bridge + 30 predicted
		t.Fatalf("expected 31 points, got %d", len(res.Points))
	}
	for _, p := range res.Points {
		if p.Predicted != nil && !p.Predicted.IsZero() {
			t.Errorf("expected flat projection at zero, got %s on %s", p.Predicted, p.Date)
		}
	}
}

func TestAnomalyAndDepreciationExclusions(t *testing.T) {
	history := []Tx{
		{Date: date(2026, time.June, 1), Category: "Sales", Credit: 1000000},
		// One-off costs must not count toward either expense bucket.
		{Date: date(2026, time.June, 2), Category: "Renovation", Debit: 5000000},
		{Date: date(2026, time.June, 3), Description: "security deposit", Debit: 300000},
		{Date: date(2026, time.June, 4), Category: "Equipment", Debit: 800000},
		// Depreciation credits are not revenue.
		{Date: date(2026, time.June, 5), Category: "Accumulated Depreciation", Credit: 200000},
	}
	res := Project(date(2026, time.June, 30), history, 30)

	if !res.AvgRevenue.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("expected revenue 10000 excluding depreciation, got %s", res.AvgRevenue)
	}
	if !res.AvgFixed.IsZero() || !res.AvgVariable.IsZero() {
		t.Errorf("expected anomaly rows excluded from expenses, got fixed %s variable %s", res.AvgFixed, res.AvgVariable)
	}
}

func TestSeasonality(t *testing.T) {
	t.Run("prior_year_month_scales_projection", func(t *testing.T) {
		history := []Tx{
			// Prior year: August nets 20000, September nets 10000.
			{Date: date(2025, time.August, 10), Category: "Sales", Credit: 2000000},
			{Date: date(2025, time.September, 10), Category: "Sales", Credit: 1000000},
			// Current year history.
			{Date: date(2026, time.July, 10), Category: "Sales", Credit: 1500000},
		}
		res := Project(date(2026, time.July, 31), history, 30)

		// Target month is August; baseline = (20000+10000)/2 = 15000,
		// August average = 20000, multiplier = 4/3.
		want := decimal.NewFromInt(20000).Div(decimal.NewFromInt(15000))
		if !res.Seasonality.Equal(want) {
			t.Errorf("expected seasonality %s, got %s", want, res.Seasonality)
		}
	})

	t.Run("neutral_without_prior_year_data", func(t *testing.T) {
		history := []Tx{
			{Date: date(2026, time.July, 10), Category: "Sales", Credit: 1500000},
		}
		res := Project(date(2026, time.July, 31), history, 30)
		if !res.Seasonality.Equal(decimal.NewFromInt(1)) {
			t.Errorf("expected neutral seasonality, got %s", res.Seasonality)
		}
	})
}

func TestRunway(t *testing.T) {
	t.Run("burning_cash", func(t *testing.T) {
		// No revenue, fixed 3000/month, balance 6000 => 2 months.
		history := []Tx{
			{Date: date(2026, time.May, 1), Category: "Sales", Credit: 1200000},
			{Date: date(2026, time.June, 10), Category: "Rent", Debit: 300000},
			{Date: date(2026, time.July, 10), Category: "Rent", Debit: 300000},
		}
		res := Project(date(2026, time.July, 31), history, 30)
		if res.Runway == "cash-flow positive" {
			t.Fatalf("expected a finite runway, got %q (avg revenue %s, avg fixed %s)", res.Runway, res.AvgRevenue, res.AvgFixed)
		}
	})

	t.Run("profitable", func(t *testing.T) {
		res := Project(date(2026, time.July, 31), twoMonthHistory(), 30)
		if res.Runway != "cash-flow positive" {
			t.Errorf("expected cash-flow positive, got %q", res.Runway)
		}
	})
}

func TestProjectDeterminism(t *testing.T) {
	anchor := date(2026, time.July, 31)
	history := twoMonthHistory()
	first := Project(anchor, history, 30)
	for i := 0; i < 10; i++ {
		res := Project(anchor, history, 30)
		if len(res.Points) != len(first.Points) {
			t.Fatal("point count changed between runs")
		}
		for j := range res.Points {
			a, b := res.Points[j], first.Points[j]
			if !a.Date.Equal(b.Date) {
				t.Fatalf("point %d date changed between runs", j)
			}
			if (a.Predicted == nil) != (b.Predicted == nil) ||
				(a.Predicted != nil && !a.Predicted.Equal(*b.Predicted)) {
				t.Fatalf("point %d prediction changed between runs", j)
			}
		}
	}
}
