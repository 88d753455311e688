// Package forecast projects cash flow from classified transaction history.
// The model is a recency-weighted, seasonality-adjusted monthly average:
// deterministic in its inputs, with no external calls.
package forecast

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDays is the standard projection horizon.
const DefaultDays = 30

// monthDays converts the monthly averages into per-day rates. It is fixed:
// the requested horizon changes how many days are projected, never the
// rate at which a month's flows accrue.
const monthDays = 30

// recentMonths months receive recentWeight; every older month weighs 1.
const (
	recentMonths = 2
	recentWeight = 3
)

// fixedKeywords mark debit rows as fixed costs when matched against the
// category name or description.
var fixedKeywords = []string{"rent", "salary", "salaries", "loan", "subscription"}

// anomalyKeywords mark one-off costs excluded from the steady-state model.
var anomalyKeywords = []string{"renovation", "deposit", "equipment", "setup fee"}

// depreciationKeyword excludes non-cash book entries from revenue.
const depreciationKeyword = "depreciation"

// Tx is one classified transaction in the trailing history window.
// Amounts are in cents; Category is the resolved category name, empty for
// unclassified rows (which callers should already have excluded).
type Tx struct {
	Date        time.Time
	Description string
	Category    string
	Debit       int64
	Credit      int64
}

// Point is one day on the cash-flow chart. Exactly one of Actual or
// Predicted is set, except the bridge point at the anchor date which
// carries both.
type Point struct {
	Date      time.Time        `json:"date"`
	Actual    *decimal.Decimal `json:"actual_balance,omitempty"`
	Predicted *decimal.Decimal `json:"predicted_balance,omitempty"`
}

// Result is a complete projection.
type Result struct {
	Points        []Point         `json:"points"`
	Balance       decimal.Decimal `json:"balance"`
	AvgRevenue    decimal.Decimal `json:"avg_revenue"`
	AvgFixed      decimal.Decimal `json:"avg_fixed"`
	AvgVariable   decimal.Decimal `json:"avg_variable"`
	VariableRatio decimal.Decimal `json:"variable_ratio"`
	Seasonality   decimal.Decimal `json:"seasonality"`
	Runway        string          `json:"runway"`
}

type monthBucket struct {
	revenue  decimal.Decimal
	fixed    decimal.Decimal
	variable decimal.Decimal
	net      decimal.Decimal
	weight   int64
}

// Project builds a daily cash-flow projection from the anchor date. The
// starting balance is the cumulative (credit - debit) over the history
// window; empty history yields a flat projection at zero with a neutral
// model.
func Project(anchor time.Time, history []Tx, days int) Result {
	if days <= 0 {
		days = DefaultDays
	}

	sorted := make([]Tx, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	buckets, keys := aggregateMonths(sorted)
	applyRecencyWeights(buckets, keys)

	avgRevenue := weightedAverage(buckets, keys, func(b *monthBucket) decimal.Decimal { return b.revenue })
	avgFixed := weightedAverage(buckets, keys, func(b *monthBucket) decimal.Decimal { return b.fixed })
	avgVariable := weightedAverage(buckets, keys, func(b *monthBucket) decimal.Decimal { return b.variable })

	variableRatio := decimal.Zero
	if avgRevenue.IsPositive() {
		variableRatio = avgVariable.Div(avgRevenue)
	}

	targetMonth := anchor.AddDate(0, 0, 1).Month()
	seasonality := seasonalMultiplier(buckets, keys, anchor.Year(), targetMonth)

	points, balance := actualPoints(sorted)

	// Bridge point: the anchor carries both sides of the chart.
	bridged := balance.Round(2)
	points = append(points, Point{Date: anchor, Actual: &bridged, Predicted: &bridged})

	monthDec := decimal.NewFromInt(monthDays)
	dailyRevenue := avgRevenue.Mul(seasonality).Div(monthDec)
	dailyFixed := avgFixed.Div(monthDec)
	dailyVariable := dailyRevenue.Mul(variableRatio)
	dailyNet := dailyRevenue.Sub(dailyFixed).Sub(dailyVariable)

	running := balance
	for i := 1; i <= days; i++ {
		running = running.Add(dailyNet)
		predicted := running.Round(2)
		points = append(points, Point{Date: anchor.AddDate(0, 0, i), Predicted: &predicted})
	}

	return Result{
		Points:        points,
		Balance:       balance.Round(2),
		AvgRevenue:    avgRevenue.Round(2),
		AvgFixed:      avgFixed.Round(2),
		AvgVariable:   avgVariable.Round(2),
		VariableRatio: variableRatio,
		Seasonality:   seasonality,
		Runway:        runway(balance, avgRevenue, avgFixed, variableRatio),
	}
}

// aggregateMonths groups transactions into per-month revenue/fixed/variable
// buckets, excluding anomaly rows from expenses and depreciation rows from
// revenue. Net flow is tracked unfiltered for the seasonality model.
func aggregateMonths(sorted []Tx) (map[int]*monthBucket, []int) {
	buckets := make(map[int]*monthBucket)
	for _, tx := range sorted {
		key := tx.Date.Year()*100 + int(tx.Date.Month())
		b, ok := buckets[key]
		if !ok {
			b = &monthBucket{weight: 1}
			buckets[key] = b
		}

		credit := cents(tx.Credit)
		debit := cents(tx.Debit)
		b.net = b.net.Add(credit).Sub(debit)

		text := strings.ToLower(tx.Category + " " + tx.Description)
		if matchesAny(text, anomalyKeywords) {
			continue
		}
		if tx.Credit > 0 {
			if !strings.Contains(strings.ToLower(tx.Category), depreciationKeyword) {
				b.revenue = b.revenue.Add(credit)
			}
		}
		if tx.Debit > 0 {
			if matchesAny(text, fixedKeywords) {
				b.fixed = b.fixed.Add(debit)
			} else {
				b.variable = b.variable.Add(debit)
			}
		}
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return buckets, keys
}

func applyRecencyWeights(buckets map[int]*monthBucket, keys []int) {
	for i := len(keys) - 1; i >= 0 && i >= len(keys)-recentMonths; i-- {
		buckets[keys[i]].weight = recentWeight
	}
}

func weightedAverage(buckets map[int]*monthBucket, keys []int, field func(*monthBucket) decimal.Decimal) decimal.Decimal {
	if len(keys) == 0 {
		return decimal.Zero
	}
	var sum decimal.Decimal
	var weights int64
	for _, k := range keys {
		b := buckets[k]
		sum = sum.Add(field(b).Mul(decimal.NewFromInt(b.weight)))
		weights += b.weight
	}
	if weights == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(weights))
}

// seasonalMultiplier compares the target calendar month's average net flow
// across prior years against the overall prior-year monthly average. With
// no prior-year data for the month, or a non-positive baseline, the
// multiplier is neutral.
func seasonalMultiplier(buckets map[int]*monthBucket, keys []int, anchorYear int, target time.Month) decimal.Decimal {
	var monthSum, allSum decimal.Decimal
	var monthCount, allCount int64
	for _, k := range keys {
		year, month := k/100, k%100
		if year >= anchorYear {
			continue
		}
		b := buckets[k]
		allSum = allSum.Add(b.net)
		allCount++
		if time.Month(month) == target {
			monthSum = monthSum.Add(b.net)
			monthCount++
		}
	}
	if monthCount == 0 || allCount == 0 {
		return decimal.NewFromInt(1)
	}
	baseline := allSum.Div(decimal.NewFromInt(allCount))
	if !baseline.IsPositive() {
		return decimal.NewFromInt(1)
	}
	monthAvg := monthSum.Div(decimal.NewFromInt(monthCount))
	if !monthAvg.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return monthAvg.Div(baseline)
}

// actualPoints builds one point per distinct transaction date carrying the
// cumulative balance, and returns the final balance.
func actualPoints(sorted []Tx) ([]Point, decimal.Decimal) {
	var points []Point
	balance := decimal.Zero
	for i, tx := range sorted {
		balance = balance.Add(cents(tx.Credit)).Sub(cents(tx.Debit))
		last := i == len(sorted)-1
		if !last && sameDay(tx.Date, sorted[i+1].Date) {
			continue
		}
		actual := balance.Round(2)
		points = append(points, Point{Date: tx.Date, Actual: &actual})
	}
	return points, balance
}

// runway renders months of cash remaining at the current burn rate.
func runway(balance, avgRevenue, avgFixed, variableRatio decimal.Decimal) string {
	netBurn := avgFixed.Add(avgRevenue.Mul(variableRatio)).Sub(avgRevenue)
	if netBurn.IsPositive() && balance.IsPositive() {
		months := balance.Div(netBurn).Round(1)
		return months.String() + " months"
	}
	return "cash-flow positive"
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func cents(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}
