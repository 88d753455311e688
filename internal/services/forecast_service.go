package services

import (
	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/forecast"
)

// historyMonths is the trailing window fed to the projection. It spans
// past the prior year so the seasonality multiplier has same-calendar-month
// data to read; recency weighting keeps recent months dominant.
const historyMonths = 18

type forecastService struct {
	transactions TransactionService
}

// NewForecastService creates a forecast service reading from the
// transaction layer.
func NewForecastService(transactions TransactionService) ForecastService {
	return &forecastService{transactions: transactions}
}

// GetForecast projects the user's cash flow from their latest transaction
// date. Only classified rows feed the model; unclassified rows are noise
// the cascade already rejected.
func (s *forecastService) GetForecast(userID uint, days int) (*forecast.Result, error) {
	anchor, err := s.transactions.LatestDate(userID)
	if err != nil {
		return nil, err
	}

	from := anchor.AddDate(0, -historyMonths, 0)
	transactions, err := s.transactions.InRange(userID, from, anchor)
	if err != nil {
		return nil, err
	}

	history := make([]forecast.Tx, 0, len(transactions))
	for _, tx := range transactions {
		if tx.CategoryID == nil {
			continue
		}
		category := ""
		if tx.Category != nil {
			category = tx.Category.Name
		}
		history = append(history, forecast.Tx{
			Date:        tx.Date,
			Description: tx.Description,
			Category:    category,
			Debit:       tx.Debit,
			Credit:      tx.Credit,
		})
	}
	if len(history) == 0 {
		return nil, apperrors.ErrNoTransactionHistory
	}

	result := forecast.Project(anchor, history, days)
	return &result, nil
}
