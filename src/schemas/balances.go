package schemas

import (
	"time"

	"financialamigo/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceUpsert is an end-of-day snapshot; the date comes from the URL.
type BalanceUpsert struct {
	CashBalance decimal.Decimal `json:"cash_balance"`
	MarketValue decimal.Decimal `json:"market_value"`
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	Dividends   decimal.Decimal `json:"dividends"`
	Interest    decimal.Decimal `json:"interest"`
	Fees        decimal.Decimal `json:"fees"`
}

func (b *BalanceUpsert) ToModel(accountID uuid.UUID, date time.Time) *models.HistoricalBalance {
	return &models.HistoricalBalance{
		AccountID:   accountID,
		Date:        date,
		CashBalance: b.CashBalance,
		MarketValue: b.MarketValue,
		TotalValue:  b.CashBalance.Add(b.MarketValue),
		Deposits:    b.Deposits,
		Withdrawals: b.Withdrawals,
		Dividends:   b.Dividends,
		Interest:    b.Interest,
		Fees:        b.Fees,
	}
}

type BalanceResponse struct {
	Date        Date            `json:"date"`
	CashBalance decimal.Decimal `json:"cash_balance"`
	MarketValue decimal.Decimal `json:"market_value"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	Dividends   decimal.Decimal `json:"dividends"`
	Interest    decimal.Decimal `json:"interest"`
	Fees        decimal.Decimal `json:"fees"`
}

func NewBalanceResponse(b *models.HistoricalBalance) BalanceResponse {
	return BalanceResponse{
		Date:        NewDate(b.Date),
		CashBalance: b.CashBalance,
		MarketValue: b.MarketValue,
		TotalValue:  b.TotalValue,
		Deposits:    b.Deposits,
		Withdrawals: b.Withdrawals,
		Dividends:   b.Dividends,
		Interest:    b.Interest,
		Fees:        b.Fees,
	}
}
