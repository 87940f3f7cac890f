package models

// Currency is the ISO 4217 code of a currency accounts and users may report in.
type Currency string

const (
	CurrencyCAD Currency = "CAD"
	CurrencyUSD Currency = "USD"
)

// SupportedCurrencies is the allow-list shared by accounts, transactions and user settings.
var SupportedCurrencies = []Currency{CurrencyCAD, CurrencyUSD}

func (c Currency) Valid() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

type AccountType string

const (
	AccountTypeTFSA          AccountType = "TFSA"
	AccountTypeRRSP          AccountType = "RRSP"
	AccountTypeFHSA          AccountType = "FHSA"
	AccountTypeNonRegistered AccountType = "NON_REGISTERED"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeTFSA, AccountTypeRRSP, AccountTypeFHSA, AccountTypeNonRegistered:
		return true
	}
	return false
}

type TransactionType string

const (
	TransactionTypeBuy      TransactionType = "BUY"
	TransactionTypeSell     TransactionType = "SELL"
	TransactionTypeDividend TransactionType = "DIVIDEND"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeBuy, TransactionTypeSell, TransactionTypeDividend:
		return true
	}
	return false
}

// IsTrade reports whether the transaction moves shares in or out of a holding.
func (t TransactionType) IsTrade() bool {
	return t == TransactionTypeBuy || t == TransactionTypeSell
}

type CashTransactionType string

const (
	CashTransactionContribution CashTransactionType = "CONTRIBUTION"
	CashTransactionWithdrawal   CashTransactionType = "WITHDRAWAL"
	CashTransactionTransferIn   CashTransactionType = "TRANSFER_IN"
	CashTransactionTransferOut  CashTransactionType = "TRANSFER_OUT"
	CashTransactionInterest     CashTransactionType = "INTEREST"
	CashTransactionFee          CashTransactionType = "FEE"
	CashTransactionDividend     CashTransactionType = "DIVIDEND"
	CashTransactionTrade        CashTransactionType = "TRADE"
)

func (t CashTransactionType) Valid() bool {
	switch t {
	case CashTransactionContribution, CashTransactionWithdrawal, CashTransactionTransferIn,
		CashTransactionTransferOut, CashTransactionInterest, CashTransactionFee,
		CashTransactionDividend, CashTransactionTrade:
		return true
	}
	return false
}

// IsInflow reports whether amounts of this type increase the cash balance.
// FEE, WITHDRAWAL and TRANSFER_OUT are outflows; TRADE can go either way.
func (t CashTransactionType) IsInflow() bool {
	switch t {
	case CashTransactionContribution, CashTransactionTransferIn, CashTransactionInterest, CashTransactionDividend:
		return true
	}
	return false
}

// IsOutflow reports whether amounts of this type decrease the cash balance.
func (t CashTransactionType) IsOutflow() bool {
	switch t {
	case CashTransactionWithdrawal, CashTransactionTransferOut, CashTransactionFee:
		return true
	}
	return false
}
