package core

import (
	"errors"
	"sort"
	"time"
)

// Statement is a computed summary over a wallet's transactions in a date range.
// Transactions holds the in-range entries ordered by date ascending; on-screen
// ordering is a presentation concern of callers.
type Statement struct {
	WalletID       string
	WalletName     string
	Start          time.Time
	End            time.Time
	OpeningBalance Money
	TotalIncome    Money
	TotalExpense   Money
	ClosingBalance Money
	Transactions   []Transaction
}

var ErrInvalidRange = errors.New("start must not be after end")

// ResolveRange applies the default statement window: first day of the current
// month through now. Zero values select the default bound.
func ResolveRange(start, end, now time.Time) (time.Time, time.Time) {
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if end.IsZero() {
		end = now
	}
	return start, end
}

// ComputeStatement aggregates a wallet's full transaction log, partitioned at
// the range boundary:
//
//   opening = initialBalance + Σ signed(amount) where date < start
//   income  = Σ amount where type = income and start <= date <= end
//   expense = Σ amount where type = expense and start <= date <= end
//   closing = opening + income - expense
//
// A transaction dated exactly at start counts toward the period, not the
// opening balance. The wallet's cached balance is deliberately not consulted;
// the log is the source of truth.
func ComputeStatement(w Wallet, txns []Transaction, start, end time.Time) (Statement, error) {
	if start.After(end) {
		return Statement{}, ErrInvalidRange
	}

	st := Statement{
		WalletID:       w.ID,
		WalletName:     w.Name,
		Start:          start,
		End:            end,
		OpeningBalance: w.InitialBalance,
	}

	for _, t := range txns {
		switch {
		case t.Date.Before(start):
			st.OpeningBalance = st.OpeningBalance.Add(t.Signed())
		case !t.Date.After(end):
			if t.Type == Income {
				st.TotalIncome = st.TotalIncome.Add(t.Amount)
			} else {
				st.TotalExpense = st.TotalExpense.Add(t.Amount)
			}
			st.Transactions = append(st.Transactions, t)
		}
	}

	sort.SliceStable(st.Transactions, func(i, j int) bool {
		return st.Transactions[i].Date.Before(st.Transactions[j].Date)
	})

	st.ClosingBalance = st.OpeningBalance.Add(st.TotalIncome).Sub(st.TotalExpense)
	return st, nil
}
