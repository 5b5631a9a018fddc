package http

import (
	"slices"
	"time"

	"vitien/internal/core"
)

// Wire representations. Amounts travel as integer cents; dates as RFC 3339.

type userJSON struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type walletJSON struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	AccountNumber       string    `json:"accountNumber,omitempty"`
	InitialBalanceCents int64     `json:"initialBalanceCents"`
	BalanceCents        int64     `json:"balanceCents"`
	OpenedAt            time.Time `json:"openedAt"`
	CreatedAt           time.Time `json:"createdAt"`
}

type transactionJSON struct {
	ID          string    `json:"id"`
	WalletID    string    `json:"walletId"`
	Type        string    `json:"type"`
	AmountCents int64     `json:"amountCents"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type statementJSON struct {
	WalletID            string            `json:"walletId"`
	WalletName          string            `json:"walletName"`
	Start               time.Time         `json:"start"`
	End                 time.Time         `json:"end"`
	OpeningBalanceCents int64             `json:"openingBalanceCents"`
	TotalIncomeCents    int64             `json:"totalIncomeCents"`
	TotalExpenseCents   int64             `json:"totalExpenseCents"`
	ClosingBalanceCents int64             `json:"closingBalanceCents"`
	Transactions        []transactionJSON `json:"transactions"`
}

func toUserJSON(u core.User) userJSON {
	return userJSON{ID: u.ID, Email: u.Email, Name: u.Name, Avatar: u.Avatar}
}

func toWalletJSON(w core.Wallet) walletJSON {
	return walletJSON{
		ID:                  w.ID,
		Name:                w.Name,
		AccountNumber:       w.AccountNumber,
		InitialBalanceCents: w.InitialBalance.Cents,
		BalanceCents:        w.Balance.Cents,
		OpenedAt:            w.OpenedAt,
		CreatedAt:           w.CreatedAt,
	}
}

func toWalletsJSON(ws []core.Wallet) []walletJSON {
	out := make([]walletJSON, 0, len(ws))
	for _, w := range ws {
		out = append(out, toWalletJSON(w))
	}
	return out
}

func toTransactionJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		WalletID:    t.WalletID,
		Type:        string(t.Type),
		AmountCents: t.Amount.Cents,
		Category:    t.Category,
		Date:        t.Date,
		Note:        t.Note,
		CreatedAt:   t.CreatedAt,
	}
}

func toTransactionsJSON(ts []core.Transaction) []transactionJSON {
	out := make([]transactionJSON, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTransactionJSON(t))
	}
	return out
}

// toStatementJSON presents the period's transactions newest-first. Document
// exports keep the chronological order the renderer receives.
func toStatementJSON(st core.Statement) statementJSON {
	txns := make([]core.Transaction, len(st.Transactions))
	copy(txns, st.Transactions)
	slices.Reverse(txns)
	return statementJSON{
		WalletID:            st.WalletID,
		WalletName:          st.WalletName,
		Start:               st.Start,
		End:                 st.End,
		OpeningBalanceCents: st.OpeningBalance.Cents,
		TotalIncomeCents:    st.TotalIncome.Cents,
		TotalExpenseCents:   st.TotalExpense.Cents,
		ClosingBalanceCents: st.ClosingBalance.Cents,
		Transactions:        toTransactionsJSON(txns),
	}
}
