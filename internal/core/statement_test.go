package core

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeStatementMonth(t *testing.T) {
	// Wallet opened with 100000; income 50000 on day 5, expense 30000 on day 10.
	w := Wallet{ID: "w1", Name: "Cash", InitialBalance: Money{Cents: 100000}}
	txns := []Transaction{
		{ID: "t1", WalletID: "w1", Type: Income, Amount: Money{Cents: 50000}, Date: day(5)},
		{ID: "t2", WalletID: "w1", Type: Expense, Amount: Money{Cents: 30000}, Date: day(10)},
	}

	st, err := ComputeStatement(w, txns, day(1), day(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.OpeningBalance.Cents != 100000 {
		t.Fatalf("opening expected 100000, got %d", st.OpeningBalance.Cents)
	}
	if st.TotalIncome.Cents != 50000 {
		t.Fatalf("income expected 50000, got %d", st.TotalIncome.Cents)
	}
	if st.TotalExpense.Cents != 30000 {
		t.Fatalf("expense expected 30000, got %d", st.TotalExpense.Cents)
	}
	if st.ClosingBalance.Cents != 120000 {
		t.Fatalf("closing expected 120000, got %d", st.ClosingBalance.Cents)
	}
	if len(st.Transactions) != 2 {
		t.Fatalf("expected 2 transactions in range, got %d", len(st.Transactions))
	}
}

func TestComputeStatementEmptyWallet(t *testing.T) {
	w := Wallet{ID: "w1", InitialBalance: Money{Cents: 0}}
	st, err := ComputeStatement(w, nil, day(1), day(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.OpeningBalance.Cents != 0 || st.TotalIncome.Cents != 0 ||
		st.TotalExpense.Cents != 0 || st.ClosingBalance.Cents != 0 {
		t.Fatalf("expected all-zero statement, got %+v", st)
	}
	if len(st.Transactions) != 0 {
		t.Fatalf("expected no transactions, got %d", len(st.Transactions))
	}
}

func TestComputeStatementBoundaryInclusion(t *testing.T) {
	// A transaction dated exactly at start belongs to the period,
	// not the opening balance.
	w := Wallet{ID: "w1", InitialBalance: Money{Cents: 1000}}
	txns := []Transaction{
		{ID: "before", Type: Expense, Amount: Money{Cents: 200}, Date: day(4)},
		{ID: "atStart", Type: Income, Amount: Money{Cents: 500}, Date: day(5)},
		{ID: "atEnd", Type: Income, Amount: Money{Cents: 300}, Date: day(20)},
		{ID: "after", Type: Income, Amount: Money{Cents: 999}, Date: day(21)},
	}

	st, err := ComputeStatement(w, txns, day(5), day(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.OpeningBalance.Cents != 800 {
		t.Fatalf("opening expected 800, got %d", st.OpeningBalance.Cents)
	}
	if st.TotalIncome.Cents != 800 {
		t.Fatalf("income expected 800, got %d", st.TotalIncome.Cents)
	}
	if len(st.Transactions) != 2 {
		t.Fatalf("expected 2 in-range transactions, got %d", len(st.Transactions))
	}
	if st.Transactions[0].ID != "atStart" || st.Transactions[1].ID != "atEnd" {
		t.Fatalf("expected ascending order [atStart atEnd], got [%s %s]",
			st.Transactions[0].ID, st.Transactions[1].ID)
	}
}

func TestComputeStatementClosingIdentity(t *testing.T) {
	w := Wallet{ID: "w1", InitialBalance: Money{Cents: 7777}}
	txns := []Transaction{
		{Type: Income, Amount: Money{Cents: 120}, Date: day(2)},
		{Type: Expense, Amount: Money{Cents: 45}, Date: day(3)},
		{Type: Income, Amount: Money{Cents: 900}, Date: day(15)},
		{Type: Expense, Amount: Money{Cents: 333}, Date: day(28)},
	}
	st, err := ComputeStatement(w, txns, day(3), day(28))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := st.OpeningBalance.Add(st.TotalIncome).Sub(st.TotalExpense)
	if st.ClosingBalance != want {
		t.Fatalf("closing %d does not satisfy opening+income-expense=%d",
			st.ClosingBalance.Cents, want.Cents)
	}
}

func TestComputeStatementIdempotent(t *testing.T) {
	w := Wallet{ID: "w1", InitialBalance: Money{Cents: 500}}
	txns := []Transaction{
		{ID: "a", Type: Income, Amount: Money{Cents: 100}, Date: day(1)},
		{ID: "b", Type: Expense, Amount: Money{Cents: 50}, Date: day(2)},
	}
	first, err := ComputeStatement(w, txns, day(1), day(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeStatement(w, txns, day(1), day(30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.OpeningBalance != second.OpeningBalance ||
		first.TotalIncome != second.TotalIncome ||
		first.TotalExpense != second.TotalExpense ||
		first.ClosingBalance != second.ClosingBalance ||
		len(first.Transactions) != len(second.Transactions) {
		t.Fatalf("repeated computation differs: %+v vs %+v", first, second)
	}
}

func TestComputeStatementInvalidRange(t *testing.T) {
	w := Wallet{ID: "w1"}
	if _, err := ComputeStatement(w, nil, day(10), day(1)); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestResolveRange(t *testing.T) {
	now := time.Date(2025, 6, 17, 14, 30, 0, 0, time.UTC)

	start, end := ResolveRange(time.Time{}, time.Time{}, now)
	if !start.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("default start expected first of month, got %v", start)
	}
	if !end.Equal(now) {
		t.Fatalf("default end expected now, got %v", end)
	}

	s := day(3)
	e := day(9)
	start, end = ResolveRange(s, e, now)
	if !start.Equal(s) || !end.Equal(e) {
		t.Fatalf("explicit bounds should pass through, got %v %v", start, end)
	}
}
