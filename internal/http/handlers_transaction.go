package http

import (
	"net/http"
	"time"

	"vitien/internal/core"
	"vitien/internal/ledger"
	"vitien/internal/services"
)

type createTransactionRequest struct {
	WalletID    string `json:"walletId"`
	Type        string `json:"type"`
	AmountCents int64  `json:"amountCents"`
	// Amount is a decimal alternative to amountCents ("12.34" or "12,34").
	Amount   string    `json:"amount,omitempty"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note"`
}

type transactionListResponse struct {
	Transactions []transactionJSON `json:"transactions"`
	Page         int               `json:"page"`
	Limit        int               `json:"limit"`
	Total        int               `json:"total"`
	TotalPages   int               `json:"totalPages"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	var req createTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents := req.AmountCents
	if cents == 0 && req.Amount != "" {
		var err error
		cents, err = core.ParseDecimalToCents(req.Amount)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid amount")
			return
		}
	}

	created, err := s.transactions.Create(r.Context(), claims.TenantID, claims.UserID, services.CreateTransactionParams{
		WalletID: req.WalletID,
		Type:     core.TransactionType(req.Type),
		Amount:   core.Money{Cents: cents},
		Category: req.Category,
		Date:     req.Date.UTC(),
		Note:     req.Note,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionJSON(created))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	q := r.URL.Query()

	start, err := parseDate(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date")
		return
	}
	end, err := parseDate(q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date")
		return
	}
	page, err := parseIntParam(q.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	limit, err := parseIntParam(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if t := q.Get("type"); t != "" && !core.TransactionType(t).Valid() {
		writeError(w, http.StatusBadRequest, "invalid transaction type")
		return
	}

	listing, err := s.transactions.List(r.Context(), claims.TenantID, claims.UserID, services.ListTransactionsParams{
		Filter: ledger.TransactionFilter{
			WalletID: q.Get("walletId"),
			Type:     core.TransactionType(q.Get("type")),
			Start:    start,
			End:      end,
		},
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, transactionListResponse{
		Transactions: toTransactionsJSON(listing.Transactions),
		Page:         listing.Page,
		Limit:        listing.Limit,
		Total:        listing.Total,
		TotalPages:   listing.TotalPages,
	})
}
