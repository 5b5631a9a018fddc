package http

import (
	"net/http"
	"time"

	"vitien/internal/core"
	"vitien/internal/services"
)

type createWalletRequest struct {
	Name                string `json:"name"`
	AccountNumber       string `json:"accountNumber"`
	InitialBalanceCents int64  `json:"initialBalanceCents"`
	// InitialBalance is a decimal alternative to initialBalanceCents.
	InitialBalance string     `json:"initialBalance,omitempty"`
	OpenedAt       *time.Time `json:"openedAt"`
}

type walletListResponse struct {
	Wallets           []walletJSON `json:"wallets"`
	TotalBalanceCents int64        `json:"totalBalanceCents"`
}

func (s *Server) handleCreateWallet(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	var req createWalletRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents := req.InitialBalanceCents
	if cents == 0 && req.InitialBalance != "" {
		var err error
		cents, err = core.ParseInitialBalance(req.InitialBalance)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid initial balance")
			return
		}
	}

	params := services.CreateWalletParams{
		Name:           req.Name,
		AccountNumber:  req.AccountNumber,
		InitialBalance: core.Money{Cents: cents},
	}
	if req.OpenedAt != nil {
		params.OpenedAt = req.OpenedAt.UTC()
	}

	created, err := s.wallets.Create(r.Context(), claims.TenantID, claims.UserID, params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWalletJSON(created))
}

func (s *Server) handleListWallets(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	listing, err := s.wallets.List(r.Context(), claims.TenantID, claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, walletListResponse{
		Wallets:           toWalletsJSON(listing.Wallets),
		TotalBalanceCents: listing.TotalBalance.Cents,
	})
}

func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	wallet, err := s.wallets.Get(r.Context(), claims.TenantID, claims.UserID, r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWalletJSON(wallet))
}
