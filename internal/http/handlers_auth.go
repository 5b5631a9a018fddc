package http

import (
	"net/http"

	"vitien/internal/middleware/tenant"
)

type loginRequest struct {
	IDToken string `json:"idToken"`
}

type loginResponse struct {
	Token             string       `json:"token"`
	User              userJSON     `json:"user"`
	Wallets           []walletJSON `json:"wallets"`
	TotalBalanceCents int64        `json:"totalBalanceCents"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IDToken == "" {
		writeError(w, http.StatusBadRequest, "idToken is required")
		return
	}

	res, err := s.auth.Login(r.Context(), tenant.FromContext(r.Context()), req.IDToken)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:             res.Token,
		User:              toUserJSON(res.User),
		Wallets:           toWalletsJSON(res.Wallets),
		TotalBalanceCents: res.TotalBalance.Cents,
	})
}
