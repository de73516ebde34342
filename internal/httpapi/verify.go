package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"verifyserver/internal/verify"
)

// Legacy wire error codes, preserved for compatibility with existing callers:
// store, internal and delivery failures all report errCodeStore, while
// errCodeException marks the exception path.
const (
	errCodeSuccess   = 0
	errCodeStore     = 1
	errCodeException = 2
)

type getVerifyCodeRequest struct {
	Email string `json:"email"`
}

type getVerifyCodeResponse struct {
	Email      string `json:"email"`
	VerifyCode string `json:"verifycode,omitempty"`
	Error      int    `json:"error"`
}

func (a *API) handleGetVerifyCode(w http.ResponseWriter, r *http.Request) {
	var req getVerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The address is opaque to this service and passed through verbatim; only
	// an effectively empty one is rejected.
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	res, err := a.verifier.Issue(r.Context(), req.Email)
	if err != nil {
		a.logger.Error("issue failed", slog.String("email", req.Email), slog.Any("err", err))
		writeJSON(w, http.StatusOK, getVerifyCodeResponse{
			Email: req.Email,
			Error: errCodeException,
		})
		return
	}

	if res.Outcome == verify.OutcomeDelivered {
		writeJSON(w, http.StatusOK, getVerifyCodeResponse{
			Email:      res.Email,
			VerifyCode: res.Code,
			Error:      errCodeSuccess,
		})
		return
	}

	writeJSON(w, http.StatusOK, getVerifyCodeResponse{
		Email: res.Email,
		Error: errCodeStore,
	})
}
