package http

import (
	"net/http"

	"mortgage-agent/domain"
	"mortgage-agent/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Quote(input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, result)
}
