package http

import (
	"net/http"

	"mortgage-agent/domain"
	"mortgage-agent/service"
)

type ReinvestmentHandler struct {
	service *service.ReinvestmentService
}

func NewReinvestmentHandler(service *service.ReinvestmentService) *ReinvestmentHandler {
	return &ReinvestmentHandler{service: service}
}

// Compare projects an ETF position under each dividend reinvestment share.
func (h *ReinvestmentHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.ReinvestmentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Compare(input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, result)
}
