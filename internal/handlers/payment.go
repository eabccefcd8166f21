package handlers

import (
	"net/http"

	"snapquest/internal/payment"
)

type PaymentHandler struct {
	payments *payment.Service
}

func NewPaymentHandler(svc *payment.Service) *PaymentHandler {
	return &PaymentHandler{payments: svc}
}

// Subscribe runs the simulated subscription and returns the user with the
// credited token balance.
func (h *PaymentHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	user, err := h.payments.Subscribe(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, user)
}
