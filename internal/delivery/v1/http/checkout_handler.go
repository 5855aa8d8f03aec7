package http

import (
	"net/http"

	"github.com/DRSN-tech/shop-backend/internal/usecase"
	"github.com/DRSN-tech/shop-backend/pkg/logger"
)

type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUC
	logger     logger.Logger
}

func NewCheckoutHandler(checkoutUC usecase.CheckoutUC, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: checkoutUC, logger: logger}
}

type checkoutFailureResponse struct {
	ProductID    int64 `json:"product_id"`
	RequestedQty int64 `json:"requested_qty"`
	AvailableQty int64 `json:"available_qty"`
}

type checkoutResponse struct {
	Committed bool                      `json:"committed"`
	Failures  []checkoutFailureResponse `json:"failures,omitempty"`
}

// checkout сверяет корзину с остатками. Отказ — не ошибка HTTP:
// и коммит, и отказ с поимённым списком нехваток отдаются как 200.
func (h *CheckoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.checkoutUC.Checkout(r.Context(), cartID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	failures := make([]checkoutFailureResponse, 0, len(res.Failures))
	for _, f := range res.Failures {
		failures = append(failures, checkoutFailureResponse{
			ProductID:    f.ProductID,
			RequestedQty: f.RequestedQty,
			AvailableQty: f.AvailableQty,
		})
	}

	w.Header().Set(cartIDHeader, cartID)
	WriteSuccess(w, http.StatusOK, checkoutResponse{
		Committed: res.Committed,
		Failures:  failures,
	})
}
