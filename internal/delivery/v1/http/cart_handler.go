package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/shop-backend/internal/usecase"
	"github.com/DRSN-tech/shop-backend/pkg/e"
	"github.com/DRSN-tech/shop-backend/pkg/logger"
)

type CartHandler struct {
	cartUC usecase.CartUC
	logger logger.Logger
}

func NewCartHandler(cartUC usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUC: cartUC, logger: logger}
}

type cartLineRequest struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Qty       int64  `json:"qty"`
}

type cartLineResponse struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Qty       int64  `json:"qty"`
}

type cartResponse struct {
	CartID string             `json:"cart_id"`
	Lines  []cartLineResponse `json:"lines"`
	Total  int64              `json:"total"`
}

func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.cartUC.GetCart(r.Context(), cartID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	h.writeCart(w, view)
}

// addLine добавляет позицию в корзину. Мутация безусловна: остатки
// проверяются только на checkout.
func (h *CartHandler) addLine(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	body, err := h.parseLine(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	view, err := h.cartUC.AddLine(r.Context(), &usecase.AddLineReq{
		CartID:    cartID,
		ProductID: body.ProductID,
		Size:      body.Size,
		Color:     body.Color,
		Qty:       body.Qty,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	h.writeCart(w, view)
}

func (h *CartHandler) updateQty(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	body, err := h.parseLine(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if body.Qty < 1 {
		WriteError(w, e.ErrInvalidQty)
		return
	}

	view, err := h.cartUC.UpdateQty(r.Context(), &usecase.UpdateQtyReq{
		CartID:    cartID,
		ProductID: body.ProductID,
		Size:      body.Size,
		Color:     body.Color,
		Qty:       body.Qty,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	h.writeCart(w, view)
}

func (h *CartHandler) removeLine(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	body, err := h.parseLine(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	view, err := h.cartUC.RemoveLine(r.Context(), &usecase.RemoveLineReq{
		CartID:    cartID,
		ProductID: body.ProductID,
		Size:      body.Size,
		Color:     body.Color,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	h.writeCart(w, view)
}

func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.cartUC.ClearCart(r.Context(), cartID); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.Header().Set(cartIDHeader, cartID)
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"cleared": true,
	})
}

func (h *CartHandler) parseLine(r *http.Request) (*cartLineRequest, error) {
	var body cartLineRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}

	if body.ProductID < 1 {
		return nil, e.ErrInvalidProductID
	}

	return &body, nil
}

func (h *CartHandler) writeCart(w http.ResponseWriter, view *usecase.CartView) {
	lines := make([]cartLineResponse, 0, len(view.Lines))
	for _, l := range view.Lines {
		lines = append(lines, cartLineResponse{
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Qty:       l.Qty,
		})
	}

	w.Header().Set(cartIDHeader, view.CartID)
	WriteSuccess(w, http.StatusOK, cartResponse{
		CartID: view.CartID,
		Lines:  lines,
		Total:  view.Total,
	})
}
