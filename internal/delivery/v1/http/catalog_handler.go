package http

import (
	"net/http"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/internal/usecase"
	"github.com/DRSN-tech/shop-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewCatalogHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC, logger: logger}
}

type productResponse struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	Rating   float64  `json:"rating"`
	Category string   `json:"category"`
	Images   []string `json:"images"`
	Colors   []string `json:"colors"`
	Sizes    []string `json:"sizes"`
	Stock    int64    `json:"stock"`
	Desc     string   `json:"desc,omitempty"`
}

type productListResponse struct {
	Items       []productResponse `json:"items"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
}

// listProducts возвращает страницу каталога по спецификации из query-параметров:
// sort, page, page_size, categories, price_min, price_max.
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	req, err := parseQueryReq(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, r.URL.RawQuery, err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.catalogUC.Query(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	items := make([]productResponse, 0, len(res.Items))
	for _, p := range res.Items {
		items = append(items, toProductResponse(p))
	}

	WriteSuccess(w, http.StatusOK, productListResponse{
		Items:       items,
		TotalPages:  res.TotalPages,
		CurrentPage: res.CurrentPage,
	})
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResResponse(product))
}

func (h *CatalogHandler) getRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	limit, err := parseIntParam(r.URL.Query().Get("limit"), 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	recommendations, err := h.catalogUC.Recommendations(r.Context(), id, limit)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	items := make([]productResponse, 0, len(recommendations))
	for i := range recommendations {
		items = append(items, toProductResResponse(&recommendations[i]))
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Rating:   p.Rating,
		Category: string(p.Category),
		Images:   p.Images,
		Colors:   p.Colors,
		Sizes:    p.Sizes,
		Stock:    p.Stock,
		Desc:     p.Desc,
	}
}

func toProductResResponse(p *usecase.ProductRes) productResponse {
	return productResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Rating:   p.Rating,
		Category: string(p.Category),
		Images:   p.Images,
		Colors:   p.Colors,
		Sizes:    p.Sizes,
		Stock:    p.Stock,
		Desc:     p.Desc,
	}
}
