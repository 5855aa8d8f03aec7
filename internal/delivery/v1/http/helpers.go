package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/internal/usecase"
	"github.com/DRSN-tech/shop-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// cartIDHeader — заголовок, идентифицирующий корзину покупателя.
const cartIDHeader = "X-Cart-ID"

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidPageSize):
		return http.StatusBadRequest, e.ErrInvalidPageSize.Error()
	case errors.Is(err, e.ErrInvalidSortKey):
		return http.StatusBadRequest, e.ErrInvalidSortKey.Error()
	case errors.Is(err, e.ErrInvalidCategory):
		return http.StatusBadRequest, e.ErrInvalidCategory.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidProductID):
		return http.StatusBadRequest, e.ErrInvalidProductID.Error()
	case errors.Is(err, e.ErrInvalidQty):
		return http.StatusBadRequest, e.ErrInvalidQty.Error()
	case errors.Is(err, e.ErrCartEmpty):
		return http.StatusBadRequest, e.ErrCartEmpty.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCatalogNotReady):
		return http.StatusServiceUnavailable, e.ErrCatalogNotReady.Error()
	case errors.Is(err, e.ErrCatalogFetch):
		return http.StatusServiceUnavailable, e.ErrCatalogFetch.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseQueryReq собирает спецификацию запроса каталога из query-параметров.
func parseQueryReq(r *http.Request) (*usecase.QueryReq, error) {
	const (
		defaultPage     = 1
		defaultPageSize = 12
	)

	q := r.URL.Query()

	sortKey, err := usecase.ParseSortKey(q.Get("sort"))
	if err != nil {
		return nil, err
	}

	page, err := parseIntParam(q.Get("page"), defaultPage)
	if err != nil {
		return nil, err
	}

	pageSize, err := parseIntParam(q.Get("page_size"), defaultPageSize)
	if err != nil {
		return nil, err
	}

	filters, err := parseFilters(q.Get("categories"), q.Get("price_min"), q.Get("price_max"))
	if err != nil {
		return nil, err
	}

	return &usecase.QueryReq{
		Sort:     sortKey,
		Page:     page,
		PageSize: pageSize,
		Filters:  filters,
	}, nil
}

func parseFilters(categoriesParam, priceMinParam, priceMaxParam string) (usecase.QueryFilters, error) {
	var filters usecase.QueryFilters

	if categoriesParam != "" {
		for _, raw := range strings.Split(categoriesParam, ",") {
			category, err := domain.ParseCategory(strings.TrimSpace(raw))
			if err != nil {
				return filters, err
			}
			filters.Categories = append(filters.Categories, category)
		}
	}

	if priceMinParam != "" || priceMaxParam != "" {
		priceRange := &usecase.PriceRange{Min: 0, Max: maxPriceMinorUnits}

		if priceMinParam != "" {
			minPrice, err := parsePriceToMinorUnits(priceMinParam)
			if err != nil {
				return filters, err
			}
			priceRange.Min = minPrice
		}

		if priceMaxParam != "" {
			maxPrice, err := parsePriceToMinorUnits(priceMaxParam)
			if err != nil {
				return filters, err
			}
			priceRange.Max = maxPrice
		}

		filters.PriceRange = priceRange
	}

	return filters, nil
}

// Потолок цены: 1 млрд основных единиц в минорных.
const maxPriceMinorUnits = 1_000_000_000 * 100

// parsePriceToMinorUnits конвертирует строку вида "599.99" или "600"
// в минорные единицы (int64). Отклоняет отрицательные значения,
// больше двух знаков после запятой и значения выше потолка.
func parsePriceToMinorUnits(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	minor := d.Mul(decimal.NewFromInt(100)).Round(0)
	minorInt := minor.IntPart()
	if minorInt > maxPriceMinorUnits {
		return 0, e.ErrInvalidPrice
	}

	return minorInt, nil
}

func parseIntParam(s string, defaultValue int) (int, error) {
	if s == "" {
		return defaultValue, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, e.Wrap(s, e.ErrStatusBadRequest)
	}

	return v, nil
}

func parseProductID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, e.Wrap(s, e.ErrInvalidProductID)
	}

	return id, nil
}

// cartIDFromRequest извлекает идентификатор корзины из заголовка.
// Отсутствующий заголовок — новая корзина со свежим uuid.
func cartIDFromRequest(r *http.Request) (string, error) {
	raw := r.Header.Get(cartIDHeader)
	if raw == "" {
		return uuid.NewString(), nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", e.Wrap(raw, e.ErrStatusBadRequest)
	}

	return id.String(), nil
}
