package usecase

import (
	"time"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/pkg/e"
)

// QUERY ENGINE

// SortKey — ключ сортировки выдачи каталога.
type SortKey string

const (
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingDesc SortKey = "rating_desc"
	SortNameAsc    SortKey = "name_asc"
)

// ParseSortKey валидирует строковое представление ключа сортировки.
// Пустая строка трактуется как сортировка по умолчанию (price_asc).
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortPriceAsc, nil
	}

	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNameAsc:
		return SortKey(s), nil
	default:
		return "", e.Wrap(s, e.ErrInvalidSortKey)
	}
}

// PriceRange — диапазон цен в минорных единицах, границы включительно.
// Вызывающая сторона может передать перевёрнутый диапазон (min > max) —
// движок обязан молча нормализовать его, а не возвращать ошибку.
type PriceRange struct {
	Min int64
	Max int64
}

// QueryFilters — фильтры выдачи каталога.
// Пустой набор категорий означает «все категории», nil-диапазон цен — без ограничения.
type QueryFilters struct {
	Categories []domain.Category
	PriceRange *PriceRange
}

// QueryReq — эфемерная спецификация запроса каталога.
type QueryReq struct {
	Sort     SortKey
	Page     int
	PageSize int
	Filters  QueryFilters
}

// QueryRes — одна страница отфильтрованной и отсортированной выдачи.
type QueryRes struct {
	Items       []domain.Product
	TotalPages  int
	CurrentPage int
}

// ProductRes — DTO карточки товара для внешнего использования.
type ProductRes struct {
	ID       int64
	Name     string
	Price    int64
	Rating   float64
	Category domain.Category
	Images   []string
	Colors   []string
	Sizes    []string
	Stock    int64
	Desc     string
}

// CART

// CartView — корзина с подсчитанной суммой для отдачи наружу.
type CartView struct {
	CartID string
	Lines  []domain.CartLine
	Total  int64
}

// AddLineReq — запрос добавления позиции в корзину.
type AddLineReq struct {
	CartID    string
	ProductID int64
	Size      string
	Color     string
	Qty       int64
}

// UpdateQtyReq — запрос изменения количества позиции.
type UpdateQtyReq struct {
	CartID    string
	ProductID int64
	Size      string
	Color     string
	Qty       int64
}

// RemoveLineReq — запрос удаления позиции.
type RemoveLineReq struct {
	CartID    string
	ProductID int64
	Size      string
	Color     string
}

// CHECKOUT

// CheckoutFailure — нехватка остатков по одному товару.
type CheckoutFailure struct {
	ProductID    int64
	RequestedQty int64
	AvailableQty int64
}

// CheckoutRes — результат сверки корзины с остатками: либо Committed,
// либо список отказов в порядке первого появления товара в корзине.
// Отказ — штатный бизнес-результат, а не ошибка.
type CheckoutRes struct {
	Committed bool
	Failures  []CheckoutFailure
}

// CheckoutCompletedEvent — событие успешного оформления заказа.
type CheckoutCompletedEvent struct {
	EventID    string    `json:"event_id"`
	CartID     string    `json:"cart_id"`
	Quantities []EventQty `json:"quantities"`
	Total      int64     `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventQty — списанное количество по одному товару.
type EventQty struct {
	ProductID int64 `json:"product_id"`
	Qty       int64 `json:"qty"`
}

// MAPPERS

func NewCommittedRes() *CheckoutRes {
	return &CheckoutRes{Committed: true}
}

func NewRejectedRes(failures []CheckoutFailure) *CheckoutRes {
	return &CheckoutRes{Failures: failures}
}

func NewCartView(cart *domain.Cart, total int64) *CartView {
	return &CartView{
		CartID: cart.ID,
		Lines:  append([]domain.CartLine(nil), cart.Lines...),
		Total:  total,
	}
}

func NewProductRes(p domain.Product) *ProductRes {
	return &ProductRes{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Rating:   p.Rating,
		Category: p.Category,
		Images:   p.Images,
		Colors:   p.Colors,
		Sizes:    p.Sizes,
		Stock:    p.Stock,
		Desc:     p.Desc,
	}
}

func NewQueryRes(items []domain.Product, totalPages, currentPage int) *QueryRes {
	return &QueryRes{
		Items:       items,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
	}
}
