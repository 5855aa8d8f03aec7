package usecase

import (
	"sort"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/pkg/e"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// QueryEngine — чистое преобразование снапшота каталога по спецификации запроса:
// фильтрация → устойчивая сортировка → пагинация. Не хранит состояния между
// вызовами; повторные вызовы с одним снапшотом идемпотентны.
type QueryEngine struct {
	collation language.Tag
}

// NewQueryEngine создаёт движок выдачи. Тег локали используется
// для сортировки по названию (name_asc).
func NewQueryEngine(collation language.Tag) *QueryEngine {
	return &QueryEngine{collation: collation}
}

// Apply применяет спецификацию запроса к снапшоту каталога.
func (qe *QueryEngine) Apply(products []domain.Product, req *QueryReq) (*QueryRes, error) {
	const op = "QueryEngine.Apply"

	if req.PageSize <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidPageSize)
	}

	sortKey, err := ParseSortKey(string(req.Sort))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	filtered := qe.filter(products, req.Filters)
	qe.sort(filtered, sortKey)

	return qe.paginate(filtered, req.Page, req.PageSize), nil
}

// filter оставляет товары, подходящие под набор категорий и диапазон цен.
// Перевёрнутый диапазон (min > max) нормализуется молча.
func (qe *QueryEngine) filter(products []domain.Product, filters QueryFilters) []domain.Product {
	categories := make(map[domain.Category]struct{}, len(filters.Categories))
	for _, c := range filters.Categories {
		categories[c] = struct{}{}
	}

	var minPrice, maxPrice int64
	if filters.PriceRange != nil {
		minPrice, maxPrice = filters.PriceRange.Min, filters.PriceRange.Max
		if minPrice > maxPrice {
			minPrice, maxPrice = maxPrice, minPrice
		}
	}

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if len(categories) > 0 {
			if _, ok := categories[p.Category]; !ok {
				continue
			}
		}

		if filters.PriceRange != nil && (p.Price < minPrice || p.Price > maxPrice) {
			continue
		}

		result = append(result, p)
	}

	return result
}

// sort устойчиво сортирует выдачу: товары с равным ключом сохраняют
// исходный относительный порядок.
func (qe *QueryEngine) sort(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNameAsc:
		// Коллатор не потокобезопасен, поэтому создаётся на каждый вызов.
		coll := collate.New(qe.collation)
		sort.SliceStable(products, func(i, j int) bool {
			return coll.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// paginate нарезает выдачу на страницы. Номер страницы за пределами выдачи
// не ошибка: он зажимается в [1, totalPages]. Пустая выдача — одна пустая страница.
func (qe *QueryEngine) paginate(products []domain.Product, page, pageSize int) *QueryRes {
	totalPages := (len(products) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	currentPage := page
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if start > len(products) {
		start = len(products)
	}
	if end > len(products) {
		end = len(products)
	}

	return NewQueryRes(products[start:end], totalPages, currentPage)
}
