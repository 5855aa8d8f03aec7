package memory

import (
	"fmt"
	"sync"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

// CatalogRepo — авторитетное in-memory хранилище каталога и остатков.
// Вся мутация идёт под одним write-замком (single-writer), поэтому два
// конкурентных списания не могут оба увидеть достаточный остаток.
type CatalogRepo struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[int64]int // индекс в products
}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{byID: make(map[int64]int)}
}

// Replace атомарно подменяет содержимое каталога свежей выборкой поставщика.
// Порядок товаров сохраняется: он определяет базовый порядок выдачи.
func (r *CatalogRepo) Replace(products []domain.Product) {
	next := make([]domain.Product, 0, len(products))
	index := make(map[int64]int, len(products))
	for _, p := range products {
		if _, ok := index[p.ID]; ok {
			continue // дубликат идентификатора, первая запись выигрывает
		}
		index[p.ID] = len(next)
		next = append(next, p.Clone())
	}

	r.mu.Lock()
	r.products = next
	r.byID = index
	r.mu.Unlock()
}

// GetAll возвращает снапшот каталога. Копии независимы: мутации снапшота
// не затрагивают хранилище, и наоборот.
func (r *CatalogRepo) GetAll() []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		snapshot = append(snapshot, p.Clone())
	}

	return snapshot
}

// GetByID возвращает копию товара по идентификатору.
func (r *CatalogRepo) GetByID(id int64) (domain.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return domain.Product{}, false
	}

	return r.products[i].Clone(), true
}

// DecrementStock атомарно списывает остатки по всем товарам из decrements.
// Сначала проверяются все позиции, затем применяются все списания: частичное
// применение невозможно. Нехватка по любому товару — e.ErrInsufficientStock;
// при корректном использовании Reconciler уже отсеял такие корзины, так что
// это защитная перепроверка инварианта stock >= 0, а не основная валидация.
func (r *CatalogRepo) DecrementStock(decrements map[int64]int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, qty := range decrements {
		if qty < 0 {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("negative decrement for product %d", id))
		}

		i, ok := r.byID[id]
		if !ok {
			return e.Wrap(whereami.WhereAmI(), e.Wrap(fmt.Sprintf("product %d", id), e.ErrInsufficientStock))
		}
		if r.products[i].Stock < qty {
			return e.Wrap(whereami.WhereAmI(), e.Wrap(fmt.Sprintf("product %d", id), e.ErrInsufficientStock))
		}
	}

	for id, qty := range decrements {
		r.products[r.byID[id]].Stock -= qty
	}

	return nil
}
