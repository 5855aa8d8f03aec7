package memory

import (
	"context"
	"sync"

	"github.com/DRSN-tech/shop-backend/internal/domain"
)

// CartRepo — in-memory хранилище корзин по идентификатору корзины.
type CartRepo struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewCartRepo() *CartRepo {
	return &CartRepo{carts: make(map[string]*domain.Cart)}
}

// Get возвращает копию корзины; (nil, nil), если корзины нет.
func (r *CartRepo) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return nil, nil
	}

	return cart.Clone(), nil
}

// Save сохраняет копию корзины.
func (r *CartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.ID] = cart.Clone()
	return nil
}

// Delete удаляет корзину; отсутствие корзины — no-op.
func (r *CartRepo) Delete(ctx context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, cartID)
	return nil
}
