package usecase

import (
	"context"

	"github.com/DRSN-tech/shop-backend/internal/domain"
)

// CatalogRepository — авторитетное хранилище товаров и их остатков.
type CatalogRepository interface {
	// GetAll возвращает снапшот каталога (копии товаров).
	GetAll() []domain.Product
	// GetByID возвращает товар по идентификатору.
	GetByID(id int64) (domain.Product, bool)
	// Replace атомарно подменяет содержимое каталога свежей выборкой поставщика.
	Replace(products []domain.Product)
	// DecrementStock атомарно списывает остатки по всем товарам сразу.
	// Либо применяются все списания, либо ни одного (e.ErrInsufficientStock).
	// Единственный мутатор остатков; вызывается только из коммита Reconciler'а.
	DecrementStock(decrements map[int64]int64) error
}

// CartRepository — хранилище корзин по идентификатору корзины.
type CartRepository interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

// CatalogSource — внешний поставщик каталога.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]domain.Product, error)
}

// CheckoutEventProducer публикует событие успешного оформления заказа.
type CheckoutEventProducer interface {
	PublishCheckoutCompleted(ctx context.Context, event *CheckoutCompletedEvent) error
}
