package usecase

import "context"

// CatalogUC — операции каталога, доступные слою представления.
type CatalogUC interface {
	Query(ctx context.Context, req *QueryReq) (*QueryRes, error)
	GetProduct(ctx context.Context, id int64) (*ProductRes, error)
	Recommendations(ctx context.Context, productID int64, limit int) ([]ProductRes, error)
	Status() LoadStatus
}

// CartUC — операции корзины, доступные слою представления.
type CartUC interface {
	GetCart(ctx context.Context, cartID string) (*CartView, error)
	AddLine(ctx context.Context, req *AddLineReq) (*CartView, error)
	UpdateQty(ctx context.Context, req *UpdateQtyReq) (*CartView, error)
	RemoveLine(ctx context.Context, req *RemoveLineReq) (*CartView, error)
	ClearCart(ctx context.Context, cartID string) error
}

// CheckoutUC — сверка корзины с остатками и коммит списаний.
type CheckoutUC interface {
	Checkout(ctx context.Context, cartID string) (*CheckoutRes, error)
}
