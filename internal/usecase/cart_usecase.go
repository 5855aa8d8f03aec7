package usecase

import (
	"context"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/pkg/e"
	"github.com/DRSN-tech/shop-backend/pkg/logger"
)

// CartUseCase реализует операции корзины. Мутации корзины безусловны:
// остатки проверяются только на этапе сверки при оформлении заказа.
type CartUseCase struct {
	cartRepo    CartRepository
	catalogRepo CatalogRepository
	logger      logger.Logger
}

func NewCartUC(cartRepo CartRepository, catalogRepo CatalogRepository, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// GetCart возвращает корзину с подсчитанной суммой.
// Отсутствующая корзина трактуется как пустая.
func (c *CartUseCase) GetCart(ctx context.Context, cartID string) (*CartView, error) {
	const op = "CartUseCase.GetCart"

	cart, err := c.loadCart(ctx, cartID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.view(cart), nil
}

// AddLine добавляет позицию в корзину; позиции с совпадающим ключом
// (товар, размер, цвет) сливаются.
func (c *CartUseCase) AddLine(ctx context.Context, req *AddLineReq) (*CartView, error) {
	const op = "CartUseCase.AddLine"

	cart, err := c.loadCart(ctx, req.CartID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	cart.Add(domain.CartLine{
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
		Qty:       req.Qty,
	})

	if err := c.cartRepo.Save(ctx, cart); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.view(cart), nil
}

// UpdateQty меняет количество позиции; отсутствие позиции — no-op.
func (c *CartUseCase) UpdateQty(ctx context.Context, req *UpdateQtyReq) (*CartView, error) {
	const op = "CartUseCase.UpdateQty"

	cart, err := c.loadCart(ctx, req.CartID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	cart.UpdateQty(req.ProductID, req.Size, req.Color, req.Qty)

	if err := c.cartRepo.Save(ctx, cart); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.view(cart), nil
}

// RemoveLine удаляет позицию; отсутствие позиции — no-op.
func (c *CartUseCase) RemoveLine(ctx context.Context, req *RemoveLineReq) (*CartView, error) {
	const op = "CartUseCase.RemoveLine"

	cart, err := c.loadCart(ctx, req.CartID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	cart.Remove(req.ProductID, req.Size, req.Color)

	if err := c.cartRepo.Save(ctx, cart); err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.view(cart), nil
}

// ClearCart опустошает корзину.
func (c *CartUseCase) ClearCart(ctx context.Context, cartID string) error {
	const op = "CartUseCase.ClearCart"

	if err := c.cartRepo.Delete(ctx, cartID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// loadCart достаёт корзину из хранилища; отсутствующая корзина заменяется пустой.
func (c *CartUseCase) loadCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := c.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = domain.NewCart(cartID)
	}

	return cart, nil
}

// view собирает CartView, разрешая цены через каталог.
// Товары, отсутствующие в каталоге, дают вклад 0 в сумму.
func (c *CartUseCase) view(cart *domain.Cart) *CartView {
	total := cart.Total(func(productID int64) (int64, bool) {
		product, ok := c.catalogRepo.GetByID(productID)
		if !ok {
			return 0, false
		}
		return product.Price, true
	})

	return NewCartView(cart, total)
}
