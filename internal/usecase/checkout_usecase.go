package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/shop-backend/pkg/e"
	"github.com/DRSN-tech/shop-backend/pkg/logger"
	"github.com/google/uuid"
)

// CheckoutUseCase — Reconciler: сверяет корзину с текущими остатками и либо
// атомарно списывает их, либо возвращает поимённый список отказов.
// Промежуточного состояния между вызовами нет: каждая попытка — свежая сверка.
type CheckoutUseCase struct {
	cartRepo    CartRepository
	catalogRepo CatalogRepository
	producer    CheckoutEventProducer
	logger      logger.Logger

	// Сверка и коммит сериализуются: два конкурентных оформления не должны
	// одновременно увидеть достаточный остаток и оба его списать.
	mu sync.Mutex
}

func NewCheckoutUC(
	cartRepo CartRepository,
	catalogRepo CatalogRepository,
	producer CheckoutEventProducer,
	logger logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		producer:    producer,
		logger:      logger,
	}
}

// Checkout выполняет сверку корзины с остатками.
//
// Запрошенные количества агрегируются по товару: варианты размера/цвета
// делят один пул остатков. Товар, отсутствующий в каталоге, считается
// имеющим остаток 0. Любая нехватка даёт Rejected со списком отказов
// в порядке первого появления товара в корзине — без единой мутации.
// Иначе остатки списываются атомарно, корзина очищается, публикуется событие.
func (c *CheckoutUseCase) Checkout(ctx context.Context, cartID string) (*CheckoutRes, error) {
	const op = "CheckoutUseCase.Checkout"

	cart, err := c.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if cart == nil || len(cart.Lines) == 0 {
		return nil, e.Wrap(op, e.ErrCartEmpty)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Агрегация запрошенных количеств по товару, порядок — первое появление в корзине.
	order := make([]int64, 0, len(cart.Lines))
	requested := make(map[int64]int64, len(cart.Lines))
	for _, line := range cart.Lines {
		if _, ok := requested[line.ProductID]; !ok {
			order = append(order, line.ProductID)
		}
		requested[line.ProductID] += line.Qty
	}

	var failures []CheckoutFailure
	for _, productID := range order {
		var available int64
		if product, ok := c.catalogRepo.GetByID(productID); ok {
			available = product.Stock
		}

		if requested[productID] > available {
			failures = append(failures, CheckoutFailure{
				ProductID:    productID,
				RequestedQty: requested[productID],
				AvailableQty: available,
			})
		}
	}

	if len(failures) > 0 {
		return NewRejectedRes(failures), nil
	}

	// Репозиторий перепроверяет остатки под своим замком; после успешной
	// сверки под c.mu эта ветка недостижима.
	if err := c.catalogRepo.DecrementStock(requested); err != nil {
		return nil, e.Wrap(op, err)
	}

	total := cart.Total(func(productID int64) (int64, bool) {
		product, ok := c.catalogRepo.GetByID(productID)
		if !ok {
			return 0, false
		}
		return product.Price, true
	})

	if err := c.cartRepo.Delete(ctx, cartID); err != nil {
		c.logger.Warnf("failed to clear cart %s after checkout: %v", cartID, err)
	}

	c.publishCompleted(ctx, cartID, order, requested, total)

	return NewCommittedRes(), nil
}

// publishCompleted отправляет событие оформления. Ошибка публикации не влияет
// на исход checkout — списание уже закоммичено, событие best-effort.
func (c *CheckoutUseCase) publishCompleted(ctx context.Context, cartID string, order []int64, requested map[int64]int64, total int64) {
	if c.producer == nil {
		return
	}

	quantities := make([]EventQty, 0, len(order))
	for _, productID := range order {
		quantities = append(quantities, EventQty{ProductID: productID, Qty: requested[productID]})
	}

	event := &CheckoutCompletedEvent{
		EventID:    uuid.NewString(),
		CartID:     cartID,
		Quantities: quantities,
		Total:      total,
		OccurredAt: time.Now().UTC(),
	}

	if err := c.producer.PublishCheckoutCompleted(ctx, event); err != nil {
		c.logger.Warnf("failed to publish checkout event %s: %v", event.EventID, err)
	}
}
