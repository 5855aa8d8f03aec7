package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/pkg/e"
	"github.com/DRSN-tech/shop-backend/pkg/jitter"
	"github.com/DRSN-tech/shop-backend/pkg/logger"
)

// LoadStatus — состояние загрузки каталога от внешнего поставщика.
type LoadStatus string

const (
	StatusIdle    LoadStatus = "idle"
	StatusLoading LoadStatus = "loading"
	StatusReady   LoadStatus = "ready"
	StatusError   LoadStatus = "error"
)

// CatalogUseCase реализует операции каталога: загрузку снапшота от поставщика
// и выдачу (фильтрация, сортировка, пагинация) поверх репозитория.
type CatalogUseCase struct {
	catalogRepo CatalogRepository
	source      CatalogSource
	engine      *QueryEngine
	logger      logger.Logger

	mu     sync.RWMutex
	status LoadStatus
	loaded bool
}

func NewCatalogUC(
	catalogRepo CatalogRepository,
	source CatalogSource,
	engine *QueryEngine,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		catalogRepo: catalogRepo,
		source:      source,
		engine:      engine,
		logger:      logger,
		status:      StatusIdle,
	}
}

// LoadCatalog запрашивает каталог у поставщика и подменяет содержимое репозитория.
// При ошибке поставщика прежнее состояние остаётся нетронутым, а ошибка
// (e.ErrCatalogFetch) ретраибельна: достаточно позвать LoadCatalog ещё раз.
func (c *CatalogUseCase) LoadCatalog(ctx context.Context) error {
	const op = "CatalogUseCase.LoadCatalog"

	c.setStatus(StatusLoading)

	products, err := c.source.FetchCatalog(ctx)
	if err != nil {
		c.setStatus(StatusError)
		return e.Wrap(op, e.Wrap(err.Error(), e.ErrCatalogFetch))
	}

	c.catalogRepo.Replace(products)

	c.mu.Lock()
	c.status = StatusReady
	c.loaded = true
	c.mu.Unlock()

	c.logger.Infof("catalog loaded: %d products", len(products))
	return nil
}

// StartRefreshLoop периодически перечитывает каталог от поставщика.
// Неудачные попытки повторяются с экспоненциальным отступлением и джиттером.
// Блокируется до отмены контекста.
func (c *CatalogUseCase) StartRefreshLoop(ctx context.Context, interval time.Duration) {
	const (
		backoffBase = 2 * time.Second
		backoffMax  = 2 * time.Minute
	)

	attempt := 0
	for {
		delay := interval
		if attempt > 0 {
			delay = jitter.ExponentialBackoff(backoffBase, backoffMax, attempt-1, jitter.DefaultJitter)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		if err := c.LoadCatalog(ctx); err != nil {
			attempt++
			c.logger.Warnf("catalog refresh failed (attempt %d): %v", attempt, err)
			continue
		}
		attempt = 0
	}
}

// Status возвращает текущее состояние загрузки каталога.
func (c *CatalogUseCase) Status() LoadStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Query применяет спецификацию запроса к текущему снапшоту каталога.
func (c *CatalogUseCase) Query(ctx context.Context, req *QueryReq) (*QueryRes, error) {
	const op = "CatalogUseCase.Query"

	if err := c.ensureLoaded(); err != nil {
		return nil, e.Wrap(op, err)
	}

	res, err := c.engine.Apply(c.catalogRepo.GetAll(), req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// GetProduct возвращает карточку товара по идентификатору.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id int64) (*ProductRes, error) {
	const op = "CatalogUseCase.GetProduct"

	if err := c.ensureLoaded(); err != nil {
		return nil, e.Wrap(op, err)
	}

	product, ok := c.catalogRepo.GetByID(id)
	if !ok {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	return NewProductRes(product), nil
}

// Recommendations возвращает до limit товаров той же категории, что и
// указанный товар, лучшие по рейтингу первыми; сам товар исключается.
func (c *CatalogUseCase) Recommendations(ctx context.Context, productID int64, limit int) ([]ProductRes, error) {
	const op = "CatalogUseCase.Recommendations"

	if limit <= 0 {
		limit = defaultRecommendations
	}

	anchor, err := c.GetProduct(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res, err := c.engine.Apply(c.catalogRepo.GetAll(), &QueryReq{
		Sort:     SortRatingDesc,
		Page:     1,
		PageSize: limit + 1, // анкер может попасть в выдачу
		Filters:  QueryFilters{Categories: []domain.Category{anchor.Category}},
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]ProductRes, 0, limit)
	for _, p := range res.Items {
		if p.ID == productID {
			continue
		}
		result = append(result, *NewProductRes(p))
		if len(result) == limit {
			break
		}
	}

	return result, nil
}

const defaultRecommendations = 6

// ensureLoaded проверяет, что каталог хотя бы раз успешно загружен.
func (c *CatalogUseCase) ensureLoaded() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return e.ErrCatalogNotReady
	}
	return nil
}

func (c *CatalogUseCase) setStatus(s LoadStatus) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}
