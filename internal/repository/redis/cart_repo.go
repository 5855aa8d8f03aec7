package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/shop-backend/internal/cfg"
	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/pkg/clients"
	"github.com/DRSN-tech/shop-backend/pkg/e"
	"github.com/DRSN-tech/shop-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CartRepo хранит корзины в Redis как JSON-значения с TTL.
// Истёкшая корзина неотличима от отсутствующей: покупатель начнёт с пустой.
type CartRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCartRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CartRepo {
	return &CartRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// cartLineModel — запись позиции корзины в Redis.
type cartLineModel struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Qty       int64  `json:"qty"`
}

// cartModel — JSON-представление корзины в Redis.
type cartModel struct {
	ID    string          `json:"id"`
	Lines []cartLineModel `json:"lines"`
}

// Get возвращает корзину по идентификатору; (nil, nil) при промахе.
func (c *CartRepo) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	data, err := c.client.Client.Get(ctx, c.cartKey(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model cartModel
	if err := json.Unmarshal(data, &model); err != nil {
		// Битое значение выбрасываем, чтобы не ломать корзину навсегда.
		c.logger.Warnf("corrupted cart %s in redis, dropping: %v", cartID, err)
		if err := c.client.Client.Del(ctx, c.cartKey(cartID)).Err(); err != nil {
			c.logger.Warnf("redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return c.toEntity(&model), nil
}

// Save сохраняет корзину с TTL из конфигурации.
func (c *CartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(c.toModel(cart))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, c.cartKey(cart.ID), data, c.cfg.CartTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет корзину; отсутствие ключа — no-op.
func (c *CartRepo) Delete(ctx context.Context, cartID string) error {
	if err := c.client.Client.Del(ctx, c.cartKey(cartID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CartRepo) toModel(cart *domain.Cart) *cartModel {
	lines := make([]cartLineModel, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, cartLineModel{
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Qty:       l.Qty,
		})
	}

	return &cartModel{ID: cart.ID, Lines: lines}
}

func (c *CartRepo) toEntity(model *cartModel) *domain.Cart {
	cart := domain.NewCart(model.ID)
	for _, l := range model.Lines {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Qty:       l.Qty,
		})
	}

	return cart
}

// cartKey возвращает Redis-ключ корзины.
func (c *CartRepo) cartKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}
