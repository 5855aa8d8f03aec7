package pgdb

import (
	"context"

	"github.com/DRSN-tech/shop-backend/internal/domain"
	"github.com/DRSN-tech/shop-backend/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CatalogSource — поставщик каталога поверх PostgreSQL.
// Источник только читает: остатками в рантайме владеет in-memory репозиторий.
type CatalogSource struct {
	pool *pgxpool.Pool
}

func NewCatalogSource(pool *pgxpool.Pool) *CatalogSource {
	return &CatalogSource{pool: pool}
}

// productModel представляет запись таблицы products в PostgreSQL.
type productModel struct {
	ID       int64
	Name     string
	Price    int64
	Rating   float64
	Category string
	Images   []string
	Colors   []string
	Sizes    []string
	Stock    int64
	Descr    string
}

// FetchCatalog возвращает полный каталог в порядке идентификаторов.
func (s *CatalogSource) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, rating, category, images, colors, sizes, stock, descr
		FROM products
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model productModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Price, &model.Rating, &model.Category,
			&model.Images, &model.Colors, &model.Sizes, &model.Stock, &model.Descr,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, toEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func toEntity(model *productModel) domain.Product {
	return domain.Product{
		ID:       model.ID,
		Name:     model.Name,
		Price:    model.Price,
		Rating:   model.Rating,
		Category: domain.Category(model.Category),
		Images:   model.Images,
		Colors:   model.Colors,
		Sizes:    model.Sizes,
		Stock:    model.Stock,
		Desc:     model.Descr,
	}
}
