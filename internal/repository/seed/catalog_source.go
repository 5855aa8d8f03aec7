package seed

import (
	"context"
	"fmt"
	"math"

	"github.com/DRSN-tech/shop-backend/internal/domain"
)

const (
	defaultCount = 100
	imagesPerPr  = 5
)

// CatalogSource — детерминированный генератор каталога для разработки и демо.
// Формулы полей повторяют исходный фикстурный датасет витрины, поэтому
// повторные выборки дают байт-в-байт одинаковый каталог.
type CatalogSource struct {
	count int
}

func NewCatalogSource(count int) *CatalogSource {
	if count <= 0 {
		count = defaultCount
	}

	return &CatalogSource{count: count}
}

// FetchCatalog генерирует каталог из count товаров. Не возвращает ошибок.
func (s *CatalogSource) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	result := make([]domain.Product, 0, s.count)
	for i := 0; i < s.count; i++ {
		result = append(result, generate(int64(i + 1)))
	}

	return result, nil
}

func generate(id int64) domain.Product {
	name := fmt.Sprintf("商品 %d", id)

	images := make([]string, 0, imagesPerPr)
	for k := 0; k < imagesPerPr; k++ {
		images = append(images, fmt.Sprintf("https://picsum.photos/seed/%d-%d/800/600", id, k))
	}

	return domain.Product{
		ID:       id,
		Name:     name,
		Price:    (id*97)%9900 + 100,
		Rating:   math.Round((float64((id*23)%40)/10+1)*10) / 10,
		Category: categoryFor(id),
		Images:   images,
		Colors:   []string{"黑色", "蓝色", "红色"},
		Sizes:    []string{"S", "M", "L", "XL"},
		Stock:    (id * 13) % 100,
		Desc:     fmt.Sprintf("这是一段关于 %s 的详细介绍。", name),
	}
}

func categoryFor(id int64) domain.Category {
	switch id % 3 {
	case 0:
		return domain.CategoryPhone
	case 1:
		return domain.CategoryComputer
	default:
		return domain.CategoryTablet
	}
}
