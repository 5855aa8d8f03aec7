package domain

import "github.com/DRSN-tech/shop-backend/pkg/e"

// Category — категория товара.
type Category string

const (
	CategoryPhone    Category = "phone"
	CategoryComputer Category = "computer"
	CategoryTablet   Category = "tablet"
)

// ParseCategory валидирует строковое представление категории.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryPhone, CategoryComputer, CategoryTablet:
		return Category(s), nil
	default:
		return "", e.Wrap(s, e.ErrInvalidCategory)
	}
}

// Product описывает товар каталога.
// Stock — единственное изменяемое после создания поле; мутация допускается
// только через CatalogRepository.DecrementStock на пути коммита Reconciler'а.
type Product struct {
	ID       int64
	Name     string
	Price    int64 // Цена хранится в минорных единицах
	Rating   float64
	Category Category
	Images   []string
	Colors   []string
	Sizes    []string
	Stock    int64
	Desc     string
}

// Clone возвращает независимую копию товара, включая слайсы.
func (p Product) Clone() Product {
	cp := p
	cp.Images = append([]string(nil), p.Images...)
	cp.Colors = append([]string(nil), p.Colors...)
	cp.Sizes = append([]string(nil), p.Sizes...)
	return cp
}
