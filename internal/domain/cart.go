package domain

// CartLine — одна позиция корзины.
// Идентичность позиции определяется тройкой (ProductID, Size, Color):
// две позиции с одинаковым ключом сливаются при добавлении.
type CartLine struct {
	ProductID int64
	Size      string
	Color     string
	Qty       int64
}

func (l CartLine) sameKey(productID int64, size, color string) bool {
	return l.ProductID == productID && l.Size == size && l.Color == color
}

// Cart — корзина покупателя. Позиции хранятся в порядке добавления,
// этот порядок определяет порядок отказов при сверке на checkout.
type Cart struct {
	ID    string
	Lines []CartLine
}

func NewCart(id string) *Cart {
	return &Cart{ID: id}
}

// Add добавляет позицию. Если позиция с тем же ключом уже есть,
// количества складываются; иначе позиция добавляется в конец,
// неположительное количество приводится к 1.
func (c *Cart) Add(line CartLine) {
	for i := range c.Lines {
		if c.Lines[i].sameKey(line.ProductID, line.Size, line.Color) {
			c.Lines[i].Qty += max(1, line.Qty)
			return
		}
	}

	line.Qty = max(1, line.Qty)
	c.Lines = append(c.Lines, line)
}

// UpdateQty устанавливает количество для позиции с совпадающим ключом.
// Отсутствие позиции не считается ошибкой: UI может прислать устаревший ключ.
func (c *Cart) UpdateQty(productID int64, size, color string, qty int64) {
	for i := range c.Lines {
		if c.Lines[i].sameKey(productID, size, color) {
			c.Lines[i].Qty = max(1, qty)
			return
		}
	}
}

// Remove удаляет позицию с совпадающим ключом; no-op, если её нет.
func (c *Cart) Remove(productID int64, size, color string) {
	for i := range c.Lines {
		if c.Lines[i].sameKey(productID, size, color) {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear очищает корзину.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total считает сумму корзины в минорных единицах.
// Позиции, чей товар не разрешается через priceLookup, дают вклад 0:
// неполные данные каталога не должны блокировать подсчёт суммы.
func (c *Cart) Total(priceLookup func(productID int64) (int64, bool)) int64 {
	var total int64
	for _, line := range c.Lines {
		price, ok := priceLookup(line.ProductID)
		if !ok {
			continue
		}
		total += price * line.Qty
	}

	return total
}

// Clone возвращает независимую копию корзины.
func (c *Cart) Clone() *Cart {
	return &Cart{ID: c.ID, Lines: append([]CartLine(nil), c.Lines...)}
}
