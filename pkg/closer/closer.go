package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Closer накапливает функции освобождения ресурсов и закрывает их
// в порядке LIFO при остановке приложения.
type Closer struct {
	mu    sync.Mutex
	once  sync.Once
	funcs []Func
}

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

func New() *Closer {
	return &Closer{}
}

// Add добавляет функцию в список закрытия.
func (c *Closer) Add(f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
}

// Close закрывает все зарегистрированные ресурсы в порядке LIFO.
// Ошибки отдельных функций не прерывают процесс и собираются в одну.
// При отмене контекста оставшиеся функции не вызываются.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.mu.Unlock()

		var errs []string
		for i := len(funcs) - 1; i >= 0; i-- {
			select {
			case <-ctx.Done():
				errs = append(errs, fmt.Sprintf("[!] shutdown interrupted, %d func(s) skipped", i+1))
				err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
				return
			default:
			}

			if ferr := funcs[i](ctx); ferr != nil {
				errs = append(errs, fmt.Sprintf("[!] %v", ferr))
			}
		}

		if len(errs) > 0 {
			err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
		}
	})

	return err
}
