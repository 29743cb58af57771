package agent

import (
	"context"
	"log/slog"
	"sync"
)

// Calculator вычисляет одно выражение
type Calculator interface {
	Calculate(ctx context.Context, expression string) (string, error)
}

// Result итог вычисления одного выражения пакета
type Result struct {
	Expression string
	Value      string
	Err        error
}

type job struct {
	index      int
	expression string
}

// RunBatch вычисляет выражения параллельно в workers воркерах.
// Результаты возвращаются в порядке входных выражений.
func RunBatch(ctx context.Context, calc Calculator, expressions []string, workers int) []Result {
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(expressions))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range jobs {
				value, err := calc.Calculate(ctx, j.expression)
				if err != nil {
					slog.Debug("ошибка вычисления",
						slog.Int("worker", id),
						slog.String("expression", j.expression),
						slog.String("error", err.Error()),
					)
				}
				results[j.index] = Result{Expression: j.expression, Value: value, Err: err}
			}
		}(i)
	}

	for i, expression := range expressions {
		select {
		case jobs <- job{index: i, expression: expression}:
		case <-ctx.Done():
			for k := i; k < len(expressions); k++ {
				results[k] = Result{Expression: expressions[k], Err: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
