// Package calculate разбирает и вычисляет арифметические выражения
// в префиксной записи со скобками, например "(+ 1 (* 2 3))".
//
// Функции пакета чистые и не хранят состояния, их можно вызывать
// из нескольких горутин одновременно. Parse, Calculate и Evaluate
// рекурсивны и не ограничивают глубину вложенности: очень глубокий
// ввод может исчерпать стек. Для недоверенного ввода используйте
// Calculator с WithMaxDepth.
package calculate

import (
	"math"
	"strconv"
)

// Option настраивает Calculator
type Option func(*Calculator)

// WithMaxDepth ограничивает глубину вложенности скобок. 0 снимает ограничение.
func WithMaxDepth(depth int) Option {
	return func(c *Calculator) {
		c.maxDepth = depth
	}
}

// Calculator вычисляет выражения с заданными ограничениями
type Calculator struct {
	maxDepth int
}

// New создает калькулятор
func New(opts ...Option) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxDepth возвращает ограничение вложенности
func (c *Calculator) MaxDepth() int {
	return c.maxDepth
}

// Parse разбирает текст, предварительно проверив глубину вложенности
func (c *Calculator) Parse(input string) (Node, error) {
	if c.maxDepth > 0 {
		if err := checkDepth(input, c.maxDepth); err != nil {
			return nil, err
		}
	}
	return Parse(input)
}

// Calculate разбирает и вычисляет выражение
func (c *Calculator) Calculate(input string) (float64, error) {
	node, err := c.Parse(input)
	if err != nil {
		return 0, err
	}
	return Eval(node)
}

// Evaluate принимает строковое выражение и возвращает результат строкой
func (c *Calculator) Evaluate(input string) (string, error) {
	result, err := c.Calculate(input)
	if err != nil {
		return "", err
	}
	return FormatResult(result), nil
}

// Calculate разбирает и вычисляет выражение без ограничения глубины
func Calculate(input string) (float64, error) {
	node, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return Eval(node)
}

// Evaluate принимает строковое выражение и возвращает результат строкой
func Evaluate(input string) (string, error) {
	result, err := Calculate(input)
	if err != nil {
		return "", err
	}
	return FormatResult(result), nil
}

// FormatResult печатает число без экспоненты: 3, 17.5, inf, -inf, NaN
func FormatResult(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
