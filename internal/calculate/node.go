package calculate

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Node узел синтаксического дерева: *Number или *Expression.
// Набор реализаций закрыт неэкспортируемым методом.
type Node interface {
	node()
	String() string
	Depth() int
}

// Number числовой литерал в исходном текстовом виде
type Number struct {
	Pos  lexer.Position
	Text string `parser:"@Number"`
}

// Expression составное выражение "(op a b)". Оператором считается любой
// токен сразу после "(", в том числе похожий на число. Грамматика допускает
// отсутствие оператора и операндов, это проверяется при вычислении.
type Expression struct {
	Pos      lexer.Position
	Operator *string `parser:"\"(\" @(Operator | Number)?"`
	Left     Node    `parser:"@@?"`
	Right    Node    `parser:"@@? \")\""`
}

func (*Number) node()     {}
func (*Expression) node() {}

func (n *Number) String() string {
	return n.Text
}

// String печатает выражение в каноническом виде с одиночными пробелами
func (e *Expression) String() string {
	parts := make([]string, 0, 3)
	if e.Operator != nil {
		parts = append(parts, *e.Operator)
	}
	for _, operand := range []Node{e.Left, e.Right} {
		if operand != nil {
			parts = append(parts, operand.String())
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (*Number) Depth() int {
	return 1
}

// Depth возвращает глубину вложенности дерева
func (e *Expression) Depth() int {
	depth := 0
	for _, operand := range []Node{e.Left, e.Right} {
		if operand != nil && operand.Depth() > depth {
			depth = operand.Depth()
		}
	}
	return depth + 1
}

// program корень грамматики: ровно один узел на весь ввод
type program struct {
	Root Node `parser:"@@"`
}
