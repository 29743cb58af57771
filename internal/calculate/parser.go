package calculate

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Порядок правил важен: "-1" это число, а одиночный "-" это оператор.
var prefixLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Operator", Pattern: `[^\s()]+`},
})

var prefixParser = participle.MustBuild[program](
	participle.Lexer(prefixLexer),
	participle.Elide("Whitespace"),
	participle.Union[Node](&Number{}, &Expression{}),
)

// Parse разбирает текст в синтаксическое дерево без ограничения глубины
func Parse(input string) (Node, error) {
	prog, err := prefixParser.ParseString("", input)
	if err != nil {
		return nil, NewParseError(err.Error())
	}
	return prog.Root, nil
}

// checkDepth отклоняет ввод с вложенностью скобок больше maxDepth,
// не запуская рекурсивный разбор
func checkDepth(input string, maxDepth int) error {
	depth := 0
	for _, r := range input {
		switch r {
		case '(':
			depth++
			if depth > maxDepth {
				return NewParseError(fmt.Sprintf("expression nested deeper than %d levels", maxDepth))
			}
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}
	return nil
}
