package calculate

import (
	"errors"
	"fmt"
	"strconv"
)

// Eval рекурсивно вычисляет значение узла.
// Порядок проверок: оператор, первый операнд, второй операнд,
// затем значения операндов слева направо и только потом сам оператор.
func Eval(node Node) (float64, error) {
	switch n := node.(type) {
	case *Number:
		if n == nil {
			return 0, UnexpectedRuleError("nil number")
		}
		value, err := strconv.ParseFloat(n.Text, 64)
		// литерал вне диапазона float64 становится ±Inf или 0, как при переполнении в арифметике
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, NewParseError(fmt.Sprintf("failed to parse number %q", n.Text))
		}
		return value, nil
	case *Expression:
		if n == nil {
			return 0, UnexpectedRuleError("nil expression")
		}
		return evalExpression(n)
	default:
		return 0, UnexpectedRuleError(fmt.Sprintf("%T", node))
	}
}

func evalExpression(e *Expression) (float64, error) {
	if e.Operator == nil {
		return 0, MissingOperatorError()
	}
	if e.Left == nil || e.Right == nil {
		return 0, MissingOperandError()
	}

	left, err := Eval(e.Left)
	if err != nil {
		return 0, err
	}
	right, err := Eval(e.Right)
	if err != nil {
		return 0, err
	}

	switch op := *e.Operator; op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, DivisionByZeroError()
		}
		return left / right, nil
	default:
		return 0, UnknownOperatorError(op)
	}
}
