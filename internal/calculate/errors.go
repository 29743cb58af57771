package calculate

import (
	"errors"
	"fmt"
)

// ErrorKind классифицирует ошибки вычисления
type ErrorKind int

const (
	KindParse ErrorKind = iota + 1
	KindDivisionByZero
	KindUnknownOperator
	KindMissingOperand
	KindMissingOperator
	KindUnexpectedRule
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "ParseError"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindUnknownOperator:
		return "UnknownOperator"
	case KindMissingOperand:
		return "MissingOperand"
	case KindMissingOperator:
		return "MissingOperator"
	case KindUnexpectedRule:
		return "UnexpectedRule"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// CalcError описывает ошибку разбора или вычисления выражения.
// Detail содержит сообщение парсера, токен оператора или описание узла.
type CalcError struct {
	Kind   ErrorKind
	Detail string
}

func (e *CalcError) Error() string {
	switch e.Kind {
	case KindParse:
		return "Parse error: " + e.Detail
	case KindDivisionByZero:
		return "Division by zero"
	case KindUnknownOperator:
		return "Unknown operator: " + e.Detail
	case KindMissingOperand:
		return "Missing operand"
	case KindMissingOperator:
		return "Missing operator"
	case KindUnexpectedRule:
		return "Unexpected rule: " + e.Detail
	}
	return e.Kind.String()
}

// Is сравнивает ошибки по виду, поэтому errors.Is(err, ErrDivisionByZero)
// срабатывает для любой ошибки деления на ноль.
func (e *CalcError) Is(target error) bool {
	t, ok := target.(*CalcError)
	return ok && t.Kind == e.Kind
}

// Сигнальные значения для errors.Is
var (
	ErrParse           = &CalcError{Kind: KindParse}
	ErrDivisionByZero  = &CalcError{Kind: KindDivisionByZero}
	ErrUnknownOperator = &CalcError{Kind: KindUnknownOperator}
	ErrMissingOperand  = &CalcError{Kind: KindMissingOperand}
	ErrMissingOperator = &CalcError{Kind: KindMissingOperator}
	ErrUnexpectedRule  = &CalcError{Kind: KindUnexpectedRule}
)

// NewParseError создает ошибку разбора с описанием
func NewParseError(message string) *CalcError {
	return &CalcError{Kind: KindParse, Detail: message}
}

// DivisionByZeroError создаёт ошибку деления на ноль
func DivisionByZeroError() *CalcError {
	return &CalcError{Kind: KindDivisionByZero}
}

// UnknownOperatorError создаёт ошибку неизвестного оператора
func UnknownOperatorError(op string) *CalcError {
	return &CalcError{Kind: KindUnknownOperator, Detail: op}
}

// MissingOperandError создаёт ошибку отсутствующего операнда
func MissingOperandError() *CalcError {
	return &CalcError{Kind: KindMissingOperand}
}

// MissingOperatorError создаёт ошибку отсутствующего оператора
func MissingOperatorError() *CalcError {
	return &CalcError{Kind: KindMissingOperator}
}

// UnexpectedRuleError сигнализирует о форме узла, которую грамматика не порождает
func UnexpectedRuleError(desc string) *CalcError {
	return &CalcError{Kind: KindUnexpectedRule, Detail: desc}
}

// KindOf возвращает вид ошибки или 0, если err не является CalcError
func KindOf(err error) ErrorKind {
	var calcErr *CalcError
	if errors.As(err, &calcErr) {
		return calcErr.Kind
	}
	return 0
}
