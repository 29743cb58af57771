package handlers

import (
	"log/slog"
	"net/http"

	"github.com/GGmuzem/polish-calc/internal/calculate"
	"github.com/GGmuzem/polish-calc/pkg/models"
	"github.com/gin-gonic/gin"
)

// CalculateHandler вычисляет выражения без сохранения истории
type CalculateHandler struct {
	calc *calculate.Calculator
}

// NewCalculateHandler создает обработчик
func NewCalculateHandler(calc *calculate.Calculator) *CalculateHandler {
	return &CalculateHandler{calc: calc}
}

// Evaluate обрабатывает POST-запросы с выражениями в префиксной записи
func (h *CalculateHandler) Evaluate(c *gin.Context) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.CalculateResponse{Error: "Invalid JSON"})
		return
	}

	result, err := h.calc.Evaluate(req.Expression)
	if err != nil {
		slog.Debug("ошибка вычисления", slog.String("expression", req.Expression), slog.String("error", err.Error()))
		c.JSON(StatusForError(err), models.CalculateResponse{Error: ErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, models.CalculateResponse{Result: result})
}

// StatusForError выбирает HTTP-статус для ошибки вычисления
func StatusForError(err error) int {
	switch calculate.KindOf(err) {
	case 0, calculate.KindUnexpectedRule:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// ErrorMessage текст ошибки для клиента. Ошибки калькулятора передаются
// как есть, прочие ошибки не раскрываются.
func ErrorMessage(err error) string {
	if calculate.KindOf(err) == 0 {
		return "Internal server error"
	}
	return err.Error()
}
