package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/GGmuzem/polish-calc/internal/calculate"
	"github.com/GGmuzem/polish-calc/pkg/calculator"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// CalculatorServer реализация gRPC сервиса калькулятора
type CalculatorServer struct {
	calculator.UnimplementedCalculatorServer
	calc *calculate.Calculator
}

// NewCalculatorServer создает gRPC сервис поверх вычислителя
func NewCalculatorServer(calc *calculate.Calculator) *CalculatorServer {
	return &CalculatorServer{calc: calc}
}

// Calculate вычисляет выражение из запроса и возвращает результат строкой
func (s *CalculatorServer) Calculate(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	result, err := s.calc.Evaluate(in.GetValue())
	if err != nil {
		return nil, statusForError(err)
	}
	return wrapperspb.String(result), nil
}

func statusForError(err error) error {
	switch calculate.KindOf(err) {
	case 0:
		return status.Error(codes.Internal, "internal error")
	case calculate.KindUnexpectedRule:
		return status.Error(codes.Internal, err.Error())
	default:
		return status.Error(codes.InvalidArgument, err.Error())
	}
}

func loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	attrs := []any{
		slog.String("method", info.FullMethod),
		slog.String("code", status.Code(err).String()),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		slog.Debug("gRPC вызов завершился ошибкой", append(attrs, slog.String("error", err.Error()))...)
	} else {
		slog.Debug("gRPC вызов", attrs...)
	}
	return resp, err
}
