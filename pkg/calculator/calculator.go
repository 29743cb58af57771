package calculator

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Полные имена метода и сервиса
const (
	ServiceName         = "calculator.Calculator"
	CalculateFullMethod = "/calculator.Calculator/Calculate"
)

// CalculatorClient клиент сервиса: строка с выражением на входе, строка с результатом на выходе.
// Ошибки вычисления приходят как status с кодом InvalidArgument и текстом ошибки.
type CalculatorClient interface {
	Calculate(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

// CalculatorServer серверная часть сервиса
type CalculatorServer interface {
	Calculate(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// UnimplementedCalculatorServer базовая реализация CalculatorServer
type UnimplementedCalculatorServer struct{}

// Calculate стаб
func (UnimplementedCalculatorServer) Calculate(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "метод Calculate не реализован")
}

// RegisterCalculatorServer регистрирует сервер Calculator в gRPC
func RegisterCalculatorServer(s grpc.ServiceRegistrar, srv CalculatorServer) {
	s.RegisterService(&Calculator_ServiceDesc, srv)
}

// Calculator_ServiceDesc описание сервиса без сгенерированного кода:
// сообщения это стандартные wrapperspb.StringValue
var Calculator_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Calculate",
			Handler:    _Calculator_Calculate_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calculator.proto",
}

func _Calculator_Calculate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServer).Calculate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalculateFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculatorServer).Calculate(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

type calculatorClient struct {
	cc grpc.ClientConnInterface
}

// NewCalculatorClient создает нового клиента для сервиса Calculator
func NewCalculatorClient(cc grpc.ClientConnInterface) CalculatorClient {
	return &calculatorClient{cc}
}

// Calculate вызывает Calculate у сервера
func (c *calculatorClient) Calculate(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, CalculateFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
