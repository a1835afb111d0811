package server

import (
	"context"

	"google.golang.org/grpc"
)

// UnaryMethod builds a grpc.MethodDesc from a method expression such as
// (*explore.Service).Like, so services do not need generated stubs.
func UnaryMethod[S any, Req any, Resp any](
	serviceName, methodName string,
	call func(S, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	fullMethod := "/" + serviceName + "/" + methodName

	return grpc.MethodDesc{
		MethodName: methodName,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullMethod returns "/service/method" as seen by interceptors.
func FullMethod(serviceName, methodName string) string {
	return "/" + serviceName + "/" + methodName
}
