//go:build protogen

package main

import (
	"context"
	"log/slog"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/chefbook-app/chefbook/libs/grpcx"
	"github.com/chefbook-app/chefbook/libs/runtime"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/availability"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/grpcserver"
)

func startGrpcServer(ctx context.Context, logger *slog.Logger, engine *availability.Engine) error {
	port := runtime.Getenv("GRPC_PORT", "9094")
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(grpcx.UnaryServerRequestIDInterceptor()),
	)
	grpcserver.Register(srv, engine)

	go func() {
		logger.Info("grpc server starting", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpc server error", "err", err)
		}
	}()

	go func() {
		<-ctx.Done()
		srv.GracefulStop()
	}()

	return nil
}
