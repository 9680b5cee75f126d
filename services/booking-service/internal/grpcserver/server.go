//go:build protogen

package grpcserver

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	availabilityv1 "github.com/chefbook-app/chefbook/protos/gen/availability/v1"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/availability"
	"github.com/chefbook-app/chefbook/services/booking-service/internal/model"
)

// server exposes slot queries to internal services over gRPC. It serves the
// same engine as the HTTP surface; booking writes stay HTTP-only.
type server struct {
	availabilityv1.UnimplementedAvailabilityServiceServer
	engine *availability.Engine
}

func Register(grpcServer *grpc.Server, engine *availability.Engine) {
	availabilityv1.RegisterAvailabilityServiceServer(grpcServer, &server{engine: engine})
}

func (s *server) GetSlots(ctx context.Context, req *availabilityv1.SlotsRequest) (*availabilityv1.SlotsResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", req.GetDate(), time.UTC)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "date must be YYYY-MM-DD")
	}
	minDuration := time.Duration(req.GetMinDurationMinutes()) * time.Minute

	slots, err := s.engine.FindSlots(ctx, req.GetChefId(), date, minDuration)
	if err != nil {
		return nil, domainStatus(err)
	}

	resp := &availabilityv1.SlotsResponse{}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, &availabilityv1.TimeSlot{
			ChefId:          slot.ChefID,
			ChefName:        slot.ChefName,
			Date:            slot.Date.UTC().Format("2006-01-02"),
			StartUtc:        timestamppb.New(slot.Start.UTC()),
			EndUtc:          timestamppb.New(slot.End.UTC()),
			DurationMinutes: int32(slot.DurationMinutes),
			Note:            slot.Note,
		})
	}
	return resp, nil
}

func (s *server) CheckAvailability(ctx context.Context, req *availabilityv1.CheckRequest) (*availabilityv1.CheckResponse, error) {
	start := req.GetStartUtc().AsTime()
	end := req.GetEndUtc().AsTime()

	free, err := s.engine.IsAvailable(ctx, req.GetChefId(), start, start, end)
	if err != nil {
		return nil, domainStatus(err)
	}
	return &availabilityv1.CheckResponse{Available: free}, nil
}

func domainStatus(err error) error {
	switch {
	case errors.Is(err, model.ErrChefNotFound):
		return status.Error(codes.NotFound, "chef not found")
	case errors.Is(err, model.ErrInvalidDateRange), errors.Is(err, model.ErrInvalidSelection):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "availability query failed")
	}
}
