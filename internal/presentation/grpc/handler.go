package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/application/usecase"
)

// Compile-time assertion that RealCareHandler implements RealCareServiceServer.
var _ RealCareServiceServer = (*RealCareHandler)(nil)

// RealCareHandler is the gRPC handler for feasibility operations.
type RealCareHandler struct {
	UnimplementedRealCareServiceServer
	uc     *usecase.Services
	logger *slog.Logger
}

// NewRealCareHandler creates a new handler with all use-case dependencies.
func NewRealCareHandler(uc *usecase.Services, logger *slog.Logger) *RealCareHandler {
	return &RealCareHandler{uc: uc, logger: logger}
}

func (h *RealCareHandler) AssessFeasibility(ctx context.Context, req *AssessFeasibilityRequest) (*AssessFeasibilityResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.uc.Assess.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "AssessFeasibility", err)
	}
	return &resp, nil
}

func (h *RealCareHandler) CalculateDSR(ctx context.Context, req *CalculateDSRRequest) (*CalculateDSRResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.uc.DSR.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "CalculateDSR", err)
	}
	return &resp, nil
}

func (h *RealCareHandler) CalculateTaxes(ctx context.Context, req *CalculateTaxesRequest) (*CalculateTaxesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.uc.Taxes.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "CalculateTaxes", err)
	}
	return &resp, nil
}

func (h *RealCareHandler) CompareScenarios(ctx context.Context, req *CompareScenariosRequest) (*CompareScenariosResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.uc.Compare.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "CompareScenarios", err)
	}
	return &resp, nil
}

func (h *RealCareHandler) BatchCompareScenarios(ctx context.Context, req *BatchCompareScenariosRequest) (*BatchCompareScenariosResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.uc.BatchCompare.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "BatchCompareScenarios", err)
	}
	return &resp, nil
}

// GetRegion never fails for an unknown code; the default profile is returned
// with is_default set.
func (h *RealCareHandler) GetRegion(ctx context.Context, req *GetRegionRequest) (*GetRegionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.uc.GetRegion.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "GetRegion", err)
	}
	return &resp, nil
}

func (h *RealCareHandler) ListRegions(ctx context.Context, _ *ListRegionsRequest) (*ListRegionsResponse, error) {
	resp, err := h.uc.ListRegions.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "ListRegions", err)
	}
	return &resp, nil
}

func (h *RealCareHandler) GetRepaymentSchedule(ctx context.Context, req *GetRepaymentScheduleRequest) (*GetRepaymentScheduleResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.uc.Schedule.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "GetRepaymentSchedule", err)
	}
	return &resp, nil
}

// toStatus maps validation failures to InvalidArgument and hides everything
// else behind Internal.
func (h *RealCareHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, dto.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		h.logger.ErrorContext(ctx, "request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
