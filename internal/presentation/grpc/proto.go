package grpc

// proto.go defines the gRPC server interface for realcare/v1/realcare.proto.
// Messages are exchanged with the JSON codec, so the application DTOs double
// as the wire messages.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
)

const serviceName = "realcare.v1.RealCareService"

// Wire messages.
type (
	AssessFeasibilityRequest      = dto.AssessFeasibilityRequest
	AssessFeasibilityResponse     = dto.RealityScoreResponse
	CalculateDSRRequest           = dto.CalculateDSRRequest
	CalculateDSRResponse          = dto.DSRResponse
	CalculateTaxesRequest         = dto.CalculateTaxesRequest
	CalculateTaxesResponse        = dto.TaxResponse
	CompareScenariosRequest       = dto.CompareScenariosRequest
	CompareScenariosResponse      = dto.ScenarioResponse
	BatchCompareScenariosRequest  = dto.BatchCompareScenariosRequest
	BatchCompareScenariosResponse = dto.BatchScenarioResponse
	GetRegionRequest              = dto.GetRegionRequest
	GetRegionResponse             = dto.RegionResponse
	ListRegionsResponse           = dto.RegionListResponse
	GetRepaymentScheduleRequest   = dto.RepaymentScheduleRequest
	GetRepaymentScheduleResponse  = dto.RepaymentScheduleResponse
)

// ListRegionsRequest has no fields.
type ListRegionsRequest struct{}

// RealCareServiceServer is the server API for RealCareService.
type RealCareServiceServer interface {
	AssessFeasibility(context.Context, *AssessFeasibilityRequest) (*AssessFeasibilityResponse, error)
	CalculateDSR(context.Context, *CalculateDSRRequest) (*CalculateDSRResponse, error)
	CalculateTaxes(context.Context, *CalculateTaxesRequest) (*CalculateTaxesResponse, error)
	CompareScenarios(context.Context, *CompareScenariosRequest) (*CompareScenariosResponse, error)
	BatchCompareScenarios(context.Context, *BatchCompareScenariosRequest) (*BatchCompareScenariosResponse, error)
	GetRegion(context.Context, *GetRegionRequest) (*GetRegionResponse, error)
	ListRegions(context.Context, *ListRegionsRequest) (*ListRegionsResponse, error)
	GetRepaymentSchedule(context.Context, *GetRepaymentScheduleRequest) (*GetRepaymentScheduleResponse, error)
	mustEmbedUnimplementedRealCareServiceServer()
}

// UnimplementedRealCareServiceServer provides forward-compatible default implementations.
type UnimplementedRealCareServiceServer struct{}

func (UnimplementedRealCareServiceServer) AssessFeasibility(context.Context, *AssessFeasibilityRequest) (*AssessFeasibilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessFeasibility not implemented")
}
func (UnimplementedRealCareServiceServer) CalculateDSR(context.Context, *CalculateDSRRequest) (*CalculateDSRResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateDSR not implemented")
}
func (UnimplementedRealCareServiceServer) CalculateTaxes(context.Context, *CalculateTaxesRequest) (*CalculateTaxesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateTaxes not implemented")
}
func (UnimplementedRealCareServiceServer) CompareScenarios(context.Context, *CompareScenariosRequest) (*CompareScenariosResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CompareScenarios not implemented")
}
func (UnimplementedRealCareServiceServer) BatchCompareScenarios(context.Context, *BatchCompareScenariosRequest) (*BatchCompareScenariosResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method BatchCompareScenarios not implemented")
}
func (UnimplementedRealCareServiceServer) GetRegion(context.Context, *GetRegionRequest) (*GetRegionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRegion not implemented")
}
func (UnimplementedRealCareServiceServer) ListRegions(context.Context, *ListRegionsRequest) (*ListRegionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListRegions not implemented")
}
func (UnimplementedRealCareServiceServer) GetRepaymentSchedule(context.Context, *GetRepaymentScheduleRequest) (*GetRepaymentScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRepaymentSchedule not implemented")
}
func (UnimplementedRealCareServiceServer) mustEmbedUnimplementedRealCareServiceServer() {}

// RegisterRealCareServiceServer registers the RealCareServiceServer with the gRPC server.
func RegisterRealCareServiceServer(s grpclib.ServiceRegistrar, srv RealCareServiceServer) {
	s.RegisterService(&realCareServiceDesc, srv)
}

var realCareServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RealCareServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessFeasibility", Handler: unaryHandler("AssessFeasibility", RealCareServiceServer.AssessFeasibility)},
		{MethodName: "CalculateDSR", Handler: unaryHandler("CalculateDSR", RealCareServiceServer.CalculateDSR)},
		{MethodName: "CalculateTaxes", Handler: unaryHandler("CalculateTaxes", RealCareServiceServer.CalculateTaxes)},
		{MethodName: "CompareScenarios", Handler: unaryHandler("CompareScenarios", RealCareServiceServer.CompareScenarios)},
		{MethodName: "BatchCompareScenarios", Handler: unaryHandler("BatchCompareScenarios", RealCareServiceServer.BatchCompareScenarios)},
		{MethodName: "GetRegion", Handler: unaryHandler("GetRegion", RealCareServiceServer.GetRegion)},
		{MethodName: "ListRegions", Handler: unaryHandler("ListRegions", RealCareServiceServer.ListRegions)},
		{MethodName: "GetRepaymentSchedule", Handler: unaryHandler("GetRepaymentSchedule", RealCareServiceServer.GetRepaymentSchedule)},
	},
	Streams: []grpclib.StreamDesc{},
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, the same
// shape protoc-gen-go-grpc emits per method.
func unaryHandler[Req, Resp any](
	method string,
	call func(RealCareServiceServer, context.Context, *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + serviceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RealCareServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RealCareServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
