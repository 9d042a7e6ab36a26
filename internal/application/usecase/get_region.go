package usecase

import (
	"context"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/port"
)

// GetRegionUseCase resolves a region code to its regulation profile.
type GetRegionUseCase struct {
	registry port.RegulationRegistry
}

// NewGetRegionUseCase wires dependencies.
func NewGetRegionUseCase(registry port.RegulationRegistry) *GetRegionUseCase {
	return &GetRegionUseCase{registry: registry}
}

// Execute never fails: unknown codes resolve to the default profile, which is
// flagged with IsDefault.
func (uc *GetRegionUseCase) Execute(_ context.Context, req dto.GetRegionRequest) (dto.RegionResponse, error) {
	return toRegionResponse(uc.registry.Lookup(req.Code)), nil
}

// ListRegionsUseCase lists the regulation table.
type ListRegionsUseCase struct {
	registry port.RegulationRegistry
}

// NewListRegionsUseCase wires dependencies.
func NewListRegionsUseCase(registry port.RegulationRegistry) *ListRegionsUseCase {
	return &ListRegionsUseCase{registry: registry}
}

// Execute returns every region ordered by code.
func (uc *ListRegionsUseCase) Execute(_ context.Context) (dto.RegionListResponse, error) {
	codes := uc.registry.Codes()
	regions := make([]dto.RegionResponse, 0, len(codes))
	for _, code := range codes {
		regions = append(regions, toRegionResponse(uc.registry.Lookup(code)))
	}
	return dto.RegionListResponse{
		Version: uc.registry.Version(),
		Regions: regions,
		Default: toRegionResponse(uc.registry.Default()),
	}, nil
}
