package usecase

import (
	"github.com/MrEshunOfficial/category-api/internal/application/dto"
	"github.com/MrEshunOfficial/category-api/internal/domain"
)

// RegionUseCase lectura del directorio regional estático.
type RegionUseCase struct {
	src RegionSource
}

// NewRegionUseCase construye el caso de uso.
func NewRegionUseCase(src RegionSource) *RegionUseCase {
	return &RegionUseCase{src: src}
}

// List devuelve todas las regiones; domain.ErrNotFound si no se cargó ningún archivo.
func (uc *RegionUseCase) List() (*dto.RegionListResponse, error) {
	all := uc.src.All()
	if len(all) == 0 {
		return nil, domain.ErrNotFound
	}
	return &dto.RegionListResponse{Data: all}, nil
}

// GetByName busca una región por el nombre de su archivo (sin distinguir mayúsculas).
func (uc *RegionUseCase) GetByName(name string) (*dto.RegionResponse, error) {
	region, ok := uc.src.ByName(name)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dto.RegionResponse{Data: region}, nil
}
