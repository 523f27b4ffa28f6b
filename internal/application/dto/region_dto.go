package dto

import "github.com/MrEshunOfficial/category-api/internal/domain/entity"

// RegionListResponse envoltorio {data: [...]} del directorio regional.
type RegionListResponse struct {
	Data []entity.Region `json:"data"`
}

// RegionResponse envoltorio {data: region}.
type RegionResponse struct {
	Data entity.Region `json:"data"`
}
