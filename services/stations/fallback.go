package stations

import (
	"context"

	"chargesphere/models"
	"chargesphere/utils"

	"go.uber.org/zap"
)

// FallbackDirectory serves the built-in catalog whenever the primary directory fails or returns nothing.
type FallbackDirectory struct {
	Primary Directory
	Catalog []models.Station
}

func NewFallbackDirectory(primary Directory) *FallbackDirectory {
	return &FallbackDirectory{Primary: primary, Catalog: ChargingCatalog()}
}

// Lookup reports whether the catalog was used instead of the primary.
func (f *FallbackDirectory) Lookup(ctx context.Context, q models.StationQuery) ([]models.Station, bool) {
	if f.Primary != nil {
		list, err := f.Primary.Nearby(ctx, q)
		if err == nil && len(list) > 0 {
			return list, false
		}
		if err != nil {
			utils.GetLogger().Warn("Station directory unavailable, using catalog", zap.Error(err))
		}
	}
	return append([]models.Station(nil), f.Catalog...), true
}

func (f *FallbackDirectory) Nearby(ctx context.Context, q models.StationQuery) ([]models.Station, error) {
	list, _ := f.Lookup(ctx, q)
	return list, nil
}
