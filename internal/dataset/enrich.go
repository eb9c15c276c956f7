package dataset

import (
	"context"
	"log/slog"
	"math"

	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

// Enrich returns a copy of d whose site averages carry reverse-geocoded
// place names. A nil geocoder returns d unchanged. Lookup failures are
// logged and leave the place name empty.
func (d *Dataset) Enrich(ctx context.Context, geocoder domain.Geocoder, logger *slog.Logger) *Dataset {
	if geocoder == nil {
		return d
	}

	avgs := make([]domain.SiteAverage, len(d.averages))
	copy(avgs, d.averages)

	resolved := 0
	for i := range avgs {
		if ctx.Err() != nil {
			break
		}
		if enrichAverage(ctx, &avgs[i], geocoder, logger) {
			resolved++
		}
	}
	logger.Info("site geocoding complete", "sites", len(avgs), "resolved", resolved)
	return d.withAverages(avgs)
}

// enrichAverage reverse-geocodes a single site. Returns true when a place name was set.
func enrichAverage(ctx context.Context, avg *domain.SiteAverage, geocoder domain.Geocoder, logger *slog.Logger) bool {
	p := avg.Position
	if math.IsNaN(p.Lat) || math.IsNaN(p.Long) || (p.Lat == 0 && p.Long == 0) {
		return false
	}

	result, err := geocoder.ReverseGeocode(ctx, p.Lat, p.Long)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"site", avg.Site,
			"lat", p.Lat,
			"lon", p.Long,
			"error", err,
		)
		return false
	}
	if result.FormattedAddress == "" {
		return false
	}
	avg.PlaceName = result.FormattedAddress
	return true
}
