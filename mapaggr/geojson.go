package mapaggr

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"trashmap/models"
)

// ToGeoJSON renders aggregated map points as a GeoJSON FeatureCollection.
// Each feature carries the member count; single entries also carry their
// entry id and trash type.
func ToGeoJSON(points []models.MapPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		f := geojson.NewFeature(orb.Point{p.Longitude, p.Latitude})
		f.Properties["count"] = p.Count
		if p.Count == 1 && p.EntryID != "" {
			f.Properties["entry_id"] = p.EntryID
			f.Properties["trash_type"] = p.TrashType
		}
		fc.Append(f)
	}
	return fc
}
