// Package mapaggr thins out entry points for map rendering. Points are
// bucketed into S2 cells sized to the requested viewport, so a zoomed-out
// map gets a handful of aggregate markers while a zoomed-in map keeps the
// individual entries.
package mapaggr

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"trashmap/models"
)

const (
	// Target number of cells covering the viewport.
	expectedCells = 16

	minLevel = 2
	maxLevel = 18

	// Buckets holding at most this many points keep their members as
	// individual markers instead of one aggregate.
	maxSingles = 3
)

type bucket struct {
	count   int64
	lat     float64
	lng     float64
	singles []models.MapPoint
}

type Aggregator struct {
	level   int
	buckets map[s2.CellID]*bucket
}

// CellLevel finds the S2 cell level at which roughly expectedCells cells
// cover the viewport, probed around the viewport center.
func CellLevel(vp *models.ViewPort) int {
	minLL := s2.LatLngFromDegrees(vp.LatMin, vp.LonMin)
	maxLL := s2.LatLngFromDegrees(vp.LatMax, vp.LonMax)

	rect := s2.Rect{
		Lat: r1.Interval{Lo: minLL.Lat.Radians(), Hi: maxLL.Lat.Radians()},
		Lng: s1.Interval{Lo: minLL.Lng.Radians(), Hi: maxLL.Lng.Radians()},
	}
	vpArea := rect.Area()

	centerLat := (vp.LatMin + vp.LatMax) / 2
	centerLng := (vp.LonMin + vp.LonMax) / 2
	center := s2.CellIDFromLatLng(s2.LatLngFromDegrees(centerLat, centerLng))

	for lv := maxLevel; lv >= minLevel; lv-- {
		cell := s2.CellFromCellID(center.Parent(lv))
		if vpArea/cell.ApproxArea() < expectedCells {
			return lv
		}
	}
	return minLevel
}

func New(vp *models.ViewPort) *Aggregator {
	return &Aggregator{
		level:   CellLevel(vp),
		buckets: make(map[s2.CellID]*bucket),
	}
}

// AddPoint files one entry point into its viewport cell. The bucket keeps a
// running mean of member coordinates as its marker position.
func (a *Aggregator) AddPoint(p models.MapPoint) {
	cell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(p.Latitude, p.Longitude)).Parent(a.level)

	b, ok := a.buckets[cell]
	if !ok {
		b = &bucket{}
		a.buckets[cell] = b
	}
	b.count++
	n := float64(b.count)
	b.lat = (b.lat*(n-1) + p.Latitude) / n
	b.lng = (b.lng*(n-1) + p.Longitude) / n
	if b.count <= maxSingles {
		b.singles = append(b.singles, p)
	} else {
		b.singles = nil
	}
}

// ToArray renders the buckets. Small buckets emit their original points,
// larger ones a single marker with the member count.
func (a *Aggregator) ToArray() []models.MapPoint {
	r := make([]models.MapPoint, 0, len(a.buckets))
	for _, b := range a.buckets {
		if b.singles != nil {
			r = append(r, b.singles...)
			continue
		}
		r = append(r, models.MapPoint{
			Latitude:  b.lat,
			Longitude: b.lng,
			Count:     b.count,
		})
	}
	return r
}
