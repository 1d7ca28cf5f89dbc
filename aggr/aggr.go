// Package aggr turns a set of trash entries into aggregate statistics:
// per-type counts, the observed date range and geographic hotspots. All
// computations are pure functions of their input, so they are safe to call
// from concurrent request handlers.
package aggr

import (
	"math"
	"sort"
	"time"

	"trashmap/models"
)

const (
	// Entries are clustered on a fixed grid of cellDegrees x cellDegrees
	// cells, about 1.1 km at the equator.
	cellDegrees = 0.01

	// Flat display radius reported for every hotspot, in meters. It is not
	// derived from the spread of the cluster.
	hotspotRadius = 1000

	maxHotspots = 5
)

type cellKey struct {
	lat int64
	lng int64
}

type cluster struct {
	lat   float64
	lng   float64
	count int
}

// Compute builds the full statistics over the given entries. The caller is
// expected to have applied any date or type filter already; Compute sees
// the entries as-is and does not mutate them.
func Compute(entries []models.TrashEntry) models.Statistics {
	breakdown := make(map[string]int, len(models.TrashTypes))
	for i := range entries {
		breakdown[entries[i].TrashType]++
	}

	return models.Statistics{
		TotalCount:     len(entries),
		MostCommonType: mostCommonType(breakdown),
		Hotspots:       Hotspots(entries),
		TypeBreakdown:  breakdown,
		DateRange:      dateRange(entries),
	}
}

// mostCommonType picks the type with the highest count. Ties are broken by
// the lexicographically smallest type name so the result is reproducible
// regardless of map iteration order. Empty breakdown yields "".
func mostCommonType(breakdown map[string]int) string {
	types := make([]string, 0, len(breakdown))
	for t := range breakdown {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if breakdown[types[i]] != breakdown[types[j]] {
			return breakdown[types[i]] > breakdown[types[j]]
		}
		return types[i] < types[j]
	})
	if len(types) == 0 {
		return ""
	}
	return types[0]
}

// dateRange returns the min and max timestamp among the entries. Timestamps
// are RFC 3339 UTC strings, so a string comparison orders them correctly.
// With no entries both bounds fall back to the current instant so the field
// is never absent.
func dateRange(entries []models.TrashEntry) models.DateRange {
	if len(entries) == 0 {
		now := time.Now().UTC().Format(time.RFC3339)
		return models.DateRange{Start: now, End: now}
	}
	start, end := entries[0].Timestamp, entries[0].Timestamp
	for i := range entries[1:] {
		ts := entries[i+1].Timestamp
		if ts < start {
			start = ts
		}
		if ts > end {
			end = ts
		}
	}
	return models.DateRange{Start: start, End: end}
}

// Hotspots clusters entries on the fixed grid. Each entry snaps to the cell
// whose index is round(coord/cellDegrees) per axis; math.Round rounds half
// away from zero, which is the single rule used for boundary coordinates.
// The cluster centroid is a running mean updated as members join, which is
// algebraically the batch mean of all member coordinates, so the result does
// not depend on input order. Clusters are returned count-descending, ties
// keeping first-seen order, capped at the top 5. Singleton clusters count.
func Hotspots(entries []models.TrashEntry) []models.Hotspot {
	clusters := make(map[cellKey]*cluster)
	seen := make([]*cluster, 0)

	for i := range entries {
		e := &entries[i]
		key := cellKey{
			lat: int64(math.Round(e.Latitude / cellDegrees)),
			lng: int64(math.Round(e.Longitude / cellDegrees)),
		}
		cl, ok := clusters[key]
		if !ok {
			cl = &cluster{lat: e.Latitude, lng: e.Longitude, count: 1}
			clusters[key] = cl
			seen = append(seen, cl)
			continue
		}
		cl.count++
		n := float64(cl.count)
		cl.lat = (cl.lat*(n-1) + e.Latitude) / n
		cl.lng = (cl.lng*(n-1) + e.Longitude) / n
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return seen[i].count > seen[j].count
	})
	if len(seen) > maxHotspots {
		seen = seen[:maxHotspots]
	}

	hotspots := make([]models.Hotspot, len(seen))
	for i, cl := range seen {
		hotspots[i] = models.Hotspot{
			Latitude:  cl.lat,
			Longitude: cl.lng,
			Count:     cl.count,
			Radius:    hotspotRadius,
		}
	}
	return hotspots
}
