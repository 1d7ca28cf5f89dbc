package mapaggr

import (
	"encoding/json"
	"testing"

	"trashmap/models"
)

func TestAggregatorWideViewport(t *testing.T) {
	// Continental viewport: the Zurich area points collapse into one
	// marker, the far-away Normandy point stays individual.
	vp := &models.ViewPort{
		LatMin: 42.69,
		LonMin: -4.32,
		LatMax: 52.81,
		LonMax: 11.80,
	}

	pts := []models.MapPoint{
		{Latitude: 47.3146, Longitude: 8.5413, Count: 1, EntryID: "a", TrashType: "plastic"},
		{Latitude: 47.3300, Longitude: 8.5260, Count: 1, EntryID: "b", TrashType: "glass"},
		{Latitude: 47.3255, Longitude: 8.5410, Count: 1, EntryID: "c", TrashType: "plastic"},
		{Latitude: 47.3425, Longitude: 8.5242, Count: 1, EntryID: "d", TrashType: "paper"},
		{Latitude: 47.3326, Longitude: 8.5200, Count: 1, EntryID: "e", TrashType: "plastic"},
		{Latitude: 48.9582, Longitude: -0.5711, Count: 1, EntryID: "f", TrashType: "other"},
	}

	a := New(vp)
	for _, p := range pts {
		a.AddPoint(p)
	}
	r := a.ToArray()

	if len(r) != 2 {
		t.Fatalf("got %d markers, want 2: %+v", len(r), r)
	}

	var aggregate, single *models.MapPoint
	for i := range r {
		if r[i].Count > 1 {
			aggregate = &r[i]
		} else {
			single = &r[i]
		}
	}
	if aggregate == nil || aggregate.Count != 5 {
		t.Fatalf("expected one aggregate of 5 points, got %+v", r)
	}
	if single == nil || single.EntryID != "f" {
		t.Fatalf("expected the isolated point to stay individual, got %+v", r)
	}
	// Aggregate markers never leak a single entry's identity.
	if aggregate.EntryID != "" {
		t.Errorf("aggregate marker carries entry id %q", aggregate.EntryID)
	}
}

func TestAggregatorNarrowViewportKeepsSingles(t *testing.T) {
	vp := &models.ViewPort{
		LatMin: 47.31,
		LonMin: 8.51,
		LatMax: 47.35,
		LonMax: 8.56,
	}

	pts := []models.MapPoint{
		{Latitude: 47.3146, Longitude: 8.5413, Count: 1, EntryID: "a"},
		{Latitude: 47.3300, Longitude: 8.5260, Count: 1, EntryID: "b"},
		{Latitude: 47.3425, Longitude: 8.5242, Count: 1, EntryID: "c"},
	}

	a := New(vp)
	for _, p := range pts {
		a.AddPoint(p)
	}
	r := a.ToArray()

	if len(r) != 3 {
		t.Fatalf("got %d markers, want all 3 individual: %+v", len(r), r)
	}
	seen := map[string]bool{}
	for _, p := range r {
		if p.Count != 1 {
			t.Errorf("marker %+v should be a single entry", p)
		}
		seen[p.EntryID] = true
	}
	for _, id := range []string{"a", "b", "c"} {
		if !seen[id] {
			t.Errorf("entry %q missing from map output", id)
		}
	}
}

func TestCellLevelShrinksWithViewport(t *testing.T) {
	wide := CellLevel(&models.ViewPort{LatMin: 40, LonMin: -10, LatMax: 55, LonMax: 15})
	narrow := CellLevel(&models.ViewPort{LatMin: 47.31, LonMin: 8.51, LatMax: 47.35, LonMax: 8.56})

	if wide >= narrow {
		t.Errorf("wide viewport level %d should be coarser than narrow %d", wide, narrow)
	}
	if wide < minLevel || narrow > maxLevel {
		t.Errorf("levels %d, %d outside [%d, %d]", wide, narrow, minLevel, maxLevel)
	}
}

func TestToGeoJSON(t *testing.T) {
	points := []models.MapPoint{
		{Latitude: 47.31, Longitude: 8.54, Count: 1, EntryID: "a", TrashType: "plastic"},
		{Latitude: 48.95, Longitude: -0.57, Count: 7},
	}

	fc := ToGeoJSON(points)
	if len(fc.Features) != 2 {
		t.Fatalf("got %d features, want 2", len(fc.Features))
	}

	raw, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != "FeatureCollection" {
		t.Errorf("type = %q, want FeatureCollection", decoded.Type)
	}
	// GeoJSON positions are lng,lat.
	first := decoded.Features[0]
	if first.Geometry.Coordinates[0] != 8.54 || first.Geometry.Coordinates[1] != 47.31 {
		t.Errorf("coordinates = %v, want [8.54 47.31]", first.Geometry.Coordinates)
	}
	if first.Properties["entry_id"] != "a" {
		t.Errorf("properties = %v, want entry_id a", first.Properties)
	}
}
