package geo

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONFeature represents a single found point with geometry and properties.
type GeoJSONFeature struct {
	Properties map[string]any  `json:"properties" yaml:"properties"`
	Type       string          `json:"type" yaml:"type"`
	Geometry   GeoJSONGeometry `json:"geometry" yaml:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature. Only Point is produced.
type GeoJSONGeometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat]
}

// NewFeatureCollection returns an empty collection ready for appending.
func NewFeatureCollection(capacity int) GeoJSONFeatureCollection {
	return GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]GeoJSONFeature, 0, capacity),
	}
}

// PointFeature builds a Point feature. GeoJSON stores longitude first.
func PointFeature(lat, lon float64, props map[string]any) GeoJSONFeature {
	if props == nil {
		props = map[string]any{}
	}
	return GeoJSONFeature{
		Type: "Feature",
		Geometry: GeoJSONGeometry{
			Type:        "Point",
			Coordinates: []float64{lon, lat},
		},
		Properties: props,
	}
}
