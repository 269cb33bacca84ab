package prep

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/paulmach/orb"
	"github.com/serjvanilla/go-overpass"

	"github.com/cmarsiglia/habitai/internal/domain/amenity"
)

// DefaultOverpassEndpoint is the public Overpass API interpreter.
const DefaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

// tagFilters are the OSM tag selectors of each category.
var tagFilters = map[amenity.Category]string{
	amenity.Parks:   `["leisure"="park"]`,
	amenity.Schools: `["amenity"="school"]`,
	amenity.Clinics: `["amenity"~"^(hospital|clinic)$"]`,
	amenity.Malls:   `["shop"="mall"]`,
}

// OverpassFetcher queries OpenStreetMap through the Overpass API.
type OverpassFetcher struct {
	client overpass.Client
}

// NewOverpassFetcher creates a fetcher. Requests time out after timeout.
func NewOverpassFetcher(endpoint string, timeout time.Duration) *OverpassFetcher {
	if endpoint == "" {
		endpoint = DefaultOverpassEndpoint
	}
	httpClient := &http.Client{Timeout: timeout}
	return &OverpassFetcher{client: overpass.NewWithSettings(endpoint, 2, httpClient)}
}

// Fetch returns tagged nodes as-is and ways reduced to the mean of their nodes.
func (f *OverpassFetcher) Fetch(ctx context.Context, c amenity.Category, b orb.Bound) ([]orb.Point, error) {
	q, err := buildQuery(c, b)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := f.client.Query(q)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}
	return toPoints(&res), nil
}

// buildQuery selects nodes and ways of a category inside b. Overpass boxes are
// south,west,north,east.
func buildQuery(c amenity.Category, b orb.Bound) (string, error) {
	filter, ok := tagFilters[c]
	if !ok {
		return "", fmt.Errorf("no OSM filter for category %d", c)
	}
	bbox := fmt.Sprintf("%f,%f,%f,%f", b.Min.Lat(), b.Min.Lon(), b.Max.Lat(), b.Max.Lon())
	return fmt.Sprintf(`[out:json][timeout:60];
(
  node%[1]s(%[2]s);
  way%[1]s(%[2]s);
);
out body;
>;
out skel qt;`, filter, bbox), nil
}

// toPoints skips untagged nodes: those are way members returned by the
// recursion, not amenities.
func toPoints(res *overpass.Result) []orb.Point {
	nodeIDs := make([]int64, 0, len(res.Nodes))
	for id, n := range res.Nodes {
		if len(n.Tags) > 0 {
			nodeIDs = append(nodeIDs, id)
		}
	}
	wayIDs := make([]int64, 0, len(res.Ways))
	for id := range res.Ways {
		wayIDs = append(wayIDs, id)
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })
	sort.Slice(wayIDs, func(i, j int) bool { return wayIDs[i] < wayIDs[j] })

	pts := make([]orb.Point, 0, len(nodeIDs)+len(wayIDs))
	for _, id := range nodeIDs {
		n := res.Nodes[id]
		pts = append(pts, orb.Point{n.Lon, n.Lat})
	}
	for _, id := range wayIDs {
		w := res.Ways[id]
		if len(w.Nodes) == 0 {
			continue
		}
		var lat, lon float64
		for _, n := range w.Nodes {
			lat += n.Lat
			lon += n.Lon
		}
		count := float64(len(w.Nodes))
		pts = append(pts, orb.Point{lon / count, lat / count})
	}
	return pts
}
