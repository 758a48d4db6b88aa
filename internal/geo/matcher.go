package geo

import (
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50

	// запас в градусах, чтобы точка на самой границе круга не отсекалась из-за округления
	boxPadding = 1e-6
)

// Region - круговая область: центр и радиус в метрах
type Region struct {
	Center       Coordinate
	RadiusMeters float64
}

// Matcher определяет контракт отбора областей, покрывающих точку.
// Match возвращает индексы подходящих областей из regions по возрастанию.
type Matcher interface {
	Match(p Coordinate, regions []Region) []int
}

// NewMatcher возвращает реализацию по имени стратегии: "linear" или "rtree"
func NewMatcher(strategy string) (Matcher, error) {
	switch strategy {
	case "", "linear":
		return LinearMatcher{}, nil
	case "rtree":
		return IndexedMatcher{}, nil
	}
	return nil, fmt.Errorf("unknown matcher strategy %q", strategy)
}

// LinearMatcher проверяет каждую область точной формулой расстояния
type LinearMatcher struct{}

func (LinearMatcher) Match(p Coordinate, regions []Region) []int {
	matched := make([]int, 0)
	for i, r := range regions {
		if Covers(r.Center, r.RadiusMeters, p) {
			matched = append(matched, i)
		}
	}
	return matched
}

// IndexedMatcher строит R-дерево из ограничивающих прямоугольников областей,
// отбирает кандидатов по точке и подтверждает каждого точной формулой.
type IndexedMatcher struct{}

type regionItem struct {
	index  int
	region Region
	rect   *rtreego.Rect
}

func (ri *regionItem) Bounds() *rtreego.Rect {
	return ri.rect
}

func (IndexedMatcher) Match(p Coordinate, regions []Region) []int {
	matched := make([]int, 0)
	if len(regions) == 0 {
		return matched
	}

	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for i, r := range regions {
		// отрицательный радиус или NaN не покрывает ни одной точки
		if !(r.RadiusMeters >= 0) {
			continue
		}
		rect, err := boundingBox(r)
		if err != nil {
			continue
		}
		tree.Insert(&regionItem{index: i, region: r, rect: rect})
	}

	query, err := rtreego.NewRect(
		rtreego.Point{p.Lat - boxPadding, p.Lng - boxPadding},
		[]float64{2 * boxPadding, 2 * boxPadding},
	)
	if err != nil {
		return matched
	}

	for _, candidate := range tree.SearchIntersect(query) {
		item, ok := candidate.(*regionItem)
		if !ok {
			continue
		}
		if Covers(item.region.Center, item.region.RadiusMeters, p) {
			matched = append(matched, item.index)
		}
	}
	sort.Ints(matched)
	return matched
}

// boundingBox возвращает прямоугольник (lat, lng), гарантированно содержащий круг.
// Если круг касается полюса или пересекает антимеридиан, по долготе берётся весь диапазон.
func boundingBox(r Region) (*rtreego.Rect, error) {
	delta := r.RadiusMeters / EarthRadiusMeters
	deltaDeg := delta * 180 / math.Pi

	minLat := r.Center.Lat - deltaDeg - boxPadding
	maxLat := r.Center.Lat + deltaDeg + boxPadding
	minLng := -180 - boxPadding
	maxLng := 180 + boxPadding

	if delta < math.Pi/2 && minLat > -90 && maxLat < 90 {
		s := math.Sin(delta) / math.Cos(r.Center.Lat*math.Pi/180)
		if s < 1 {
			dLngDeg := math.Asin(s) * 180 / math.Pi
			lo := r.Center.Lng - dLngDeg - boxPadding
			hi := r.Center.Lng + dLngDeg + boxPadding
			if lo >= -180 && hi <= 180 {
				minLng, maxLng = lo, hi
			}
		}
	}

	minLat = math.Max(minLat, -90-boxPadding)
	maxLat = math.Min(maxLat, 90+boxPadding)

	return rtreego.NewRect(
		rtreego.Point{minLat, minLng},
		[]float64{maxLat - minLat, maxLng - minLng},
	)
}
