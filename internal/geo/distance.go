// Package geo содержит расчёт расстояний по поверхности Земли и сопоставление
// точек с круговыми областями подписок.
package geo

import "math"

// EarthRadiusMeters - радиус сферической модели Земли в метрах
const EarthRadiusMeters = 6371000.0

// Coordinate - точка в десятичных градусах
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceTo возвращает расстояние до другой точки в метрах
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return Distance(c.Lat, c.Lng, other.Lat, other.Lng)
}

// Distance вычисляет расстояние по большому кругу между двумя точками (формула гаверсинуса).
// Входные значения не проверяются: координаты вне диапазона дают определённый, но бессмысленный результат.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(dLambda/2)*math.Sin(dLambda/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Covers сообщает, попадает ли точка в круг с центром center и радиусом radiusMeters.
// Граница включается.
func Covers(center Coordinate, radiusMeters float64, p Coordinate) bool {
	return center.DistanceTo(p) <= radiusMeters
}
