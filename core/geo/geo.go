package geo

import "math"

// Point represents a location in a projected planar coordinate system.
// All geometries handed to the planner must share one unit system; the
// core never checks projections.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p * s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Distance returns the Euclidean distance from p to q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Polyline is an open chain of points, typically a power line route.
type Polyline struct {
	Points []Point `json:"points"`
}

// Line builds a Polyline from the given points.
func Line(pts ...Point) Polyline {
	return Polyline{Points: pts}
}

// Length returns the total length of the polyline.
func (pl Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(pl.Points); i++ {
		total += pl.Points[i-1].Distance(pl.Points[i])
	}
	return total
}

// Distance returns the minimum planar distance from p to the polyline.
func (pl Polyline) Distance(p Point) float64 {
	_, d := pl.Nearest(p)
	return d
}

// Nearest returns the closest point on the polyline to p, and the distance.
func (pl Polyline) Nearest(p Point) (Point, float64) {
	if len(pl.Points) == 0 {
		return Point{}, math.MaxFloat64
	}
	if len(pl.Points) == 1 {
		return pl.Points[0], p.Distance(pl.Points[0])
	}

	bestPt := pl.Points[0]
	bestDist := p.Distance(pl.Points[0])
	for i := 1; i < len(pl.Points); i++ {
		pt, dist := nearestOnSegment(p, pl.Points[i-1], pl.Points[i])
		if dist < bestDist {
			bestDist = dist
			bestPt = pt
		}
	}
	return bestPt, bestDist
}

// nearestOnSegment returns the closest point on segment ab to p.
func nearestOnSegment(p, a, b Point) (Point, float64) {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-12 {
		return a, p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / abLen2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return closest, p.Distance(closest)
}
