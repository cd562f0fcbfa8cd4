package geometry

import "math"

// A ring whose doubled projected area falls below
// max(relativeTolerance*extent², absoluteTolerance*extent) is treated as having
// no area. The absolute term absorbs rounding of Earth-fixed coordinates, which
// is proportional to extent rather than extent².
const (
	relativeTolerance = 1e-9
	absoluteTolerance = 1e-6
)

// Triangulate splits a simple (possibly non-convex) polygon into triangles by
// ear clipping on its best-fit plane. It returns index triples into vertices.
// Fewer than three vertices, or a ring with no area, yields nil.
func Triangulate(vertices []Vector3) [][3]int {
	n := len(vertices)
	if n < 3 {
		return nil
	}

	// Work relative to the centroid; world coordinates are ~6e6 and would
	// otherwise swamp the plane fit.
	centroid := Vector3{}
	for _, v := range vertices {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1.0 / float64(n))

	local := make([]Vector3, n)
	extent := 0.0
	for i, v := range vertices {
		local[i] = v.Sub(centroid)
		extent = math.Max(extent, local[i].Length())
	}

	epsilon := math.Max(relativeTolerance*extent*extent, absoluteTolerance*extent)
	normal := newellNormal(local)
	if extent == 0 || normal.Length() <= epsilon {
		return nil
	}
	normal = normal.Normalize()

	u := perpendicular(normal)
	w := normal.Cross(u)
	points := make([][2]float64, n)
	for i, v := range local {
		points[i] = [2]float64{v.Dot(u), v.Dot(w)}
	}

	ring := make([]int, n)
	for i := range ring {
		ring[i] = i
	}
	if signedArea(points, ring) < 0 {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}

	triangles := make([][3]int, 0, n-2)
	for len(ring) > 3 {
		ear := findEar(points, ring, epsilon)
		if ear < 0 {
			// No strictly convex ear left: drop a collinear vertex if there
			// is one, otherwise fan out what remains.
			if c := findCollinear(points, ring, epsilon); c >= 0 {
				ring = append(ring[:c], ring[c+1:]...)
				continue
			}
			for i := 1; i < len(ring)-1; i++ {
				triangles = append(triangles, [3]int{ring[0], ring[i], ring[i+1]})
			}
			return triangles
		}
		prev, next := neighbours(ring, ear)
		triangles = append(triangles, [3]int{ring[prev], ring[ear], ring[next]})
		ring = append(ring[:ear], ring[ear+1:]...)
	}
	triangles = append(triangles, [3]int{ring[0], ring[1], ring[2]})
	return triangles
}

// PolygonArea returns the surface area of a simple polygon: the sum, over its
// triangulation, of half the cross product magnitude of two triangle edges.
// Degenerate input (fewer than three vertices, collinear points) yields 0.
func PolygonArea(vertices []Vector3) float64 {
	area := 0.0
	for _, tri := range Triangulate(vertices) {
		area += NewTriangle(vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]).Area()
	}
	return area
}

// newellNormal returns the un-normalized polygon normal; its length is twice
// the area of the polygon projected on its best-fit plane.
func newellNormal(vertices []Vector3) Vector3 {
	var normal Vector3
	for i, cur := range vertices {
		next := vertices[(i+1)%len(vertices)]
		normal.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		normal.Y += (cur.Z - next.Z) * (cur.X + next.X)
		normal.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return normal
}

// perpendicular returns a unit vector orthogonal to the unit vector n
func perpendicular(n Vector3) Vector3 {
	axis := NewVector3(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		axis = NewVector3(0, 1, 0)
	}
	return n.Cross(axis).Normalize()
}

func signedArea(points [][2]float64, ring []int) float64 {
	area := 0.0
	for i := range ring {
		a := points[ring[i]]
		b := points[ring[(i+1)%len(ring)]]
		area += a[0]*b[1] - b[0]*a[1]
	}
	return area / 2
}

func cross2(a, b, c [2]float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func neighbours(ring []int, i int) (int, int) {
	return (i + len(ring) - 1) % len(ring), (i + 1) % len(ring)
}

func findEar(points [][2]float64, ring []int, epsilon float64) int {
	for i := range ring {
		prev, next := neighbours(ring, i)
		a, b, c := points[ring[prev]], points[ring[i]], points[ring[next]]
		if cross2(a, b, c) <= epsilon {
			continue
		}
		blocked := false
		for j := range ring {
			if j == prev || j == i || j == next {
				continue
			}
			p := points[ring[j]]
			if p == a || p == b || p == c {
				continue
			}
			if cross2(a, b, p) >= 0 && cross2(b, c, p) >= 0 && cross2(c, a, p) >= 0 {
				blocked = true
				break
			}
		}
		if !blocked {
			return i
		}
	}
	return -1
}

func findCollinear(points [][2]float64, ring []int, epsilon float64) int {
	for i := range ring {
		prev, next := neighbours(ring, i)
		if math.Abs(cross2(points[ring[prev]], points[ring[i]], points[ring[next]])) <= epsilon {
			return i
		}
	}
	return -1
}
