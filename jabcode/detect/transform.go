package detect

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Homography is a 3x3 projective transform between two planes, stored as a gonum Dense matrix so
// composition and inversion go through mat.Dense.Mul/Inverse rather than hand-rolled adjugate
// arithmetic, per square2Quad/quad2Square/multiply in original_source/src/jabcode/transform.c.
type Homography struct {
	m *mat.Dense // 3x3
}

// squareToQuad returns the transform mapping the unit square (0,0),(1,0),(1,1),(0,1) onto the
// quadrilateral (x0,y0)..(x3,y3), following transform.c's square2Quad exactly: an affine special
// case when the quadrilateral is already a parallelogram (dx3==0 && dy3==0), else the general
// projective solve for a13/a23.
func squareToQuad(x0, y0, x1, y1, x2, y2, x3, y3 float64) (*mat.Dense, error) {
	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3

	m := mat.NewDense(3, 3, nil)
	if dx3 == 0 && dy3 == 0 {
		m.SetRow(0, []float64{x1 - x0, x2 - x1, x0})
		m.SetRow(1, []float64{y1 - y0, y2 - y1, y0})
		m.SetRow(2, []float64{0, 0, 1})
		return m, nil
	}

	dx1 := x1 - x2
	dx2 := x3 - x2
	dy1 := y1 - y2
	dy2 := y3 - y2
	denominator := dx1*dy2 - dx2*dy1
	if denominator == 0 {
		return nil, errors.New("detect: degenerate quadrilateral (collinear finder/alignment points)")
	}
	a13 := (dx3*dy2 - dx2*dy3) / denominator
	a23 := (dx1*dy3 - dx3*dy1) / denominator

	m.SetRow(0, []float64{x1 - x0 + a13*x1, x3 - x0 + a23*x3, x0})
	m.SetRow(1, []float64{y1 - y0 + a13*y1, y3 - y0 + a23*y3, y0})
	m.SetRow(2, []float64{a13, a23, 1})
	return m, nil
}

// quadToSquare maps the quadrilateral (x0,y0)..(x3,y3) onto the unit square: the matrix inverse
// of squareToQuad, computed via gonum's general Dense.Inverse (transform.c instead hand-expands
// the 3x3 adjugate; gonum's LU-based Inverse is used here to the same end).
func quadToSquare(x0, y0, x1, y1, x2, y2, x3, y3 float64) (*mat.Dense, error) {
	s2q, err := squareToQuad(x0, y0, x1, y1, x2, y2, x3, y3)
	if err != nil {
		return nil, err
	}
	q2s := mat.NewDense(3, 3, nil)
	if err := q2s.Inverse(s2q); err != nil {
		return nil, errors.Wrap(err, "detect: non-invertible quadrilateral")
	}
	return q2s, nil
}

// NewHomography builds the projective transform mapping the unit square's four corners, in
// (0,0),(1,0),(1,1),(0,1) order, to dst's corners in the same order.
func NewHomography(dst [4][2]float64) (Homography, error) {
	m, err := squareToQuad(dst[0][0], dst[0][1], dst[1][0], dst[1][1], dst[2][0], dst[2][1], dst[3][0], dst[3][1])
	if err != nil {
		return Homography{}, err
	}
	return Homography{m: m}, nil
}

// NewQuadToQuad builds the transform mapping quadrilateral src onto quadrilateral dst (both in
// (0,0),(1,0),(1,1),(0,1) corner order), composing quad-to-square and square-to-quad exactly as
// perspectiveTransform does in transform.c.
func NewQuadToQuad(src, dst [4][2]float64) (Homography, error) {
	q2s, err := quadToSquare(src[0][0], src[0][1], src[1][0], src[1][1], src[2][0], src[2][1], src[3][0], src[3][1])
	if err != nil {
		return Homography{}, err
	}
	s2q, err := squareToQuad(dst[0][0], dst[0][1], dst[1][0], dst[1][1], dst[2][0], dst[2][1], dst[3][0], dst[3][1])
	if err != nil {
		return Homography{}, err
	}
	var product mat.Dense
	product.Mul(s2q, q2s)
	return Homography{m: &product}, nil
}

// Apply maps (x,y) through h with homogeneous normalization, per warpPoints in transform.c.
func (h Homography) Apply(x, y float64) (float64, float64) {
	a := h.m.RawRowView(0)
	b := h.m.RawRowView(1)
	c := h.m.RawRowView(2)
	denom := c[0]*x + c[1]*y + c[2]
	px := (a[0]*x + a[1]*y + a[2]) / denom
	py := (b[0]*x + b[1]*y + b[2]) / denom
	return px, py
}
