package geo

import "fmt"

// BoundingBox is a rectangle in a reference system's native units,
// northing first.
type BoundingBox struct {
	Nmin float64 `json:"n_min" yaml:"n_min"`
	Emin float64 `json:"e_min" yaml:"e_min"`
	Nmax float64 `json:"n_max" yaml:"n_max"`
	Emax float64 `json:"e_max" yaml:"e_max"`
}

// NewBoundingBox returns the box (Nmin, Emin)-(Nmax, Emax).
func NewBoundingBox(nMin, eMin, nMax, eMax float64) BoundingBox {
	return BoundingBox{Nmin: nMin, Emin: eMin, Nmax: nMax, Emax: eMax}
}

// Covers reports whether (n, e) lies inside the box, edges included.
func (b BoundingBox) Covers(n, e float64) bool {
	return n >= b.Nmin && n <= b.Nmax && e >= b.Emin && e <= b.Emax
}

// Scale grows or shrinks the box around its center, per axis.
func (b BoundingBox) Scale(factorN, factorE float64) BoundingBox {
	centerN := (b.Nmin + b.Nmax) / 2
	centerE := (b.Emin + b.Emax) / 2
	halfN := (b.Nmax - b.Nmin) / 2 * factorN
	halfE := (b.Emax - b.Emin) / 2 * factorE

	return BoundingBox{
		Nmin: centerN - halfN,
		Emin: centerE - halfE,
		Nmax: centerN + halfN,
		Emax: centerE + halfE,
	}
}

// AsLatLngArray returns the four corners as [N, E] pairs, clockwise from
// the south-west corner.
func (b BoundingBox) AsLatLngArray() [][2]float64 {
	return [][2]float64{
		{b.Nmin, b.Emin},
		{b.Nmin, b.Emax},
		{b.Nmax, b.Emax},
		{b.Nmax, b.Emin},
	}
}

// IsZero reports whether the box is the empty sentinel box.
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("N:%g-%g E:%g-%g", b.Nmin, b.Nmax, b.Emin, b.Emax)
}
