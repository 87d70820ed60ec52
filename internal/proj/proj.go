// Package proj converts coordinates between the PROJ definitions carried by
// reference systems. Projected definitions are handed to the pure Go PROJ
// port of go-spatial; geographic ones pass through in degrees.
package proj

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-spatial/proj/core"
	_ "github.com/go-spatial/proj/operations"
	"github.com/go-spatial/proj/support"
)

var (
	// ErrInvalidDefinition is returned when a definition cannot be parsed.
	ErrInvalidDefinition = errors.New("invalid projection definition")
	// ErrUnsupportedProjection is returned when no operation serves a definition.
	ErrUnsupportedProjection = errors.New("unsupported projection")
)

// Reprojector converts an (easting, northing) pair between two definitions.
// Geographic definitions take and return (longitude, latitude) in degrees.
type Reprojector interface {
	Reproject(fromDef, toDef string, e, n float64) (float64, float64, error)
}

// geographic lists the +proj names that need no operation.
var geographic = map[string]bool{
	"longlat": true,
	"latlong": true,
	"lonlat":  true,
	"latlon":  true,
}

// aliases maps +proj names onto the operations go-spatial registers.
var aliases = map[string]string{
	"tmerc": "etmerc",
}

// Native is the default Reprojector. Systems are built once per definition,
// so a Native may be shared between goroutines and parses.
type Native struct {
	mu    sync.RWMutex
	cache map[string]*system
}

// New returns an empty Native reprojector.
func New() *Native {
	return &Native{cache: make(map[string]*system)}
}

// Reproject implements Reprojector.
func (r *Native) Reproject(fromDef, toDef string, e, n float64) (float64, float64, error) {
	if fromDef == toDef {
		return e, n, nil
	}

	from, err := r.system(fromDef)
	if err != nil {
		return e, n, err
	}
	to, err := r.system(toDef)
	if err != nil {
		return e, n, err
	}

	lon, lat, err := from.inverse(e, n)
	if err != nil {
		return e, n, fmt.Errorf("from %s: %w", from.name, err)
	}
	x, y, err := to.forward(lon, lat)
	if err != nil {
		return e, n, fmt.Errorf("to %s: %w", to.name, err)
	}

	return x, y, nil
}

func (r *Native) system(def string) (*system, error) {
	r.mu.RLock()
	s, ok := r.cache[def]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}

	s, err := newSystem(def)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[def] = s
	r.mu.Unlock()

	return s, nil
}

// system is one definition bound to its go-spatial operation. A nil op
// marks a geographic definition.
type system struct {
	name string

	mu sync.Mutex // guards op
	op core.IConvertLPToXY
}

func newSystem(def string) (*system, error) {
	name := projName(def)
	if name == "" {
		return nil, fmt.Errorf("%w: missing +proj in %q", ErrInvalidDefinition, def)
	}
	if geographic[name] {
		return &system{name: name}, nil
	}

	if alias, ok := aliases[name]; ok {
		def = strings.Replace(def, "+proj="+name, "+proj="+alias, 1)
	}

	ps, err := support.NewProjString(def)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	_, opx, err := core.NewSystem(ps)
	if err != nil {
		return nil, fmt.Errorf("%w: +proj=%s: %w", ErrUnsupportedProjection, name, err)
	}
	op, ok := opx.(core.IConvertLPToXY)
	if !ok {
		return nil, fmt.Errorf("%w: +proj=%s", ErrUnsupportedProjection, name)
	}

	return &system{name: name, op: op}, nil
}

func projName(def string) string {
	for _, field := range strings.Fields(def) {
		if v, ok := strings.CutPrefix(field, "+proj="); ok {
			return v
		}
	}
	return ""
}

// forward takes degrees and returns the definition's native units.
func (s *system) forward(lon, lat float64) (float64, float64, error) {
	if s.op == nil {
		return lon, lat, nil
	}

	s.mu.Lock()
	xy, err := s.op.Forward(&core.CoordLP{Lam: support.DDToR(lon), Phi: support.DDToR(lat)})
	s.mu.Unlock()
	if err != nil {
		return 0, 0, err
	}
	return xy.X, xy.Y, nil
}

// inverse takes native units and returns degrees.
func (s *system) inverse(x, y float64) (float64, float64, error) {
	if s.op == nil {
		return x, y, nil
	}

	s.mu.Lock()
	lp, err := s.op.Inverse(&core.CoordXY{X: x, Y: y})
	s.mu.Unlock()
	if err != nil {
		return 0, 0, err
	}
	return support.RToDD(lp.Lam), support.RToDD(lp.Phi), nil
}
