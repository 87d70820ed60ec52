package finder

import (
	"fmt"
	"math"

	"github.com/aieuren/coordfinder/internal/geo"
)

const (
	letterBonus   = 0.2
	sameLineBonus = 0.1
)

// rate scores the point and records every adjustment in its rating log.
func (p *Point) rate() float64 {
	p.ratingLog = nil
	p.rated = true

	reject := func(format string, args ...any) float64 {
		p.rating = 0
		p.ratingLog = append(p.ratingLog, fmt.Sprintf(format, args...))
		return 0
	}

	if p.N == nil || p.E == nil {
		return reject("Missing coordinate")
	}

	if p.RefSys.Unit == geo.UnitDegrees {
		if math.Abs(p.N.Value) > 90 {
			return reject("Invalid latitude: %g (must be -90 to 90)", p.N.Value)
		}
		if math.Abs(p.E.Value) > 180 {
			return reject("Invalid longitude: %g (must be -180 to 180)", p.E.Value)
		}
	}

	score := DefaultRating
	p.ratingLog = append(p.ratingLog, fmt.Sprintf("%g base rating", DefaultRating))

	if p.N.HasDirection() {
		score += letterBonus
		p.ratingLog = append(p.ratingLog, fmt.Sprintf("+%g for N direction letter", letterBonus))
	}
	if p.E.HasDirection() {
		score += letterBonus
		p.ratingLog = append(p.ratingLog, fmt.Sprintf("+%g for E direction letter", letterBonus))
	}
	if p.N.Snippet != nil && p.E.Snippet != nil && p.N.Line() == p.E.Line() {
		score += sameLineBonus
		p.ratingLog = append(p.ratingLog, fmt.Sprintf("+%g for same line", sameLineBonus))
	}

	// float sums such as 0.5+0.2+0.2+0.1 land just above 1
	p.rating = math.Min(1, math.Round(score*1000)/1000)
	return p.rating
}
