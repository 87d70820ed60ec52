package finder

// group splits points into runs on adjacent lines. A point more than one
// line below the previous one starts a new group.
func group(points []*Point) [][]*Point {
	var (
		groups  [][]*Point
		current []*Point
	)

	last := -1
	for _, p := range points {
		line := -1
		if p.N != nil {
			line = p.N.Line()
		}

		if last >= 0 && line > last+1 && len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}

		current = append(current, p)
		last = line
	}

	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}
