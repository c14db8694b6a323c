package molecule

import "github.com/go-gl/mathgl/mgl64"

// solve places every unplaced neighbor of center from the canonical geometry
// for its (lone pairs, steric number) pair.
func solve(center *AtomSite) {
	center.place(mgl64.Vec3{})
	center.LonePairs = lonePairs(center)
	center.StericNumber = center.LonePairs + len(center.Bonds)

	orient(center)

	if center.StericNumber == 0 {
		return
	}
	geo, ok := geometries[geometryKey{center.LonePairs, center.StericNumber}]
	if !ok {
		return
	}

	origin, _ := center.Position()
	next := 0
	for _, bond := range center.Bonds {
		for next < len(geo.slots) && geo.slots[next].lone {
			next++
		}
		if next >= len(geo.slots) {
			return
		}
		d := geo.slots[next].dir
		next++

		other := bond.Other(center)
		if other.Placed() {
			continue
		}
		other.place(origin.Add(center.rotation.Rotate(d.Mul(bond.Length))))
	}
}

// lonePairs is floor((valence - Σ order) / 2), zero for terminal or isolated
// atoms and never negative.
func lonePairs(center *AtomSite) int {
	if center.Element == nil || len(center.Bonds) <= 1 {
		return 0
	}
	used := 0
	for _, b := range center.Bonds {
		used += b.Order
	}
	free := center.Element.ValenceElectrons - used
	if free <= 0 {
		return 0
	}
	return free / 2
}

// orient aligns the canonical axis with an already placed neighbor. A center
// that was itself placed by another center points its -x (or +x) slot back at
// that center depending on which end of the bond the neighbor sits.
func orient(center *AtomSite) {
	origin, _ := center.Position()
	for _, bond := range center.Bonds {
		other := bond.Other(center)
		p, ok := other.Position()
		if !ok {
			continue
		}
		toward := unit(p.Sub(origin))
		if toward.Len() == 0 {
			continue
		}
		canonical := posX
		if bond.Site1 == other {
			canonical = negX
		}
		center.rotation = mgl64.QuatBetweenVectors(canonical, toward).Normalize()
		return
	}
}
