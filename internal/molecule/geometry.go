package molecule

import "github.com/go-gl/mathgl/mgl64"

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

type geometryKey struct {
	lonePairs, steric int
}

// slot is one electron domain of a canonical geometry. Lone-pair slots keep
// their direction for reference but never receive a substituent.
type slot struct {
	dir  mgl64.Vec3
	lone bool
}

type geometry struct {
	name  string
	slots []slot
}

type turn struct {
	deg  float64
	axis mgl64.Vec3
}

func about(axis mgl64.Vec3, deg float64) turn { return turn{deg: deg, axis: axis} }

// dir rotates base through each turn in order.
func dir(base mgl64.Vec3, turns ...turn) mgl64.Vec3 {
	for _, t := range turns {
		base = mgl64.QuatRotate(mgl64.DegToRad(t.deg), t.axis).Rotate(base)
	}
	return base
}

func bonded(dirs ...mgl64.Vec3) []slot {
	out := make([]slot, len(dirs))
	for i, d := range dirs {
		out[i] = slot{dir: d}
	}
	return out
}

var (
	posX = axisX
	negX = axisX.Mul(-1)
	posY = axisY
	negY = axisY.Mul(-1)
)

// geometries maps (lone pairs, steric number) to canonical directions.
// Substituents take the non-lone slots in bond order.
var geometries = map[geometryKey]geometry{
	{0, 1}: {"terminal (AX)", bonded(posX)},
	{0, 2}: {"linear (AX2)", bonded(posX, negX)},
	{0, 3}: {"trigonal planar (AX3)", bonded(
		posY,
		dir(posY, about(axisZ, 120)),
		dir(posY, about(axisZ, -120)),
	)},
	{0, 4}: {"tetrahedral (AX4)", bonded(
		posY,
		dir(posY, about(axisZ, 109.5)),
		dir(posY, about(axisZ, 109.5), about(axisY, 120)),
		dir(posY, about(axisZ, 109.5), about(axisY, -120)),
	)},
	{0, 5}: {"trigonal bipyramidal (AX5)", bonded(
		posY,
		negY,
		posX,
		dir(posX, about(axisY, 120)),
		dir(posX, about(axisY, -120)),
	)},
	{0, 6}: {"octahedral (AX6)", bonded(
		posY,
		negY,
		dir(posX, about(axisY, 45)),
		dir(posX, about(axisY, -45)),
		dir(posX, about(axisY, 135)),
		dir(posX, about(axisY, -135)),
	)},
	{1, 3}: {"bent (AX2E)", []slot{
		{dir: dir(posY, about(axisZ, 125.5))},
		{dir: posY, lone: true},
		{dir: dir(posY, about(axisZ, -125.5))},
	}},
	{1, 4}: {"trigonal pyramidal (AX3E)", []slot{
		{dir: posY, lone: true},
		{dir: dir(posY, about(axisZ, 110))},
		{dir: dir(posY, about(axisZ, 110), about(axisY, 120))},
		{dir: dir(posY, about(axisZ, 110), about(axisY, -120))},
	}},
	{1, 5}: {"seesaw (AX4E)", bonded(
		dir(posY, about(axisZ, -10)),
		dir(negY, about(axisZ, 10)),
		dir(posX, about(axisY, 125.5)),
		dir(posX, about(axisY, -125.5)),
	)},
	{1, 6}: {"square pyramidal (AX5E)", bonded(
		dir(posY, about(axisZ, -10)),
		dir(negY, about(axisZ, 10)),
		dir(posX, about(axisY, 45), about(axisY, -10)),
		dir(posX, about(axisY, -45), about(axisY, -10)),
		dir(posX, about(axisY, 135), about(axisY, 10)),
		dir(posX, about(axisY, -135), about(axisY, 10)),
	)},
	{2, 4}: {"bent (AX2E2)", bonded(
		dir(posY, about(axisZ, 127.75)),
		dir(posY, about(axisZ, -127.75)),
	)},
	{2, 5}: {"T-shaped (AX3E2)", bonded(
		dir(posY, about(axisZ, -10)),
		dir(negY, about(axisZ, 10)),
		posX,
	)},
	{2, 6}: {"square planar (AX4E2)", bonded(
		dir(posX, about(axisY, 45)),
		dir(posX, about(axisY, -45)),
		dir(posX, about(axisY, 135)),
		dir(posX, about(axisY, -135)),
	)},
	{3, 5}: {"linear (AX2E3)", bonded(posY, negY)},
	{3, 6}: {"T-shaped (AX3E3)", bonded(
		dir(posY, about(axisZ, -10)),
		dir(negY, about(axisZ, 10)),
		posX,
	)},
}

// GeometryName describes the electron-domain arrangement, or "" when the
// combination has no canonical table entry.
func GeometryName(lonePairs, steric int) string {
	if steric == 0 {
		return "isolated"
	}
	return geometries[geometryKey{lonePairs, steric}].name
}

// Geometry names the arrangement around a solved center.
func (s *AtomSite) Geometry() string {
	return GeometryName(s.LonePairs, s.StericNumber)
}
