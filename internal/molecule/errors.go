package molecule

import "errors"

var (
	// ErrInvalidBondOrder indicates a bond order outside 1..3.
	ErrInvalidBondOrder = errors.New("molecule: bond order must be 1, 2 or 3")

	// ErrSiteIndex indicates a bond referencing a site that does not exist.
	ErrSiteIndex = errors.New("molecule: site index out of range")

	// ErrSelfBond indicates a bond whose endpoints are the same site.
	ErrSelfBond = errors.New("molecule: bond endpoints must differ")

	// ErrSealed indicates a builder used after Build.
	ErrSealed = errors.New("molecule: template already built")

	// ErrUnknownMolecule indicates a registry lookup miss.
	ErrUnknownMolecule = errors.New("molecule: unknown molecule")
)
