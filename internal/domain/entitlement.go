package domain

import (
	"fmt"
	"math"
)

// Entitlement is the finite allotment a purchased package grants.
// It is copied by value into a draft so later package edits cannot affect it.
type Entitlement struct {
	Nights      int
	RentalDays  int
	LessonHours float64
}

// Validate rejects negative and non-finite quantities
func (e Entitlement) Validate() error {
	if e.Nights < 0 {
		return fmt.Errorf("%w: nights must be non-negative, got %d", ErrInvalidEntitlement, e.Nights)
	}
	if e.RentalDays < 0 {
		return fmt.Errorf("%w: rental days must be non-negative, got %d", ErrInvalidEntitlement, e.RentalDays)
	}
	if e.LessonHours < 0 || math.IsNaN(e.LessonHours) || math.IsInf(e.LessonHours, 0) {
		return fmt.Errorf("%w: lesson hours must be a non-negative number, got %v", ErrInvalidEntitlement, e.LessonHours)
	}
	return nil
}

// PackageComposition tells which resource types a package includes.
// FixedNights > 0 means the stay must span exactly that many nights.
type PackageComposition struct {
	Accommodation bool
	Rentals       bool
	Lessons       bool
	FixedNights   int
}

// IsEmpty returns true if the package includes no resource at all
func (c PackageComposition) IsEmpty() bool {
	return !c.Accommodation && !c.Rentals && !c.Lessons
}

// Package is a purchasable bundle as returned by the package service
type Package struct {
	ID          int64
	Name        string
	Entitlement Entitlement
	Composition PackageComposition
}
