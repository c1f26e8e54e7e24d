package asset

import (
	"strings"
	"time"

	"sikopifasta-backend/internal/domain/apperr"
)

// Details is the category-specific part of an asset. Exactly one of
// VehicleDetails, ElectronicsDetails or OtherDetails.
type Details interface {
	Category() Category
	isDetails()
}

type VehicleDetails struct {
	PlateNumber     string
	ChassisNumber   string
	EngineNumber    string
	OilEngineAt     *time.Time
	OilEngineNextAt *time.Time
	OilGearAt       *time.Time
	OilGearNextAt   *time.Time
	TaxNextAt       *time.Time
}

// ItemFields are shared by every non-vehicle category.
type ItemFields struct {
	NUPCode string
	Brand   string
	Specs   string
}

type ElectronicsDetails struct{ ItemFields }

type OtherDetails struct{ ItemFields }

func (VehicleDetails) Category() Category     { return CategoryVehicle }
func (ElectronicsDetails) Category() Category { return CategoryElectronics }
func (OtherDetails) Category() Category       { return CategoryOther }

func (VehicleDetails) isDetails()     {}
func (ElectronicsDetails) isDetails() {}
func (OtherDetails) isDetails()       {}

// NewItemDetails builds the variant for a non-vehicle category.
func NewItemDetails(c Category, f ItemFields) (Details, error) {
	switch c {
	case CategoryElectronics:
		return ElectronicsDetails{f}, nil
	case CategoryOther:
		return OtherDetails{f}, nil
	}
	return nil, apperr.Validation("category %q has no item details", c)
}

// NormalizeKeyPart trims, collapses inner whitespace and upper-cases.
func NormalizeKeyPart(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// NaturalKey returns the uniqueness key for the variant.
func NaturalKey(d Details) string {
	switch v := d.(type) {
	case VehicleDetails:
		return "plate:" + NormalizeKeyPart(v.PlateNumber)
	case ElectronicsDetails:
		return "nup:" + NormalizeKeyPart(v.NUPCode)
	case OtherDetails:
		return "nup:" + NormalizeKeyPart(v.NUPCode)
	}
	panic("asset: unknown details variant")
}

// ValidateDetails checks the required field of each variant.
func ValidateDetails(d Details) error {
	switch v := d.(type) {
	case nil:
		return apperr.Validation("asset details are required")
	case VehicleDetails:
		if NormalizeKeyPart(v.PlateNumber) == "" {
			return apperr.Validation("plate number is required for vehicles")
		}
	case ElectronicsDetails:
		if NormalizeKeyPart(v.NUPCode) == "" {
			return apperr.Validation("NUP code is required for electronics")
		}
	case OtherDetails:
		if NormalizeKeyPart(v.NUPCode) == "" {
			return apperr.Validation("NUP code is required")
		}
	}
	return nil
}

// Details reads the variant back from the stored columns.
func (a *Asset) Details() Details {
	items := ItemFields{NUPCode: a.NUPCode, Brand: a.Brand, Specs: a.Specs}
	switch a.Category {
	case CategoryVehicle:
		return VehicleDetails{
			PlateNumber:     a.PlateNumber,
			ChassisNumber:   a.ChassisNumber,
			EngineNumber:    a.EngineNumber,
			OilEngineAt:     a.OilEngineAt,
			OilEngineNextAt: a.OilEngineNextAt,
			OilGearAt:       a.OilGearAt,
			OilGearNextAt:   a.OilGearNextAt,
			TaxNextAt:       a.TaxNextAt,
		}
	case CategoryElectronics:
		return ElectronicsDetails{items}
	default:
		return OtherDetails{items}
	}
}

// ApplyDetails writes the variant onto the record, clearing the columns of
// every other variant, and recomputes the natural key.
func (a *Asset) ApplyDetails(d Details) {
	a.PlateNumber, a.ChassisNumber, a.EngineNumber = "", "", ""
	a.OilEngineAt, a.OilEngineNextAt, a.OilGearAt, a.OilGearNextAt, a.TaxNextAt = nil, nil, nil, nil, nil
	a.NUPCode, a.Brand, a.Specs = "", "", ""

	switch v := d.(type) {
	case VehicleDetails:
		a.PlateNumber = NormalizeKeyPart(v.PlateNumber)
		a.ChassisNumber = strings.TrimSpace(v.ChassisNumber)
		a.EngineNumber = strings.TrimSpace(v.EngineNumber)
		a.OilEngineAt = v.OilEngineAt
		a.OilEngineNextAt = v.OilEngineNextAt
		a.OilGearAt = v.OilGearAt
		a.OilGearNextAt = v.OilGearNextAt
		a.TaxNextAt = v.TaxNextAt
	case ElectronicsDetails:
		a.applyItem(v.ItemFields)
	case OtherDetails:
		a.applyItem(v.ItemFields)
	}
	a.Category = d.Category()
	a.NaturalKey = NaturalKey(d)
}

func (a *Asset) applyItem(f ItemFields) {
	a.NUPCode = NormalizeKeyPart(f.NUPCode)
	a.Brand = strings.TrimSpace(f.Brand)
	a.Specs = strings.TrimSpace(f.Specs)
}
