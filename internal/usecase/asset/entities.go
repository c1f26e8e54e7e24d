package asset

import (
	"time"

	"sikopifasta-backend/internal/domain/asset"
)

// Input is the flat admin/import payload. Category picks which detail
// fields are read.
type Input struct {
	Category  string
	Name      string
	Code      string
	Location  string
	Condition string
	Quantity  int
	PhotoURL  string
	// Status is optional; only available, maintenance and broken are accepted.
	Status string

	PlateNumber     string
	ChassisNumber   string
	EngineNumber    string
	OilEngineAt     *time.Time
	OilEngineNextAt *time.Time
	OilGearAt       *time.Time
	OilGearNextAt   *time.Time
	TaxNextAt       *time.Time

	NUPCode string
	Brand   string
	Specs   string
}

// Patch holds the fields an update changes; nil means keep.
type Patch struct {
	Category  *string
	Name      *string
	Code      *string
	Location  *string
	Condition *string
	Quantity  *int
	PhotoURL  *string
	Status    *string

	PlateNumber     *string
	ChassisNumber   *string
	EngineNumber    *string
	OilEngineAt     *time.Time
	OilEngineNextAt *time.Time
	OilGearAt       *time.Time
	OilGearNextAt   *time.Time
	TaxNextAt       *time.Time

	NUPCode *string
	Brand   *string
	Specs   *string
}

type AssetDTO struct {
	AssetID       string `json:"asset_id"`
	Category      string `json:"category"`
	Name          string `json:"name"`
	Code          string `json:"code,omitempty"`
	Location      string `json:"location,omitempty"`
	Condition     string `json:"condition,omitempty"`
	Quantity      int    `json:"quantity"`
	PhotoURL      string `json:"photo_url,omitempty"`
	NaturalKey    string `json:"natural_key"`
	Status        string `json:"status"`
	DisplayStatus string `json:"display_status"`

	PlateNumber     string     `json:"plate_number,omitempty"`
	ChassisNumber   string     `json:"chassis_number,omitempty"`
	EngineNumber    string     `json:"engine_number,omitempty"`
	OilEngineAt     *time.Time `json:"oil_engine_at,omitempty"`
	OilEngineNextAt *time.Time `json:"oil_engine_next_at,omitempty"`
	OilGearAt       *time.Time `json:"oil_gear_at,omitempty"`
	OilGearNextAt   *time.Time `json:"oil_gear_next_at,omitempty"`
	TaxNextAt       *time.Time `json:"tax_next_at,omitempty"`

	NUPCode string `json:"nup_code,omitempty"`
	Brand   string `json:"brand,omitempty"`
	Specs   string `json:"specs,omitempty"`

	ActiveLoanID   *string    `json:"active_loan_id"`
	ReservedStatus *string    `json:"reserved_status"`
	BorrowerUID    *string    `json:"borrower_uid,omitempty"`
	LoanStartAt    *time.Time `json:"loan_start_at,omitempty"`
	LoanDueAt      *time.Time `json:"loan_due_at,omitempty"`

	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UpsertResult reports whether the upsert inserted a new record.
type UpsertResult struct {
	Asset   *AssetDTO `json:"asset"`
	Created bool      `json:"created"`
}

func toDTO(a *asset.Asset) *AssetDTO {
	out := &AssetDTO{
		AssetID:         a.AssetID,
		Category:        string(a.Category),
		Name:            a.Name,
		Code:            a.Code,
		Location:        a.Location,
		Condition:       a.Condition,
		Quantity:        a.Quantity,
		PhotoURL:        a.PhotoURL,
		NaturalKey:      a.NaturalKey,
		Status:          string(a.Status),
		DisplayStatus:   string(a.DisplayStatus()),
		PlateNumber:     a.PlateNumber,
		ChassisNumber:   a.ChassisNumber,
		EngineNumber:    a.EngineNumber,
		OilEngineAt:     a.OilEngineAt,
		OilEngineNextAt: a.OilEngineNextAt,
		OilGearAt:       a.OilGearAt,
		OilGearNextAt:   a.OilGearNextAt,
		TaxNextAt:       a.TaxNextAt,
		NUPCode:         a.NUPCode,
		Brand:           a.Brand,
		Specs:           a.Specs,
		ActiveLoanID:    a.ActiveLoanID,
		BorrowerUID:     a.BorrowerUID,
		LoanStartAt:     a.LoanStartAt,
		LoanDueAt:       a.LoanDueAt,
		IsDeleted:       a.IsDeleted,
		DeletedAt:       a.DeletedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.ReservedStatus != nil {
		rs := string(*a.ReservedStatus)
		out.ReservedStatus = &rs
	}
	return out
}

func toDTOs(list []*asset.Asset) []*AssetDTO {
	out := make([]*AssetDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toDTO(a))
	}
	return out
}

// inputOf flattens a stored record back into an Input, the base a Patch is merged onto.
func inputOf(a *asset.Asset) Input {
	return Input{
		Category:        string(a.Category),
		Name:            a.Name,
		Code:            a.Code,
		Location:        a.Location,
		Condition:       a.Condition,
		Quantity:        a.Quantity,
		PhotoURL:        a.PhotoURL,
		Status:          string(a.Status),
		PlateNumber:     a.PlateNumber,
		ChassisNumber:   a.ChassisNumber,
		EngineNumber:    a.EngineNumber,
		OilEngineAt:     a.OilEngineAt,
		OilEngineNextAt: a.OilEngineNextAt,
		OilGearAt:       a.OilGearAt,
		OilGearNextAt:   a.OilGearNextAt,
		TaxNextAt:       a.TaxNextAt,
		NUPCode:         a.NUPCode,
		Brand:           a.Brand,
		Specs:           a.Specs,
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setTimeIf(dst **time.Time, v *time.Time) {
	if v != nil {
		t := *v
		*dst = &t
	}
}

// merge applies p onto in.
func (p Patch) merge(in Input) Input {
	setIf(&in.Category, p.Category)
	setIf(&in.Name, p.Name)
	setIf(&in.Code, p.Code)
	setIf(&in.Location, p.Location)
	setIf(&in.Condition, p.Condition)
	setIf(&in.Quantity, p.Quantity)
	setIf(&in.PhotoURL, p.PhotoURL)
	setIf(&in.Status, p.Status)
	setIf(&in.PlateNumber, p.PlateNumber)
	setIf(&in.ChassisNumber, p.ChassisNumber)
	setIf(&in.EngineNumber, p.EngineNumber)
	setTimeIf(&in.OilEngineAt, p.OilEngineAt)
	setTimeIf(&in.OilEngineNextAt, p.OilEngineNextAt)
	setTimeIf(&in.OilGearAt, p.OilGearAt)
	setTimeIf(&in.OilGearNextAt, p.OilGearNextAt)
	setTimeIf(&in.TaxNextAt, p.TaxNextAt)
	setIf(&in.NUPCode, p.NUPCode)
	setIf(&in.Brand, p.Brand)
	setIf(&in.Specs, p.Specs)
	return in
}
