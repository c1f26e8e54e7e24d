package asset

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryVehicle     Category = "vehicle"
	CategoryElectronics Category = "electronics"
	CategoryOther       Category = "other"
)

// ParseCategory accepts the stored values plus the legacy "others" alias.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vehicle":
		return CategoryVehicle, true
	case "electronics":
		return CategoryElectronics, true
	case "other", "others":
		return CategoryOther, true
	}
	return "", false
}

type Status string

const (
	StatusAvailable   Status = "available"
	StatusBorrowed    Status = "borrowed"
	StatusRequested   Status = "requested" // legacy rows only; pending claims live in ReservedStatus
	StatusBroken      Status = "broken"
	StatusMaintenance Status = "maintenance"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAvailable, StatusBorrowed, StatusRequested, StatusBroken, StatusMaintenance:
		return st, true
	}
	return "", false
}

// AdminWritable reports whether an administrator may set the status directly.
// borrowed and requested are owned by the loan lifecycle.
func (s Status) AdminWritable() bool {
	return s == StatusAvailable || s == StatusMaintenance || s == StatusBroken
}

// ReservedStatus mirrors the status of the loan currently holding the lock.
type ReservedStatus string

const (
	ReservedRequested ReservedStatus = "requested"
	ReservedApproved  ReservedStatus = "approved"
	ReservedBorrowed  ReservedStatus = "borrowed"
)

type Asset struct {
	ID        uint64   `gorm:"primaryKey;column:id" json:"-"`
	AssetID   string   `gorm:"column:asset_id;size:32;uniqueIndex:ux_assets_asset_id" json:"asset_id"`
	Category  Category `gorm:"column:category;size:16;index:idx_assets_category" json:"category"`
	Name      string   `gorm:"column:name;size:200;not null" json:"name"`
	Code      string   `gorm:"column:code;size:64" json:"code,omitempty"`
	Location  string   `gorm:"column:location;size:200" json:"location,omitempty"`
	Condition string   `gorm:"column:condition_text;size:200" json:"condition,omitempty"`
	Quantity  int      `gorm:"column:quantity;not null;default:1" json:"quantity"`
	PhotoURL  string   `gorm:"column:photo_url;type:text" json:"photo_url,omitempty"`

	// NaturalKey is "plate:<PLATE>" or "nup:<NUP>"; unique among non-deleted rows.
	NaturalKey string `gorm:"column:natural_key;size:160;index:idx_assets_natural_key" json:"natural_key"`

	PlateNumber     string     `gorm:"column:plate_number;size:32" json:"plate_number,omitempty"`
	ChassisNumber   string     `gorm:"column:chassis_number;size:64" json:"chassis_number,omitempty"`
	EngineNumber    string     `gorm:"column:engine_number;size:64" json:"engine_number,omitempty"`
	OilEngineAt     *time.Time `gorm:"column:oil_engine_at" json:"oil_engine_at,omitempty"`
	OilEngineNextAt *time.Time `gorm:"column:oil_engine_next_at" json:"oil_engine_next_at,omitempty"`
	OilGearAt       *time.Time `gorm:"column:oil_gear_at" json:"oil_gear_at,omitempty"`
	OilGearNextAt   *time.Time `gorm:"column:oil_gear_next_at" json:"oil_gear_next_at,omitempty"`
	TaxNextAt       *time.Time `gorm:"column:tax_next_at" json:"tax_next_at,omitempty"`

	NUPCode string `gorm:"column:nup_code;size:64" json:"nup_code,omitempty"`
	Brand   string `gorm:"column:brand;size:100" json:"brand,omitempty"`
	Specs   string `gorm:"column:specs;type:text" json:"specs,omitempty"`

	Status         Status          `gorm:"column:status;size:16;not null;default:'available'" json:"status"`
	ActiveLoanID   *string         `gorm:"column:active_loan_id;size:32" json:"active_loan_id"`
	ReservedStatus *ReservedStatus `gorm:"column:reserved_status;size:16" json:"reserved_status"`
	BorrowerUID    *string         `gorm:"column:borrower_uid;size:128" json:"borrower_uid,omitempty"`
	LoanStartAt    *time.Time      `gorm:"column:loan_start_at" json:"loan_start_at,omitempty"`
	LoanDueAt      *time.Time      `gorm:"column:loan_due_at" json:"loan_due_at,omitempty"`

	IsDeleted bool       `gorm:"column:is_deleted;not null;default:false;index:idx_assets_category" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Asset) TableName() string { return "assets" }

// Locked reports whether a loan currently holds a claim on the asset.
func (a *Asset) Locked() bool { return a.ActiveLoanID != nil || a.ReservedStatus != nil }

func (a *Asset) LockedBy(loanID string) bool {
	return a.ActiveLoanID != nil && *a.ActiveLoanID == loanID
}

// Requestable is the exclusion check for a new loan request.
func (a *Asset) Requestable() bool {
	return !a.IsDeleted && a.Status == StatusAvailable && !a.Locked()
}

// Reserve places (or advances) the lock held by loanID.
func (a *Asset) Reserve(loanID string, rs ReservedStatus) {
	id := loanID
	a.ActiveLoanID = &id
	a.ReservedStatus = &rs
}

// Release clears the lock and every loan mirror field.
func (a *Asset) Release() {
	a.ActiveLoanID = nil
	a.ReservedStatus = nil
	a.BorrowerUID = nil
	a.LoanStartAt = nil
	a.LoanDueAt = nil
}

// DisplayStatus folds a pending claim into the coarse status for listing.
func (a *Asset) DisplayStatus() Status {
	if a.Status == StatusAvailable && a.ReservedStatus != nil {
		switch *a.ReservedStatus {
		case ReservedRequested, ReservedApproved:
			return StatusRequested
		}
	}
	return a.Status
}
