package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	assetuc "sikopifasta-backend/internal/usecase/asset"
)

type AssetHandler struct{ uc *assetuc.Usecase }

func NewAssetHandler(uc *assetuc.Usecase) *AssetHandler { return &AssetHandler{uc: uc} }

// Dates are plain calendar days (YYYY-MM-DD).
type assetReq struct {
	Category  string `json:"category"   validate:"required,category"`
	Name      string `json:"name"       validate:"required,max=255"`
	Code      string `json:"code"       validate:"max=64"`
	Location  string `json:"location"   validate:"max=255"`
	Condition string `json:"condition"  validate:"max=64"`
	Quantity  int    `json:"quantity"   validate:"gte=0"`
	PhotoURL  string `json:"photo_url"  validate:"omitempty,url"`
	Status    string `json:"status"     validate:"omitempty,adminstatus"`

	PlateNumber     string `json:"plate_number"       validate:"max=32"`
	ChassisNumber   string `json:"chassis_number"     validate:"max=64"`
	EngineNumber    string `json:"engine_number"      validate:"max=64"`
	OilEngineAt     string `json:"oil_engine_at"      validate:"omitempty,datetime=2006-01-02"`
	OilEngineNextAt string `json:"oil_engine_next_at" validate:"omitempty,datetime=2006-01-02"`
	OilGearAt       string `json:"oil_gear_at"        validate:"omitempty,datetime=2006-01-02"`
	OilGearNextAt   string `json:"oil_gear_next_at"   validate:"omitempty,datetime=2006-01-02"`
	TaxNextAt       string `json:"tax_next_at"        validate:"omitempty,datetime=2006-01-02"`

	NUPCode string `json:"nup_code" validate:"max=64"`
	Brand   string `json:"brand"    validate:"max=128"`
	Specs   string `json:"specs"`
}

func (r assetReq) input() assetuc.Input {
	return assetuc.Input{
		Category:        r.Category,
		Name:            r.Name,
		Code:            r.Code,
		Location:        r.Location,
		Condition:       r.Condition,
		Quantity:        r.Quantity,
		PhotoURL:        r.PhotoURL,
		Status:          r.Status,
		PlateNumber:     r.PlateNumber,
		ChassisNumber:   r.ChassisNumber,
		EngineNumber:    r.EngineNumber,
		OilEngineAt:     parseOpt(dateLayout, r.OilEngineAt),
		OilEngineNextAt: parseOpt(dateLayout, r.OilEngineNextAt),
		OilGearAt:       parseOpt(dateLayout, r.OilGearAt),
		OilGearNextAt:   parseOpt(dateLayout, r.OilGearNextAt),
		TaxNextAt:       parseOpt(dateLayout, r.TaxNextAt),
		NUPCode:         r.NUPCode,
		Brand:           r.Brand,
		Specs:           r.Specs,
	}
}

// Absent fields are left unchanged.
type assetPatchReq struct {
	Category  *string `json:"category"   validate:"omitempty,category"`
	Name      *string `json:"name"       validate:"omitempty,max=255"`
	Code      *string `json:"code"       validate:"omitempty,max=64"`
	Location  *string `json:"location"   validate:"omitempty,max=255"`
	Condition *string `json:"condition"  validate:"omitempty,max=64"`
	Quantity  *int    `json:"quantity"   validate:"omitempty,gte=0"`
	PhotoURL  *string `json:"photo_url"  validate:"omitempty,url"`
	Status    *string `json:"status"     validate:"omitempty,adminstatus"`

	PlateNumber     *string `json:"plate_number"       validate:"omitempty,max=32"`
	ChassisNumber   *string `json:"chassis_number"     validate:"omitempty,max=64"`
	EngineNumber    *string `json:"engine_number"      validate:"omitempty,max=64"`
	OilEngineAt     *string `json:"oil_engine_at"      validate:"omitempty,datetime=2006-01-02"`
	OilEngineNextAt *string `json:"oil_engine_next_at" validate:"omitempty,datetime=2006-01-02"`
	OilGearAt       *string `json:"oil_gear_at"        validate:"omitempty,datetime=2006-01-02"`
	OilGearNextAt   *string `json:"oil_gear_next_at"   validate:"omitempty,datetime=2006-01-02"`
	TaxNextAt       *string `json:"tax_next_at"        validate:"omitempty,datetime=2006-01-02"`

	NUPCode *string `json:"nup_code" validate:"omitempty,max=64"`
	Brand   *string `json:"brand"    validate:"omitempty,max=128"`
	Specs   *string `json:"specs"`
}

func optDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	return parseOpt(dateLayout, *s)
}

func (r assetPatchReq) patch() assetuc.Patch {
	return assetuc.Patch{
		Category:        r.Category,
		Name:            r.Name,
		Code:            r.Code,
		Location:        r.Location,
		Condition:       r.Condition,
		Quantity:        r.Quantity,
		PhotoURL:        r.PhotoURL,
		Status:          r.Status,
		PlateNumber:     r.PlateNumber,
		ChassisNumber:   r.ChassisNumber,
		EngineNumber:    r.EngineNumber,
		OilEngineAt:     optDate(r.OilEngineAt),
		OilEngineNextAt: optDate(r.OilEngineNextAt),
		OilGearAt:       optDate(r.OilGearAt),
		OilGearNextAt:   optDate(r.OilGearNextAt),
		TaxNextAt:       optDate(r.TaxNextAt),
		NUPCode:         r.NUPCode,
		Brand:           r.Brand,
		Specs:           r.Specs,
	}
}

func (h *AssetHandler) List(c echo.Context) error {
	list, err := h.uc.ListByCategory(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AssetHandler) ListAvailable(c echo.Context) error {
	list, err := h.uc.ListAvailable(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get hides soft-deleted assets from non-admins.
func (h *AssetHandler) Get(c echo.Context) error {
	cl, ok, err := mustCaller(c)
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), c.Param("asset_id"))
	if err != nil {
		return respondError(c, err)
	}
	if dto.IsDeleted && !cl.IsAdmin() {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "asset not found", Code: "not_found"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AssetHandler) Create(c echo.Context) error {
	var req assetReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Upsert answers 201 when it inserted and 200 when it updated.
func (h *AssetHandler) Upsert(c echo.Context) error {
	var req assetReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	res, err := h.uc.Upsert(c.Request().Context(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	code := http.StatusOK
	if res.Created {
		code = http.StatusCreated
	}
	return c.JSON(code, res)
}

func (h *AssetHandler) Update(c echo.Context) error {
	var req assetPatchReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("asset_id"), req.patch())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AssetHandler) Delete(c echo.Context) error {
	dto, err := h.uc.SoftDelete(c.Request().Context(), c.Param("asset_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AssetHandler) Restore(c echo.Context) error {
	dto, err := h.uc.Restore(c.Request().Context(), c.Param("asset_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
