package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sikopifasta-backend/internal/adapter/identity"
	"sikopifasta-backend/internal/adapter/repository/mysql"
	"sikopifasta-backend/internal/domain/user"
	"sikopifasta-backend/internal/testutil/sqlitedb"
	assetuc "sikopifasta-backend/internal/usecase/asset"
	"sikopifasta-backend/internal/usecase/loan"
)

const jwtSecret = "handler-test-secret"

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

type server struct {
	e  *echo.Echo
	db *gorm.DB
}

// newServer wires the real use cases over sqlite. Profiles: ADMIN1 (admin),
// U1 and U2 (users), OFF (inactive user).
func newServer(t *testing.T, rdb *redis.Client) *server {
	t.Helper()
	db := sqlitedb.Open(t)
	ctx := context.Background()

	users := mysql.NewUserRepository(db)
	for _, p := range []*user.Profile{
		{UID: "ADMIN1", Role: user.RoleAdmin, IsActive: true},
		{UID: "U1", Role: user.RoleUser, IsActive: true},
		{UID: "U2", Role: user.RoleUser, IsActive: true},
		{UID: "OFF", Role: user.RoleUser, IsActive: false},
	} {
		require.NoError(t, users.Upsert(ctx, p))
	}

	tx := mysql.NewGormUoW(db)
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	Register(e, Deps{
		AppName:  "sikopifasta-test",
		Assets:   assetuc.NewUsecase(mysql.NewAssetRepository(db), tx),
		Loans:    loan.NewUsecase(mysql.NewLoanRepository(db), mysql.NewLoanEventRepository(db), tx),
		Auth:     identity.NewAuthenticator(jwtSecret, "", users),
		Redis:    rdb,
		IdempTTL: time.Minute,
	})
	return &server{e: e, db: db}
}

func token(t *testing.T, uid string) string {
	t.Helper()
	tok, err := identity.Sign(jwtSecret, "", uid, time.Hour)
	require.NoError(t, err)
	return tok
}

func mustJSON(v any) io.Reader {
	if s, ok := v.(string); ok {
		return strings.NewReader(s)
	}
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// do sends a request as uid ("" = anonymous) with optional extra headers.
func (s *server) do(t *testing.T, uid, method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = mustJSON(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if uid != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, uid))
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	er := decode[ErrorResponse](t, rec)
	require.Equal(t, code, er.Code, rec.Body.String())
	return er
}

// createVehicle adds an asset as admin and returns its id.
func (s *server) createVehicle(t *testing.T, plate string) string {
	t.Helper()
	rec := s.do(t, "ADMIN1", stdhttp.MethodPost, "/api/v1/assets", map[string]any{
		"category": "vehicle", "name": "Toyota Avanza", "plate_number": plate,
	})
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	return decode[assetuc.AssetDTO](t, rec).AssetID
}
