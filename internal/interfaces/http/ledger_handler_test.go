package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	apphttp "github.com/jhoicas/inventory-ledger/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeGenerator struct {
	mu     sync.Mutex
	actor  *inventory.Actor
	query  dto.LedgerQuery
	report *dto.LedgerReportDTO
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, actor *inventory.Actor, q dto.LedgerQuery) (*dto.LedgerReportDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actor, f.query = actor, q
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func sampleReport() *dto.LedgerReportDTO {
	return &dto.LedgerReportDTO{
		Header:       dto.LedgerHeaderDTO{ReportID: "r-1", BusinessID: testBusinessID, BaselineType: inventory.BaselineCorrection},
		Transactions: []dto.LedgerTransactionDTO{},
		Summary: dto.LedgerSummaryDTO{
			StartingBalance:        decimal.NewFromInt(110),
			CalculatedFinalBalance: decimal.NewFromInt(110),
			CurrentSystemInventory: decimal.NewFromInt(110),
			Variance:               decimal.Zero,
			IsReconciled:           true,
			Status:                 "Matched",
		},
	}
}

func buildLedgerApp(gen apphttp.LedgerGenerator, exposeErrors bool, rateLimit int) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:             apphttp.NewLedgerHandler(gen, zerolog.Nop(), exposeErrors, 0),
		JWTSecret:          testJWTSecret,
		JWTIssuer:          testIssuer,
		RateLimitPerMinute: rateLimit,
	})
	return app
}

const ledgerPath = "/api/inventory-ledger?product_id=10&variation_id=20&location_id=1&start_date=2025-03-02&end_date=2025-03-31"

func decodeAPI(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GET /api/inventory-ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedgerHandler_ExitoPasaActorYParametros(t *testing.T) {
	gen := &fakeGenerator{report: sampleReport()}
	resp := doGet(t, buildLedgerApp(gen, false, 0), ledgerPath, bearer(t, testUserID, testBusinessID))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeAPI(t, resp)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.Equal(t, "Matched", summary["status"])
	assert.Equal(t, true, summary["is_reconciled"])
	assert.Equal(t, "r-1", data["header"].(map[string]any)["report_id"])

	require.NotNil(t, gen.actor)
	assert.Equal(t, testUserID, gen.actor.UserID)
	assert.Equal(t, testBusinessID, gen.actor.BusinessID)
	assert.Equal(t, dto.LedgerQuery{ProductID: "10", VariationID: "20", LocationID: "1", StartDate: "2025-03-02", EndDate: "2025-03-31"}, gen.query)
}

func TestLedgerHandler_SinTokenNoLlegaAlCasoDeUso(t *testing.T) {
	gen := &fakeGenerator{report: sampleReport()}
	resp := doGet(t, buildLedgerApp(gen, false, 0), ledgerPath, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, gen.actor)
}

func TestLedgerHandler_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"sin sesión", domain.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"sin permiso", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"parámetros", fmt.Errorf("%w: product_id", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION"},
		{"no encontrado", fmt.Errorf("%w: sucursal 7", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"interno", fmt.Errorf("ledger: eventos: %w", errors.New("conexión rechazada")), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{err: tc.err}
			resp := doGet(t, buildLedgerApp(gen, false, 0), ledgerPath, bearer(t, testUserID, testBusinessID))
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			body := decodeAPI(t, resp)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.code, body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestLedgerHandler_ErrorInterno_DetalleSoloFueraDeProduccion(t *testing.T) {
	internal := fmt.Errorf("ledger: stock actual: %w", context.DeadlineExceeded)

	resp := doGet(t, buildLedgerApp(&fakeGenerator{err: internal}, true, 0), ledgerPath, bearer(t, testUserID, testBusinessID))
	body := decodeAPI(t, resp)
	resp.Body.Close()
	assert.Equal(t, internal.Error(), body["error"])
	assert.Equal(t, "context.deadlineExceededError", body["details"])

	resp = doGet(t, buildLedgerApp(&fakeGenerator{err: internal}, false, 0), ledgerPath, bearer(t, testUserID, testBusinessID))
	body = decodeAPI(t, resp)
	resp.Body.Close()
	assert.NotContains(t, body, "error")
	assert.NotContains(t, body, "details")
	assert.Equal(t, "error interno al generar el kardex", body["message"])
}

func TestLedgerHandler_LimiteDeSolicitudes(t *testing.T) {
	app := buildLedgerApp(&fakeGenerator{report: sampleReport()}, false, 2)
	auth := bearer(t, testUserID, testBusinessID)

	for i := 0; i < 2; i++ {
		resp := doGet(t, app, ledgerPath, auth)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp := doGet(t, app, ledgerPath, auth)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// Otro usuario de la misma empresa tiene su propio cupo.
	other := doGet(t, app, ledgerPath, bearer(t, "00000000-0000-0000-0000-000000000002", testBusinessID))
	defer other.Body.Close()
	assert.Equal(t, http.StatusOK, other.StatusCode)
}

func TestHealth(t *testing.T) {
	resp := doGet(t, buildLedgerApp(&fakeGenerator{}, false, 0), "/health", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeAPI(t, resp)["status"])
}
