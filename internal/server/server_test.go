package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"

	"tanda-tracker-go/internal/database"
	"tanda-tracker-go/internal/models"
)

func setupTestServer(t *testing.T) (*Server, *gin.Engine, func()) {
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	trackerStore := database.NewServiceFromDB(db)
	if err := trackerStore.InitSchema(); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	srv := New(trackerStore, models.ServerConfig{
		Addr:           ":0",
		AdminPassword:  "test-password",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	cleanup := func() {
		trackerStore.Close()
	}

	return srv, srv.Router(), cleanup
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine) string {
	w := doJSON(t, router, http.MethodPost, "/api/login", "", models.LoginRequest{Password: "test-password"})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login response carries no token")
	}
	return resp.Token
}

func TestLogin_WrongPasswordRejected(t *testing.T) {
	_, router, cleanup := setupTestServer(t)
	defer cleanup()

	w := doJSON(t, router, http.MethodPost, "/api/login", "", models.LoginRequest{Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password returned %d, want 401", w.Code)
	}
}

func TestAuth_GateBlocksDataRoutes(t *testing.T) {
	_, router, cleanup := setupTestServer(t)
	defer cleanup()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/units"},
		{http.MethodGet, "/api/metrics"},
		{http.MethodPost, "/api/fund/movements"},
	}

	for _, p := range paths {
		w := doJSON(t, router, p.method, p.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token returned %d, want 401", p.method, p.path, w.Code)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/units", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token returned %d, want 401", w.Code)
	}
}

func TestUnits_CreateAndList(t *testing.T) {
	_, router, cleanup := setupTestServer(t)
	defer cleanup()
	token := login(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/batches", token, map[string]string{"name": "TANDA 1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("batch create returned %d: %s", w.Code, w.Body.String())
	}
	var batch models.Batch
	if err := json.Unmarshal(w.Body.Bytes(), &batch); err != nil {
		t.Fatalf("Failed to decode batch: %v", err)
	}

	w = doJSON(t, router, http.MethodPost, "/api/units", token, map[string]any{
		"batch_id":      batch.Id,
		"model":         "SAMSUNG A26 5G",
		"cost_usd":      "570",
		"exchange_rate": "1400",
		"split_a":       "50",
		"split_b":       "50",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("unit create returned %d: %s", w.Code, w.Body.String())
	}

	var created models.Unit
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode unit: %v", err)
	}
	if created.TotalCost.String() != "798000" {
		t.Errorf("TotalCost = %s, want 798000", created.TotalCost)
	}
	if created.Status != models.StatusStock {
		t.Errorf("default status = %q, want STOCK", created.Status)
	}

	w = doJSON(t, router, http.MethodGet, "/api/units", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unit list returned %d", w.Code)
	}
	var units []models.Unit
	if err := json.Unmarshal(w.Body.Bytes(), &units); err != nil {
		t.Fatalf("Failed to decode unit list: %v", err)
	}
	if len(units) != 1 {
		t.Errorf("expected 1 unit, got %d", len(units))
	}
}

func TestFundMovements_OverdraftReturns422(t *testing.T) {
	_, router, cleanup := setupTestServer(t)
	defer cleanup()
	token := login(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/fund/movements", token, map[string]any{
		"type":     models.MovementIn,
		"currency": models.CurrencyUSD,
		"amount":   "100",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("deposit returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/fund/movements", token, map[string]any{
		"type":     models.MovementOut,
		"currency": models.CurrencyUSD,
		"amount":   "101",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("overdraft returned %d, want 422: %s", w.Code, w.Body.String())
	}
}

func TestMetrics_Shape(t *testing.T) {
	_, router, cleanup := setupTestServer(t)
	defer cleanup()
	token := login(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/metrics", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics returned %d", w.Code)
	}

	var m models.Metrics
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("Failed to decode metrics: %v", err)
	}
	if !m.GlobalInvestment.IsZero() || !m.Fund.TotalUSD.IsZero() {
		t.Errorf("empty store must yield zero metrics: %+v", m)
	}
}

func TestImport_CSVThroughSavePath(t *testing.T) {
	_, router, cleanup := setupTestServer(t)
	defer cleanup()
	token := login(t, router)

	csv := "CELULAR,COSTO USD,DOLAR DEL DIA,ESTADO,PRECIO DE VENTA,PLATA RECIBIDA\n" +
		"MOTO G84,800,1400,VENDIDO,1.500.000,1.400.000\n" +
		"IPHONE 13,500,1400,,,"

	w := doJSON(t, router, http.MethodPost, "/api/units/import", token, models.ImportRequest{
		BatchId: "NEW",
		CSV:     csv,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("import returned %d: %s", w.Code, w.Body.String())
	}

	var resp models.ImportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode import response: %v", err)
	}
	if resp.Imported != 2 {
		t.Fatalf("imported = %d, want 2", resp.Imported)
	}

	sold := resp.Units[0]
	if sold.Status != models.StatusSold {
		t.Errorf("first row status = %q, want SOLD", sold.Status)
	}
	if sold.NetProfit.String() != "280000" {
		t.Errorf("imported NetProfit = %s, want 280000", sold.NetProfit)
	}
	if resp.Units[0].BatchId != resp.Units[1].BatchId {
		t.Error("all imported units must land in the same batch")
	}
}

func TestPricing_QueryParams(t *testing.T) {
	_, router, cleanup := setupTestServer(t)
	defer cleanup()
	token := login(t, router)

	w := doJSON(t, router, http.MethodGet,
		"/api/pricing?cost_usd=800&exchange_rate=1400&shipping_cost=8000&planned_price=1804800&channel=ML", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pricing returned %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		TotalCost string `json:"total_cost"`
		Suggested struct {
			Cash struct {
				Single string `json:"single"`
			} `json:"cash"`
		} `json:"suggested"`
		ExpectedProfit string `json:"expected_profit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode pricing response: %v", err)
	}
	if resp.TotalCost != "1128000" {
		t.Errorf("total_cost = %s, want 1128000", resp.TotalCost)
	}
	if resp.Suggested.Cash.Single != "1410000" {
		t.Errorf("cash single = %s, want 1410000", resp.Suggested.Cash.Single)
	}
	if resp.ExpectedProfit != "225600" {
		t.Errorf("expected_profit = %s, want 225600", resp.ExpectedProfit)
	}
}
