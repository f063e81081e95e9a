package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockmate/stockmate-api/internal/application/service"
	"github.com/stockmate/stockmate-api/internal/config"
	"github.com/stockmate/stockmate-api/internal/infrastructure/gateway"
	"github.com/stockmate/stockmate-api/internal/infrastructure/repository"
	"github.com/stockmate/stockmate-api/internal/presentation/http/handler"
	"github.com/stockmate/stockmate-api/pkg/utils"
)

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	Errors  map[string]string      `json:"errors"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.Name = "stockmate-api"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.SessionExpiry = time.Hour
	cfg.RateLimit.Requests = 1000
	cfg.RateLimit.Duration = 1
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	recordRepo := repository.NewMemoryPurchaseRecordRepository()
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.SessionExpiry)
	submissionGateway := gateway.NewSimulatedGateway(recordRepo, 0)
	formService := service.NewOrderFormService(submissionGateway)
	purchaseLogService := service.NewPurchaseLogService(recordRepo)

	handlers := &Handlers{
		Form:      handler.NewFormHandler(formService, jwtManager),
		Purchase:  handler.NewPurchaseHandler(purchaseLogService),
		Dashboard: handler.NewDashboardHandler(purchaseLogService),
	}
	return Setup(handlers, &Deps{JWTManager: jwtManager, Cfg: cfg})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
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

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
		}
	}
	return w, &env
}

func openSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w, env := doJSON(t, router, http.MethodPost, "/api/v1/sessions", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 opening a session, got %d: %s", w.Code, w.Body.String())
	}
	token, _ := env.Data["token"].(string)
	if token == "" {
		t.Fatalf("expected a session token, got %v", env.Data)
	}
	return token
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireASession(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/purchase-form", "/api/v1/purchases", "/api/v1/dashboard"} {
		w, _ := doJSON(t, router, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without a token: expected 401, got %d", path, w.Code)
		}
	}

	w, _ := doJSON(t, router, http.MethodGet, "/api/v1/purchase-form", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a bad token, got %d", w.Code)
	}
}

func TestPurchaseEntryFlow(t *testing.T) {
	router := newTestRouter(t)
	token := openSession(t, router)

	// Fresh form: one blank item
	w, env := doJSON(t, router, http.MethodGet, "/api/v1/purchase-form", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET form: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	order, _ := env.Data["order"].(map[string]interface{})
	items, _ := order["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 blank item, got %d", len(items))
	}
	itemID, _ := items[0].(map[string]interface{})["id"].(string)
	if itemID == "" {
		t.Fatal("expected an item id in the form state")
	}

	// Submitting the blank form is refused with the field errors
	w, env = doJSON(t, router, http.MethodPost, "/api/v1/purchase-form/submit", token, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank submit: expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if env.Errors["supplierName"] != "Supplier name is required" {
		t.Errorf("expected supplierName error, got %v", env.Errors)
	}
	if env.Errors["quantity_0"] != "Quantity is required" {
		t.Errorf("expected quantity_0 error, got %v", env.Errors)
	}

	// Fill in the form field by field
	patches := []struct {
		path string
		body map[string]string
	}{
		{"/api/v1/purchase-form/metadata", map[string]string{"field": "supplierName", "value": "Acme Traders"}},
		{"/api/v1/purchase-form/metadata", map[string]string{"field": "paymentMode", "value": "UPI"}},
		{"/api/v1/purchase-form/metadata", map[string]string{"field": "paidAmount", "value": "400"}},
		{"/api/v1/purchase-form/items/" + itemID, map[string]string{"field": "productName", "value": "Paracetamol 500mg"}},
		{"/api/v1/purchase-form/items/" + itemID, map[string]string{"field": "quantity", "value": "40"}},
		{"/api/v1/purchase-form/items/" + itemID, map[string]string{"field": "costPrice", "value": "9.75"}},
	}
	for _, patch := range patches {
		w, _ = doJSON(t, router, http.MethodPatch, patch.path, token, patch.body)
		if w.Code != http.StatusNoContent {
			t.Fatalf("PATCH %s %v: expected 204, got %d: %s", patch.path, patch.body, w.Code, w.Body.String())
		}
	}

	// The form reports totals and the balance figure
	w, env = doJSON(t, router, http.MethodGet, "/api/v1/purchase-form", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET form: expected 200, got %d", w.Code)
	}
	if env.Data["order_total"] != "390.00" {
		t.Errorf("expected order total 390.00, got %v", env.Data["order_total"])
	}
	balance, _ := env.Data["balance"].(map[string]interface{})
	if balance == nil || balance["kind"] != "excess" || balance["amount"] != "10.00" {
		t.Errorf("expected excess 10.00, got %v", env.Data["balance"])
	}

	// Submit records the purchase and resets the form
	w, env = doJSON(t, router, http.MethodPost, "/api/v1/purchase-form/submit", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.Data["submitted"] != true {
		t.Fatalf("expected submitted=true, got %v", env.Data)
	}
	if env.Data["total"] != "390.00" {
		t.Errorf("expected total 390.00, got %v", env.Data["total"])
	}

	w, env = doJSON(t, router, http.MethodGet, "/api/v1/purchase-form", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET form: expected 200, got %d", w.Code)
	}
	order, _ = env.Data["order"].(map[string]interface{})
	items, _ = order["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected a reset form with 1 blank item, got %d", len(items))
	}
	if name := items[0].(map[string]interface{})["product_name"]; name != "" {
		t.Errorf("expected a blank item after submit, got %v", name)
	}

	// The recorded purchase shows up in the log and the dashboard
	w, env = doJSON(t, router, http.MethodGet, "/api/v1/purchases", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list purchases: expected 200, got %d", w.Code)
	}
	listed, _ := env.Data["items"].([]interface{})
	if len(listed) != 1 {
		t.Fatalf("expected 1 recorded purchase, got %d", len(listed))
	}

	w, env = doJSON(t, router, http.MethodGet, "/api/v1/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", w.Code)
	}
	if env.Data["total_purchases"] != float64(1) {
		t.Errorf("expected 1 total purchase, got %v", env.Data["total_purchases"])
	}
}

func TestAddAndRemoveItemsOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := openSession(t, router)

	w, env := doJSON(t, router, http.MethodPost, "/api/v1/purchase-form/items", token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("add item: expected 201, got %d", w.Code)
	}
	newItemID, _ := env.Data["item_id"].(string)
	if newItemID == "" {
		t.Fatalf("expected an item id, got %v", env.Data)
	}

	w, _ = doJSON(t, router, http.MethodDelete, "/api/v1/purchase-form/items/"+newItemID, token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("remove item: expected 204, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodDelete, "/api/v1/purchase-form/items/not-a-uuid", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("remove with a bad id: expected 400, got %d", w.Code)
	}

	w, env = doJSON(t, router, http.MethodGet, "/api/v1/purchase-form", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET form: expected 200, got %d", w.Code)
	}
	order, _ := env.Data["order"].(map[string]interface{})
	items, _ := order["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("expected 1 item left, got %d", len(items))
	}
}

func TestCancelOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := openSession(t, router)

	w, _ := doJSON(t, router, http.MethodPatch, "/api/v1/purchase-form/metadata", token,
		map[string]string{"field": "supplierName", "value": "Acme Traders"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("PATCH metadata: expected 204, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/purchase-form/cancel", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d", w.Code)
	}

	w, env := doJSON(t, router, http.MethodGet, "/api/v1/purchase-form", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET form: expected 200, got %d", w.Code)
	}
	order, _ := env.Data["order"].(map[string]interface{})
	metadata, _ := order["metadata"].(map[string]interface{})
	if metadata["supplier_name"] != "" {
		t.Errorf("expected supplier name discarded, got %v", metadata["supplier_name"])
	}
}
