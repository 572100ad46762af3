package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billmaster-api/internal/application/service"
	"github.com/sangkips/billmaster-api/internal/config"
	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/enum"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/internal/infrastructure/filestore"
	"github.com/sangkips/billmaster-api/internal/presentation/http/handler"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/sangkips/billmaster-api/pkg/printer"
	"github.com/sangkips/billmaster-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testServer struct {
	router   *gin.Engine
	admin    string
	cashier  string
	products repository.ProductRepository
	sales    repository.SaleRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()
	s, err := filestore.Open(t.TempDir(), log)
	require.NoError(t, err)

	products := filestore.NewProductRepository(s)
	customers := filestore.NewCustomerRepository(s)
	suppliers := filestore.NewSupplierRepository(s)
	sales := filestore.NewSaleRepository(s)
	users := filestore.NewUserRepository(s)
	guard := service.NewStockGuard()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	cfg := &config.Config{
		App:     config.AppConfig{Name: "billmaster-test"},
		Store:   config.StoreConfig{Name: "Test Store"},
		Printer: config.PrinterConfig{Type: printer.TypeNone, Width: 48},
	}

	authService := service.NewAuthService(users, jwtManager, log)
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(cfg.App.Name, config.StorageDriverJSON),
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(service.NewProductService(s.Transactor(), guard, products, log)),
		Party:   handler.NewPartyHandler(service.NewPartyService(customers, suppliers, log)),
		Sale: handler.NewSaleHandler(
			service.NewCheckoutService(s.Transactor(), guard, products, customers, sales, filestore.NewInvoiceCounterRepository(s), log),
			service.NewSaleService(sales),
			service.NewReceiptService(sales, printer.NewNullPrinter(), cfg.Store, cfg.Printer, log),
		),
		Purchase: handler.NewPurchaseHandler(service.NewPurchaseService(s.Transactor(), guard, products, suppliers, filestore.NewPurchaseRepository(s), log)),
	}

	router := Setup(handlers, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: filestore.NewIdempotencyRepository(s),
		Logger:          log,
	})

	ts := &testServer{router: router, products: products, sales: sales}
	ctx := context.Background()
	for _, u := range []service.CreateUserInput{
		{Name: "Owner", Email: "owner@example.com", Password: "owner-pass", Role: enum.UserRoleAdmin},
		{Name: "Ravi", Email: "ravi@example.com", Password: "ravi-pass", Role: enum.UserRoleCashier},
	} {
		_, err := authService.CreateUser(ctx, &u)
		require.NoError(t, err)
	}
	ts.admin = ts.login(t, "owner@example.com", "owner-pass")
	ts.cashier = ts.login(t, "ravi@example.com", "ravi-pass")
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var data []byte
	switch b := body.(type) {
	case nil:
	case string:
		data = []byte(b)
	default:
		var err error
		data, err = json.Marshal(b)
		require.NoError(t, err)
	}
	reader := bytes.NewReader(data)
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	decode(t, rec, &out)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func (ts *testServer) createProduct(t *testing.T, body gin.H) entity.Product {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/products", ts.admin, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p entity.Product
	decode(t, rec, &p)
	return p
}

func (ts *testServer) createCustomer(t *testing.T, name string) entity.Customer {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/v1/customers", ts.cashier, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c entity.Customer
	decode(t, rec, &c)
	return c
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := ts.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		env := decode(t, rec, nil)
		assert.True(t, env.Success)
	}
}

func TestAuth(t *testing.T) {
	ts := newTestServer(t)

	t.Run("wrong password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "owner@example.com", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/v1/auth/me", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("profile", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/v1/auth/me", ts.cashier, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var u entity.User
		decode(t, rec, &u)
		assert.Equal(t, "ravi@example.com", u.Email)
		assert.Equal(t, enum.UserRoleCashier, u.Role)
		assert.NotContains(t, rec.Body.String(), "passwordHash")
	})

	t.Run("cashier cannot manage catalog or users", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/v1/products", ts.cashier, gin.H{"name": "Salt", "price": 20})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = ts.do(t, http.MethodPost, "/api/v1/users", ts.cashier, gin.H{"name": "X", "email": "x@example.com", "password": "long-enough"})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = ts.do(t, http.MethodGet, "/api/v1/suppliers", ts.cashier, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("binding errors use json names", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/v1/users", ts.admin, gin.H{"name": "X", "email": "not-an-email", "password": "long-enough"})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var errs []apperror.FieldError
		env := decode(t, rec, nil)
		require.NoError(t, json.Unmarshal(env.Errors, &errs))
		require.Len(t, errs, 1)
		assert.Equal(t, "email", errs[0].Field)
	})

	t.Run("admin creates cashier", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/v1/users", ts.admin, gin.H{"name": "Meena", "email": "meena@example.com", "password": "meena-pass"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		ts.login(t, "meena@example.com", "meena-pass")
	})
}

func TestCheckoutFlow(t *testing.T) {
	ts := newTestServer(t)
	rice := ts.createProduct(t, gin.H{"name": "Basmati Rice", "unit": "Kg", "price": 100, "stock": 10, "discountPercent": 10, "taxPercent": 5})
	customer := ts.createCustomer(t, "Asha Traders")

	cart := gin.H{
		"lines":      []gin.H{{"productId": rice.ID, "quantity": 2}},
		"customerId": customer.ID,
	}

	// quote and the number preview leave everything untouched
	rec := ts.do(t, http.MethodPost, "/api/v1/billing/quote", ts.cashier, cart)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var quote service.Quote
	decode(t, rec, &quote)
	assert.True(t, decimal.NewFromInt(189).Equal(quote.Totals.NetAmount), quote.Totals.NetAmount.String())

	rec = ts.do(t, http.MethodGet, "/api/v1/billing/next-invoice", ts.cashier, nil)
	assert.Contains(t, rec.Body.String(), "INV-001")

	rec = ts.do(t, http.MethodPost, "/api/v1/sales", ts.cashier, cart)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "commit needs an Idempotency-Key")

	rec = ts.do(t, http.MethodPost, "/api/v1/sales", ts.cashier, cart, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sale entity.Sale
	decode(t, rec, &sale)
	assert.Equal(t, "INV-001", sale.InvoiceNumber)
	assert.Equal(t, "Ravi", sale.Cashier)
	assert.Equal(t, "Asha Traders", sale.Account)
	assert.True(t, decimal.NewFromInt(189).Equal(sale.NetAmount))
	first := rec.Body.String()

	// a retry with the same key replays instead of selling twice
	rec = ts.do(t, http.MethodPost, "/api/v1/sales", ts.cashier, cart, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/v1/sales", ts.cashier, gin.H{
		"lines":      []gin.H{{"productId": rice.ID, "quantity": 1}},
		"customerId": customer.ID,
	}, "Idempotency-Key", "k-1")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	stored, err := ts.products.GetByID(context.Background(), rice.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Stock)

	rec = ts.do(t, http.MethodGet, "/api/v1/billing/next-invoice", ts.cashier, nil)
	assert.Contains(t, rec.Body.String(), "INV-002")

	t.Run("ledger", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/v1/sales?search=inv-001", ts.cashier, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var page struct {
			Items []entity.Sale `json:"items"`
		}
		decode(t, rec, &page)
		require.Len(t, page.Items, 1)
		assert.Equal(t, sale.ID, page.Items[0].ID)

		rec = ts.do(t, http.MethodGet, "/api/v1/sales/number/inv-001", ts.cashier, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = ts.do(t, http.MethodGet, "/api/v1/sales?from=2026-13-01", ts.cashier, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = ts.do(t, http.MethodGet, "/api/v1/sales?from=2026-10-14&to=2026-10-01", ts.cashier, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = ts.do(t, http.MethodGet, "/api/v1/sales/abc", ts.cashier, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = ts.do(t, http.MethodGet, "/api/v1/sales/999", ts.cashier, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("receipt and invoice", func(t *testing.T) {
		path := "/api/v1/sales/" + idPath(sale.ID)

		rec := ts.do(t, http.MethodGet, path+"/receipt", ts.cashier, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var receipt entity.Receipt
		decode(t, rec, &receipt)
		assert.Equal(t, "Test Store", receipt.Header.StoreName)
		assert.Equal(t, "INV-001", receipt.InvoiceNumber)
		require.Len(t, receipt.Items, 1)

		rec = ts.do(t, http.MethodGet, path+"/invoice.pdf", ts.cashier, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "INV-001.pdf")
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

		rec = ts.do(t, http.MethodPost, path+"/print", ts.cashier, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCheckout_Rejections(t *testing.T) {
	ts := newTestServer(t)
	ghee := ts.createProduct(t, gin.H{"name": "Ghee", "price": 500, "stock": 3})
	customer := ts.createCustomer(t, "Walk-in")

	rec := ts.do(t, http.MethodPost, "/api/v1/sales", ts.cashier, gin.H{
		"lines":      []gin.H{{"productId": ghee.ID, "quantity": 4}},
		"customerId": customer.ID,
	}, "Idempotency-Key", "short-1")
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	env := decode(t, rec, nil)
	assert.Equal(t, "insufficient stock", env.Message)
	var shortfalls []apperror.StockShortfall
	require.NoError(t, json.Unmarshal(env.Errors, &shortfalls))
	assert.Equal(t, []apperror.StockShortfall{{ProductID: ghee.ID, Name: "Ghee", Requested: 4, Available: 3}}, shortfalls)

	// failures are not stored, so the same key can carry the corrected cart
	rec = ts.do(t, http.MethodPost, "/api/v1/sales", ts.cashier, gin.H{
		"lines":      []gin.H{{"productId": ghee.ID, "quantity": 3}},
		"customerId": customer.ID,
	}, "Idempotency-Key", "short-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "INV-001")

	rec = ts.do(t, http.MethodPost, "/api/v1/sales", ts.cashier, gin.H{
		"lines":      []gin.H{},
		"customerId": customer.ID,
	}, "Idempotency-Key", "empty-1")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty cart")

	rec = ts.do(t, http.MethodPost, "/api/v1/sales", ts.cashier, gin.H{
		"lines": []gin.H{{"productId": ghee.ID, "quantity": 1}},
	}, "Idempotency-Key", "no-account")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "no account selected")

	rec = ts.do(t, http.MethodPost, "/api/v1/sales", ts.cashier, `{"lines":`, "Idempotency-Key", "broken")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogAndParties(t *testing.T) {
	ts := newTestServer(t)
	pen := ts.createProduct(t, gin.H{"name": "Gel Pen", "code": "PEN-1", "category": "Stationery", "price": 10, "stock": 2})
	ts.createProduct(t, gin.H{"name": "Notebook", "category": "Stationery", "price": 45, "stock": 30})

	rec := ts.do(t, http.MethodPost, "/api/v1/products", ts.admin, gin.H{"name": "Other Pen", "code": "PEN-1", "price": 12})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/products?low_stock=5", ts.cashier, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []entity.Product `json:"items"`
	}
	decode(t, rec, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, pen.ID, page.Items[0].ID)

	path := "/api/v1/products/" + idPath(pen.ID)
	rec = ts.do(t, http.MethodPut, path, ts.admin, gin.H{"price": 12})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, path+"/stock", ts.admin, gin.H{"delta": -5})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = ts.do(t, http.MethodPost, path+"/stock", ts.admin, gin.H{"delta": 8})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated entity.Product
	decode(t, rec, &updated)
	assert.Equal(t, 10, updated.Stock)
	assert.True(t, decimal.NewFromInt(12).Equal(updated.Price))

	rec = ts.do(t, http.MethodDelete, path, ts.admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(t, http.MethodGet, path, ts.cashier, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	customer := ts.createCustomer(t, "Kiran Stores")
	assert.Equal(t, 1, customer.CustomerCode)
	cpath := "/api/v1/customers/" + idPath(customer.ID)

	rec = ts.do(t, http.MethodPut, cpath, ts.cashier, gin.H{"phone": "98450 00000"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, cpath, ts.cashier, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = ts.do(t, http.MethodDelete, cpath, ts.admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/suppliers", ts.admin, gin.H{"name": "Metro Wholesale"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var supplier entity.Supplier
	decode(t, rec, &supplier)

	marker := ts.createProduct(t, gin.H{"name": "Marker", "price": 30, "stock": 1})
	rec = ts.do(t, http.MethodPost, "/api/v1/purchases", ts.admin, gin.H{
		"supplierId": supplier.ID,
		"items":      []gin.H{{"productId": marker.ID, "quantity": 24, "costPrice": 18}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	stored, err := ts.products.GetByID(context.Background(), marker.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.Stock)

	rec = ts.do(t, http.MethodGet, "/api/v1/purchases", ts.admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductImport(t *testing.T) {
	ts := newTestServer(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Name", "Code", "Category", "Unit", "Price", "Stock", "Discount", "Tax"},
		{"Tea 250g", "TEA-250", "Beverages", "Pack", "120", "12", "0", "5"},
		{"", "BAD-1", "", "", "10", "1", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var sheetBuf bytes.Buffer
	require.NoError(t, f.Write(&sheetBuf))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "catalog.xlsx")
	require.NoError(t, err)
	_, err = part.Write(sheetBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ts.admin)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var result service.ImportResult
	decode(t, rec, &result)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)

	tea, err := ts.products.GetByCode(context.Background(), "TEA-250")
	require.NoError(t, err)
	require.NotNil(t, tea)
	assert.Equal(t, 12, tea.Stock)
}

func idPath(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
