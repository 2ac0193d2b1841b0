package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adminmemory "github.com/thinkfashz/Osart/internal/domains/admin/adapters/memory"
	adminapp "github.com/thinkfashz/Osart/internal/domains/admin/application"
	cartmemory "github.com/thinkfashz/Osart/internal/domains/cart/adapters/memory"
	cartapp "github.com/thinkfashz/Osart/internal/domains/cart/application"
	catalogmemory "github.com/thinkfashz/Osart/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/thinkfashz/Osart/internal/domains/catalog/application"
	catalogdomain "github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	checkoutmemory "github.com/thinkfashz/Osart/internal/domains/checkout/adapters/memory"
	"github.com/thinkfashz/Osart/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/thinkfashz/Osart/internal/domains/checkout/application"
	quizmemory "github.com/thinkfashz/Osart/internal/domains/quiz/adapters/memory"
	quizapp "github.com/thinkfashz/Osart/internal/domains/quiz/application"
	usersmemory "github.com/thinkfashz/Osart/internal/domains/users/adapters/memory"
	usersapp "github.com/thinkfashz/Osart/internal/domains/users/application"
	verificationmemory "github.com/thinkfashz/Osart/internal/domains/verification/adapters/memory"
	verificationapp "github.com/thinkfashz/Osart/internal/domains/verification/application"
)

type capturingSender struct {
	code string
}

func (s *capturingSender) Send(_ context.Context, _, code string) error {
	s.code = code
	return nil
}

type testServer struct {
	router *gin.Engine
	sender *capturingSender
	users  *usersapp.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := catalogapp.NewService(catalogmemory.NewSeededRepository(catalogdomain.SeedProducts()))
	carts := cartapp.NewService(cartmemory.NewStore(), catalog)
	sender := &capturingSender{}
	verifier := verificationapp.NewService(verificationmemory.NewStore(), sender)
	orders := checkoutmemory.NewOrderRepository()
	orchestrator := workflows.NewInlineOrderWorkflows(orders, nil, nil)
	checkout := checkoutapp.NewService(checkoutmemory.NewStore(), orders, carts, verifier, orchestrator)
	users := usersapp.NewService(usersmemory.NewRepository(), usersmemory.NewSessionStore(),
		[]byte("test-key"), usersapp.WithAdminEmail("admin@osart.cl"))
	quiz := quizapp.NewService(quizmemory.NewStore(), users, nil)
	admin := adminapp.NewService(catalog, orders, adminmemory.NewExpenseStore(), adminmemory.NewConfigStore(), nil)

	router := NewRouter(APIs{
		Catalog:   NewCatalogAPI(catalog),
		Users:     NewUserAPI(users, orders),
		Carts:     NewCartAPI(carts),
		Checkout:  NewCheckoutAPI(checkout),
		Quiz:      NewQuizAPI(quiz),
		Admin:     NewAdminAPI(admin, checkout),
		Assistant: NewAssistantAPI(nil, catalog),
	}, NewAuthMiddleware(users))

	return &testServer{router: router, sender: sender, users: users}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, req)
	return recorder
}

func (ts *testServer) token(t *testing.T, name, email, password string) string {
	t.Helper()
	_, err := ts.users.Register(context.Background(), name, email, password)
	require.NoError(t, err)
	token, _, err := ts.users.Login(context.Background(), email, password)
	require.NoError(t, err)
	return token
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}

func TestListProducts_CategoryFilter(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/v1/products", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	all := decodeBody[[]productView](t, resp)
	require.Len(t, all, len(catalogdomain.SeedProducts()))

	resp = ts.do(t, http.MethodGet, "/v1/products?category=Herramientas", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	tools := decodeBody[[]productView](t, resp)
	require.Len(t, tools, 2)
	for _, view := range tools {
		require.Equal(t, "Herramientas", view.Category)
	}
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/v1/admin/inventory", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, resp.Header().Get("Content-Type"), "application/problem+json")

	customer := ts.token(t, "Ana", "ana@osart.cl", "secreto123")
	resp = ts.do(t, http.MethodGet, "/v1/admin/inventory", nil, map[string]string{
		"Authorization": "Bearer " + customer,
	})
	require.Equal(t, http.StatusForbidden, resp.Code)

	admin := ts.token(t, "Root", "admin@osart.cl", "secreto123")
	resp = ts.do(t, http.MethodGet, "/v1/admin/inventory", nil, map[string]string{
		"Authorization": "Bearer " + admin,
	})
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestCheckoutFlow_EndToEnd(t *testing.T) {
	ts := newTestServer(t)
	const session = "sess-http"

	resp := ts.do(t, http.MethodPost, "/v1/carts/"+session+"/items", addItemPayload{ProductID: 1, Quantity: 2}, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	cart := decodeBody[cartView](t, resp)
	require.Equal(t, int64(25000), cart.Subtotal)

	resp = ts.do(t, http.MethodPost, "/v1/checkout/"+session+"/start", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.do(t, http.MethodPost, "/v1/checkout/"+session+"/verification/request",
		verificationRequestPayload{Email: "ana@osart.cl"}, nil)
	require.Equal(t, http.StatusAccepted, resp.Code)
	require.Len(t, ts.sender.code, 6)

	resp = ts.do(t, http.MethodPost, "/v1/checkout/"+session+"/verification/confirm",
		verificationConfirmPayload{Email: "ana@osart.cl", Code: ts.sender.code}, nil)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.do(t, http.MethodPost, "/v1/checkout/"+session+"/identity",
		identityPayload{FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911112222"}, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.do(t, http.MethodPost, "/v1/checkout/"+session+"/shipping",
		shippingPayload{Address: "Av. Providencia 1234", City: "Santiago", Region: "Metropolitana"}, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.do(t, http.MethodPost, "/v1/checkout/"+session+"/confirm", confirmPayload{Method: "webpay"}, nil)
	require.Equal(t, http.StatusCreated, resp.Code)
	order := decodeBody[map[string]any](t, resp)
	require.Equal(t, float64(25000), order["subtotal"])
	require.Equal(t, float64(1000), order["shippingFee"])
	require.Equal(t, float64(26000), order["total"])

	resp = ts.do(t, http.MethodGet, fmt.Sprintf("/v1/orders/%v", order["id"]), nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.do(t, http.MethodGet, "/v1/carts/"+session, nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	cart = decodeBody[cartView](t, resp)
	require.Zero(t, cart.ItemCount)
}

func TestCheckout_DisabledPaymentMethod(t *testing.T) {
	ts := newTestServer(t)
	const session = "sess-crypto"

	ts.do(t, http.MethodPost, "/v1/checkout/"+session+"/start", nil, nil)
	resp := ts.do(t, http.MethodPost, "/v1/checkout/"+session+"/confirm", confirmPayload{Method: "crypto"}, nil)
	require.Equal(t, http.StatusConflict, resp.Code)
}

func TestCartPatch_DeltaSemantics(t *testing.T) {
	ts := newTestServer(t)
	const session = "sess-patch"

	resp := ts.do(t, http.MethodPost, "/v1/carts/"+session+"/items", addItemPayload{ProductID: 2, Quantity: 3}, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.do(t, http.MethodPatch, "/v1/carts/"+session+"/items/2", adjustItemPayload{Delta: -1}, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	cart := decodeBody[cartView](t, resp)
	require.Equal(t, 2, cart.ItemCount)

	resp = ts.do(t, http.MethodPatch, "/v1/carts/"+session+"/items/2", adjustItemPayload{Delta: -10}, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	cart = decodeBody[cartView](t, resp)
	require.Zero(t, cart.ItemCount)
}

func TestQuizQuestion_NeverLeaksAnswer(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/v1/quiz/sess-quiz/question", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := strings.ToLower(resp.Body.String())
	require.NotContains(t, body, "correctindex")
	require.Contains(t, body, "options")
}

func TestAssistant_OfflineFallback(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/v1/assistant/ask", askPayload{Question: "¿Qué multímetro me recomiendan?"}, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	answer := decodeBody[map[string]string](t, resp)
	require.NotEmpty(t, answer["answer"])

	resp = ts.do(t, http.MethodPost, "/v1/assistant/ask", askPayload{Question: "   "}, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRegisterAndProfile_IncludesOrderHistory(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/v1/users", registerPayload{
		Name: "Ana", Email: "ana@osart.cl", Password: "secreto123",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.do(t, http.MethodGet, "/v1/users/ana@osart.cl", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	profile := decodeBody[map[string]any](t, resp)
	require.Equal(t, "customer", profile["role"])
	require.NotNil(t, profile["orders"])
}
