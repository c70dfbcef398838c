package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/princinho/marketplace/controllers"
	"github.com/princinho/marketplace/database"
	"github.com/princinho/marketplace/models"
	"github.com/princinho/marketplace/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(store database.Store) *gin.Engine {
	r := gin.New()
	routes.RegisterRoutes(r, controllers.New(store, nil, true))
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func count(t *testing.T, s database.Store, collection string) int {
	t.Helper()
	docs, err := s.Find(context.Background(), collection, database.All())
	require.NoError(t, err)
	return len(docs)
}

// failingStore is connected but every call fails.
type failingStore struct {
	*database.MemoryStore
}

var errBoom = errors.New("server selection error: context deadline exceeded, current topology: { Type: Unknown }")

func (failingStore) Insert(context.Context, string, any) (string, error) { return "", errBoom }
func (failingStore) Find(context.Context, string, database.Query) ([]bson.Raw, error) {
	return nil, errBoom
}
func (failingStore) ListCollectionNames(context.Context) ([]string, error) { return nil, errBoom }

func TestRoot(t *testing.T) {
	w := do(t, newRouter(database.NewMemoryStore("mk")), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"message": "Marketplace backend running"}, decode[map[string]string](t, w))
}

func TestCreateProductThenListByCategory(t *testing.T) {
	store := database.NewMemoryStore("mk")
	r := newRouter(store)

	w := do(t, r, http.MethodPost, "/api/products", `{"title":"Pen","price":1.5,"category":"office","seller_name":"Acme"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decode[map[string]string](t, w)["id"]
	_, err := bson.ObjectIDFromHex(id)
	require.NoError(t, err)

	w = do(t, r, http.MethodPost, "/api/products", `{"title":"Pan","price":20,"category":"kitchen","seller_name":"Acme","image_url":"https://img.example/pan.png"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, "/api/products", `{"title":"Desk","price":0,"category":"Office","seller_name":"Acme"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/products?category=office", "")
	require.Equal(t, http.StatusOK, w.Code)
	products := decode[[]map[string]any](t, w)
	require.Len(t, products, 1)
	assert.Equal(t, id, products[0]["_id"])
	assert.Equal(t, "Pen", products[0]["title"])
	assert.Equal(t, true, products[0]["in_stock"])
	assert.Equal(t, 1.5, products[0]["price"])
	assert.Nil(t, products[0]["description"])

	w = do(t, r, http.MethodGet, "/api/products", "")
	assert.Len(t, decode[[]map[string]any](t, w), 3)

	w = do(t, r, http.MethodGet, "/api/products?category=", "")
	assert.Len(t, decode[[]map[string]any](t, w), 3)
}

func TestListProductsEmptyIsArray(t *testing.T) {
	w := do(t, newRouter(database.NewMemoryStore("mk")), http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateProductValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		loc  []any
	}{
		{"negative price", `{"title":"Pen","price":-0.01,"category":"office","seller_name":"Acme"}`, []any{"body", "price"}},
		{"missing price", `{"title":"Pen","category":"office","seller_name":"Acme"}`, []any{"body", "price"}},
		{"missing title", `{"price":1,"category":"office","seller_name":"Acme"}`, []any{"body", "title"}},
		{"missing seller", `{"title":"Pen","price":1,"category":"office"}`, []any{"body", "seller_name"}},
		{"price not a number", `{"title":"Pen","price":"cheap","category":"office","seller_name":"Acme"}`, []any{"body", "price"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := database.NewMemoryStore("mk")
			w := do(t, newRouter(store), http.MethodPost, "/api/products", tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			resp := decode[map[string][]map[string]any](t, w)
			require.NotEmpty(t, resp["detail"])
			assert.Equal(t, tt.loc, resp["detail"][0]["loc"])
			assert.Equal(t, 0, count(t, store, models.ProductCollection))
		})
	}
}

func TestCreateProductMalformedJSON(t *testing.T) {
	store := database.NewMemoryStore("mk")
	w := do(t, newRouter(store), http.MethodPost, "/api/products", `{"title":`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, count(t, store, models.ProductCollection))
}

func TestCreateSellerDefaults(t *testing.T) {
	store := database.NewMemoryStore("mk")
	r := newRouter(store)

	w := do(t, r, http.MethodPost, "/api/sellers", `{"name":"Acme"}`)
	require.Equal(t, http.StatusOK, w.Code)
	id := decode[map[string]string](t, w)["id"]

	sellers, err := database.FindAll[models.Seller](context.Background(), store, models.SellerCollection, database.All().Where("name", "Acme"))
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, id, string(sellers[0].Id))
	assert.True(t, sellers[0].IsActive)
	assert.Nil(t, sellers[0].Email)
	assert.Nil(t, sellers[0].Address)

	// products refer to sellers by name only
	w = do(t, r, http.MethodPost, "/api/products", `{"title":"Pen","price":1,"category":"office","seller_name":"Acme"}`)
	require.Equal(t, http.StatusOK, w.Code)
	products, err := database.FindAll[models.Product](context.Background(), store, models.ProductCollection, database.All().Where("seller_name", sellers[0].Name))
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCreateSellerRequiresName(t *testing.T) {
	store := database.NewMemoryStore("mk")
	w := do(t, newRouter(store), http.MethodPost, "/api/sellers", `{"email":"x@acme.test"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, count(t, store, models.SellerCollection))
}

func TestCreateOrderAndList(t *testing.T) {
	store := database.NewMemoryStore("mk")
	r := newRouter(store)

	w := do(t, r, http.MethodPost, "/api/orders", `{"buyer_name":"Bea","shipping_address":"1 Main St","items":[{"product_id":"p1"},{"product_id":"p2","quantity":3}],"status":"shipped"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decode[map[string]string](t, w)["id"]

	w = do(t, r, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode[[]models.Order](t, w)
	require.Len(t, orders, 1)
	assert.Equal(t, id, string(orders[0].Id))
	assert.Equal(t, models.OrderStatusPlaced, orders[0].Status)
	assert.Equal(t, []models.OrderItem{{ProductID: "p1", Quantity: 1}, {ProductID: "p2", Quantity: 3}}, orders[0].Items)

	raw := decode[[]map[string]any](t, w)
	assert.Equal(t, id, raw[0]["_id"])
}

func TestCreateOrderEmptyItems(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"valid otherwise", `{"buyer_name":"Bea","shipping_address":"1 Main St","items":[]}`},
		{"other fields missing", `{"items":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := database.NewMemoryStore("mk")
			w := do(t, newRouter(store), http.MethodPost, "/api/orders", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"detail":"Order must contain at least one item"}`, w.Body.String())
			assert.Equal(t, 0, count(t, store, models.OrderCollection))
		})
	}
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		loc  []any
	}{
		{"items missing", `{"buyer_name":"Bea","shipping_address":"1 Main St"}`, []any{"body", "items"}},
		{"zero quantity", `{"buyer_name":"Bea","shipping_address":"1 Main St","items":[{"product_id":"p1","quantity":0}]}`, []any{"body", "items", "0", "quantity"}},
		{"missing product id", `{"buyer_name":"Bea","shipping_address":"1 Main St","items":[{"product_id":"p1"},{"quantity":2}]}`, []any{"body", "items", "1", "product_id"}},
		{"missing buyer", `{"shipping_address":"1 Main St","items":[{"product_id":"p1"}]}`, []any{"body", "buyer_name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := database.NewMemoryStore("mk")
			w := do(t, newRouter(store), http.MethodPost, "/api/orders", tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			resp := decode[map[string][]map[string]any](t, w)
			require.Len(t, resp["detail"], 1)
			assert.Equal(t, tt.loc, resp["detail"][0]["loc"])
			assert.Equal(t, 0, count(t, store, models.OrderCollection))
		})
	}
}

func TestCreatedIDsAppearOnce(t *testing.T) {
	store := database.NewMemoryStore("mk")
	r := newRouter(store)

	ids := map[string]bool{}
	for _, title := range []string{"a", "b", "c"} {
		w := do(t, r, http.MethodPost, "/api/products", `{"title":"`+title+`","price":1,"category":"x","seller_name":"s"}`)
		require.Equal(t, http.StatusOK, w.Code)
		ids[decode[map[string]string](t, w)["id"]] = true
	}

	seen := map[string]int{}
	for _, p := range decode[[]map[string]any](t, do(t, r, http.MethodGet, "/api/products", "")) {
		seen[p["_id"].(string)]++
	}
	for id := range ids {
		assert.Equal(t, 1, seen[id], id)
	}
}

func TestDiagnosticsConnected(t *testing.T) {
	store := database.NewMemoryStore("marketplace")
	r := newRouter(store)
	for i := 0; i < 12; i++ {
		_, err := store.Insert(context.Background(), "c"+string(rune('a'+i)), bson.D{})
		require.NoError(t, err)
	}

	w := do(t, r, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[controllers.DiagnosticsResponse](t, w)
	assert.Equal(t, "✅ Running", resp.Backend)
	assert.Equal(t, "✅ Connected & Working", resp.Database)
	assert.Equal(t, "Connected", resp.ConnectionStatus)
	assert.Equal(t, "✅ Set", *resp.DatabaseURL)
	assert.Equal(t, "marketplace", *resp.DatabaseName)
	assert.Len(t, resp.Collections, 10)
}

func TestDiagnosticsUnavailable(t *testing.T) {
	w := do(t, newRouter(database.Unavailable("marketplace")), http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]any](t, w)
	assert.Equal(t, "⚠️  Available but not initialized", resp["database"])
	assert.Equal(t, "Not Connected", resp["connection_status"])
	assert.Nil(t, resp["database_url"])
	assert.Equal(t, []any{}, resp["collections"])
}

func TestDiagnosticsStoreError(t *testing.T) {
	w := do(t, newRouter(failingStore{database.NewMemoryStore("marketplace")}), http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[controllers.DiagnosticsResponse](t, w)
	require.True(t, strings.HasPrefix(resp.Database, "⚠️  Connected but Error: "))
	assert.Equal(t, errBoom.Error()[:50], strings.TrimPrefix(resp.Database, "⚠️  Connected but Error: "))
	assert.Empty(t, resp.Collections)
}

func TestStoreFailuresAreServerErrors(t *testing.T) {
	for name, store := range map[string]database.Store{
		"unavailable": database.Unavailable("marketplace"),
		"failing":     failingStore{database.NewMemoryStore("marketplace")},
	} {
		t.Run(name, func(t *testing.T) {
			r := newRouter(store)
			assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/api/products", "").Code)
			assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/api/orders", "").Code)
			assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodPost, "/api/sellers", `{"name":"Acme"}`).Code)
			assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodPost, "/api/products", `{"title":"Pen","price":1,"category":"o","seller_name":"Acme"}`).Code)
			assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodPost, "/api/orders", `{"buyer_name":"B","shipping_address":"A","items":[{"product_id":"p"}]}`).Code)
		})
	}
}

func TestValidationBeforeStore(t *testing.T) {
	// validation errors never reach the store, even an unavailable one
	r := newRouter(database.Unavailable("marketplace"))
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodPost, "/api/products", `{"title":"Pen","price":-1,"category":"o","seller_name":"Acme"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/orders", `{"items":[]}`).Code)
}

func TestGetSchemas(t *testing.T) {
	w := do(t, newRouter(database.NewMemoryStore("mk")), http.MethodGet, "/schema", "")
	require.Equal(t, http.StatusOK, w.Code)
	schemas := decode[[]models.CollectionSchema](t, w)
	require.Len(t, schemas, 3)
	assert.Equal(t, models.OrderCollection, schemas[2].Collection)
}

func TestEmptyRequiredStringsAreAccepted(t *testing.T) {
	tests := []struct {
		name, path, body, collection string
	}{
		{"seller name", "/api/sellers", `{"name":""}`, models.SellerCollection},
		{"product title", "/api/products", `{"title":"","price":1,"category":"office","seller_name":""}`, models.ProductCollection},
		{"order product id", "/api/orders", `{"buyer_name":"","shipping_address":"","items":[{"product_id":""}]}`, models.OrderCollection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := database.NewMemoryStore("mk")
			w := do(t, newRouter(store), http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, 1, count(t, store, tt.collection))
		})
	}
}

func TestListProductsWithStringID(t *testing.T) {
	store := database.NewMemoryStore("mk")
	_, err := store.Insert(context.Background(), models.ProductCollection, bson.D{
		{Key: "_id", Value: "legacy-1"},
		{Key: "title", Value: "Stapler"},
		{Key: "category", Value: "office"},
		{Key: "price", Value: 4.0},
		{Key: "in_stock", Value: true},
		{Key: "seller_name", Value: "Acme"},
	})
	require.NoError(t, err)
	r := newRouter(store)
	w := do(t, r, http.MethodPost, "/api/products", `{"title":"Pen","price":1,"category":"office","seller_name":"Acme"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	products := decode[[]map[string]any](t, w)
	require.Len(t, products, 2)
	assert.Equal(t, "legacy-1", products[0]["_id"])
	assert.Equal(t, "Stapler", products[0]["title"])
}

func TestCreateOrderQuantity(t *testing.T) {
	store := database.NewMemoryStore("mk")
	r := newRouter(store)

	w := do(t, r, http.MethodPost, "/api/orders", `{"buyer_name":"Bea","shipping_address":"1 Main St","items":[{"product_id":"p1","quantity":2.0}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	orders := decode[[]models.Order](t, do(t, r, http.MethodGet, "/api/orders", ""))
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)

	tests := []struct {
		name string
		body string
		loc  []any
		typ  string
	}{
		{"fraction", `{"buyer_name":"Bea","shipping_address":"1 Main St","items":[{"product_id":"p1","quantity":2.5}]}`, []any{"body", "items", "0", "quantity"}, "integral"},
		{"string on second item", `{"buyer_name":"Bea","shipping_address":"1 Main St","items":[{"product_id":"p1"},{"product_id":"p2","quantity":"two"}]}`, []any{"body", "items", "1", "quantity"}, "type_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			resp := decode[map[string][]map[string]any](t, w)
			require.Len(t, resp["detail"], 1)
			assert.Equal(t, tt.loc, resp["detail"][0]["loc"])
			assert.Contains(t, resp["detail"][0]["type"], tt.typ)
			assert.Equal(t, 1, count(t, store, models.OrderCollection))
		})
	}
}
