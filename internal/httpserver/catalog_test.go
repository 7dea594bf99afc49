package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mvalodim/pet_shop/internal/models"
	"github.com/mvalodim/pet_shop/internal/repo"
	"github.com/mvalodim/pet_shop/internal/service"
	"github.com/mvalodim/pet_shop/internal/transport"
)

func newTestStore(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return repo.New(db)
}

func seedProduct(t *testing.T, r *repo.GormRepo, name, slug string, price int64) *models.Product {
	t.Helper()

	product := &models.Product{
		CategoryID: 1,
		Name:       name,
		Slug:       slug,
		Price:      price,
		Image:      "https://cdn.example.com/" + slug + ".jpg",
		Stock:      25,
		IsActive:   true,
	}
	require.NoError(t, r.CreateProduct(context.Background(), product))
	return product
}

func doJSON(e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestGetProduct_ConvertsMinorUnits(t *testing.T) {
	r := newTestStore(t)
	h := &CatalogHTTP{Svc: &service.CatalogService{Repo: r}}
	e := echo.New()

	p := seedProduct(t, r, "Salmon Cat Treats", "salmon-treats", 1999)

	rec, c := doJSON(e, http.MethodGet, "/api/v1/products/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got transport.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, 19.99, got.Price)
	assert.Nil(t, got.OriginalPrice)
}

func TestGetProduct_MissingIsNull(t *testing.T) {
	r := newTestStore(t)
	h := &CatalogHTTP{Svc: &service.CatalogService{Repo: r}}
	e := echo.New()

	rec, c := doJSON(e, http.MethodGet, "/api/v1/products/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestGetProduct_BadID(t *testing.T) {
	r := newTestStore(t)
	h := &CatalogHTTP{Svc: &service.CatalogService{Repo: r}}
	e := echo.New()

	_, c := doJSON(e, http.MethodGet, "/api/v1/products/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.GetProduct(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetProducts_FilterByCategory(t *testing.T) {
	r := newTestStore(t)
	h := &CatalogHTTP{Svc: &service.CatalogService{Repo: r}}
	e := echo.New()
	ctx := context.Background()

	dogFood := &models.Product{CategoryID: 1, Name: "Dog Food", Slug: "dog-food", Price: 2500, IsActive: true}
	catFood := &models.Product{CategoryID: 2, Name: "Cat Food", Slug: "cat-food", Price: 2300, IsActive: true}
	require.NoError(t, r.CreateProduct(ctx, dogFood))
	require.NoError(t, r.CreateProduct(ctx, catFood))

	rec, c := doJSON(e, http.MethodGet, "/api/v1/products?category_id=2", "")
	require.NoError(t, h.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []transport.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Cat Food", got[0].Name)

	rec, c = doJSON(e, http.MethodGet, "/api/v1/products", "")
	require.NoError(t, h.GetProducts(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestCreateProduct_Validation(t *testing.T) {
	r := newTestStore(t)
	h := &CatalogHTTP{Svc: &service.CatalogService{Repo: r}}
	e := echo.New()

	_, c := doJSON(e, http.MethodPost, "/api/v1/admin/products", `{"name":"","slug":"x","price":100,"category_id":1}`)
	err := h.CreateProduct(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	rec, c := doJSON(e, http.MethodPost, "/api/v1/admin/products", `{"name":"Bird Cage","slug":"bird-cage","price":12900,"category_id":3,"stock":5}`)
	require.NoError(t, h.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got transport.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 129.00, got.Price)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	r := newTestStore(t)
	h := &CatalogHTTP{Svc: &service.CatalogService{Repo: r}}
	e := echo.New()

	_, c := doJSON(e, http.MethodDelete, "/api/v1/admin/products/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := h.DeleteProduct(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestGetCategories(t *testing.T) {
	r := newTestStore(t)
	h := &CatalogHTTP{Svc: &service.CatalogService{Repo: r}}
	e := echo.New()

	require.NoError(t, r.CreateCategory(context.Background(), &models.Category{Name: "Dogs", Slug: "dogs"}))
	require.NoError(t, r.CreateCategory(context.Background(), &models.Category{Name: "Cats", Slug: "cats"}))

	rec, c := doJSON(e, http.MethodGet, "/api/v1/categories", "")
	require.NoError(t, h.GetCategories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}
