package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/katalog/internal/catalog"
	"github.com/erazemk/katalog/internal/db"
	"github.com/erazemk/katalog/internal/media"
	"github.com/erazemk/katalog/internal/model"
	"github.com/erazemk/katalog/internal/store"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	server  *httptest.Server
	db      *sqlx.DB
	token   string // owns storeID
	other   string // owns nothing
	storeID string
}

func setupTestServer(t *testing.T) testEnv {
	t.Helper()
	database := db.NewTestDB(t)
	svc := catalog.NewService(database, nil, nil)

	local, err := media.NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	router := NewRouter(Options{
		Service:   svc,
		JWTSecret: testJWTSecret,
		Uploader:  &media.Uploader{Storage: local},
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	env := testEnv{server: server, db: database}
	env.token = createUserAndLogin(t, server, database, "owner")
	env.other = createUserAndLogin(t, server, database, "other")

	resp := env.do(t, "POST", "/api/stores", env.token, map[string]string{"name": "Acme"})
	var st model.Store
	decodeBody(t, resp, http.StatusOK, &st)
	env.storeID = st.ID
	return env
}

func createUserAndLogin(t *testing.T, server *httptest.Server, database *sqlx.DB, username string) string {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if _, err := store.CreateUser(context.Background(), database, username, string(hash)); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"username": username, "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	var login map[string]string
	decodeBody(t, resp, http.StatusOK, &login)
	if login["token"] == "" {
		t.Fatal("empty token from login")
	}
	return login["token"]
}

func (e testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, wantStatus int, target any) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		var e map[string]string
		json.NewDecoder(resp.Body).Decode(&e)
		t.Fatalf("expected %d, got %d (%s)", wantStatus, resp.StatusCode, e["error"])
	}
	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
}

func errorOf(t *testing.T, resp *http.Response, wantStatus int) string {
	t.Helper()
	var e map[string]string
	decodeBody(t, resp, wantStatus, &e)
	return e["error"]
}

func (e testEnv) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := e.db.Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}

func (e testEnv) billboard(t *testing.T, label string) model.Billboard {
	t.Helper()
	resp := e.do(t, "POST", "/api/"+e.storeID+"/billboards", e.token,
		map[string]string{"label": label, "imageUrl": "https://img/" + label + ".jpg"})
	var b model.Billboard
	decodeBody(t, resp, http.StatusOK, &b)
	return b
}

func (e testEnv) category(t *testing.T, name, billboardID string) model.Category {
	t.Helper()
	resp := e.do(t, "POST", "/api/"+e.storeID+"/categories", e.token,
		map[string]string{"name": name, "billboardId": billboardID})
	var c model.Category
	decodeBody(t, resp, http.StatusOK, &c)
	return c
}

func TestLoginEndpoint(t *testing.T) {
	e := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"username": "owner", "password": "wrong"})
	resp, _ := http.Post(e.server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMeAndLogout(t *testing.T) {
	e := setupTestServer(t)

	var me model.User
	decodeBody(t, e.do(t, "GET", "/api/auth/me", e.token, nil), http.StatusOK, &me)
	if me.Username != "owner" {
		t.Errorf("expected owner, got %q", me.Username)
	}

	decodeBody(t, e.do(t, "POST", "/api/auth/logout", e.token, nil), http.StatusOK, nil)

	resp := e.do(t, "GET", "/api/auth/me", e.token, nil)
	if msg := errorOf(t, resp, http.StatusUnauthorized); msg != catalog.MsgUnauthenticated {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestChangePassword(t *testing.T) {
	e := setupTestServer(t)

	resp := e.do(t, "PUT", "/api/auth/password", e.token,
		map[string]string{"currentPassword": "password", "newPassword": "short"})
	errorOf(t, resp, http.StatusUnprocessableEntity)

	resp = e.do(t, "PUT", "/api/auth/password", e.token,
		map[string]string{"currentPassword": "nope", "newPassword": "longer-password"})
	errorOf(t, resp, http.StatusUnauthorized)

	resp = e.do(t, "PUT", "/api/auth/password", e.token,
		map[string]string{"currentPassword": "password", "newPassword": "longer-password"})
	decodeBody(t, resp, http.StatusOK, nil)
}

func TestCreateRequiresAuthentication(t *testing.T) {
	e := setupTestServer(t)

	for _, res := range []string{"billboards", "categories", "sizes", "colors", "products"} {
		resp := e.do(t, "POST", "/api/"+e.storeID+"/"+res, "", map[string]string{"name": "x"})
		if msg := errorOf(t, resp, http.StatusUnauthorized); msg != catalog.MsgUnauthenticated {
			t.Errorf("%s: unexpected message %q", res, msg)
		}
	}
	resp := e.do(t, "POST", "/api/stores", "", map[string]string{"name": "x"})
	errorOf(t, resp, http.StatusUnauthorized)

	if n := e.count(t, "billboards"); n != 0 {
		t.Errorf("expected no billboards, got %d", n)
	}
	if n := e.count(t, "stores"); n != 1 {
		t.Errorf("expected 1 store, got %d", n)
	}
}

func TestCreateInForeignStoreForbidden(t *testing.T) {
	e := setupTestServer(t)

	image := []map[string]string{{"url": "https://img/p.jpg"}}
	tests := []struct {
		resource string
		body     any
	}{
		{"billboards", map[string]string{"label": "L", "imageUrl": "u"}},
		{"categories", map[string]string{"name": "Shirts", "billboardId": "b1"}},
		{"sizes", map[string]string{"name": "Small", "value": "S"}},
		{"colors", map[string]string{"name": "Red", "value": "#ff0000"}},
		{"products", map[string]any{
			"name": "Shirt", "price": 10, "categoryId": "c1", "sizeId": "s1", "colorId": "k1", "images": image,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			resp := e.do(t, "POST", "/api/"+e.storeID+"/"+tt.resource, e.other, tt.body)
			if msg := errorOf(t, resp, http.StatusForbidden); msg != catalog.MsgForbidden {
				t.Errorf("unexpected message %q", msg)
			}
			if n := e.count(t, tt.resource); n != 0 {
				t.Errorf("expected no %s, got %d", tt.resource, n)
			}
		})
	}
}

func TestCreateMissingField(t *testing.T) {
	e := setupTestServer(t)

	image := []map[string]string{{"url": "https://img/p.jpg"}}
	tests := []struct {
		path  string
		table string
		body  any
		want  string
		rows  int
	}{
		{"/api/" + e.storeID + "/billboards", "billboards", map[string]string{"label": "Only label"}, "Image is required", 0},
		{"/api/" + e.storeID + "/categories", "categories", map[string]string{"name": "Shirts"}, "Billboard Id is required", 0},
		{"/api/" + e.storeID + "/sizes", "sizes", map[string]string{"value": "M"}, "Name is required", 0},
		{"/api/" + e.storeID + "/colors", "colors", map[string]string{"name": "Red"}, "Value is required", 0},
		{"/api/" + e.storeID + "/products", "products", map[string]any{
			"name": "Shirt", "price": 10, "sizeId": "s1", "colorId": "k1", "images": image,
		}, "Category Id is required", 0},
		{"/api/stores", "stores", map[string]string{}, "Name is required", 1},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			resp := e.do(t, "POST", tt.path, e.token, tt.body)
			if msg := errorOf(t, resp, http.StatusBadRequest); msg != tt.want {
				t.Errorf("expected %q, got %q", tt.want, msg)
			}
			if n := e.count(t, tt.table); n != tt.rows {
				t.Errorf("expected %d rows in %s, got %d", tt.rows, tt.table, n)
			}
		})
	}
}

func TestMalformedBodyIsInvalid(t *testing.T) {
	e := setupTestServer(t)

	resp := e.do(t, "POST", "/api/"+e.storeID+"/billboards", e.token, "{not json")
	if msg := errorOf(t, resp, http.StatusUnprocessableEntity); msg != catalog.MsgInvalid {
		t.Errorf("unexpected message %q", msg)
	}

	resp = e.do(t, "POST", "/api/"+e.storeID+"/colors", e.token, map[string]string{"name": "Red", "value": "red"})
	errorOf(t, resp, http.StatusUnprocessableEntity)
}

func TestDuplicateBillboardLabel(t *testing.T) {
	e := setupTestServer(t)
	e.billboard(t, "Summer")

	resp := e.do(t, "POST", "/api/"+e.storeID+"/billboards", e.token,
		map[string]string{"label": "Summer", "imageUrl": "https://img/other.jpg"})
	if msg := errorOf(t, resp, http.StatusConflict); msg != "Labelname already in use, try another" {
		t.Errorf("unexpected message %q", msg)
	}
	if n := e.count(t, "billboards"); n != 1 {
		t.Errorf("expected 1 billboard, got %d", n)
	}
}

func TestDeleteReferencedBillboard(t *testing.T) {
	e := setupTestServer(t)
	b := e.billboard(t, "Summer")
	e.category(t, "Shirts", b.ID)

	resp := e.do(t, "DELETE", "/api/"+e.storeID+"/billboards/"+b.ID, e.token, nil)
	msg := errorOf(t, resp, http.StatusConflict)
	if !strings.Contains(msg, "removed all categories") {
		t.Errorf("unexpected message %q", msg)
	}

	if n := e.count(t, "billboards"); n != 1 {
		t.Errorf("expected billboard intact, got %d", n)
	}
	if n := e.count(t, "categories"); n != 1 {
		t.Errorf("expected category intact, got %d", n)
	}
}

func TestBillboardEndToEnd(t *testing.T) {
	e := setupTestServer(t)
	base := "/api/" + e.storeID + "/billboards"

	created := e.billboard(t, "Winter")
	if created.Label != "Winter" || created.ImageURL != "https://img/Winter.jpg" {
		t.Fatalf("unexpected billboard %+v", created)
	}

	var list []model.Billboard
	decodeBody(t, e.do(t, "GET", base, "", nil), http.StatusOK, &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected created billboard in list, got %+v", list)
	}

	var got model.Billboard
	decodeBody(t, e.do(t, "GET", base+"/"+created.ID, "", nil), http.StatusOK, &got)
	if got.Label != "Winter" {
		t.Errorf("unexpected label %q", got.Label)
	}

	var updated model.Billboard
	resp := e.do(t, "PATCH", base+"/"+created.ID, e.token,
		map[string]string{"label": "Winter sale", "imageUrl": "https://img/w2.jpg"})
	decodeBody(t, resp, http.StatusOK, &updated)
	if updated.Label != "Winter sale" {
		t.Errorf("expected updated label, got %q", updated.Label)
	}

	decodeBody(t, e.do(t, "DELETE", base+"/"+created.ID, e.token, nil), http.StatusOK, nil)

	decodeBody(t, e.do(t, "GET", base, "", nil), http.StatusOK, &list)
	if len(list) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(list))
	}
	errorOf(t, e.do(t, "GET", base+"/"+created.ID, "", nil), http.StatusNotFound)
}

func TestUpdateInOtherStoreNotFound(t *testing.T) {
	e := setupTestServer(t)
	b := e.billboard(t, "Summer")

	var second model.Store
	decodeBody(t, e.do(t, "POST", "/api/stores", e.token, map[string]string{"name": "Second"}), http.StatusOK, &second)

	resp := e.do(t, "PATCH", "/api/"+second.ID+"/billboards/"+b.ID, e.token,
		map[string]string{"label": "Moved", "imageUrl": "u"})
	errorOf(t, resp, http.StatusNotFound)

	var got model.Billboard
	decodeBody(t, e.do(t, "GET", "/api/"+e.storeID+"/billboards/"+b.ID, "", nil), http.StatusOK, &got)
	if got.Label != "Summer" {
		t.Errorf("billboard changed: %q", got.Label)
	}
}

type productFixture struct {
	categoryA, categoryB string
	sizeID, colorID      string
}

func (e testEnv) productFixture(t *testing.T) productFixture {
	t.Helper()
	b := e.billboard(t, "Main")
	f := productFixture{
		categoryA: e.category(t, "Shirts", b.ID).ID,
		categoryB: e.category(t, "Pants", b.ID).ID,
	}

	var s model.Size
	decodeBody(t, e.do(t, "POST", "/api/"+e.storeID+"/sizes", e.token,
		map[string]string{"name": "Medium", "value": "M"}), http.StatusOK, &s)
	var c model.Color
	decodeBody(t, e.do(t, "POST", "/api/"+e.storeID+"/colors", e.token,
		map[string]string{"name": "Black", "value": "#000000"}), http.StatusOK, &c)
	f.sizeID, f.colorID = s.ID, c.ID
	return f
}

func (e testEnv) product(t *testing.T, f productFixture, name, categoryID string, featured, archived bool) model.Product {
	t.Helper()
	resp := e.do(t, "POST", "/api/"+e.storeID+"/products", e.token, map[string]any{
		"name":       name,
		"price":      19.99,
		"categoryId": categoryID,
		"sizeId":     f.sizeID,
		"colorId":    f.colorID,
		"images":     []map[string]string{{"url": "https://img/" + name + ".jpg"}},
		"isFeatured": featured,
		"isArchived": archived,
	})
	var p model.Product
	decodeBody(t, resp, http.StatusOK, &p)
	return p
}

func TestProductListFilters(t *testing.T) {
	e := setupTestServer(t)
	f := e.productFixture(t)

	first := e.product(t, f, "first", f.categoryA, false, false)
	e.product(t, f, "other-category", f.categoryB, true, false)
	e.product(t, f, "archived", f.categoryA, true, true)
	second := e.product(t, f, "second", f.categoryA, true, false)

	base := "/api/" + e.storeID + "/products"

	var all []model.Product
	decodeBody(t, e.do(t, "GET", base, "", nil), http.StatusOK, &all)
	if len(all) != 3 {
		t.Fatalf("expected 3 unarchived products, got %d", len(all))
	}
	for _, p := range all {
		if p.IsArchived {
			t.Errorf("archived product %q listed", p.Name)
		}
	}

	var byCategory []model.Product
	decodeBody(t, e.do(t, "GET", base+"?categoryId="+f.categoryA, "", nil), http.StatusOK, &byCategory)
	if len(byCategory) != 2 {
		t.Fatalf("expected 2 products in category, got %d", len(byCategory))
	}
	if byCategory[0].ID != second.ID || byCategory[1].ID != first.ID {
		t.Errorf("expected newest first, got %s, %s", byCategory[0].Name, byCategory[1].Name)
	}
	if len(byCategory[0].Images) != 1 || byCategory[0].Category == nil {
		t.Errorf("expected images and category on listed product")
	}

	var featured []model.Product
	decodeBody(t, e.do(t, "GET", base+"?isFeatured=true&categoryId="+f.categoryA, "", nil), http.StatusOK, &featured)
	if len(featured) != 1 || featured[0].ID != second.ID {
		t.Errorf("expected only the featured unarchived product, got %d", len(featured))
	}

	var notFiltered []model.Product
	decodeBody(t, e.do(t, "GET", base+"?isFeatured=false&categoryId="+f.categoryA, "", nil), http.StatusOK, &notFiltered)
	if len(notFiltered) != len(byCategory) {
		t.Errorf("isFeatured=false should not filter, got %d of %d", len(notFiltered), len(byCategory))
	}
}

func TestProductWithoutImagesIsMissing(t *testing.T) {
	e := setupTestServer(t)
	f := e.productFixture(t)

	resp := e.do(t, "POST", "/api/"+e.storeID+"/products", e.token, map[string]any{
		"name": "bare", "price": 5, "categoryId": f.categoryA, "sizeId": f.sizeID, "colorId": f.colorID,
		"images": []map[string]string{},
	})
	if msg := errorOf(t, resp, http.StatusBadRequest); msg != "Images is required" {
		t.Errorf("unexpected message %q", msg)
	}
	if n := e.count(t, "products"); n != 0 {
		t.Errorf("expected no products, got %d", n)
	}
}

func TestStoreLifecycle(t *testing.T) {
	e := setupTestServer(t)

	resp := e.do(t, "POST", "/api/stores", e.other, map[string]string{"name": "Acme"})
	if msg := errorOf(t, resp, http.StatusConflict); msg != "Storename already in use, try another" {
		t.Errorf("unexpected message %q", msg)
	}

	resp = e.do(t, "PATCH", "/api/stores/"+e.storeID, e.other, map[string]string{"name": "Stolen"})
	errorOf(t, resp, http.StatusNotFound)

	var renamed model.Store
	decodeBody(t, e.do(t, "PATCH", "/api/stores/"+e.storeID, e.token, map[string]string{"name": "Acme 2"}), http.StatusOK, &renamed)
	if renamed.Name != "Acme 2" {
		t.Errorf("expected rename, got %q", renamed.Name)
	}

	e.billboard(t, "Blocks delete")
	errorOf(t, e.do(t, "DELETE", "/api/stores/"+e.storeID, e.token, nil), http.StatusConflict)

	var mine []model.Store
	decodeBody(t, e.do(t, "GET", "/api/stores", e.token, nil), http.StatusOK, &mine)
	if len(mine) != 1 {
		t.Errorf("expected 1 store, got %d", len(mine))
	}

	var theirs []model.Store
	decodeBody(t, e.do(t, "GET", "/api/stores", e.other, nil), http.StatusOK, &theirs)
	if len(theirs) != 0 {
		t.Errorf("expected no stores for other user, got %d", len(theirs))
	}
}

func pngUpload(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "pixel.png")
	if err != nil {
		t.Fatal(err)
	}
	png.Encode(part, img)
	mw.Close()
	return &body, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	e := setupTestServer(t)

	body, contentType := pngUpload(t)
	req, _ := http.NewRequest("POST", e.server.URL+"/api/"+e.storeID+"/uploads", body)
	req.Header.Set("Authorization", "Bearer "+e.token)
	req.Header.Set("Content-Type", contentType)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]string
	decodeBody(t, resp, http.StatusOK, &out)
	if !strings.HasPrefix(out["url"], "/uploads/stores/"+e.storeID+"/") {
		t.Errorf("unexpected url %q", out["url"])
	}

	body, contentType = pngUpload(t)
	req, _ = http.NewRequest("POST", e.server.URL+"/api/"+e.storeID+"/uploads", body)
	req.Header.Set("Authorization", "Bearer "+e.other)
	req.Header.Set("Content-Type", contentType)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	errorOf(t, resp, http.StatusForbidden)
}

func TestRateLimit(t *testing.T) {
	database := db.NewTestDB(t)
	router := NewRouter(Options{
		Service:   catalog.NewService(database, nil, nil),
		JWTSecret: testJWTSecret,
		Limiter:   NewRateLimiter(0.001, 2, time.Minute),
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	var last int
	for range 3 {
		resp, err := http.Get(server.URL + "/api/some-store/billboards")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		last = resp.StatusCode
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", last)
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	l := NewRateLimiter(1, 1, time.Minute)
	l.allow("a")
	l.evict(time.Now().Add(2 * time.Minute))
	if len(l.clients) != 0 {
		t.Errorf("expected idle client evicted, got %d", len(l.clients))
	}
}

func TestCORSPreflight(t *testing.T) {
	database := db.NewTestDB(t)
	router := NewRouter(Options{
		Service:     catalog.NewService(database, nil, nil),
		JWTSecret:   testJWTSecret,
		CORSOrigins: []string{"https://shop.example"},
	})

	req := httptest.NewRequest("OPTIONS", "/api/s/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Errorf("expected allowed origin, got %q", got)
	}
}

func TestHealth(t *testing.T) {
	database := db.NewTestDB(t)
	server := httptest.NewServer(Health(database))
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	database.Close()
	resp, err = http.Get(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if msg := errorOf(t, resp, http.StatusServiceUnavailable); msg != "database unavailable" {
		t.Errorf("unexpected error %q", msg)
	}
}

func TestCreateTrimsAndNormalizesLabel(t *testing.T) {
	e := setupTestServer(t)
	e.billboard(t, "Summer")

	resp := e.do(t, "POST", "/api/"+e.storeID+"/billboards", e.token,
		map[string]string{"label": "  Summer ", "imageUrl": "https://img/x.jpg"})
	errorOf(t, resp, http.StatusConflict)

	resp = e.do(t, "POST", "/api/"+e.storeID+"/billboards", e.token,
		map[string]string{"label": "   ", "imageUrl": "https://img/x.jpg"})
	if msg := errorOf(t, resp, http.StatusBadRequest); msg != "Label is required" {
		t.Errorf("unexpected error %q", msg)
	}
}
