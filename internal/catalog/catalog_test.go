package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/katalog/internal/cache"
	"github.com/erazemk/katalog/internal/db"
	"github.com/erazemk/katalog/internal/events"
	"github.com/erazemk/katalog/internal/model"
	"github.com/erazemk/katalog/internal/store"
)

type env struct {
	svc    *Service
	db     *sqlx.DB
	events *events.Recorder
	owner  string
	other  string
	store  *model.Store
}

func setup(t *testing.T) env {
	t.Helper()
	database := db.NewTestDB(t)
	ctx := context.Background()

	rec := &events.Recorder{}
	svc := NewService(database, cache.NewMemory(0), rec)

	owner, err := store.CreateUser(ctx, database, "owner", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	other, err := store.CreateUser(ctx, database, "other", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	st, err := svc.CreateStore(ctx, owner.ID, model.StoreInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	return env{svc: svc, db: database, events: rec, owner: owner.ID, other: other.ID, store: st}
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %s error, got %s (%v)", want, got, err)
	}
}

func countRows(t *testing.T, database *sqlx.DB, table string) int {
	t.Helper()
	var n int
	if err := database.Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}

func TestCreateBillboardContract(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	valid := model.BillboardInput{Label: "Summer", ImageURL: "https://img/s.jpg"}

	_, err := e.svc.CreateBillboard(ctx, "", e.store.ID, valid)
	assertKind(t, err, Unauthenticated)

	_, err = e.svc.CreateBillboard(ctx, e.owner, e.store.ID, model.BillboardInput{ImageURL: "x"})
	assertKind(t, err, Missing)
	if MessageOf(err) != "Label is required" {
		t.Errorf("unexpected message %q", MessageOf(err))
	}

	_, err = e.svc.CreateBillboard(ctx, e.other, e.store.ID, valid)
	assertKind(t, err, Forbidden)

	_, err = e.svc.CreateBillboard(ctx, e.owner, "", valid)
	assertKind(t, err, Missing)

	if n := countRows(t, e.db, "billboards"); n != 0 {
		t.Fatalf("expected no billboards after rejected creates, got %d", n)
	}

	b, err := e.svc.CreateBillboard(ctx, e.owner, e.store.ID, valid)
	if err != nil {
		t.Fatalf("CreateBillboard: %v", err)
	}
	if b.Label != "Summer" || b.ImageURL != "https://img/s.jpg" {
		t.Errorf("unexpected billboard %+v", b)
	}

	_, err = e.svc.CreateBillboard(ctx, e.owner, e.store.ID, valid)
	assertKind(t, err, Conflict)
	if n := countRows(t, e.db, "billboards"); n != 1 {
		t.Errorf("expected 1 billboard after duplicate, got %d", n)
	}
}

func TestMissingCheckedBeforeOwnership(t *testing.T) {
	e := setup(t)
	_, err := e.svc.CreateSize(context.Background(), e.other, e.store.ID, model.SizeInput{Name: "Large"})
	assertKind(t, err, Missing)
}

func TestSchemaViolationIsInvalid(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.CreateColor(ctx, e.owner, e.store.ID, model.ColorInput{Name: "Red", Value: "red"})
	assertKind(t, err, Invalid)

	_, err = e.svc.CreateSize(ctx, e.owner, e.store.ID, model.SizeInput{Name: "An absurdly long size name over thirty", Value: "L"})
	assertKind(t, err, Invalid)

	_, err = e.svc.UpdateStore(ctx, e.owner, e.store.ID, model.StoreInput{Name: "A store name far longer than thirty characters"})
	assertKind(t, err, Invalid)
}

func TestProductMissingImages(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	in := model.ProductInput{Name: "Shirt", Price: 10, CategoryID: "c", SizeID: "s", ColorID: "co", Images: []model.ImageInput{}}
	_, err := e.svc.CreateProduct(ctx, e.owner, e.store.ID, in)
	assertKind(t, err, Missing)

	in.Images = []model.ImageInput{{URL: "a"}}
	in.Price = 0
	_, err = e.svc.CreateProduct(ctx, e.owner, e.store.ID, in)
	assertKind(t, err, Missing)

	in.Price = -5
	_, err = e.svc.CreateProduct(ctx, e.owner, e.store.ID, in)
	assertKind(t, err, Invalid)
}

func TestProductUnknownReferenceIsInvalid(t *testing.T) {
	e := setup(t)
	in := model.ProductInput{Name: "Shirt", Price: 10, CategoryID: "c", SizeID: "s", ColorID: "co", Images: []model.ImageInput{{URL: "a"}}}
	_, err := e.svc.CreateProduct(context.Background(), e.owner, e.store.ID, in)
	assertKind(t, err, Invalid)
}

func TestDeleteReferencedBillboard(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	b, _ := e.svc.CreateBillboard(ctx, e.owner, e.store.ID, model.BillboardInput{Label: "Summer", ImageURL: "x"})
	if _, err := e.svc.CreateCategory(ctx, e.owner, e.store.ID, model.CategoryInput{Name: "Shirts", BillboardID: b.ID}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	_, err := e.svc.DeleteBillboard(ctx, e.owner, e.store.ID, b.ID)
	assertKind(t, err, ReferentialConflict)
	if MessageOf(err) != "Make sure you removed all categories using this billboard first" {
		t.Errorf("unexpected message %q", MessageOf(err))
	}
	if n := countRows(t, e.db, "billboards"); n != 1 {
		t.Errorf("billboard should remain, got %d rows", n)
	}
	if n := countRows(t, e.db, "categories"); n != 1 {
		t.Errorf("category should remain, got %d rows", n)
	}
}

func TestUpdateScopedToStore(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	b, _ := e.svc.CreateBillboard(ctx, e.owner, e.store.ID, model.BillboardInput{Label: "Summer", ImageURL: "x"})
	second, err := e.svc.CreateStore(ctx, e.owner, model.StoreInput{Name: "Second"})
	if err != nil {
		t.Fatalf("CreateStore: %v", err)
	}

	_, err = e.svc.UpdateBillboard(ctx, e.owner, second.ID, b.ID, model.BillboardInput{Label: "Moved", ImageURL: "y"})
	assertKind(t, err, NotFound)

	got, _ := e.svc.GetBillboard(ctx, e.store.ID, b.ID)
	if got.Label != "Summer" {
		t.Errorf("billboard changed to %q", got.Label)
	}
}

func TestStoreLifecycle(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.CreateStore(ctx, e.other, model.StoreInput{Name: "Acme"})
	assertKind(t, err, Conflict)

	_, err = e.svc.CreateStore(ctx, "", model.StoreInput{Name: "Nope"})
	assertKind(t, err, Unauthenticated)

	_, err = e.svc.GetStore(ctx, e.other, e.store.ID)
	assertKind(t, err, Forbidden)

	_, err = e.svc.UpdateStore(ctx, e.other, e.store.ID, model.StoreInput{Name: "Mine now"})
	assertKind(t, err, NotFound)

	if _, err := e.svc.CreateSize(ctx, e.owner, e.store.ID, model.SizeInput{Name: "Large", Value: "L"}); err != nil {
		t.Fatalf("CreateSize: %v", err)
	}
	_, err = e.svc.DeleteStore(ctx, e.owner, e.store.ID)
	assertKind(t, err, ReferentialConflict)

	stores, _ := e.svc.ListStores(ctx, e.owner)
	if len(stores) != 1 {
		t.Errorf("expected 1 store, got %d", len(stores))
	}
}

func TestMutationInvalidatesCacheAndPublishes(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	before := len(e.events.Events())

	list, err := e.svc.ListSizes(ctx, e.store.ID)
	if err != nil {
		t.Fatalf("ListSizes: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no sizes, got %d", len(list))
	}

	s, err := e.svc.CreateSize(ctx, e.owner, e.store.ID, model.SizeInput{Name: "Large", Value: "L"})
	if err != nil {
		t.Fatalf("CreateSize: %v", err)
	}

	list, _ = e.svc.ListSizes(ctx, e.store.ID)
	if len(list) != 1 || list[0].ID != s.ID {
		t.Errorf("expected the new size after invalidation, got %+v", list)
	}

	evs := e.events.Events()
	if len(evs) != before+1 {
		t.Fatalf("expected one new event, got %d", len(evs)-before)
	}
	last := evs[len(evs)-1]
	if last.Type != "size.created" || last.EntityID != s.ID || last.StoreID != e.store.ID {
		t.Errorf("unexpected event %+v", last)
	}
}

func TestFailedMutationPublishesNothing(t *testing.T) {
	e := setup(t)
	before := len(e.events.Events())

	e.svc.CreateBillboard(context.Background(), e.other, e.store.ID, model.BillboardInput{Label: "x", ImageURL: "y"})
	if got := len(e.events.Events()); got != before {
		t.Errorf("expected no events for a rejected mutation, got %d", got-before)
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	e := setup(t)
	_, err := e.svc.GetProduct(context.Background(), e.store.ID, "missing")
	assertKind(t, err, NotFound)

	_, err = e.svc.ListProducts(context.Background(), "", model.ProductFilter{})
	assertKind(t, err, Missing)
}

// racingCache runs beforeSet once, between a list's database load and its
// cache write.
type racingCache struct {
	*cache.Memory
	beforeSet func()
}

func (c *racingCache) Set(ctx context.Context, storeID string, gen int64, key string, value any) error {
	if f := c.beforeSet; f != nil {
		c.beforeSet = nil
		f()
	}
	return c.Memory.Set(ctx, storeID, gen, key, value)
}

func TestListRacingDeleteDoesNotCacheStaleRows(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	rc := &racingCache{Memory: cache.NewMemory(time.Minute)}
	e.svc.Cache = rc

	b, err := e.svc.CreateBillboard(ctx, e.owner, e.store.ID, model.BillboardInput{Label: "Summer", ImageURL: "https://img/s.jpg"})
	if err != nil {
		t.Fatalf("CreateBillboard: %v", err)
	}

	rc.beforeSet = func() {
		if _, err := e.svc.DeleteBillboard(ctx, e.owner, e.store.ID, b.ID); err != nil {
			t.Errorf("DeleteBillboard: %v", err)
		}
	}
	if _, err := e.svc.ListBillboards(ctx, e.store.ID); err != nil {
		t.Fatalf("ListBillboards: %v", err)
	}

	list, err := e.svc.ListBillboards(ctx, e.store.ID)
	if err != nil {
		t.Fatalf("ListBillboards: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("deleted billboard still listed: %+v", list)
	}
}
