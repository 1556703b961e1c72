package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func productRows(names ...string) []map[string]any {
	rows := make([]map[string]any, 0, len(names))
	for i, name := range names {
		rows = append(rows, map[string]any{
			"id":         name + "-id",
			"name":       name,
			"price":      float64(10 + i),
			"categoryId": "cat-1",
		})
	}
	return rows
}

func productsData(rows []map[string]any) map[string]any {
	return map[string]any{
		"customerSupport": map[string]any{
			"products": rows,
			"categories": []map[string]any{
				{"id": "cat-1", "name": "Shoes"},
				{"id": "cat-2", "name": "Hats"},
			},
		},
	}
}

func TestProductFetchReFiltersLocally(t *testing.T) {
	// The backend over-returns: "Desk Lamp" does not contain the
	// requested name fragment and must be filtered out client-side.
	srv := routingServer(t, []routeEntry{
		{keyword: "products(", data: productsData(append(
			productRows("Red Shirt", "Red Scarf"),
			map[string]any{"id": "lamp-id", "name": "Desk Lamp", "price": 30.0, "categoryId": "cat-1"},
		))},
	})
	s := NewProductStore(execFor(srv))

	if err := s.Fetch(context.Background(), ProductFilterPatch{Name: strPtr("red")}); err != nil {
		t.Fatal(err)
	}

	got := s.Products()
	if len(got) != 2 {
		t.Fatalf("products = %+v", got)
	}
	for _, p := range got {
		if !strings.Contains(strings.ToLower(p.Name), "red") {
			t.Errorf("unfiltered product leaked: %s", p.Name)
		}
	}
	if opts := s.CategoryOptions(); len(opts) != 2 || opts[0].Label != "Shoes" {
		t.Errorf("category options = %+v", opts)
	}
}

func TestProductFetchMergesFilterPatch(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "products(", data: productsData(nil)},
	})
	s := NewProductStore(execFor(srv))

	if err := s.Fetch(context.Background(), ProductFilterPatch{Name: strPtr(" red ")}); err != nil {
		t.Fatal(err)
	}
	if err := s.Fetch(context.Background(), ProductFilterPatch{Offset: intPtr(20)}); err != nil {
		t.Fatal(err)
	}

	f := s.ActiveFilters()
	if f.Name != "red" || f.Offset != 20 || f.Limit != 20 {
		t.Fatalf("filters = %+v", f)
	}

	// Invalid paging values snap back to defaults.
	if err := s.Fetch(context.Background(), ProductFilterPatch{Limit: intPtr(-5), Offset: intPtr(-1)}); err != nil {
		t.Fatal(err)
	}
	f = s.ActiveFilters()
	if f.Limit != 20 || f.Offset != 0 {
		t.Fatalf("filters after invalid patch = %+v", f)
	}
}

func TestProductFetchErrorClearsList(t *testing.T) {
	srv := gqlErrorServer(t, "products unavailable")
	s := NewProductStore(execFor(srv))

	if err := s.Fetch(context.Background(), ProductFilterPatch{}); err == nil {
		t.Fatal("expected error")
	}
	if len(s.Products()) != 0 {
		t.Error("error fetch must clear the list")
	}
	if s.Err() == "" || s.Loading() {
		t.Errorf("err=%q loading=%v", s.Err(), s.Loading())
	}
}

func TestProductCreatePrependsWhenMatching(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "addProduct", data: map[string]any{
			"customerSupport": map[string]any{
				"addProduct": map[string]any{
					"id": "new-id", "name": "New Shirt", "price": 15.0, "categoryId": "cat-1",
				},
			},
		}},
		{keyword: "products(", data: productsData(productRows("Old Shirt"))},
	})
	s := NewProductStore(execFor(srv))
	if err := s.Fetch(context.Background(), ProductFilterPatch{}); err != nil {
		t.Fatal(err)
	}

	created, err := s.Create(context.Background(), ProductInput{Name: "New Shirt", Price: 15, CategoryID: "cat-1"})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != "new-id" {
		t.Fatalf("created = %+v", created)
	}

	got := s.Products()
	if len(got) != 2 || got[0].ID != "new-id" {
		t.Fatalf("products = %+v", got)
	}
}

func TestProductCreateOutsideFilterLeavesListUntouched(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "addProduct", data: map[string]any{
			"customerSupport": map[string]any{
				"addProduct": map[string]any{
					"id": "hat-id", "name": "Fedora", "price": 25.0, "categoryId": "cat-2",
				},
			},
		}},
		{keyword: "products(", data: productsData(productRows("Red Shirt"))},
	})
	s := NewProductStore(execFor(srv))
	if err := s.Fetch(context.Background(), ProductFilterPatch{CategoryID: strPtr("cat-1")}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Create(context.Background(), ProductInput{Name: "Fedora", Price: 25, CategoryID: "cat-2"}); err != nil {
		t.Fatal(err)
	}

	got := s.Products()
	if len(got) != 1 || got[0].Name != "Red Shirt" {
		t.Fatalf("products = %+v", got)
	}
}

func TestProductCreateSurfacesBackendErrors(t *testing.T) {
	srv := gqlErrorServer(t, "Category not found", "second issue")
	s := NewProductStore(execFor(srv))

	_, err := s.Create(context.Background(), ProductInput{Name: "X", Price: 1, CategoryID: "nope"})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Category not found; second issue" {
		t.Fatalf("err = %q", err)
	}
}

func TestProductUpdateEvictsWhenFilterNoLongerMatches(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "updateProduct", data: map[string]any{
			"customerSupport": map[string]any{
				"updateProduct": map[string]any{
					// Moved to another category while a cat-1 filter is active.
					"id": "Red Shirt-id", "name": "Red Shirt", "price": 10.0, "categoryId": "cat-2",
				},
			},
		}},
		{keyword: "products(", data: productsData(productRows("Red Shirt", "Red Scarf"))},
	})
	s := NewProductStore(execFor(srv))
	if err := s.Fetch(context.Background(), ProductFilterPatch{CategoryID: strPtr("cat-1")}); err != nil {
		t.Fatal(err)
	}

	updated, err := s.Update(context.Background(), "Red Shirt-id", ProductUpdate{CategoryID: strPtr("cat-2")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.CategoryID != "cat-2" {
		t.Fatalf("updated = %+v", updated)
	}

	got := s.Products()
	if len(got) != 1 || got[0].ID != "Red Scarf-id" {
		t.Fatalf("products = %+v", got)
	}
}

func TestProductUpdateReplacesInPlace(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "updateProduct", data: map[string]any{
			"customerSupport": map[string]any{
				"updateProduct": map[string]any{
					"id": "Red Scarf-id", "name": "Red Scarf Deluxe", "price": 19.0, "categoryId": "cat-1",
				},
			},
		}},
		{keyword: "products(", data: productsData(productRows("Red Shirt", "Red Scarf"))},
	})
	s := NewProductStore(execFor(srv))
	if err := s.Fetch(context.Background(), ProductFilterPatch{}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Update(context.Background(), "Red Scarf-id", ProductUpdate{Name: strPtr("Red Scarf Deluxe")}); err != nil {
		t.Fatal(err)
	}

	got := s.Products()
	if len(got) != 2 {
		t.Fatalf("products = %+v", got)
	}
	if got[0].ID != "Red Shirt-id" || got[1].Name != "Red Scarf Deluxe" {
		t.Fatalf("order disturbed or update lost: %+v", got)
	}
}

func TestProductDeleteRemovesRow(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "deleteProduct", data: map[string]any{
			"customerSupport": map[string]any{"deleteProduct": true},
		}},
		{keyword: "products(", data: productsData(productRows("Red Shirt", "Red Scarf"))},
	})
	s := NewProductStore(execFor(srv))
	if err := s.Fetch(context.Background(), ProductFilterPatch{}); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(context.Background(), "Red Shirt-id"); err != nil {
		t.Fatal(err)
	}
	got := s.Products()
	if len(got) != 1 || got[0].ID != "Red Scarf-id" {
		t.Fatalf("products = %+v", got)
	}
}

// TestProductFetchStaleResponseDiscarded interleaves two fetches: the
// first response arrives after the second completed and must not
// overwrite it.
func TestProductFetchStaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	firstArrived := make(chan struct{})
	var requests int
	var mu sync.Mutex

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		n := requests
		mu.Unlock()

		var rows []map[string]any
		if n == 1 {
			close(firstArrived)
			<-release
			rows = productRows("Stale Result")
		} else {
			rows = productRows("Fresh Result")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": productsData(rows)})
	}))
	t.Cleanup(srv.Close)

	s := NewProductStore(execFor(srv))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Fetch(context.Background(), ProductFilterPatch{})
	}()

	<-firstArrived
	if err := s.Fetch(context.Background(), ProductFilterPatch{}); err != nil {
		t.Fatal(err)
	}
	close(release)
	wg.Wait()

	got := s.Products()
	if len(got) != 1 || got[0].Name != "Fresh Result" {
		t.Fatalf("stale response overwrote fresh one: %+v", got)
	}
}

func TestProductSubscribersSeeCommits(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "products(", data: productsData(productRows("Red Shirt"))},
	})
	s := NewProductStore(execFor(srv))

	var notifications int
	cancel := s.Subscribe(func() { notifications++ })
	defer cancel()

	if err := s.Fetch(context.Background(), ProductFilterPatch{}); err != nil {
		t.Fatal(err)
	}
	// One commit for loading=true, one for the result.
	if notifications < 2 {
		t.Fatalf("notifications = %d", notifications)
	}
}
