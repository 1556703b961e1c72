package stores

import (
	"context"
	"testing"

	"shopx-support-console/internal/domain"
)

func overviewData() map[string]any {
	return map[string]any{
		"customerSupport": map[string]any{
			"orders": []map[string]any{
				{"id": 1, "total": 100.0, "status": "PAID"},
				{"id": 2, "total": 50.5, "status": "PENDING"},
			},
			"products": []map[string]any{
				{"id": "p-1"}, {"id": "p-2"}, {"id": "p-3"},
			},
			"users": []map[string]any{
				{"id": 1, "role": "CUSTOMER"},
				{"id": 2, "role": "CUSTOMER"},
				{"id": 3, "role": "SUPPORT"},
			},
			"reviews": []map[string]any{
				{"id": "r-1", "rating": 4.0},
				{"id": "r-2", "rating": 5.0},
			},
		},
	}
}

func TestLoadOverviewAggregatesMetrics(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "CustomerSupportOverview", data: overviewData()},
	})
	s := NewSupportStore(execFor(srv))

	if err := s.LoadOverview(context.Background()); err != nil {
		t.Fatal(err)
	}

	m := s.Metrics()
	if m == nil {
		t.Fatal("metrics missing")
	}
	if m.TotalRevenue != 150.5 || m.Orders != 2 || m.Products != 3 {
		t.Fatalf("metrics = %+v", m)
	}
	// Support agents do not count as customers.
	if m.Customers != 2 {
		t.Fatalf("customers = %d", m.Customers)
	}
	if m.AverageRating == nil || *m.AverageRating != 4.5 {
		t.Fatalf("average rating = %v", m.AverageRating)
	}
}

func TestLoadOverviewNoReviewsMeansNoRating(t *testing.T) {
	data := overviewData()
	data["customerSupport"].(map[string]any)["reviews"] = []map[string]any{}

	srv := routingServer(t, []routeEntry{
		{keyword: "CustomerSupportOverview", data: data},
	})
	s := NewSupportStore(execFor(srv))

	if err := s.LoadOverview(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m := s.Metrics(); m == nil || m.AverageRating != nil {
		t.Fatalf("metrics = %+v", m)
	}
}

func TestLoadOverviewErrorClearsMetrics(t *testing.T) {
	srv := gqlErrorServer(t, "overview unavailable")
	s := NewSupportStore(execFor(srv))

	if err := s.LoadOverview(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.Metrics() != nil {
		t.Error("stale metrics survived a failed load")
	}
	if s.OverviewErr() == "" {
		t.Error("error not recorded")
	}
}

func TestLoadCustomerProfileAssemblesView(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "userContext(", data: map[string]any{
			"customerSupport": map[string]any{
				"userContext": map[string]any{
					"user": map[string]any{
						"id": 7, "email": "shopper@example.com", "role": "CUSTOMER",
					},
					"addresses": []map[string]any{
						// Missing owner id falls back to the profile user.
						{"id": 11, "street": "1 Main St", "city": "Basel", "postalCode": "4051", "country": "CH"},
					},
					"cart": map[string]any{
						"userId": 7,
						"total":  34.0,
						"items": []map[string]any{
							{"quantity": 2, "product": map[string]any{"id": "p-1", "name": "Shirt", "price": 17.0}},
						},
					},
					"wishlist": map[string]any{
						"userId": 7,
						"products": []map[string]any{
							{"id": "p-2", "name": "Scarf", "price": 9.0},
						},
					},
				},
				"orders": []map[string]any{
					{"id": 101, "total": 49.0, "status": "PAID"},
				},
				"reviews": []map[string]any{
					{"id": "r-1", "productId": "p-1", "rating": 4.0, "createdAt": "2026-08-01T00:00:00Z"},
				},
			},
		}},
	})
	s := NewSupportStore(execFor(srv))

	if err := s.LoadCustomerProfile(context.Background(), "7"); err != nil {
		t.Fatal(err)
	}

	p := s.Profile()
	if p == nil || p.User == nil || p.User.ID != "7" {
		t.Fatalf("profile = %+v", p)
	}
	if len(p.Addresses) != 1 || p.Addresses[0].UserID != "7" {
		t.Fatalf("addresses = %+v", p.Addresses)
	}
	if p.Cart == nil || len(p.Cart.Items) != 1 || p.Cart.Items[0].Product.Name != "Shirt" {
		t.Fatalf("cart = %+v", p.Cart)
	}
	if p.Wishlist == nil || len(p.Wishlist.Products) != 1 {
		t.Fatalf("wishlist = %+v", p.Wishlist)
	}
	if len(p.Orders) != 1 || p.Orders[0].UserID != "7" {
		t.Fatalf("orders = %+v", p.Orders)
	}
	if len(p.Reviews) != 1 || p.Reviews[0].ProductID != "p-1" {
		t.Fatalf("reviews = %+v", p.Reviews)
	}
}

func TestProfileHandsOutCopies(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "userContext(", data: map[string]any{
			"customerSupport": map[string]any{
				"userContext": map[string]any{
					"user": map[string]any{"id": 7, "email": "shopper@example.com", "role": "CUSTOMER"},
				},
				"orders": []map[string]any{
					{"id": 101, "total": 49.0, "status": "PAID"},
				},
			},
		}},
	})
	s := NewSupportStore(execFor(srv))
	if err := s.LoadCustomerProfile(context.Background(), "7"); err != nil {
		t.Fatal(err)
	}

	p := s.Profile()
	p.User = nil
	p.Orders = []domain.Order{}

	fresh := s.Profile()
	if fresh.User == nil || fresh.User.ID != "7" {
		t.Fatalf("caller mutation leaked into store state: %+v", fresh)
	}
	if len(fresh.Orders) != 1 {
		t.Fatalf("orders = %+v", fresh.Orders)
	}
}

func TestLoadCustomerProfileMissingContext(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "userContext(", data: map[string]any{
			"customerSupport": map[string]any{"userContext": nil},
		}},
	})
	s := NewSupportStore(execFor(srv))

	if err := s.LoadCustomerProfile(context.Background(), "404"); err != nil {
		t.Fatal(err)
	}
	if s.Profile() != nil {
		t.Error("missing context must yield a nil profile")
	}
}

func TestResetCustomerProfile(t *testing.T) {
	srv := routingServer(t, []routeEntry{
		{keyword: "userContext(", data: map[string]any{
			"customerSupport": map[string]any{
				"userContext": map[string]any{
					"user": map[string]any{"id": 7, "email": "shopper@example.com", "role": "CUSTOMER"},
				},
			},
		}},
	})
	s := NewSupportStore(execFor(srv))
	if err := s.LoadCustomerProfile(context.Background(), "7"); err != nil {
		t.Fatal(err)
	}
	if s.Profile() == nil {
		t.Fatal("profile not loaded")
	}

	s.ResetCustomerProfile()
	if s.Profile() != nil || s.ProfileErr() != "" {
		t.Error("reset must clear profile state")
	}
}
