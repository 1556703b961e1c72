package stores

import (
	"context"

	"shopx-support-console/internal/domain"
	"shopx-support-console/internal/gqlclient"
	"shopx-support-console/internal/queries"
)

// SupportStore backs the dashboard overview and the customer-profile
// drill-down. It holds no filtered list of its own.
type SupportStore struct {
	observable
	exec *gqlclient.Executor

	metrics         *domain.SupportMetrics
	overviewLoading bool
	overviewErr     string

	profile        *domain.CustomerProfile
	profileLoading bool
	profileErr     string
}

func NewSupportStore(exec *gqlclient.Executor) *SupportStore {
	return &SupportStore{exec: exec}
}

func (s *SupportStore) Metrics() *domain.SupportMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metrics == nil {
		return nil
	}
	cp := *s.metrics
	return &cp
}

func (s *SupportStore) OverviewLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overviewLoading
}

func (s *SupportStore) OverviewErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overviewErr
}

func (s *SupportStore) Profile() *domain.CustomerProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	cp := *s.profile
	return &cp
}

func (s *SupportStore) ProfileLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileLoading
}

func (s *SupportStore) ProfileErr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileErr
}

// LoadOverview aggregates the dashboard metrics from a single wide
// query: revenue and order counts, product count, customer count, and
// the average review rating (nil when there are no reviews).
func (s *SupportStore) LoadOverview(ctx context.Context) error {
	s.commit(func() {
		s.overviewLoading = true
		s.overviewErr = ""
	})

	vars := gqlclient.Variables{
		"productLimit": 50,
		"orderLimit":   50,
	}

	env, err := s.exec.Execute(ctx, queries.Overview, vars)
	if err == nil {
		err = envelopeError(env.Errors)
	}
	var payload struct {
		CustomerSupport *struct {
			Orders []struct {
				Total float64 `json:"total"`
			} `json:"orders"`
			Products []struct {
				ID flexibleID `json:"id"`
			} `json:"products"`
			Users []struct {
				Role domain.UserRole `json:"role"`
			} `json:"users"`
			Reviews []struct {
				Rating float64 `json:"rating"`
			} `json:"reviews"`
		} `json:"customerSupport"`
	}
	if err == nil {
		err = env.DecodeData(&payload)
	}
	if err != nil {
		s.commit(func() {
			s.overviewLoading = false
			s.overviewErr = err.Error()
			s.metrics = nil
		})
		return err
	}

	var metrics *domain.SupportMetrics
	if support := payload.CustomerSupport; support != nil {
		totalRevenue := 0.0
		for _, o := range support.Orders {
			totalRevenue += o.Total
		}

		customers := 0
		for _, u := range support.Users {
			if u.Role == domain.RoleCustomer {
				customers++
			}
		}

		var averageRating *float64
		if len(support.Reviews) > 0 {
			sum := 0.0
			for _, r := range support.Reviews {
				sum += r.Rating
			}
			avg := sum / float64(len(support.Reviews))
			averageRating = &avg
		}

		metrics = &domain.SupportMetrics{
			TotalRevenue:  totalRevenue,
			Orders:        len(support.Orders),
			Products:      len(support.Products),
			Customers:     customers,
			AverageRating: averageRating,
		}
	}

	s.commit(func() {
		s.metrics = metrics
		s.overviewLoading = false
	})
	return nil
}

// LoadCustomerProfile assembles the 360° customer view: identity,
// addresses, live cart, wishlist, order history, and reviews.
func (s *SupportStore) LoadCustomerProfile(ctx context.Context, userID string) error {
	s.commit(func() {
		s.profileLoading = true
		s.profileErr = ""
	})

	env, err := s.exec.Execute(ctx, queries.CustomerProfile, gqlclient.Variables{"userId": userID})
	if err == nil {
		err = envelopeError(env.Errors)
	}
	var payload struct {
		CustomerSupport *struct {
			UserContext *struct {
				User      *userRecord `json:"user"`
				Addresses []struct {
					ID         flexibleID `json:"id"`
					UserID     flexibleID `json:"userId"`
					Street     string     `json:"street"`
					City       string     `json:"city"`
					PostalCode string     `json:"postalCode"`
					Country    string     `json:"country"`
				} `json:"addresses"`
				Cart *struct {
					UserID flexibleID `json:"userId"`
					Total  float64    `json:"total"`
					Items  []struct {
						Quantity int `json:"quantity"`
						Product  struct {
							ID    flexibleID `json:"id"`
							Name  string     `json:"name"`
							Price float64    `json:"price"`
						} `json:"product"`
					} `json:"items"`
				} `json:"cart"`
				Wishlist *struct {
					UserID   flexibleID `json:"userId"`
					Products []struct {
						ID    flexibleID `json:"id"`
						Name  string     `json:"name"`
						Price float64    `json:"price"`
					} `json:"products"`
				} `json:"wishlist"`
			} `json:"userContext"`
			Orders []struct {
				ID        flexibleID `json:"id"`
				Total     float64    `json:"total"`
				Status    string     `json:"status"`
				CreatedAt *string    `json:"createdAt"`
			} `json:"orders"`
			Reviews []struct {
				ID         flexibleID `json:"id"`
				ProductID  flexibleID `json:"productId"`
				Rating     float64    `json:"rating"`
				ReviewText *string    `json:"reviewText"`
				CreatedAt  string     `json:"createdAt"`
			} `json:"reviews"`
		} `json:"customerSupport"`
	}
	if err == nil {
		err = env.DecodeData(&payload)
	}
	if err != nil {
		s.commit(func() {
			s.profileLoading = false
			s.profileErr = err.Error()
			s.profile = nil
		})
		return err
	}

	var profile *domain.CustomerProfile
	if support := payload.CustomerSupport; support != nil && support.UserContext != nil {
		context := support.UserContext

		var user *domain.User
		if context.User != nil {
			u := context.User.toDomain()
			user = &u
		}

		addresses := make([]domain.Address, 0, len(context.Addresses))
		for _, a := range context.Addresses {
			ownerID := a.UserID.String()
			if ownerID == "" && user != nil {
				ownerID = user.ID
			}
			addresses = append(addresses, domain.Address{
				ID:         a.ID.String(),
				UserID:     ownerID,
				Street:     a.Street,
				City:       a.City,
				PostalCode: a.PostalCode,
				Country:    a.Country,
			})
		}

		var cart *domain.Cart
		if context.Cart != nil {
			items := make([]domain.CartItem, 0, len(context.Cart.Items))
			for _, item := range context.Cart.Items {
				items = append(items, domain.CartItem{
					Quantity: item.Quantity,
					Product: domain.Product{
						ID:    item.Product.ID.String(),
						Name:  item.Product.Name,
						Price: item.Product.Price,
					},
				})
			}
			cart = &domain.Cart{
				UserID: context.Cart.UserID.String(),
				Total:  context.Cart.Total,
				Items:  items,
			}
		}

		var wishlist *domain.Wishlist
		if context.Wishlist != nil {
			products := make([]domain.Product, 0, len(context.Wishlist.Products))
			for _, p := range context.Wishlist.Products {
				products = append(products, domain.Product{
					ID:    p.ID.String(),
					Name:  p.Name,
					Price: p.Price,
				})
			}
			wishlist = &domain.Wishlist{
				UserID:   context.Wishlist.UserID.String(),
				Products: products,
			}
		}

		ownerID := ""
		if user != nil {
			ownerID = user.ID
		}
		orders := make([]domain.Order, 0, len(support.Orders))
		for _, o := range support.Orders {
			orders = append(orders, domain.Order{
				ID:        o.ID.String(),
				UserID:    ownerID,
				Total:     o.Total,
				Status:    o.Status,
				CreatedAt: o.CreatedAt,
			})
		}

		reviews := make([]domain.Review, 0, len(support.Reviews))
		for _, r := range support.Reviews {
			reviews = append(reviews, domain.Review{
				ID:         r.ID.String(),
				ProductID:  r.ProductID.String(),
				Rating:     r.Rating,
				ReviewText: r.ReviewText,
				CreatedAt:  r.CreatedAt,
			})
		}

		profile = &domain.CustomerProfile{
			User:      user,
			Orders:    orders,
			Addresses: addresses,
			Cart:      cart,
			Wishlist:  wishlist,
			Reviews:   reviews,
		}
	}

	s.commit(func() {
		s.profile = profile
		s.profileLoading = false
	})
	return nil
}

// ResetCustomerProfile clears the drill-down state when the agent
// leaves the profile view.
func (s *SupportStore) ResetCustomerProfile() {
	s.commit(func() {
		s.profile = nil
		s.profileErr = ""
	})
}
