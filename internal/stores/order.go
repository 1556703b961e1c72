package stores

import (
	"context"
	"errors"
	"strings"

	"shopx-support-console/internal/domain"
	"shopx-support-console/internal/gqlclient"
	"shopx-support-console/internal/queries"
)

// ErrNonNumericUserID rejects user-id filters client-side before any
// network call is made.
var ErrNonNumericUserID = errors.New("User ID filters accept only numeric identifiers.")

type OrderFilters struct {
	Limit  int
	Offset int
	Status string
	UserID string
}

type OrderFilterPatch struct {
	Limit  *int
	Offset *int
	Status *string
	UserID *string
}

type OrderStore struct {
	observable
	exec *gqlclient.Executor

	orders   []domain.Order
	selected *domain.Order
	loading  bool
	err      string
	filters  OrderFilters
}

func NewOrderStore(exec *gqlclient.Executor) *OrderStore {
	return &OrderStore{
		exec:    exec,
		filters: OrderFilters{Limit: 20, Offset: 0},
	}
}

func (s *OrderStore) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *OrderStore) SelectedOrder() *domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	cp := *s.selected
	return &cp
}

func (s *OrderStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *OrderStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *OrderStore) ActiveFilters() OrderFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *OrderStore) mergeFilters(patch OrderFilterPatch) OrderFilters {
	s.mu.Lock()
	merged := s.filters
	s.mu.Unlock()

	merged.Limit = intOrDefault(patch.Limit, merged.Limit)
	merged.Offset = intOrDefault(patch.Offset, merged.Offset)
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.UserID != nil {
		merged.UserID = *patch.UserID
	}

	if merged.Limit <= 0 {
		merged.Limit = 20
	}
	if merged.Offset < 0 {
		merged.Offset = 0
	}
	merged.Status = strings.ToUpper(strings.TrimSpace(merged.Status))
	merged.UserID = strings.TrimSpace(merged.UserID)
	return merged
}

func matchOrder(f OrderFilters, o domain.Order) bool {
	if f.Status != "" && strings.ToUpper(o.Status) != f.Status {
		return false
	}
	if f.UserID != "" && o.UserID != f.UserID {
		return false
	}
	return true
}

type ordersPayload struct {
	CustomerSupport struct {
		Orders []orderRecord `json:"orders"`
	} `json:"customerSupport"`
}

// orderRecord tolerates numeric ids from the backend.
type orderRecord struct {
	ID        flexibleID           `json:"id"`
	UserID    flexibleID           `json:"userId"`
	Total     float64              `json:"total"`
	Status    string               `json:"status"`
	CreatedAt *string              `json:"createdAt"`
	UpdatedAt *string              `json:"updatedAt"`
	Products  []domain.OrderProduct `json:"products"`
}

func (r orderRecord) toDomain() domain.Order {
	return domain.Order{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		Total:     r.Total,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Products:  r.Products,
	}
}

// Fetch validates and merges filters, then loads and locally
// re-filters the order list. A non-numeric user-id filter fails fast
// with a store-level error and no network traffic.
func (s *OrderStore) Fetch(ctx context.Context, patch OrderFilterPatch) error {
	seq := s.beginFetch()
	merged := s.mergeFilters(patch)

	if merged.UserID != "" && !isNumericID(merged.UserID) {
		s.commitFetch(seq, func() {
			s.orders = nil
			s.loading = false
			s.err = ErrNonNumericUserID.Error()
			s.filters = merged
		})
		return ErrNonNumericUserID
	}

	s.commit(func() {
		s.loading = true
		s.err = ""
		s.filters = merged
	})

	vars := gqlclient.Variables{
		"limit":  merged.Limit,
		"offset": merged.Offset,
	}
	if merged.Status != "" {
		vars["status"] = merged.Status
	}
	if merged.UserID != "" {
		vars["userId"] = merged.UserID
	}

	env, err := s.exec.Execute(ctx, queries.Orders, vars)
	if err == nil {
		err = envelopeError(env.Errors)
	}
	var payload ordersPayload
	if err == nil {
		err = env.DecodeData(&payload)
	}
	if err != nil {
		s.commitFetch(seq, func() {
			s.loading = false
			s.err = err.Error()
			s.orders = nil
		})
		return err
	}

	filtered := make([]domain.Order, 0, len(payload.CustomerSupport.Orders))
	for _, r := range payload.CustomerSupport.Orders {
		o := r.toDomain()
		if matchOrder(merged, o) {
			filtered = append(filtered, o)
		}
	}

	s.commitFetch(seq, func() {
		s.orders = filtered
		s.loading = false
	})
	return nil
}

// LoadOrder fills the selected-order detail pane.
func (s *OrderStore) LoadOrder(ctx context.Context, orderID string) error {
	env, err := s.exec.Execute(ctx, queries.OrderDetail, gqlclient.Variables{"orderId": orderID})
	if err == nil {
		err = envelopeError(env.Errors)
	}
	if err != nil {
		return err
	}

	var payload struct {
		CustomerSupport struct {
			Order *orderRecord `json:"order"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return err
	}

	s.commit(func() {
		if payload.CustomerSupport.Order == nil {
			s.selected = nil
			return
		}
		o := payload.CustomerSupport.Order.toDomain()
		s.selected = &o
	})
	return nil
}

// UpdateStatus changes an order's status and reconciles membership: an
// order whose new status falls outside the active status filter leaves
// the visible list. The selected order is refreshed from the mutation
// payload when it is the one that changed.
func (s *OrderStore) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	vars := gqlclient.Variables{
		"orderId": orderID,
		"status":  strings.ToUpper(strings.TrimSpace(status)),
	}
	env, err := s.exec.Execute(ctx, queries.UpdateOrderStatus, vars)
	if err != nil {
		return nil, mutationError(err)
	}

	var payload struct {
		CustomerSupport struct {
			UpdateOrderStatus *orderRecord `json:"updateOrderStatus"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return nil, err
	}
	if payload.CustomerSupport.UpdateOrderStatus == nil {
		return nil, errEmptyMutationResult
	}
	updated := payload.CustomerSupport.UpdateOrderStatus.toDomain()

	s.commit(func() {
		s.orders = reconcileOrder(s.orders, updated, matchOrder(s.filters, updated))
		if s.selected != nil && s.selected.ID == updated.ID {
			cp := updated
			s.selected = &cp
		}
	})
	return &updated, nil
}

func reconcileOrder(items []domain.Order, updated domain.Order, matches bool) []domain.Order {
	if !matches {
		next := items[:0:0]
		for _, o := range items {
			if o.ID != updated.ID {
				next = append(next, o)
			}
		}
		return next
	}

	for i, o := range items {
		if o.ID == updated.ID {
			next := make([]domain.Order, len(items))
			copy(next, items)
			next[i] = updated
			return next
		}
	}
	return append([]domain.Order{updated}, items...)
}
