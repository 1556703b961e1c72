package stores

import (
	"context"
	"strings"

	"shopx-support-console/internal/domain"
	"shopx-support-console/internal/gqlclient"
	"shopx-support-console/internal/queries"
)

type ProductFilters struct {
	Limit      int
	Offset     int
	Name       string
	CategoryID string
}

// ProductFilterPatch is a partial update merged onto the active
// filters; nil fields keep their current value.
type ProductFilterPatch struct {
	Limit      *int
	Offset     *int
	Name       *string
	CategoryID *string
}

type ProductInput struct {
	Name        string
	Price       float64
	Description string
	CategoryID  string
	// ImagePath points at a local image; the descriptor's pre-process
	// hook turns it into the upload payload.
	ImagePath string
}

// ProductUpdate carries the fields to change; nil fields are omitted
// from the mutation entirely.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Description *string
	CategoryID  *string
	ImagePath   string
	RemoveImage bool
}

type CategoryOption struct {
	Value string
	Label string
}

type ProductStore struct {
	observable
	exec *gqlclient.Executor

	products   []domain.Product
	categories []domain.Category
	loading    bool
	err        string
	filters    ProductFilters
}

func NewProductStore(exec *gqlclient.Executor) *ProductStore {
	return &ProductStore{
		exec:    exec,
		filters: ProductFilters{Limit: 20, Offset: 0},
	}
}

func (s *ProductStore) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *ProductStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ProductStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ProductStore) ActiveFilters() ProductFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// CategoryOptions returns the category select options derived from the
// last products fetch.
func (s *ProductStore) CategoryOptions() []CategoryOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CategoryOption, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, CategoryOption{Value: c.ID, Label: c.Name})
	}
	return out
}

func (s *ProductStore) mergeFilters(patch ProductFilterPatch) ProductFilters {
	s.mu.Lock()
	merged := s.filters
	s.mu.Unlock()

	merged.Limit = intOrDefault(patch.Limit, merged.Limit)
	merged.Offset = intOrDefault(patch.Offset, merged.Offset)
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.CategoryID != nil {
		merged.CategoryID = *patch.CategoryID
	}

	if merged.Limit <= 0 {
		merged.Limit = 20
	}
	if merged.Offset < 0 {
		merged.Offset = 0
	}
	merged.Name = strings.TrimSpace(merged.Name)
	merged.CategoryID = strings.TrimSpace(merged.CategoryID)
	return merged
}

func matchProduct(f ProductFilters, p domain.Product) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	return true
}

// Fetch merges patch onto the active filters, queries the backend, and
// re-applies the filter predicate locally before storing the result:
// an upstream that over-returns never leaks entities into the view.
func (s *ProductStore) Fetch(ctx context.Context, patch ProductFilterPatch) error {
	seq := s.beginFetch()
	merged := s.mergeFilters(patch)

	s.commit(func() {
		s.loading = true
		s.err = ""
		s.filters = merged
	})

	vars := gqlclient.Variables{
		"limit":  merged.Limit,
		"offset": merged.Offset,
	}
	if merged.Name != "" {
		vars["name"] = merged.Name
	}
	if merged.CategoryID != "" {
		vars["categoryId"] = merged.CategoryID
	}

	env, err := s.exec.Execute(ctx, queries.Products, vars)
	if err == nil {
		err = envelopeError(env.Errors)
	}
	if err != nil {
		s.commitFetch(seq, func() {
			s.loading = false
			s.err = err.Error()
			s.products = nil
		})
		return err
	}

	var payload struct {
		CustomerSupport struct {
			Products   []domain.Product  `json:"products"`
			Categories []domain.Category `json:"categories"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		s.commitFetch(seq, func() {
			s.loading = false
			s.err = err.Error()
			s.products = nil
		})
		return err
	}

	filtered := make([]domain.Product, 0, len(payload.CustomerSupport.Products))
	for _, p := range payload.CustomerSupport.Products {
		if matchProduct(merged, p) {
			filtered = append(filtered, p)
		}
	}

	s.commitFetch(seq, func() {
		s.products = filtered
		s.categories = payload.CustomerSupport.Categories
		s.loading = false
	})
	return nil
}

// Create adds a product and reconciles the visible list: a new entity
// matching the active filters is prepended (de-duplicated by id); one
// that does not match leaves the list untouched. No re-fetch happens.
func (s *ProductStore) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	vars := gqlclient.Variables{
		"name":       input.Name,
		"price":      input.Price,
		"categoryId": input.CategoryID,
	}
	if input.Description != "" {
		vars["description"] = input.Description
	}
	if input.ImagePath != "" {
		vars["imagePath"] = input.ImagePath
	}

	env, err := s.exec.Execute(ctx, queries.CreateProduct, vars)
	if err != nil {
		return nil, mutationError(err)
	}

	var payload struct {
		CustomerSupport struct {
			AddProduct *domain.Product `json:"addProduct"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return nil, err
	}
	created := payload.CustomerSupport.AddProduct
	if created == nil {
		return nil, errEmptyMutationResult
	}

	s.commit(func() {
		if !matchProduct(s.filters, *created) {
			return
		}
		next := make([]domain.Product, 0, len(s.products)+1)
		next = append(next, *created)
		for _, p := range s.products {
			if p.ID != created.ID {
				next = append(next, p)
			}
		}
		s.products = next
	})
	return created, nil
}

// Update edits a product and re-evaluates its filter membership: an
// entity that still matches is replaced in place (or inserted if it
// was absent); one that stopped matching is evicted. Replacing blindly
// by id would leave stale rows visible after a filtering field changed.
func (s *ProductStore) Update(ctx context.Context, id string, update ProductUpdate) (*domain.Product, error) {
	vars := gqlclient.Variables{"id": id}
	if update.Name != nil {
		vars["name"] = *update.Name
	}
	if update.Price != nil {
		vars["price"] = *update.Price
	}
	if update.Description != nil {
		vars["description"] = *update.Description
	}
	if update.CategoryID != nil {
		vars["categoryId"] = *update.CategoryID
	}
	if update.ImagePath != "" {
		vars["imagePath"] = update.ImagePath
	}
	if update.RemoveImage {
		vars["removeImage"] = true
	}

	env, err := s.exec.Execute(ctx, queries.UpdateProduct, vars)
	if err != nil {
		return nil, mutationError(err)
	}

	var payload struct {
		CustomerSupport struct {
			UpdateProduct *domain.Product `json:"updateProduct"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return nil, err
	}
	updated := payload.CustomerSupport.UpdateProduct
	if updated == nil {
		return nil, errEmptyMutationResult
	}

	s.commit(func() {
		s.products = reconcileProduct(s.products, *updated, matchProduct(s.filters, *updated))
	})
	return updated, nil
}

// Delete removes the product from the backend and the visible list.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	if _, err := s.exec.Execute(ctx, queries.DeleteProduct, gqlclient.Variables{"id": id}); err != nil {
		return mutationError(err)
	}

	s.commit(func() {
		next := s.products[:0:0]
		for _, p := range s.products {
			if p.ID != id {
				next = append(next, p)
			}
		}
		s.products = next
	})
	return nil
}

func reconcileProduct(items []domain.Product, updated domain.Product, matches bool) []domain.Product {
	if !matches {
		next := items[:0:0]
		for _, p := range items {
			if p.ID != updated.ID {
				next = append(next, p)
			}
		}
		return next
	}

	for i, p := range items {
		if p.ID == updated.ID {
			next := make([]domain.Product, len(items))
			copy(next, items)
			next[i] = updated
			return next
		}
	}
	return append([]domain.Product{updated}, items...)
}
