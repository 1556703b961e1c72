package stores

import (
	"context"
	"strings"

	"shopx-support-console/internal/domain"
	"shopx-support-console/internal/gqlclient"
	"shopx-support-console/internal/queries"
)

type CmsFilters struct {
	Status domain.CmsStatus
	Search string
}

type CmsFilterPatch struct {
	Status *domain.CmsStatus
	Search *string
}

type CmsPageInput struct {
	Slug        string
	Title       string
	Excerpt     *string
	Body        string
	Status      domain.CmsStatus
	PublishedAt *string
}

type CmsPageUpdate struct {
	Slug        *string
	Title       *string
	Excerpt     *string
	Body        *string
	Status      *domain.CmsStatus
	PublishedAt *string
}

type CmsStore struct {
	observable
	exec *gqlclient.Executor

	pages    []domain.CmsPage
	selected *domain.CmsPage
	loading  bool
	saving   bool
	err      string
	filters  CmsFilters
}

func NewCmsStore(exec *gqlclient.Executor) *CmsStore {
	return &CmsStore{exec: exec}
}

func (s *CmsStore) Pages() []domain.CmsPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CmsPage, len(s.pages))
	copy(out, s.pages)
	return out
}

func (s *CmsStore) SelectedPage() *domain.CmsPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	cp := *s.selected
	return &cp
}

func (s *CmsStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *CmsStore) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

func (s *CmsStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *CmsStore) ActiveFilters() CmsFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SelectPage pins a page into the editor pane; nil clears it.
func (s *CmsStore) SelectPage(page *domain.CmsPage) {
	s.commit(func() {
		if page == nil {
			s.selected = nil
			return
		}
		cp := *page
		s.selected = &cp
	})
}

func (s *CmsStore) mergeFilters(patch CmsFilterPatch) CmsFilters {
	s.mu.Lock()
	merged := s.filters
	s.mu.Unlock()

	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.Search != nil {
		merged.Search = *patch.Search
	}
	merged.Search = strings.TrimSpace(merged.Search)
	return merged
}

func matchCmsPage(f CmsFilters, p domain.CmsPage) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Slug), needle) {
			return false
		}
	}
	return true
}

func (s *CmsStore) Fetch(ctx context.Context, patch CmsFilterPatch) error {
	seq := s.beginFetch()
	merged := s.mergeFilters(patch)

	s.commit(func() {
		s.loading = true
		s.err = ""
		s.filters = merged
	})

	vars := gqlclient.Variables{}
	if merged.Status != "" {
		vars["status"] = string(merged.Status)
	}
	if merged.Search != "" {
		vars["search"] = merged.Search
	}

	env, err := s.exec.Execute(ctx, queries.CmsPages, vars)
	if err == nil {
		err = envelopeError(env.Errors)
	}
	var payload struct {
		CustomerSupport struct {
			CmsPages []domain.CmsPage `json:"cmsPages"`
		} `json:"customerSupport"`
	}
	if err == nil {
		err = env.DecodeData(&payload)
	}
	if err != nil {
		s.commitFetch(seq, func() {
			s.loading = false
			s.err = err.Error()
			s.pages = nil
		})
		return err
	}

	filtered := make([]domain.CmsPage, 0, len(payload.CustomerSupport.CmsPages))
	for _, p := range payload.CustomerSupport.CmsPages {
		if matchCmsPage(merged, p) {
			filtered = append(filtered, p)
		}
	}

	s.commitFetch(seq, func() {
		s.pages = filtered
		s.loading = false
	})
	return nil
}

// LoadPage fetches one page by id or slug into the selection.
func (s *CmsStore) LoadPage(ctx context.Context, id, slug string) (*domain.CmsPage, error) {
	vars := gqlclient.Variables{}
	if id != "" {
		vars["id"] = id
	}
	if slug != "" {
		vars["slug"] = slug
	}

	env, err := s.exec.Execute(ctx, queries.CmsPage, vars)
	if err == nil {
		err = envelopeError(env.Errors)
	}
	if err != nil {
		s.commit(func() { s.err = err.Error() })
		return nil, err
	}

	var payload struct {
		CustomerSupport struct {
			CmsPage *domain.CmsPage `json:"cmsPage"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return nil, err
	}

	s.commit(func() {
		s.selected = payload.CustomerSupport.CmsPage
	})
	return payload.CustomerSupport.CmsPage, nil
}

func (s *CmsStore) Create(ctx context.Context, input CmsPageInput) (*domain.CmsPage, error) {
	s.beginSave()
	defer s.endSave()

	fields := map[string]any{
		"slug":  input.Slug,
		"title": input.Title,
		"body":  input.Body,
	}
	if input.Excerpt != nil {
		fields["excerpt"] = *input.Excerpt
	}
	if input.Status != "" {
		fields["status"] = string(input.Status)
	}
	if input.PublishedAt != nil {
		fields["publishedAt"] = *input.PublishedAt
	}

	page, err := s.runPageMutation(ctx, queries.CreateCmsPage, gqlclient.Variables{"input": fields}, "createCmsPage")
	if err != nil {
		return nil, err
	}

	s.commit(func() {
		if matchCmsPage(s.filters, *page) {
			next := make([]domain.CmsPage, 0, len(s.pages)+1)
			next = append(next, *page)
			for _, p := range s.pages {
				if p.ID != page.ID {
					next = append(next, p)
				}
			}
			s.pages = next
		}
		cp := *page
		s.selected = &cp
	})
	return page, nil
}

func (s *CmsStore) Update(ctx context.Context, id string, update CmsPageUpdate) (*domain.CmsPage, error) {
	s.beginSave()
	defer s.endSave()

	fields := map[string]any{}
	if update.Slug != nil {
		fields["slug"] = *update.Slug
	}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Excerpt != nil {
		fields["excerpt"] = *update.Excerpt
	}
	if update.Body != nil {
		fields["body"] = *update.Body
	}
	if update.Status != nil {
		fields["status"] = string(*update.Status)
	}
	if update.PublishedAt != nil {
		fields["publishedAt"] = *update.PublishedAt
	}

	page, err := s.runPageMutation(ctx, queries.UpdateCmsPage, gqlclient.Variables{"id": id, "input": fields}, "updateCmsPage")
	if err != nil {
		return nil, err
	}

	s.reconcileAfterEdit(page)
	return page, nil
}

// Publish flips a page to PUBLISHED. With an active DRAFT filter the
// page leaves the visible list, the asymmetry a blind replace-by-id
// would get wrong.
func (s *CmsStore) Publish(ctx context.Context, id string) (*domain.CmsPage, error) {
	s.beginSave()
	defer s.endSave()

	page, err := s.runPageMutation(ctx, queries.PublishCmsPage, gqlclient.Variables{"id": id}, "publishCmsPage")
	if err != nil {
		return nil, err
	}

	s.reconcileAfterEdit(page)
	return page, nil
}

func (s *CmsStore) Delete(ctx context.Context, id string) error {
	s.beginSave()
	defer s.endSave()

	if _, err := s.exec.Execute(ctx, queries.DeleteCmsPage, gqlclient.Variables{"id": id}); err != nil {
		return mutationError(err)
	}

	s.commit(func() {
		next := s.pages[:0:0]
		for _, p := range s.pages {
			if p.ID != id {
				next = append(next, p)
			}
		}
		s.pages = next
		if s.selected != nil && s.selected.ID == id {
			s.selected = nil
		}
	})
	return nil
}

func (s *CmsStore) beginSave() {
	s.commit(func() {
		s.saving = true
		s.err = ""
	})
}

func (s *CmsStore) endSave() {
	s.commit(func() {
		s.saving = false
	})
}

func (s *CmsStore) reconcileAfterEdit(page *domain.CmsPage) {
	s.commit(func() {
		s.pages = reconcileCmsPage(s.pages, *page, matchCmsPage(s.filters, *page))
		cp := *page
		s.selected = &cp
	})
}

// runPageMutation executes a mutation whose payload is a single CMS
// page under the given field.
func (s *CmsStore) runPageMutation(ctx context.Context, d *gqlclient.Descriptor, vars gqlclient.Variables, field string) (*domain.CmsPage, error) {
	env, err := s.exec.Execute(ctx, d, vars)
	if err != nil {
		return nil, mutationError(err)
	}

	var payload struct {
		CustomerSupport map[string]*domain.CmsPage `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return nil, err
	}
	page := payload.CustomerSupport[field]
	if page == nil {
		return nil, errEmptyMutationResult
	}
	return page, nil
}

func reconcileCmsPage(items []domain.CmsPage, updated domain.CmsPage, matches bool) []domain.CmsPage {
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
			next := make([]domain.CmsPage, len(items))
			copy(next, items)
			next[i] = updated
			return next
		}
	}
	return append([]domain.CmsPage{updated}, items...)
}
