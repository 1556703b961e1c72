package stores

import (
	"context"
	"strings"

	"shopx-support-console/internal/domain"
	"shopx-support-console/internal/gqlclient"
	"shopx-support-console/internal/queries"
)

type UserFilters struct {
	Email string
	Role  domain.UserRole
}

type UserFilterPatch struct {
	Email *string
	Role  *domain.UserRole
}

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.UserRole
}

type UpdateUserInput struct {
	Email    *string
	Password *string
	Name     *string
	Role     *domain.UserRole
}

type UserStore struct {
	observable
	exec *gqlclient.Executor

	users   []domain.User
	loading bool
	err     string
	filters UserFilters
}

func NewUserStore(exec *gqlclient.Executor) *UserStore {
	return &UserStore{exec: exec}
}

func (s *UserStore) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *UserStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *UserStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *UserStore) ActiveFilters() UserFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *UserStore) mergeFilters(patch UserFilterPatch) UserFilters {
	s.mu.Lock()
	merged := s.filters
	s.mu.Unlock()

	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Role != nil {
		merged.Role = *patch.Role
	}
	merged.Email = strings.TrimSpace(merged.Email)
	return merged
}

func matchUser(f UserFilters, u domain.User) bool {
	if f.Email != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Email)) {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	return true
}

type userRecord struct {
	ID    flexibleID      `json:"id"`
	Email string          `json:"email"`
	Name  *string         `json:"name"`
	Role  domain.UserRole `json:"role"`
}

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:    r.ID.String(),
		Email: r.Email,
		Name:  r.Name,
		Role:  r.Role,
	}
}

func (s *UserStore) Fetch(ctx context.Context, patch UserFilterPatch) error {
	seq := s.beginFetch()
	merged := s.mergeFilters(patch)

	s.commit(func() {
		s.loading = true
		s.err = ""
		s.filters = merged
	})

	vars := gqlclient.Variables{}
	if merged.Email != "" {
		vars["email"] = merged.Email
	}
	if merged.Role != "" {
		vars["role"] = string(merged.Role)
	}

	env, err := s.exec.Execute(ctx, queries.Users, vars)
	if err == nil {
		err = envelopeError(env.Errors)
	}
	var payload struct {
		CustomerSupport struct {
			Users []userRecord `json:"users"`
		} `json:"customerSupport"`
	}
	if err == nil {
		err = env.DecodeData(&payload)
	}
	if err != nil {
		s.commitFetch(seq, func() {
			s.loading = false
			s.err = err.Error()
			s.users = nil
		})
		return err
	}

	filtered := make([]domain.User, 0, len(payload.CustomerSupport.Users))
	for _, r := range payload.CustomerSupport.Users {
		u := r.toDomain()
		if matchUser(merged, u) {
			filtered = append(filtered, u)
		}
	}

	s.commitFetch(seq, func() {
		s.users = filtered
		s.loading = false
	})
	return nil
}

func (s *UserStore) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	vars := gqlclient.Variables{
		"email":    input.Email,
		"password": input.Password,
		"role":     string(input.Role),
	}
	if input.Name != "" {
		vars["name"] = input.Name
	}

	env, err := s.exec.Execute(ctx, queries.CreateUser, vars)
	if err != nil {
		return nil, mutationError(err)
	}

	var payload struct {
		CustomerSupport struct {
			CreateUser *userRecord `json:"createUser"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return nil, err
	}
	if payload.CustomerSupport.CreateUser == nil {
		return nil, errEmptyMutationResult
	}
	created := payload.CustomerSupport.CreateUser.toDomain()

	s.commit(func() {
		if !matchUser(s.filters, created) {
			return
		}
		next := make([]domain.User, 0, len(s.users)+1)
		next = append(next, created)
		for _, u := range s.users {
			if u.ID != created.ID {
				next = append(next, u)
			}
		}
		s.users = next
	})
	return &created, nil
}

func (s *UserStore) Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	vars := gqlclient.Variables{"id": id}
	if input.Email != nil {
		vars["email"] = *input.Email
	}
	if input.Password != nil {
		vars["password"] = *input.Password
	}
	if input.Name != nil {
		vars["name"] = *input.Name
	}
	if input.Role != nil {
		vars["role"] = string(*input.Role)
	}

	env, err := s.exec.Execute(ctx, queries.UpdateUser, vars)
	if err != nil {
		return nil, mutationError(err)
	}

	var payload struct {
		CustomerSupport struct {
			UpdateUser *userRecord `json:"updateUser"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return nil, err
	}
	if payload.CustomerSupport.UpdateUser == nil {
		return nil, errEmptyMutationResult
	}
	updated := payload.CustomerSupport.UpdateUser.toDomain()

	s.commit(func() {
		s.users = reconcileUser(s.users, updated, matchUser(s.filters, updated))
	})
	return &updated, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	if _, err := s.exec.Execute(ctx, queries.DeleteUser, gqlclient.Variables{"id": id}); err != nil {
		return mutationError(err)
	}

	s.commit(func() {
		next := s.users[:0:0]
		for _, u := range s.users {
			if u.ID != id {
				next = append(next, u)
			}
		}
		s.users = next
	})
	return nil
}

// LogoutSessions revokes every active session of a user and reports
// whether the backend acknowledged the revocation.
func (s *UserStore) LogoutSessions(ctx context.Context, userID string) (bool, error) {
	env, err := s.exec.Execute(ctx, queries.LogoutUserSessions, gqlclient.Variables{"userId": userID})
	if err != nil {
		return false, mutationError(err)
	}

	var payload struct {
		CustomerSupport struct {
			LogoutUserSessions bool `json:"logoutUserSessions"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return false, err
	}
	return payload.CustomerSupport.LogoutUserSessions, nil
}

// Impersonate opens a support impersonation session for the user. It
// does not touch the list state.
func (s *UserStore) Impersonate(ctx context.Context, userID string) (*domain.ImpersonationSession, error) {
	env, err := s.exec.Execute(ctx, queries.ImpersonateUser, gqlclient.Variables{"userId": userID})
	if err != nil {
		return nil, mutationError(err)
	}

	var payload struct {
		CustomerSupport struct {
			ImpersonateUser *struct {
				Token string      `json:"token"`
				User  *userRecord `json:"user"`
			} `json:"impersonateUser"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return nil, err
	}
	raw := payload.CustomerSupport.ImpersonateUser
	if raw == nil {
		return nil, errEmptyMutationResult
	}

	session := &domain.ImpersonationSession{Token: raw.Token}
	if raw.User != nil {
		u := raw.User.toDomain()
		session.User = &u
	}
	return session, nil
}

func reconcileUser(items []domain.User, updated domain.User, matches bool) []domain.User {
	if !matches {
		next := items[:0:0]
		for _, u := range items {
			if u.ID != updated.ID {
				next = append(next, u)
			}
		}
		return next
	}

	for i, u := range items {
		if u.ID == updated.ID {
			next := make([]domain.User, len(items))
			copy(next, items)
			next[i] = updated
			return next
		}
	}
	return append([]domain.User{updated}, items...)
}
