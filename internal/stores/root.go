package stores

import "shopx-support-console/internal/gqlclient"

// Root is the single shared context created once per browser tab: one
// executor, one store per domain. It is passed down explicitly;
// nothing here is ambient or global. Stores are mutually independent,
// and cross-store refreshes are coordinated by the consuming UI, not
// by the stores themselves.
type Root struct {
	Exec *gqlclient.Executor

	Products *ProductStore
	Orders   *OrderStore
	Users    *UserStore
	Cms      *CmsStore
	Support  *SupportStore
}

func NewRoot(exec *gqlclient.Executor) *Root {
	return &Root{
		Exec:     exec,
		Products: NewProductStore(exec),
		Orders:   NewOrderStore(exec),
		Users:    NewUserStore(exec),
		Cms:      NewCmsStore(exec),
		Support:  NewSupportStore(exec),
	}
}

// SetAuthToken forwards a bearer credential to the shared executor.
func (r *Root) SetAuthToken(token string) {
	r.Exec.SetAuthToken(token)
}
