package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"
)

// Form is a create payload that validates itself before it is sent.
type Form interface {
	Validate() error
}

// Patch is a partial update: only the keys present are changed server-side.
// An empty string or nil clears an optional field.
type Patch map[string]any

// Resource is the data hook of one REST collection.
type Resource[T any, F Form] struct {
	c       *Client
	name    string
	related []string

	creating atomic.Int32
	updating atomic.Int32
	deleting atomic.Int32
}

func newResource[T any, F Form](c *Client, name string, related ...string) *Resource[T, F] {
	return &Resource[T, F]{c: c, name: name, related: related}
}

func (r *Resource[T, F]) path() string { return "/api/" + r.name }

func (r *Resource[T, F]) Creating() bool { return r.creating.Load() > 0 }
func (r *Resource[T, F]) Updating() bool { return r.updating.Load() > 0 }
func (r *Resource[T, F]) Deleting() bool { return r.deleting.Load() > 0 }

// List returns the cached collection for query, fetching it on a miss.
func (r *Resource[T, F]) List(ctx context.Context, query url.Values) ([]T, error) {
	key := r.name
	path := r.path()
	if len(query) > 0 {
		key += "?" + query.Encode()
		path += "?" + query.Encode()
	}
	var items []T
	if err := r.c.cachedGet(ctx, key, path, 0, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T, F]) Get(ctx context.Context, id uint) (*T, error) {
	key := fmt.Sprintf("%s/%d", r.name, id)
	var item T
	if err := r.c.cachedGet(ctx, key, fmt.Sprintf("%s/%d", r.path(), id), 0, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create validates form locally; an invalid form never reaches the server.
func (r *Resource[T, F]) Create(ctx context.Context, form F) (*T, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	r.creating.Add(1)
	defer r.creating.Add(-1)

	var item T
	if err := r.c.do(ctx, http.MethodPost, r.path(), form, &item); err != nil {
		return nil, err
	}
	r.invalidate()
	return &item, nil
}

func (r *Resource[T, F]) Update(ctx context.Context, id uint, patch Patch) (*T, error) {
	r.updating.Add(1)
	defer r.updating.Add(-1)

	var item T
	if err := r.c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d", r.path(), id), patch, &item); err != nil {
		return nil, err
	}
	r.invalidate()
	return &item, nil
}

// Delete asks the configured confirmer first; label is shown to the user.
func (r *Resource[T, F]) Delete(ctx context.Context, id uint, label string) error {
	if r.c.confirm == nil || !r.c.confirm(ctx, r.name, label) {
		return ErrDeleteNotConfirmed
	}
	r.deleting.Add(1)
	defer r.deleting.Add(-1)

	if err := r.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.path(), id), nil, nil); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

// Invalidate forces the next List or Get to refetch.
func (r *Resource[T, F]) Invalidate() { r.invalidate() }

func (r *Resource[T, F]) invalidate() {
	r.c.cache.invalidate(append([]string{r.name}, r.related...)...)
}
