// Package admin describes the resources exposed by the administrative console.
// Every resource is enumerated explicitly with its writable fields,
// permission check and CRUD functions.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(apperrors.FieldName)
	return v
}

// Page is one page of a resource listing.
type Page struct {
	Items      any   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Cached     bool  `json:"cached"`
}

// Resource is the descriptor the admin routes dispatch on.
type Resource struct {
	Name       string
	Fields     []string // JSON keys accepted on create and update
	Permission func(user *domain.User, action Action) bool

	List   func(ctx context.Context, page, pageSize int) (*Page, error)
	Get    func(ctx context.Context, id uint) (any, error)
	Create func(ctx context.Context, body []byte) (any, error)
	Update func(ctx context.Context, id uint, body []byte) (any, error)
	Delete func(ctx context.Context, id uint) error
}

func (r *Resource) Allowed(user *domain.User, action Action) bool {
	return user != nil && r.Permission(user, action)
}

func adminOnly(user *domain.User, _ Action) bool {
	return user.IsAdmin
}

// listPage is the cached form of Page with concrete item types.
type listPage[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// crud implements the descriptor functions for one gorm model.
type crud[T any] struct {
	db     *gorm.DB
	cache  *utils.Cache
	name   string
	label  string
	fields []string

	// prepare runs inside the write transaction after struct validation.
	prepare func(tx *gorm.DB, item *T, raw map[string]json.RawMessage, creating bool) error
	// beforeDelete runs inside the delete transaction.
	beforeDelete func(tx *gorm.DB, item *T) error
	// invalidate lists public cache keys affected by writes.
	invalidate []string
}

func (c *crud[T]) resource() *Resource {
	return &Resource{
		Name:       c.name,
		Fields:     c.fields,
		Permission: adminOnly,
		List:       c.list,
		Get:        c.get,
		Create:     c.create,
		Update:     c.update,
		Delete:     c.delete,
	}
}

func (c *crud[T]) list(ctx context.Context, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	key := fmt.Sprintf("%s%s:page=%d:size=%d", utils.KeyAdminList, c.name, page, pageSize)

	var p listPage[T]
	cached, err := c.cache.Remember(ctx, key, &p, func() (any, error) {
		var total int64
		if err := c.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
			return nil, err
		}
		items := make([]T, 0, pageSize)
		if err := c.db.WithContext(ctx).Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&items).Error; err != nil {
			return nil, err
		}
		return listPage[T]{
			Items:      items,
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: (int(total) + pageSize - 1) / pageSize,
		}, nil
	})
	if err != nil {
		return nil, apperrors.Internal("Failed to list "+c.name, err)
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	return &Page{Items: p.Items, Page: p.Page, PageSize: p.PageSize, Total: p.Total, TotalPages: p.TotalPages, Cached: cached}, nil
}

func (c *crud[T]) get(ctx context.Context, id uint) (any, error) {
	item := new(T)
	if err := c.db.WithContext(ctx).First(item, id).Error; err != nil {
		return nil, c.translate(err)
	}
	return item, nil
}

func (c *crud[T]) create(ctx context.Context, body []byte) (any, error) {
	item := new(T)
	raw, err := c.decode(body, item)
	if err != nil {
		return nil, err
	}
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := c.check(tx, item, raw, true); err != nil {
			return err
		}
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, c.translate(err)
	}
	c.flush(ctx)
	return item, nil
}

func (c *crud[T]) update(ctx context.Context, id uint, body []byte) (any, error) {
	item := new(T)
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(item, id).Error; err != nil {
			return err
		}
		raw, err := c.decode(body, item)
		if err != nil {
			return err
		}
		if err := c.check(tx, item, raw, false); err != nil {
			return err
		}
		return tx.Save(item).Error
	})
	if err != nil {
		return nil, c.translate(err)
	}
	c.flush(ctx)
	return item, nil
}

func (c *crud[T]) delete(ctx context.Context, id uint) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item := new(T)
		if err := tx.First(item, id).Error; err != nil {
			return err
		}
		if c.beforeDelete != nil {
			if err := c.beforeDelete(tx, item); err != nil {
				return err
			}
		}
		return tx.Delete(item).Error
	})
	if err != nil {
		return c.translate(err)
	}
	c.flush(ctx)
	return nil
}

// decode applies the writable keys of a JSON object onto item.
func (c *crud[T]) decode(body []byte, item *T) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, apperrors.Validation("Request body must be a JSON object")
	}
	var rejected []string
	for k := range raw {
		if !slices.Contains(c.fields, k) {
			rejected = append(rejected, k)
		}
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		return nil, apperrors.Validation(fmt.Sprintf("Fields not writable on %s: %v", c.name, rejected))
	}
	filtered, err := json.Marshal(raw)
	if err != nil {
		return nil, apperrors.Validation("Request body must be a JSON object")
	}
	if err := json.Unmarshal(filtered, item); err != nil {
		return nil, apperrors.Validation("Invalid field value: " + err.Error())
	}
	return raw, nil
}

func (c *crud[T]) check(tx *gorm.DB, item *T, raw map[string]json.RawMessage, creating bool) error {
	if c.prepare != nil {
		if err := c.prepare(tx, item, raw, creating); err != nil {
			return err
		}
	}
	if err := validate.Struct(item); err != nil {
		return apperrors.FromValidator(err)
	}
	return nil
}

func (c *crud[T]) translate(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(c.label)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict(c.label + " conflicts with an existing record")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Conflict(c.label + " references a missing or still referenced record")
	default:
		return apperrors.Internal("Failed to write "+c.name, err)
	}
}

// flush drops every cached admin page plus the public listings this resource feeds.
func (c *crud[T]) flush(ctx context.Context) {
	_ = c.cache.DeletePrefix(ctx, utils.KeyAdminList)
	_ = c.cache.Delete(ctx, c.invalidate...)
}

// Registry holds the enumerated resources by name.
type Registry struct {
	resources map[string]*Resource
	names     []string
}

func (r *Registry) Lookup(name string) (*Resource, bool) {
	res, ok := r.resources[name]
	return res, ok
}

func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

func newRegistry(resources ...*Resource) *Registry {
	r := &Registry{resources: make(map[string]*Resource, len(resources))}
	for _, res := range resources {
		r.resources[res.Name] = res
		r.names = append(r.names, res.Name)
	}
	return r
}
