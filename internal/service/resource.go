package service

import (
	"context"
	"net/url"
	"strings"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/model"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

// fieldJSON keeps numbers as json.Number so partial updates do not lose precision
var fieldJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// CRUD is the operation set every soft-deletable entity collection exposes
type CRUD[T any] interface {
	List(ctx context.Context, page apiclient.Page, filters apiclient.Params) ([]T, error)
	ListActive(ctx context.Context, page apiclient.Page) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entity T, actingUser string, extra apiclient.Params) (*T, error)
	Update(ctx context.Context, id string, changes interface{}, actingUser string) (*T, error)
	Delete(ctx context.Context, id, actingUser string) (*model.APIResponse, error)
	Reactivate(ctx context.Context, id string) (*model.APIResponse, error)
}

// ResourceConfig locates one entity collection on the remote API
type ResourceConfig struct {
	// Base is the collection prefix, e.g. "/paquetes"
	Base string
	// Collection is the path used for the plain list and for create.
	// Some collections want a trailing slash ("/paquetes/"), others do not ("/roles").
	Collection string
	// Key is the envelope field that holds the array in list responses
	Key string
}

// Resource implements CRUD for entity T against one collection
type Resource[T any] struct {
	client *apiclient.Client
	cfg    ResourceConfig
}

func NewResource[T any](client *apiclient.Client, cfg ResourceConfig) *Resource[T] {
	if cfg.Collection == "" {
		cfg.Collection = cfg.Base + "/"
	}
	return &Resource[T]{client: client, cfg: cfg}
}

// Path joins escaped segments under the collection base
func (r *Resource[T]) Path(segments ...string) string {
	var b strings.Builder
	b.WriteString(r.cfg.Base)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// List fetches one page of the collection. Filters are merged into the query after skip/limit.
func (r *Resource[T]) List(ctx context.Context, page apiclient.Page, filters apiclient.Params) ([]T, error) {
	return r.fetchList(ctx, r.cfg.Collection, page.Params().Merge(filters))
}

func (r *Resource[T]) ListActive(ctx context.Context, page apiclient.Page) ([]T, error) {
	return r.fetchList(ctx, r.Path("activos"), page.Params())
}

// ListBy fetches a filtered variant such as /paquetes/estado/{estado}
func (r *Resource[T]) ListBy(ctx context.Context, page apiclient.Page, segments ...string) ([]T, error) {
	return r.fetchList(ctx, r.Path(segments...), page.Params())
}

// Search hits /{base}/buscar/{field}/{value}, which is not paginated
func (r *Resource[T]) Search(ctx context.Context, field, value string) ([]T, error) {
	return r.fetchList(ctx, r.Path("buscar", field, value), nil)
}

// Lookup fetches an endpoint that answers with one record or a list of them
func (r *Resource[T]) Lookup(ctx context.Context, segments ...string) ([]T, error) {
	var raw jsoniter.RawMessage
	if err := r.client.Get(ctx, r.Path(segments...), nil, &raw); err != nil {
		return nil, err
	}
	return apiclient.DecodeListOrOne[T](raw, r.cfg.Key)
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	return r.GetBy(ctx, id)
}

// GetBy fetches a single record under the given path segments
func (r *Resource[T]) GetBy(ctx context.Context, segments ...string) (*T, error) {
	var out T
	if err := r.client.Get(ctx, r.Path(segments...), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts the entity. A non-empty actingUser is forwarded as creado_por.
func (r *Resource[T]) Create(ctx context.Context, entity T, actingUser string, extra apiclient.Params) (*T, error) {
	params := apiclient.Params{}
	if actingUser != "" {
		params["creado_por"] = actingUser
	}
	params = params.Merge(lo.OmitBy(extra, func(_ string, v interface{}) bool {
		return lo.IsNil(v) || v == ""
	}))

	var out T
	if err := r.client.Post(ctx, r.cfg.Collection, entity, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends a partial body with the audit fields stripped. The acting user travels as the
// actualizado_por query parameter; an explicit actingUser wins over one found in the body.
func (r *Resource[T]) Update(ctx context.Context, id string, changes interface{}, actingUser string) (*T, error) {
	body, bodyUser, err := StripAudit(changes)
	if err != nil {
		return nil, err
	}
	params := apiclient.Params{}
	if user := lo.Ternary(actingUser != "", actingUser, bodyUser); user != "" {
		params["actualizado_por"] = user
	}

	var out T
	if err := r.client.Put(ctx, r.Path(id), body, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete soft-deletes the record
func (r *Resource[T]) Delete(ctx context.Context, id, actingUser string) (*model.APIResponse, error) {
	params := apiclient.Params{}
	if actingUser != "" {
		params["actualizado_por"] = actingUser
	}
	var out model.APIResponse
	if err := r.client.Delete(ctx, r.Path(id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Reactivate(ctx context.Context, id string) (*model.APIResponse, error) {
	var out model.APIResponse
	if err := r.client.Patch(ctx, r.Path(id, "reactivar"), struct{}{}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// patch sends body to /{base}/{id}/{action} and decodes into out
func (r *Resource[T]) patch(ctx context.Context, id, action string, body, out interface{}) error {
	return r.client.Patch(ctx, r.Path(id, action), body, nil, out)
}

func (r *Resource[T]) fetchList(ctx context.Context, path string, params apiclient.Params) ([]T, error) {
	var raw jsoniter.RawMessage
	if err := r.client.Get(ctx, path, params, &raw); err != nil {
		return nil, err
	}
	return apiclient.DecodeList[T](raw, r.cfg.Key)
}

// StripAudit converts changes into a field map without the server-managed audit fields.
// It also returns the actualizado_por value the body carried, if any.
func StripAudit(changes interface{}) (map[string]interface{}, string, error) {
	fields := map[string]interface{}{}
	if changes == nil {
		return fields, "", nil
	}
	data, err := fieldJSON.Marshal(changes)
	if err != nil {
		return nil, "", errors.Wrap(err, "encode update body")
	}
	if err := fieldJSON.Unmarshal(data, &fields); err != nil {
		return nil, "", errors.Wrap(err, "update body must be a JSON object")
	}

	bodyUser, _ := fields["actualizado_por"].(string)
	return lo.OmitByKeys(fields, model.AuditFields), bodyUser, nil
}
