// Package pagination walks cursor-paginated list endpoints.
//
// List endpoints answer with a page of items plus list_metadata cursors.
// AutoPaginatable wraps a page fetcher and turns those pages into a lazy,
// restartable sequence: nothing is fetched until the sequence is ranged over,
// and every new range starts again from the options it was built with.
package pagination

import (
	"context"
	"fmt"
	"iter"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/Icegreeen/workos-go/pkg/platform/httpclient"
)

// Order is the sort direction of a list by creation time.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const (
	DefaultOrder = OrderDesc
	// autoPageSize is the page size used when AutoPagination walks every page.
	autoPageSize = 100
)

// Options are the cursor parameters shared by every list endpoint.
type Options struct {
	Limit  int
	Before string
	After  string
	Order  Order
}

// SerializedOptions is the query-string shape of Options.
type SerializedOptions struct {
	Limit  int    `schema:"limit,omitempty"`
	Before string `schema:"before,omitempty"`
	After  string `schema:"after,omitempty"`
	Order  string `schema:"order,omitempty"`
}

// SerializeOptions maps Options to their wire names, defaulting the order.
func SerializeOptions(o Options) SerializedOptions {
	order := o.Order
	if order == "" {
		order = DefaultOrder
	}
	return SerializedOptions{
		Limit:  o.Limit,
		Before: o.Before,
		After:  o.After,
		Order:  string(order),
	}
}

func DeserializeOptions(s SerializedOptions) Options {
	return Options{
		Limit:  s.Limit,
		Before: s.Before,
		After:  s.After,
		Order:  Order(s.Order),
	}
}

// ListMetadata carries the cursors of the neighbouring pages. An empty After
// means the page is the last one.
type ListMetadata struct {
	Before string
	After  string
}

type ListMetadataResponse struct {
	Before *string `json:"before"`
	After  *string `json:"after"`
}

// ListResponse is the wire envelope of every list endpoint.
type ListResponse[T any] struct {
	Object       string               `json:"object"`
	Data         []T                  `json:"data"`
	ListMetadata ListMetadataResponse `json:"list_metadata"`
}

// List is one deserialized page.
type List[T any] struct {
	Object       string
	Data         []T
	ListMetadata ListMetadata
}

// DeserializeList converts every item of the page with fn.
func DeserializeList[R, T any](resp ListResponse[R], fn func(R) T) List[T] {
	data := make([]T, 0, len(resp.Data))
	for _, item := range resp.Data {
		data = append(data, fn(item))
	}
	return List[T]{
		Object: resp.Object,
		Data:   data,
		ListMetadata: ListMetadata{
			Before: deref(resp.ListMetadata.Before),
			After:  deref(resp.ListMetadata.After),
		},
	}
}

// SerializeList is the inverse of DeserializeList. Empty cursors become null.
func SerializeList[T, R any](list List[T], fn func(T) R) ListResponse[R] {
	data := make([]R, 0, len(list.Data))
	for _, item := range list.Data {
		data = append(data, fn(item))
	}
	object := list.Object
	if object == "" {
		object = "list"
	}
	return ListResponse[R]{
		Object: object,
		Data:   data,
		ListMetadata: ListMetadataResponse{
			Before: ref(list.ListMetadata.Before),
			After:  ref(list.ListMetadata.After),
		},
	}
}

// Getter is the slice of the shared HTTP client that list fetching needs.
type Getter interface {
	Get(ctx context.Context, path string, query url.Values, out any, opts ...httpclient.RequestOption) error
}

var encoder = schema.NewEncoder()

// EncodeQuery encodes a struct tagged with `schema:"name,omitempty"` into
// query parameters. Several structs may be merged into one url.Values.
func EncodeQuery(dst url.Values, src any) error {
	if err := encoder.Encode(src, dst); err != nil {
		return fmt.Errorf("encode query: %w", err)
	}
	return nil
}

// FetchAndDeserialize issues one GET for a list page and deserializes it.
func FetchAndDeserialize[R, T any](ctx context.Context, c Getter, path string, query url.Values, fn func(R) T, opts ...httpclient.RequestOption) (List[T], error) {
	var resp ListResponse[R]
	if err := c.Get(ctx, path, query, &resp, opts...); err != nil {
		return List[T]{}, err
	}
	return DeserializeList(resp, fn), nil
}

// PageFetcher fetches the page described by opts.
type PageFetcher[T any] func(ctx context.Context, opts Options) (List[T], error)

// AutoPaginatable is a lazy sequence of items spread across backend pages.
type AutoPaginatable[T any] struct {
	fetch   PageFetcher[T]
	options Options
}

// New builds an AutoPaginatable. No request is made until it is iterated.
func New[T any](fetch PageFetcher[T], opts Options) *AutoPaginatable[T] {
	return &AutoPaginatable[T]{fetch: fetch, options: opts}
}

// Options returns the options iteration starts from.
func (p *AutoPaginatable[T]) Options() Options {
	return p.options
}

// FirstPage fetches only the page described by the initial options.
func (p *AutoPaginatable[T]) FirstPage(ctx context.Context) (List[T], error) {
	return p.fetch(ctx, p.options)
}

// Pages yields one page per step, following the after cursor until the
// backend reports no further page. A fetch error is yielded once and ends
// the sequence.
func (p *AutoPaginatable[T]) Pages(ctx context.Context) iter.Seq2[List[T], error] {
	return pages(ctx, p.fetch, p.options)
}

// All yields the items of every page in backend order.
func (p *AutoPaginatable[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for page, err := range p.Pages(ctx) {
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Data {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// AutoPagination collects every item into a slice. When the caller asked for
// a specific Limit only that first page is returned; otherwise all pages are
// walked with the maximum page size.
func (p *AutoPaginatable[T]) AutoPagination(ctx context.Context) ([]T, error) {
	if p.options.Limit > 0 {
		page, err := p.FirstPage(ctx)
		if err != nil {
			return nil, err
		}
		return page.Data, nil
	}

	opts := p.options
	opts.Limit = autoPageSize
	var results []T
	for page, err := range pages(ctx, p.fetch, opts) {
		if err != nil {
			return nil, err
		}
		results = append(results, page.Data...)
	}
	return results, nil
}

func pages[T any](ctx context.Context, fetch PageFetcher[T], start Options) iter.Seq2[List[T], error] {
	return func(yield func(List[T], error) bool) {
		opts := start
		for {
			if err := ctx.Err(); err != nil {
				yield(List[T]{}, err)
				return
			}
			page, err := fetch(ctx, opts)
			if err != nil {
				yield(List[T]{}, err)
				return
			}
			if !yield(page, nil) {
				return
			}
			next := page.ListMetadata.After
			if next == "" || next == opts.After {
				return
			}
			opts.After = next
			opts.Before = ""
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
