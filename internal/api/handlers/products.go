package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/comp-pricer/internal/store"
	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// ProductRepricer reprices a single tracked product on demand.
type ProductRepricer interface {
	RepriceProduct(ctx context.Context, id string) (*domain.DecisionRecord, error)
}

// ProductsHandler handles tracked product CRUD and decision history.
type ProductsHandler struct {
	store    store.Store
	repricer ProductRepricer
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(s store.Store, r ProductRepricer) *ProductsHandler {
	return &ProductsHandler{store: s, repricer: r}
}

// --- Input/Output types ---

// ListProductsInput is the input for listing tracked products.
type ListProductsInput struct {
	Enabled   bool   `query:"enabled"   doc:"Only return enabled products"`
	Brand     string `query:"brand"     doc:"Filter by brand (case-insensitive)"`
	Condition string `query:"condition" doc:"Filter by condition"                enum:"new,other,"`
	Search    string `query:"search"    doc:"Substring of the product name"`
	Limit     int    `query:"limit"     doc:"Number of results (default 50)"     minimum:"0" maximum:"500"`
	Offset    int    `query:"offset"    doc:"Pagination offset"                  minimum:"0"`
	OrderBy   string `query:"order_by"  doc:"Sort field"                         enum:"created_at,brand,last_priced_at,"`
}

// ListProductsOutput is the response for listing tracked products.
type ListProductsOutput struct {
	Body struct {
		Products []domain.TrackedProduct `json:"products"`
		Total    int                     `json:"total"`
		Limit    int                     `json:"limit"`
		Offset   int                     `json:"offset"`
	}
}

// ProductIDInput identifies a tracked product.
type ProductIDInput struct {
	ID string `path:"id" doc:"Product UUID"`
}

// ProductOutput is the response for a single tracked product.
type ProductOutput struct {
	Body domain.TrackedProduct
}

// CreateProductInput is the input for creating a tracked product.
type CreateProductInput struct {
	Body domain.ProductRequest
}

// UpdateProductInput is the input for replacing a tracked product.
type UpdateProductInput struct {
	ID   string `path:"id" doc:"Product UUID"`
	Body domain.ProductRequest
}

// SetProductEnabledInput is the input for enabling or disabling a product.
type SetProductEnabledInput struct {
	ID   string `path:"id" doc:"Product UUID"`
	Body struct {
		Enabled bool `json:"enabled" example:"true"`
	}
}

// StatusOutput is a generic status response.
type StatusOutput struct {
	Body StatusResponse
}

// DecisionOutput is the response for a single pricing decision.
type DecisionOutput struct {
	Body domain.DecisionRecord
}

// ListDecisionsInput is the input for a product's decision history.
type ListDecisionsInput struct {
	ID    string `path:"id"     doc:"Product UUID"`
	Limit int    `query:"limit" doc:"Number of decisions (default 20)" minimum:"0" maximum:"500"`
}

// ListDecisionsOutput is the response for a product's decision history.
type ListDecisionsOutput struct {
	Body []domain.DecisionRecord
}

const defaultDecisionHistoryLimit = 20

// --- Handlers ---

// ListProducts returns tracked products with optional filters.
func (h *ProductsHandler) ListProducts(
	ctx context.Context,
	input *ListProductsInput,
) (*ListProductsOutput, error) {
	q := &store.ProductQuery{
		EnabledOnly: input.Enabled,
		Limit:       input.Limit,
		Offset:      input.Offset,
		OrderBy:     input.OrderBy,
	}
	if input.Brand != "" {
		q.Brand = &input.Brand
	}
	if input.Search != "" {
		q.Search = &input.Search
	}
	if input.Condition != "" {
		cond := domain.Condition(input.Condition)
		q.Condition = &cond
	}

	products, total, err := h.store.ListProducts(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing products failed: " + err.Error())
	}
	if products == nil {
		products = []domain.TrackedProduct{}
	}

	resp := &ListProductsOutput{}
	resp.Body.Products = products
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset

	return resp, nil
}

// GetProduct returns a single tracked product.
func (h *ProductsHandler) GetProduct(ctx context.Context, input *ProductIDInput) (*ProductOutput, error) {
	p, err := h.store.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, storeError("getting product", err)
	}
	return &ProductOutput{Body: *p}, nil
}

// CreateProduct starts tracking a product.
func (h *ProductsHandler) CreateProduct(
	ctx context.Context,
	input *CreateProductInput,
) (*ProductOutput, error) {
	p := productFromRequest(&input.Body)

	if err := h.store.CreateProduct(ctx, p); err != nil {
		return nil, huma.Error500InternalServerError("creating product failed: " + err.Error())
	}

	return &ProductOutput{Body: *p}, nil
}

// UpdateProduct replaces a tracked product's fields.
func (h *ProductsHandler) UpdateProduct(
	ctx context.Context,
	input *UpdateProductInput,
) (*ProductOutput, error) {
	p := productFromRequest(&input.Body)
	p.ID = input.ID

	if err := h.store.UpdateProduct(ctx, p); err != nil {
		return nil, storeError("updating product", err)
	}

	return &ProductOutput{Body: *p}, nil
}

// SetProductEnabled toggles scheduled repricing for a product.
func (h *ProductsHandler) SetProductEnabled(
	ctx context.Context,
	input *SetProductEnabledInput,
) (*StatusOutput, error) {
	if err := h.store.SetProductEnabled(ctx, input.ID, input.Body.Enabled); err != nil {
		return nil, storeError("setting product enabled", err)
	}
	return &StatusOutput{Body: StatusResponse{Status: "updated"}}, nil
}

// DeleteProduct stops tracking a product.
func (h *ProductsHandler) DeleteProduct(ctx context.Context, input *ProductIDInput) (*struct{}, error) {
	if err := h.store.DeleteProduct(ctx, input.ID); err != nil {
		return nil, storeError("deleting product", err)
	}
	return nil, nil
}

// RepriceProduct prices a product now and records the decision.
func (h *ProductsHandler) RepriceProduct(ctx context.Context, input *ProductIDInput) (*DecisionOutput, error) {
	if h.repricer == nil {
		return nil, huma.Error503ServiceUnavailable("repricing is not configured")
	}

	rec, err := h.repricer.RepriceProduct(ctx, input.ID)
	if err != nil {
		return nil, storeError("repricing product", err)
	}

	return &DecisionOutput{Body: *rec}, nil
}

// ListDecisions returns a product's decision history, newest first.
func (h *ProductsHandler) ListDecisions(
	ctx context.Context,
	input *ListDecisionsInput,
) (*ListDecisionsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = defaultDecisionHistoryLimit
	}

	if _, err := h.store.GetProduct(ctx, input.ID); err != nil {
		return nil, storeError("getting product", err)
	}

	recs, err := h.store.ListDecisions(ctx, input.ID, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing decisions failed: " + err.Error())
	}
	if recs == nil {
		recs = []domain.DecisionRecord{}
	}

	return &ListDecisionsOutput{Body: recs}, nil
}

func productFromRequest(req *domain.ProductRequest) *domain.TrackedProduct {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	return &domain.TrackedProduct{
		Brand:       req.Brand,
		ProductName: req.ProductName,
		Condition:   req.Condition,
		Overrides:   req.Overrides,
		Enabled:     enabled,
	}
}

// storeError maps store.ErrNotFound to 404 and everything else to 500.
func storeError(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return huma.Error404NotFound("product not found")
	}
	return huma.Error500InternalServerError(op + " failed: " + err.Error())
}

// RegisterProductRoutes registers tracked product endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List tracked products",
		Description: "Returns tracked products with optional filters and pagination.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListProducts)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Get a tracked product",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.GetProduct)

	huma.Register(api, huma.Operation{
		OperationID:   "create-product",
		Method:        http.MethodPost,
		Path:          "/api/v1/products",
		Summary:       "Track a product",
		Description:   "Adds a product to the scheduled repricing set. Products are enabled unless enabled is false.",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusInternalServerError},
	}, h.CreateProduct)

	huma.Register(api, huma.Operation{
		OperationID: "update-product",
		Method:      http.MethodPut,
		Path:        "/api/v1/products/{id}",
		Summary:     "Update a tracked product",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.UpdateProduct)

	huma.Register(api, huma.Operation{
		OperationID: "set-product-enabled",
		Method:      http.MethodPut,
		Path:        "/api/v1/products/{id}/enabled",
		Summary:     "Enable or disable a tracked product",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.SetProductEnabled)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-product",
		Method:        http.MethodDelete,
		Path:          "/api/v1/products/{id}",
		Summary:       "Stop tracking a product",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.DeleteProduct)

	huma.Register(api, huma.Operation{
		OperationID: "reprice-product",
		Method:      http.MethodPost,
		Path:        "/api/v1/products/{id}/reprice",
		Summary:     "Reprice a tracked product now",
		Description: "Fetches fresh comps, bypassing the decision cache, and records the decision.",
		Tags:        []string{"products"},
		Errors: []int{
			http.StatusNotFound,
			http.StatusInternalServerError,
			http.StatusServiceUnavailable,
		},
	}, h.RepriceProduct)

	huma.Register(api, huma.Operation{
		OperationID: "list-product-decisions",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}/decisions",
		Summary:     "List a product's pricing decisions",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.ListDecisions)
}
