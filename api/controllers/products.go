package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/omarberrios/shopgrid-backend/api/responses"
	"github.com/omarberrios/shopgrid-backend/api/validators"
	products "github.com/omarberrios/shopgrid-backend/internal/products"
	pkgerrors "github.com/omarberrios/shopgrid-backend/pkg/errors"
	"github.com/omarberrios/shopgrid-backend/pkg/logger"
)

// ProductList serves the public storefront browse endpoint. When store_id is
// supplied the listing narrows to that seller's catalog.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		input, err := listInputFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.SellerStoreID, err = queryUUID(r, "store_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// MyProductList returns the acting seller's own catalog, inactive rows included.
func MyProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := listInputFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.SellerStoreID = &storeID

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func listInputFromRequest(r *http.Request) (products.ListProductsInput, error) {
	params, err := paginationFromRequest(r)
	if err != nil {
		return products.ListProductsInput{}, err
	}
	typeID, err := queryUUID(r, "product_type_id")
	if err != nil {
		return products.ListProductsInput{}, err
	}
	priceMin, err := queryInt64(r, "price_min")
	if err != nil {
		return products.ListProductsInput{}, err
	}
	priceMax, err := queryInt64(r, "price_max")
	if err != nil {
		return products.ListProductsInput{}, err
	}
	return products.ListProductsInput{
		Filters: products.ProductListFilters{
			ProductTypeID: typeID,
			PriceMin:      priceMin,
			PriceMax:      priceMax,
			Query:         strings.TrimSpace(r.URL.Query().Get("q")),
		},
		Pagination: params,
	}, nil
}

type productDetailResponse struct {
	Product *products.ProductDTO    `json:"product"`
	Seller  *products.SellerSummary `json:"seller,omitempty"`
}

// ProductGet returns one product with its seller summary.
func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, seller, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, productDetailResponse{Product: product, Seller: seller})
	}
}

type productCreateRequest struct {
	ProductTypeID uuid.UUID `json:"product_type_id" validate:"required"`
	SKU           string    `json:"sku" validate:"required,min=1,max=64"`
	Title         string    `json:"title" validate:"required,min=1,max=200"`
	Description   *string   `json:"description,omitempty"`
	Price         int64     `json:"price" validate:"required,min=1"`
	IsActive      *bool     `json:"is_active,omitempty"`
}

// ProductCreate adds a listing to the acting seller's catalog.
func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		active := true
		if payload.IsActive != nil {
			active = *payload.IsActive
		}

		product, err := svc.CreateProduct(r.Context(), storeID, products.CreateProductInput{
			ProductTypeID: payload.ProductTypeID,
			SKU:           validators.SanitizeString(payload.SKU, 64),
			Title:         validators.SanitizeString(payload.Title, 200),
			Description:   payload.Description,
			Price:         payload.Price,
			IsActive:      active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type productUpdateRequest struct {
	ProductTypeID *uuid.UUID `json:"product_type_id,omitempty"`
	SKU           *string    `json:"sku,omitempty" validate:"omitempty,min=1,max=64"`
	Title         *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string    `json:"description,omitempty"`
	Price         *int64     `json:"price,omitempty" validate:"omitempty,min=1"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

// ProductUpdate mutates a listing owned by the acting seller.
func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), storeID, productID, products.UpdateProductInput{
			ProductTypeID: payload.ProductTypeID,
			SKU:           payload.SKU,
			Title:         payload.Title,
			Description:   payload.Description,
			Price:         payload.Price,
			IsActive:      payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductDeactivate pulls a listing from the storefront without deleting it.
func ProductDeactivate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeactivateProduct(r.Context(), storeID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

type productTypeCreateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// ProductTypeCreate adds a seller-defined category.
func ProductTypeCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productTypeCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pt, err := svc.CreateProductType(r.Context(), storeID, validators.SanitizeString(payload.Name, 100))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, pt)
	}
}

// ProductTypeList returns the acting seller's categories.
func ProductTypeList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListProductTypes(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"product_types": list})
	}
}
