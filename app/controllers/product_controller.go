package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/vanij/app/services"
	"github.com/shashiranjanraj/vanij/pkg/bind"
	"github.com/shashiranjanraj/vanij/pkg/response"
)

// ProductController exposes catalog management and the low-stock report.
type ProductController struct {
	products *services.ProductService
	lowStock *services.LowStockService
}

func NewProductController(products *services.ProductService, lowStock *services.LowStockService) *ProductController {
	return &ProductController{products: products, lowStock: lowStock}
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Create(r.Context(), in)
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Created(w, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, map[string]string{"deleted": chi.URLParam(r, "id")})
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	products, total, err := c.products.List(r.Context(), offset, int64(limit))
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Paginated(w, products, pagination(page, limit, total))
}

func (c *ProductController) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := c.lowStock.LowStock(r.Context())
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, products)
}
