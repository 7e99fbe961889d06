package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/app/services"
	"github.com/shashiranjanraj/vanij/pkg/bind"
	"github.com/shashiranjanraj/vanij/pkg/response"
)

// createOrderRequest is the create-order payload. Line-item semantics
// (positive quantities, known products, stock) are enforced by the
// fulfillment service; bind only checks shape.
type createOrderRequest struct {
	LineItems       []models.OrderLineItem `json:"lineItems"`
	CustomerName    string                 `json:"customerName" validate:"nullable,max=200"`
	CustomerContact string                 `json:"customerContact" validate:"nullable,max=200"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderController exposes order creation and the status lifecycle.
type OrderController struct {
	fulfillment *services.FulfillmentService
}

func NewOrderController(fulfillment *services.FulfillmentService) *OrderController {
	return &OrderController{fulfillment: fulfillment}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.fulfillment.CreateOrder(r.Context(), services.CreateOrderInput{
		LineItems:       req.LineItems,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
	})
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Created(w, order)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	order, err := c.fulfillment.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	orders, total, err := c.fulfillment.ListOrders(r.Context(), offset, int64(limit))
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Paginated(w, orders, pagination(page, limit, total))
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.fulfillment.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), req.Status)
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, order)
}
