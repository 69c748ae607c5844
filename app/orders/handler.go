package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/greenbasket/shop-backend/app/api"
	"github.com/greenbasket/shop-backend/models"
)

type Response struct {
	Total  int     `json:"total"`
	Orders []Order `json:"orders"`
}

type Order struct {
	Number        string      `json:"number"`
	FullName      string      `json:"full_name"`
	PhoneNumber   string      `json:"phone_number"`
	City          string      `json:"city"`
	Address       string      `json:"address"`
	PostalCode    string      `json:"postal_code,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	Subtotal      float64     `json:"subtotal"`
	DeliveryFee   float64     `json:"delivery_fee"`
	TotalAmount   float64     `json:"total_amount"`
	Items         []OrderItem `json:"items"`
}

type OrderItem struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

type OrderProvider interface {
	CreateOrder(order *models.Order) error
	GetByNumber(number string) (*models.Order, error)
	GetFilteredOrders(offset, limit int, filters models.OrderFilters) ([]models.Order, int64, error)
	AddItem(number string, item *models.OrderItem) error
	UpdateItemQuantity(number string, itemID uint, quantity int) error
	RemoveItem(number string, itemID uint) error
	UpdateStatus(number string, next models.OrderStatus) error
	RecalculateTotals(number string) (decimal.Decimal, error)
}

type OrdersHandler struct {
	repo OrderProvider
}

func NewOrdersHandler(r OrderProvider) *OrdersHandler {
	return &OrdersHandler{repo: r}
}

func (h *OrdersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FullName      string  `json:"full_name"`
		PhoneNumber   string  `json:"phone_number"`
		City          string  `json:"city"`
		Address       string  `json:"address"`
		PostalCode    string  `json:"postal_code"`
		Notes         string  `json:"notes"`
		PaymentMethod string  `json:"payment_method"`
		DeliveryFee   float64 `json:"delivery_fee"`
		Items         []struct {
			ProductID uint `json:"product_id"`
			Quantity  int  `json:"quantity"`
		} `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	order := &models.Order{
		FullName:      input.FullName,
		PhoneNumber:   input.PhoneNumber,
		City:          input.City,
		Address:       input.Address,
		PostalCode:    input.PostalCode,
		Notes:         input.Notes,
		PaymentMethod: models.PaymentMethod(input.PaymentMethod),
		DeliveryFee:   decimal.NewFromFloat(input.DeliveryFee).Round(2),
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := h.repo.CreateOrder(order); err != nil {
		writeOrderError(w, err, "Failed to create order")
		return
	}

	api.JSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *OrdersHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	filters := models.OrderFilters{}
	if status := r.URL.Query().Get("status"); status != "" {
		filters.Status = models.OrderStatus(status)
		if !filters.Status.Valid() {
			api.Error(w, http.StatusBadRequest, "invalid order status")
			return
		}
	}

	res, total, err := h.repo.GetFilteredOrders(offset, limit, filters)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to get orders")
		return
	}

	orders := make([]Order, len(res))
	for i, o := range res {
		orders[i] = toOrderResponse(&o)
	}

	api.JSON(w, http.StatusOK, Response{
		Total:  int(total),
		Orders: orders,
	})
}

func (h *OrdersHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.repo.GetByNumber(r.PathValue("number"))
	if err != nil {
		writeOrderError(w, err, "Failed to retrieve order")
		return
	}

	api.JSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrdersHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")

	var input struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	item := &models.OrderItem{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	}

	if err := h.repo.AddItem(number, item); err != nil {
		writeOrderError(w, err, "Failed to add item")
		return
	}

	h.respondWithOrder(w, number, http.StatusCreated)
}

func (h *OrdersHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")

	itemID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.repo.UpdateItemQuantity(number, uint(itemID), input.Quantity); err != nil {
		writeOrderError(w, err, "Failed to update item")
		return
	}

	h.respondWithOrder(w, number, http.StatusOK)
}

func (h *OrdersHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")

	itemID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	if err := h.repo.RemoveItem(number, uint(itemID)); err != nil {
		writeOrderError(w, err, "Failed to remove item")
		return
	}

	h.respondWithOrder(w, number, http.StatusOK)
}

func (h *OrdersHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")

	var input struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.repo.UpdateStatus(number, models.OrderStatus(input.Status)); err != nil {
		writeOrderError(w, err, "Failed to update status")
		return
	}

	h.respondWithOrder(w, number, http.StatusOK)
}

func (h *OrdersHandler) HandleRecalculate(w http.ResponseWriter, r *http.Request) {
	total, err := h.repo.RecalculateTotals(r.PathValue("number"))
	if err != nil {
		writeOrderError(w, err, "Failed to recalculate totals")
		return
	}

	api.JSON(w, http.StatusOK, map[string]float64{"total_amount": total.InexactFloat64()})
}

func (h *OrdersHandler) respondWithOrder(w http.ResponseWriter, number string, status int) {
	order, err := h.repo.GetByNumber(number)
	if err != nil {
		writeOrderError(w, err, "Failed to retrieve order")
		return
	}
	api.JSON(w, status, toOrderResponse(order))
}

func writeOrderError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrFullNameRequired),
		errors.Is(err, models.ErrPhoneNumberRequired),
		errors.Is(err, models.ErrCityRequired),
		errors.Is(err, models.ErrAddressRequired),
		errors.Is(err, models.ErrDeliveryFeeNegative),
		errors.Is(err, models.ErrQuantityTooSmall),
		errors.Is(err, models.ErrUnitPriceNegative),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidPaymentMethod):
		api.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrProductNotFound):
		api.Error(w, http.StatusBadRequest, "Unknown product")
	case errors.Is(err, models.ErrOrderNotFound):
		api.Error(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, models.ErrOrderItemNotFound):
		api.Error(w, http.StatusNotFound, "Order item not found")
	case errors.Is(err, models.ErrInvalidStatusChange):
		api.Error(w, http.StatusConflict, err.Error())
	default:
		api.Error(w, http.StatusInternalServerError, fallback)
	}
}

func toOrderResponse(o *models.Order) Order {
	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal.InexactFloat64(),
		}
	}
	return Order{
		Number:        o.Number,
		FullName:      o.FullName,
		PhoneNumber:   o.PhoneNumber,
		City:          o.City,
		Address:       o.Address,
		PostalCode:    o.PostalCode,
		Notes:         o.Notes,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		Subtotal:      o.Subtotal.InexactFloat64(),
		DeliveryFee:   o.DeliveryFee.InexactFloat64(),
		TotalAmount:   o.TotalAmount.InexactFloat64(),
		Items:         items,
	}
}
