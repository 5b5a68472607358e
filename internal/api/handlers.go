package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/example/bookshop/internal/domain/address"
	"github.com/example/bookshop/internal/domain/item"
	"github.com/example/bookshop/internal/domain/member"
	"github.com/example/bookshop/internal/domain/order"
	"github.com/example/bookshop/internal/query"
	"github.com/example/bookshop/internal/repository"
	"github.com/example/bookshop/internal/service"
)

type Handlers struct {
	members *service.MemberService
	items   *service.ItemService
	orders  *service.OrderService
	queries *query.Handler
}

func NewHandlers(members *service.MemberService, items *service.ItemService, orders *service.OrderService, queries *query.Handler) *Handlers {
	return &Handlers{
		members: members,
		items:   items,
		orders:  orders,
		queries: queries,
	}
}

// Member Handlers

func (h *Handlers) JoinMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		City    string `json:"city"`
		Street  string `json:"street"`
		Zipcode string `json:"zipcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.members.Join(r.Context(), req.Name, req.Email, address.New(req.City, req.Street, req.Zipcode))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) GetMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.FindMembers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

// Item Handlers

type bookForm struct {
	Name          string `json:"name"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
}

func (h *Handlers) NewItemForm(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, bookForm{})
}

func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	var form bookForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.items.SaveItem(r.Context(), form.Name, form.Price, form.StockQuantity, form.Author, form.ISBN)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) GetItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.FindItems(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handlers) EditItemForm(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/items/")
	id = strings.TrimSuffix(id, "/edit")

	it, err := h.items.FindOne(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookForm{
		Name:          it.Name,
		Price:         it.Price,
		StockQuantity: it.StockQuantity,
		Author:        it.Author,
		ISBN:          it.ISBN,
	})
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/items/")
	id = strings.TrimSuffix(id, "/edit")

	// Absent fields stay untouched; the service loads current state and
	// applies only what the request carries.
	var form struct {
		Name          *string `json:"name"`
		Price         *int    `json:"price"`
		StockQuantity *int    `json:"stock_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.items.UpdateItem(r.Context(), id, form.Name, form.Price, form.StockQuantity); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item updated"})
}

// Order Handlers

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"member_id"`
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.orders.Place(r.Context(), req.MemberID, req.ItemID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.FindOrders(r.Context(), searchFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/orders/")
	id = strings.TrimSuffix(id, "/cancel")

	if err := h.orders.Cancel(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order cancelled"})
}

// Simple-order read paths. v1 exposes entities and is kept only for
// comparison; v2 pays N+1 lookups; v3 and v4 cost a single query each.

func (h *Handlers) SimpleOrdersV1(w http.ResponseWriter, r *http.Request) {
	orders, err := h.queries.ListOrders(r.Context(), searchFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) SimpleOrdersV2(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.queries.ListSummariesPerRow(r.Context(), searchFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (h *Handlers) SimpleOrdersV3(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.queries.ListSummariesJoined(r.Context(), searchFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (h *Handlers) SimpleOrdersV4(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.queries.ListSummariesProjected(r.Context(), searchFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// Helpers

func searchFromQuery(r *http.Request) repository.OrderSearch {
	return repository.OrderSearch{
		Status:     order.Status(r.URL.Query().Get("status")),
		MemberName: r.URL.Query().Get("member_name"),
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// nil slices would serialize as null; empty listings read as []
	if v := reflect.ValueOf(data); v.Kind() == reflect.Slice && v.IsNil() {
		data = []any{}
	}
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, member.ErrNotFound),
		errors.Is(err, item.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, member.ErrDuplicateName),
		errors.Is(err, item.ErrInsufficientStock),
		errors.Is(err, item.ErrStockConflict),
		errors.Is(err, order.ErrAlreadyCancelled):
		status = http.StatusConflict
	case errors.Is(err, member.ErrInvalidName),
		errors.Is(err, item.ErrInvalidName),
		errors.Is(err, item.ErrInvalidPrice),
		errors.Is(err, item.ErrInvalidStock),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrEmptyOrder):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}
