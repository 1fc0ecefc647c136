package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

// OrderItemInput is one (food, quantity) pair as submitted by the client,
// before duplicate collapse.
type OrderItemInput struct {
	FoodID   uint `json:"foodId"`
	Quantity int  `json:"quantity"`
}

// OrderLineView is the read model of one line item. UnitPrice and
// LineTotal reflect the catalog price at read time; the order's stored
// total does not move with them.
type OrderLineView struct {
	FoodID    uint            `json:"foodId"`
	FoodName  string          `json:"foodName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type OrderView struct {
	ID         uint            `json:"id"`
	OrderDate  time.Time       `json:"orderDate"`
	UserID     uint            `json:"userId"`
	Items      []OrderLineView `json:"items"`
	OrderTotal decimal.Decimal `json:"orderTotal"`
}

// OrderBroadcaster receives every successfully created order. The
// websocket feed implements it; tests plug in a recorder.
type OrderBroadcaster interface {
	BroadcastOrder(view *OrderView)
}

type OrderService struct {
	orders OrderRepository
	foods  FoodRepository
	applog *AppLogger
	feed   OrderBroadcaster
}

func NewOrderService(orders OrderRepository, foods FoodRepository, applog *AppLogger, feed OrderBroadcaster) *OrderService {
	return &OrderService{orders: orders, foods: foods, applog: applog, feed: feed}
}

// CollapseItems merges duplicate food entries, summing quantities, and
// keeps first-seen order so the resulting lines are deterministic.
func CollapseItems(items []OrderItemInput) []OrderItemInput {
	index := make(map[uint]int, len(items))
	collapsed := make([]OrderItemInput, 0, len(items))
	for _, it := range items {
		if pos, ok := index[it.FoodID]; ok {
			collapsed[pos].Quantity += it.Quantity
			continue
		}
		index[it.FoodID] = len(collapsed)
		collapsed = append(collapsed, it)
	}
	return collapsed
}

// Create converts a submitted cart into a persisted order. The owner comes
// from the authenticated identity, never from the request body. Steps:
// collapse, validate, price against the current catalog, persist the
// header plus line items as one unit.
func (s *OrderService) Create(ctx context.Context, caller utils.Identity, items []OrderItemInput) (*OrderView, error) {
	if len(items) == 0 {
		return nil, validationf("order must contain at least one item")
	}

	collapsed := CollapseItems(items)
	ids := make([]uint, 0, len(collapsed))
	for _, it := range collapsed {
		if it.Quantity < models.QuantityMin || it.Quantity > models.QuantityMax {
			return nil, validationf("quantity for food %d must be between %d and %d",
				it.FoodID, models.QuantityMin, models.QuantityMax)
		}
		ids = append(ids, it.FoodID)
	}

	foods, err := s.foods.ByIDs(ctx, ids)
	if err != nil {
		return nil, s.fail(ctx, "Order.Create", err)
	}
	// A partial match invalidates the whole order; nothing is dropped
	// silently.
	if len(foods) != len(ids) {
		known := make(map[uint]bool, len(foods))
		for _, f := range foods {
			known[f.ID] = true
		}
		missing := make([]uint, 0)
		for _, id := range ids {
			if !known[id] {
				missing = append(missing, id)
			}
		}
		return nil, validationf("order contains unknown food ids %v", missing)
	}

	byID := make(map[uint]models.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	total := decimal.Zero
	lines := make([]models.OrderFood, 0, len(collapsed))
	views := make([]OrderLineView, 0, len(collapsed))
	for _, it := range collapsed {
		food := byID[it.FoodID]
		lineTotal := food.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(lineTotal)
		lines = append(lines, models.OrderFood{FoodID: it.FoodID, Quantity: it.Quantity})
		views = append(views, OrderLineView{
			FoodID:    food.ID,
			FoodName:  food.Name,
			Quantity:  it.Quantity,
			UnitPrice: food.Price,
			LineTotal: lineTotal,
		})
	}

	order := &models.Order{
		OrderDate:  time.Now().UTC(),
		UserID:     caller.UserID,
		TotalPrice: total,
	}
	if err := s.orders.CreateWithItems(ctx, order, lines); err != nil {
		return nil, s.fail(ctx, "Order.Create", err)
	}

	s.applog.Information(ctx, fmt.Sprintf("Order.Create success: id=%d user=%d total=%s",
		order.ID, caller.UserID, total.StringFixed(2)))

	view := &OrderView{
		ID:         order.ID,
		OrderDate:  order.OrderDate,
		UserID:     order.UserID,
		Items:      views,
		OrderTotal: total,
	}
	if s.feed != nil {
		s.feed.BroadcastOrder(view)
	}
	return view, nil
}

// GetByID returns the materialized view of one order. Non-owners without
// the admin role get an authorization error, not a not-found: existence of
// an owned order is acknowledged but access denied.
func (s *OrderService) GetByID(ctx context.Context, caller utils.Identity, id uint) (*OrderView, error) {
	order, err := s.orders.ByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "order")
	}
	if order.UserID != caller.UserID && caller.Role != models.RoleAdmin {
		return nil, &AuthorizationError{Message: "order belongs to another user"}
	}
	return s.view(order), nil
}

func (s *OrderService) ListOwn(ctx context.Context, caller utils.Identity) ([]OrderView, error) {
	orders, err := s.orders.ByUser(ctx, caller.UserID)
	if err != nil {
		return nil, s.fail(ctx, "Order.ListOwn", err)
	}
	return s.views(orders), nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]OrderView, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return nil, s.fail(ctx, "Order.ListAll", err)
	}
	return s.views(orders), nil
}

// Delete removes the order and its line items in one unit of work.
func (s *OrderService) Delete(ctx context.Context, caller utils.Identity, id uint) error {
	order, err := s.orders.ByID(ctx, id)
	if err != nil {
		return storeError(err, "order")
	}
	if order.UserID != caller.UserID && caller.Role != models.RoleAdmin {
		return &AuthorizationError{Message: "order belongs to another user"}
	}
	if err := s.orders.DeleteWithItems(ctx, id); err != nil {
		return s.fail(ctx, "Order.Delete", err)
	}
	s.applog.Information(ctx, fmt.Sprintf("Order.Delete success: id=%d by user=%d", id, caller.UserID))
	return nil
}

// view prices lines at read time while keeping the stored total frozen.
func (s *OrderService) view(order *models.Order) *OrderView {
	items := make([]OrderLineView, 0, len(order.OrderFoods))
	for _, line := range order.OrderFoods {
		lv := OrderLineView{FoodID: line.FoodID, Quantity: line.Quantity}
		if line.Food != nil {
			lv.FoodName = line.Food.Name
			lv.UnitPrice = line.Food.Price
			lv.LineTotal = line.Food.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		}
		items = append(items, lv)
	}
	return &OrderView{
		ID:         order.ID,
		OrderDate:  order.OrderDate,
		UserID:     order.UserID,
		Items:      items,
		OrderTotal: order.TotalPrice,
	}
}

func (s *OrderService) views(orders []models.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for i := range orders {
		out = append(out, *s.view(&orders[i]))
	}
	return out
}

func (s *OrderService) fail(ctx context.Context, op string, err error) error {
	classified := storeError(err, "order")
	s.applog.Error(ctx, fmt.Sprintf("%s failed: %v", op, err))
	return classified
}
