package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

type feedRecorder struct {
	orders []*OrderView
}

func (f *feedRecorder) BroadcastOrder(view *OrderView) {
	f.orders = append(f.orders, view)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newOrderFixture(t *testing.T) (*OrderService, *fakeFoodRepo, *fakeOrderRepo, *fakeLogRepo, *feedRecorder) {
	t.Helper()
	foods := newFakeFoodRepo()
	orders := newFakeOrderRepo(foods)
	logs := &fakeLogRepo{}
	feed := &feedRecorder{}
	svc := NewOrderService(orders, foods, NewAppLogger(logs), feed)
	return svc, foods, orders, logs, feed
}

func addFood(foods *fakeFoodRepo, name, priceStr string) uint {
	food := &models.Food{Name: name, Price: price(priceStr), FoodCategoryID: 1}
	_ = foods.Create(context.Background(), food, nil)
	return food.ID
}

func TestCollapseItemsMergesDuplicatesFirstSeenOrder(t *testing.T) {
	collapsed := CollapseItems([]OrderItemInput{
		{FoodID: 5, Quantity: 2},
		{FoodID: 3, Quantity: 1},
		{FoodID: 5, Quantity: 3},
	})

	require.Len(t, collapsed, 2)
	assert.Equal(t, OrderItemInput{FoodID: 5, Quantity: 5}, collapsed[0])
	assert.Equal(t, OrderItemInput{FoodID: 3, Quantity: 1}, collapsed[1])
}

func TestOrderCreateEmptyRejected(t *testing.T) {
	svc, _, orders, _, _ := newOrderFixture(t)

	_, err := svc.Create(context.Background(), utils.Identity{UserID: 1}, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, orders.orders)
}

func TestOrderCreateQuantityBounds(t *testing.T) {
	svc, foods, orders, _, _ := newOrderFixture(t)
	id := addFood(foods, "Margherita", "9.50")

	for _, qty := range []int{0, -1, 101} {
		_, err := svc.Create(context.Background(), utils.Identity{UserID: 1},
			[]OrderItemInput{{FoodID: id, Quantity: qty}})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "quantity %d", qty)
	}
	assert.Empty(t, orders.orders)
}

func TestOrderCreateDuplicatesCollapseBeforeBoundsCheck(t *testing.T) {
	svc, foods, _, _, _ := newOrderFixture(t)
	id := addFood(foods, "Margherita", "9.50")

	// 60+60 collapses to 120, past the per-line maximum.
	_, err := svc.Create(context.Background(), utils.Identity{UserID: 1}, []OrderItemInput{
		{FoodID: id, Quantity: 60},
		{FoodID: id, Quantity: 60},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestOrderCreateUnknownFoodRejectsWholeOrder(t *testing.T) {
	svc, foods, orders, _, _ := newOrderFixture(t)
	known := addFood(foods, "Margherita", "9.50")

	_, err := svc.Create(context.Background(), utils.Identity{UserID: 1}, []OrderItemInput{
		{FoodID: known, Quantity: 1},
		{FoodID: 999, Quantity: 1},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "999")
	assert.Empty(t, orders.orders, "partial match must not persist anything")
}

func TestOrderCreateComputesTotalAndBroadcasts(t *testing.T) {
	svc, foods, orders, logs, feed := newOrderFixture(t)
	margherita := addFood(foods, "Margherita", "9.50")
	cola := addFood(foods, "Cola", "2.50")

	view, err := svc.Create(context.Background(), utils.Identity{UserID: 7, Username: "ana", Role: models.RoleUser},
		[]OrderItemInput{
			{FoodID: margherita, Quantity: 2},
			{FoodID: cola, Quantity: 3},
		})
	require.NoError(t, err)

	assert.Equal(t, uint(7), view.UserID, "owner comes from the token identity")
	assert.True(t, view.OrderTotal.Equal(price("26.50")), "got %s", view.OrderTotal)
	require.Len(t, view.Items, 2)
	assert.True(t, view.Items[0].LineTotal.Equal(price("19.00")))

	stored := orders.orders[view.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.TotalPrice.Equal(price("26.50")))
	require.Len(t, orders.items[view.ID], 2)

	require.Len(t, feed.orders, 1)
	assert.Equal(t, view.ID, feed.orders[0].ID)

	require.NotEmpty(t, logs.entries)
	assert.Equal(t, models.LogInformation, logs.entries[len(logs.entries)-1].Level)
}

func TestOrderTotalFrozenAfterPriceChange(t *testing.T) {
	svc, foods, _, _, _ := newOrderFixture(t)
	id := addFood(foods, "Margherita", "9.50")

	view, err := svc.Create(context.Background(), utils.Identity{UserID: 7},
		[]OrderItemInput{{FoodID: id, Quantity: 2}})
	require.NoError(t, err)

	foods.foods[id].Price = price("12.00")

	got, err := svc.GetByID(context.Background(), utils.Identity{UserID: 7}, view.ID)
	require.NoError(t, err)
	assert.True(t, got.OrderTotal.Equal(price("19.00")), "stored total must not move")
	assert.True(t, got.Items[0].UnitPrice.Equal(price("12.00")), "lines reprice at read time")
	assert.True(t, got.Items[0].LineTotal.Equal(price("24.00")))
}

func TestOrderGetByIDOwnership(t *testing.T) {
	svc, foods, _, _, _ := newOrderFixture(t)
	id := addFood(foods, "Margherita", "9.50")

	view, err := svc.Create(context.Background(), utils.Identity{UserID: 7},
		[]OrderItemInput{{FoodID: id, Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), utils.Identity{UserID: 8, Role: models.RoleUser}, view.ID)
	var authz *AuthorizationError
	require.ErrorAs(t, err, &authz, "non-owner gets denied, not not-found")

	got, err := svc.GetByID(context.Background(), utils.Identity{UserID: 99, Role: models.RoleAdmin}, view.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)

	_, err = svc.GetByID(context.Background(), utils.Identity{UserID: 7}, view.ID+100)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestOrderDeleteRemovesLineItems(t *testing.T) {
	svc, foods, orders, _, _ := newOrderFixture(t)
	id := addFood(foods, "Margherita", "9.50")

	view, err := svc.Create(context.Background(), utils.Identity{UserID: 7},
		[]OrderItemInput{{FoodID: id, Quantity: 1}})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), utils.Identity{UserID: 8, Role: models.RoleUser}, view.ID)
	var authz *AuthorizationError
	require.ErrorAs(t, err, &authz)

	require.NoError(t, svc.Delete(context.Background(), utils.Identity{UserID: 7, Role: models.RoleUser}, view.ID))
	assert.Empty(t, orders.orders)
	assert.Empty(t, orders.items[view.ID])

	err = svc.Delete(context.Background(), utils.Identity{UserID: 7}, view.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestOrderCreateStoreFailureIsTransient(t *testing.T) {
	svc, foods, orders, logs, feed := newOrderFixture(t)
	id := addFood(foods, "Margherita", "9.50")
	orders.failCreate = gorm.ErrInvalidDB

	_, err := svc.Create(context.Background(), utils.Identity{UserID: 7},
		[]OrderItemInput{{FoodID: id, Quantity: 1}})

	var transient *TransientStoreError
	require.ErrorAs(t, err, &transient)
	assert.Empty(t, feed.orders, "nothing broadcast on failure")
	require.NotEmpty(t, logs.entries)
	assert.Equal(t, models.LogError, logs.entries[len(logs.entries)-1].Level)
}

func TestOrderListOwnFiltersByOwner(t *testing.T) {
	svc, foods, _, _, _ := newOrderFixture(t)
	id := addFood(foods, "Margherita", "9.50")

	_, err := svc.Create(context.Background(), utils.Identity{UserID: 1}, []OrderItemInput{{FoodID: id, Quantity: 1}})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), utils.Identity{UserID: 2}, []OrderItemInput{{FoodID: id, Quantity: 2}})
	require.NoError(t, err)

	own, err := svc.ListOwn(context.Background(), utils.Identity{UserID: 1})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, uint(1), own[0].UserID)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
