package services_test

import (
	"testing"

	"sklep/internal/apperr"
	"sklep/internal/models"
	"sklep/internal/repositories"
	"sklep/internal/services"
	"sklep/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeSink records sends and can be told to fail.
type fakeSink struct {
	sent []sentMail
	err  error
}

func (f *fakeSink) Send(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return f.err
}

func validCheckoutForm() services.CheckoutForm {
	return services.CheckoutForm{
		Name:          "Jan",
		Surname:       "Kowalski",
		Email:         "jan@example.com",
		Country:       "poland",
		City:          "warsaw",
		Street:        "main street",
		HouseNumber:   "12a",
		ZipCode:       "00-001",
		Delivery:      models.DeliveryDPD,
		PaymentMethod: models.PaymentCard,
	}
}

func newOrderServiceFixture(t *testing.T) (*services.OrderService, *session.CartStore, *repositories.MockItemRepository, *repositories.MockOrderRepository, *fakeSink) {
	t.Helper()
	carts := session.NewCartStore()
	itemRepo := repositories.NewMockItemRepository()
	orderRepo := repositories.NewMockOrderRepository()
	sink := &fakeSink{}
	svc := services.NewOrderService(orderRepo, itemRepo, carts, nil, sink)
	return svc, carts, itemRepo, orderRepo, sink
}

func seedItem(t *testing.T, repo *repositories.MockItemRepository, id uint, name string, price float64) models.Item {
	t.Helper()
	item := models.Item{
		ID:               id,
		Name:             name,
		Description:      "desc",
		Category:         "home",
		SubCategory:      "kitchen",
		Price:            price,
		ImgLink:          name + ".png",
		EANCode:          int64(1000 + id),
		ManufacturerCode: "MFR-" + name,
		ShopCode:         int64(2000 + id),
		Visible:          true,
	}
	assert.NoError(t, repo.Create(&item))
	return item
}

func TestOrderService_PlaceOrder_PreservesDuplicateLines(t *testing.T) {
	svc, carts, itemRepo, _, _ := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)
	plate := seedItem(t, itemRepo, 3, "Plate", 5.00)

	carts.Append("v", mug.Snapshot())
	carts.Append("v", mug.Snapshot())
	carts.Append("v", plate.Snapshot())

	order, err := svc.PlaceOrder("v", validCheckoutForm(), nil)
	assert.NoError(t, err)
	assert.Equal(t, 24.98, order.Total)
	assert.Equal(t, models.StatusPlaced, order.Status)

	// One line entry per cart entry, duplicates intact.
	assert.Len(t, order.Lines, 3)
	counts := map[uint]int{}
	for _, line := range order.Lines {
		counts[line.ItemID]++
		assert.Equal(t, order.ID, line.OrderID)
	}
	assert.Equal(t, 2, counts[7])
	assert.Equal(t, 1, counts[3])
}

func TestOrderService_PlaceOrder_TotalUsesSnapshotPrices(t *testing.T) {
	svc, carts, itemRepo, _, _ := newOrderServiceFixture(t)

	lamp := seedItem(t, itemRepo, 5, "Lamp", 30.00)
	carts.Append("v", lamp.Snapshot())

	// Price change after the snapshot must not reach the order.
	lamp.Price = 45.00
	assert.NoError(t, itemRepo.Update(&lamp))

	order, err := svc.PlaceOrder("v", validCheckoutForm(), nil)
	assert.NoError(t, err)
	assert.Equal(t, 30.00, order.Total)
}

func TestOrderService_PlaceOrder_RoundsTotalOnce(t *testing.T) {
	svc, carts, itemRepo, _, _ := newOrderServiceFixture(t)

	item := seedItem(t, itemRepo, 1, "Sticker", 0.10)
	// 3 * 0.1 is not representable exactly; the stored total must be.
	carts.Append("v", item.Snapshot())
	carts.Append("v", item.Snapshot())
	carts.Append("v", item.Snapshot())

	order, err := svc.PlaceOrder("v", validCheckoutForm(), nil)
	assert.NoError(t, err)
	assert.Equal(t, 0.30, order.Total)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	svc, _, _, orderRepo, sink := newOrderServiceFixture(t)

	order, err := svc.PlaceOrder("v", validCheckoutForm(), nil)
	assert.ErrorIs(t, err, apperr.ErrEmptyCart)
	assert.Nil(t, order)

	orders, _ := orderRepo.GetAll()
	assert.Empty(t, orders)
	assert.Empty(t, sink.sent)
}

func TestOrderService_PlaceOrder_ClearsCart(t *testing.T) {
	svc, carts, itemRepo, _, _ := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)
	carts.Append("v", mug.Snapshot())

	_, err := svc.PlaceOrder("v", validCheckoutForm(), nil)
	assert.NoError(t, err)
	assert.Empty(t, carts.Entries("v"))
}

func TestOrderService_PlaceOrder_ValidationFailure(t *testing.T) {
	svc, carts, itemRepo, orderRepo, _ := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)
	carts.Append("v", mug.Snapshot())

	form := validCheckoutForm()
	form.Delivery = "PIGEON"

	_, err := svc.PlaceOrder("v", form, nil)
	var validationErrors validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrors)

	// Nothing persisted, cart untouched.
	orders, _ := orderRepo.GetAll()
	assert.Empty(t, orders)
	assert.Len(t, carts.Entries("v"), 1)
}

func TestOrderService_PlaceOrder_StaleItemAbortsWholeOrder(t *testing.T) {
	svc, carts, itemRepo, orderRepo, _ := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)
	ghost := seedItem(t, itemRepo, 9, "Ghost", 1.00)
	carts.Append("v", mug.Snapshot())
	carts.Append("v", ghost.Snapshot())

	// The item disappears between add and checkout.
	itemRepo.Delete(ghost.ID)

	_, err := svc.PlaceOrder("v", validCheckoutForm(), nil)
	var stale *apperr.ItemResolutionError
	assert.ErrorAs(t, err, &stale)
	assert.Equal(t, uint(9), stale.ItemID)

	// The whole order is aborted; even the resolvable line is not written.
	orders, _ := orderRepo.GetAll()
	assert.Empty(t, orders)
	assert.Len(t, carts.Entries("v"), 2)
}

func TestOrderService_PlaceOrder_NormalizesAddress(t *testing.T) {
	svc, carts, itemRepo, _, _ := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)
	carts.Append("v", mug.Snapshot())

	form := validCheckoutForm()
	form.Country = "poland"
	form.City = "gdansk"
	form.Street = "long market"
	form.HouseNumber = "12a"   // passes through verbatim
	form.ZipCode = "80-001"

	order, err := svc.PlaceOrder("v", form, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Poland", order.Country)
	assert.Equal(t, "Gdansk", order.City)
	assert.Equal(t, "Long Market", order.Street)
	assert.Equal(t, "12a", order.HouseNumber)
	assert.Equal(t, "80-001", order.ZipCode)
}

func TestOrderService_PlaceOrder_GuestAndLinkedUser(t *testing.T) {
	svc, carts, itemRepo, _, _ := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)

	carts.Append("guest", mug.Snapshot())
	guestOrder, err := svc.PlaceOrder("guest", validCheckoutForm(), nil)
	assert.NoError(t, err)
	assert.Nil(t, guestOrder.UserID)

	userID := uint(42)
	carts.Append("member", mug.Snapshot())
	memberOrder, err := svc.PlaceOrder("member", validCheckoutForm(), &userID)
	assert.NoError(t, err)
	if assert.NotNil(t, memberOrder.UserID) {
		assert.Equal(t, userID, *memberOrder.UserID)
	}
	// Purchaser fields are stored denormalized either way.
	assert.Equal(t, "Jan", memberOrder.Name)
	assert.Equal(t, "jan@example.com", memberOrder.Email)
}

func TestOrderService_PlaceOrder_NotificationIsBestEffort(t *testing.T) {
	svc, carts, itemRepo, orderRepo, sink := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)
	carts.Append("v", mug.Snapshot())

	sink.err = assert.AnError

	order, err := svc.PlaceOrder("v", validCheckoutForm(), nil)
	assert.NoError(t, err)
	assert.NotNil(t, order)

	// The send was attempted, failed, and the order survived anyway.
	assert.Len(t, sink.sent, 1)
	assert.Equal(t, "jan@example.com", sink.sent[0].To)
	persisted, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.Total, persisted.Total)
}

func TestOrderService_AdvanceStatus_Monotonic(t *testing.T) {
	svc, carts, itemRepo, _, _ := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)
	carts.Append("v", mug.Snapshot())

	order, err := svc.PlaceOrder("v", validCheckoutForm(), nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, order.Status)

	for k := 1; k <= 5; k++ {
		status, err := svc.AdvanceStatus(order.ID)
		assert.NoError(t, err)
		assert.Equal(t, 1+k, status)
	}

	_, err = svc.AdvanceStatus(9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderService_UpdateOrderDetails(t *testing.T) {
	svc, carts, itemRepo, _, _ := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)
	carts.Append("v", mug.Snapshot())

	order, err := svc.PlaceOrder("v", validCheckoutForm(), nil)
	assert.NoError(t, err)

	updated, err := svc.UpdateOrderDetails(order.ID, services.OrderDetailsForm{
		Name:        "Anna",
		Surname:     "Nowak",
		Email:       "anna@example.com",
		Country:     "germany",
		City:        "berlin",
		Street:      "unter den linden",
		HouseNumber: "1",
		ZipCode:     "10117",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Anna", updated.Name)
	assert.Equal(t, "Germany", updated.Country)
	assert.Equal(t, "Unter Den Linden", updated.Street)
	// The edit contract cannot touch status or total.
	assert.Equal(t, 1, updated.Status)
	assert.Equal(t, 9.99, updated.Total)
}

func TestOrderService_UpdateOrderDetails_Validated(t *testing.T) {
	svc, carts, itemRepo, _, _ := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)
	carts.Append("v", mug.Snapshot())
	order, err := svc.PlaceOrder("v", validCheckoutForm(), nil)
	assert.NoError(t, err)

	_, err = svc.UpdateOrderDetails(order.ID, services.OrderDetailsForm{
		Name: "Anna", // everything else missing
	})
	var validationErrors validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrors)

	// The original purchaser survives the rejected edit.
	persisted, err := svc.GetOrderByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Jan", persisted.Name)
}

func TestOrderService_GetAllOrders_SortedByStatus(t *testing.T) {
	svc, carts, itemRepo, _, _ := newOrderServiceFixture(t)

	mug := seedItem(t, itemRepo, 7, "Mug", 9.99)

	carts.Append("a", mug.Snapshot())
	first, err := svc.PlaceOrder("a", validCheckoutForm(), nil)
	assert.NoError(t, err)

	carts.Append("b", mug.Snapshot())
	second, err := svc.PlaceOrder("b", validCheckoutForm(), nil)
	assert.NoError(t, err)

	// Move the first order ahead; the listing puts lower statuses first.
	_, err = svc.AdvanceStatus(first.ID)
	assert.NoError(t, err)

	orders, err := svc.GetAllOrders()
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}
