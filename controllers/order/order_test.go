package orderControllers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return db
}

func TestGetOrderByNumber(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.Order{
		OrderNumber: "MEA1700000000000",
		GuestEmail:  "a@b.com",
		GuestPhone:  "+905551112233",
		Status:      models.OrderStatusProcessing,
	}).Error)

	// email match
	order, err := GetOrderByNumber(db, "MEA1700000000000", "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "MEA1700000000000", order.OrderNumber)

	// wrong contact -> nil, not an error
	order, err = GetOrderByNumber(db, "MEA1700000000000", "wrong@b.com")
	require.NoError(t, err)
	assert.Nil(t, order)

	// phone fallback when email does not match
	order, err = GetOrderByNumber(db, "MEA1700000000000", "+905551112233")
	require.NoError(t, err)
	require.NotNil(t, order)

	// wrong order number
	order, err = GetOrderByNumber(db, "MEA9999999999999", "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestValidateTransitionMonotonic(t *testing.T) {
	// forward moves
	assert.NoError(t, ValidateTransition(models.OrderStatusPending, models.OrderStatusProcessing))
	assert.NoError(t, ValidateTransition(models.OrderStatusProcessing, models.OrderStatusShipped))
	assert.NoError(t, ValidateTransition(models.OrderStatusShipped, models.OrderStatusDelivered))
	// skipping forward is still monotonic
	assert.NoError(t, ValidateTransition(models.OrderStatusPending, models.OrderStatusShipped))

	// backwards is rejected
	assert.ErrorIs(t, ValidateTransition(models.OrderStatusShipped, models.OrderStatusProcessing), ErrBackwardsStatus)
	assert.ErrorIs(t, ValidateTransition(models.OrderStatusDelivered, models.OrderStatusPending), ErrBackwardsStatus)

	// cancellation allowed except after delivery
	assert.NoError(t, ValidateTransition(models.OrderStatusPending, models.OrderStatusCancelled))
	assert.NoError(t, ValidateTransition(models.OrderStatusShipped, models.OrderStatusCancelled))
	assert.ErrorIs(t, ValidateTransition(models.OrderStatusDelivered, models.OrderStatusCancelled), ErrCancelDelivered)

	// nothing leaves cancelled
	assert.ErrorIs(t, ValidateTransition(models.OrderStatusCancelled, models.OrderStatusShipped), ErrBackwardsStatus)
}

func TestValidatePaymentTransition(t *testing.T) {
	assert.NoError(t, ValidatePaymentTransition(models.PaymentStatusPending, models.PaymentStatusPaid))
	assert.NoError(t, ValidatePaymentTransition(models.PaymentStatusPending, models.PaymentStatusFailed))
	assert.NoError(t, ValidatePaymentTransition(models.PaymentStatusPaid, models.PaymentStatusRefunded))
	assert.NoError(t, ValidatePaymentTransition(models.PaymentStatusFailed, models.PaymentStatusPaid))

	assert.ErrorIs(t, ValidatePaymentTransition(models.PaymentStatusPaid, models.PaymentStatusPending), ErrPaymentTransition)
	assert.ErrorIs(t, ValidatePaymentTransition(models.PaymentStatusRefunded, models.PaymentStatusPaid), ErrPaymentTransition)
	assert.ErrorIs(t, ValidatePaymentTransition(models.PaymentStatusPending, models.PaymentStatusRefunded), ErrPaymentTransition)
}
