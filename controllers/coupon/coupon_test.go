package couponControllers

import (
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&models.Coupon{}))
	return db
}

func TestValidateRules(t *testing.T) {
	db := testDB(t)
	past := time.Now().Add(-time.Hour)

	require.NoError(t, db.Create(&models.Coupon{Code: "WELCOME10", Type: models.DiscountPercentage, Value: 10, Active: true}).Error)
	require.NoError(t, db.Create(&models.Coupon{Code: "OLD", Type: models.DiscountFixed, Value: 50, Active: true, ExpiresAt: &past}).Error)
	require.NoError(t, db.Create(&models.Coupon{Code: "OFF", Type: models.DiscountFixed, Value: 50, Active: false}).Error)
	require.NoError(t, db.Create(&models.Coupon{Code: "BIGSPEND", Type: models.DiscountFixed, Value: 500, Active: true, MinPurchase: 5000}).Error)
	require.NoError(t, db.Create(&models.Coupon{Code: "VIP", Type: models.DiscountFixed, Value: 100, Active: true, UserID: "u-vip"}).Error)
	require.NoError(t, db.Create(&models.Coupon{Code: "USEDUP", Type: models.DiscountFixed, Value: 10, Active: true, UsageLimit: 2, UsageCount: 2}).Error)

	_, discount, err := Validate(db, "welcome10", 2000, "")
	require.NoError(t, err)
	assert.Equal(t, 200.0, discount)

	_, _, err = Validate(db, "OLD", 2000, "")
	assert.ErrorIs(t, err, ErrCouponExpired)

	_, _, err = Validate(db, "OFF", 2000, "")
	assert.ErrorIs(t, err, ErrCouponInactive)

	_, _, err = Validate(db, "BIGSPEND", 2000, "")
	assert.ErrorIs(t, err, ErrCouponMinOrder)

	_, _, err = Validate(db, "VIP", 2000, "someone-else")
	assert.ErrorIs(t, err, ErrCouponWrongUser)

	_, discount, err = Validate(db, "VIP", 2000, "u-vip")
	require.NoError(t, err)
	assert.Equal(t, 100.0, discount)

	_, _, err = Validate(db, "USEDUP", 2000, "")
	assert.ErrorIs(t, err, ErrCouponExhausted)

	_, _, err = Validate(db, "NOPE", 2000, "")
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestRedeemStopsAtUsageLimit(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.Coupon{Code: "LIMIT2", Type: models.DiscountFixed, Value: 10, Active: true, UsageLimit: 2}).Error)

	ok, err := Redeem(db, "LIMIT2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Redeem(db, "LIMIT2")
	require.NoError(t, err)
	assert.True(t, ok)

	// limit reached, further redemptions must fail
	ok, err = Redeem(db, "LIMIT2")
	require.NoError(t, err)
	assert.False(t, ok)

	var coupon models.Coupon
	require.NoError(t, db.Where("code = ?", "LIMIT2").First(&coupon).Error)
	assert.Equal(t, 2, coupon.UsageCount)
}

func TestRedeemUnlimited(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.Coupon{Code: "FOREVER", Type: models.DiscountFixed, Value: 10, Active: true}).Error)

	for i := 0; i < 5; i++ {
		ok, err := Redeem(db, "FOREVER")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
