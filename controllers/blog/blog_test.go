package blogControllers

import (
	"strings"
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
	require.NoError(t, db.AutoMigrate(&models.BlogPost{}, &models.BlogCategory{}, &models.BlogComment{}))
	return db
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 0, ReadTime(""))
	assert.Equal(t, 1, ReadTime("tek"))
	assert.Equal(t, 1, ReadTime(strings.Repeat("kelime ", 200)))
	assert.Equal(t, 2, ReadTime(strings.Repeat("kelime ", 201)))
	assert.Equal(t, 3, ReadTime(strings.Repeat("kelime ", 401)))
}

func TestMakeSlugTurkish(t *testing.T) {
	assert.Equal(t, "ilkbahar-yaz-koleksiyonu", MakeSlug("İlkbahar Yaz Koleksiyonu"))
	assert.Equal(t, "sik-corap-onerileri", MakeSlug("Şık Çorap Önerileri"))
}

func TestCreatePostStates(t *testing.T) {
	db := testDB(t)

	draft, err := CreatePost(db, postInput{TitleTR: "Taslak Yazı"})
	require.NoError(t, err)
	assert.Equal(t, models.BlogStatusDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)

	published, err := CreatePost(db, postInput{TitleTR: "Yayında", Publish: true})
	require.NoError(t, err)
	assert.Equal(t, models.BlogStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	future := time.Now().Add(time.Hour)
	scheduled, err := CreatePost(db, postInput{TitleTR: "İleride", ScheduledFor: &future})
	require.NoError(t, err)
	assert.Equal(t, models.BlogStatusScheduled, scheduled.Status)

	past := time.Now().Add(-time.Hour)
	_, err = CreatePost(db, postInput{TitleTR: "Geçmiş", ScheduledFor: &past})
	assert.ErrorIs(t, err, ErrScheduleInPast)
}

func TestUpdatePostKeepsSlugRecomputesReadTime(t *testing.T) {
	db := testDB(t)

	post, err := CreatePost(db, postInput{
		TitleTR:   "İlk Başlık",
		ContentTR: strings.Repeat("kelime ", 100),
	})
	require.NoError(t, err)
	originalSlug := post.Slug
	assert.Equal(t, 1, post.ReadTime)

	require.NoError(t, UpdatePost(db, post, postInput{
		TitleTR:   "Tamamen Yeni Başlık",
		ContentTR: strings.Repeat("kelime ", 450),
	}))
	assert.Equal(t, originalSlug, post.Slug)
	assert.Equal(t, 3, post.ReadTime)
	assert.Equal(t, "Tamamen Yeni Başlık", post.TitleTR)
}

func TestPublishDuePosts(t *testing.T) {
	db := testDB(t)

	due := time.Now().Add(-time.Minute)
	notYet := time.Now().Add(time.Hour)
	require.NoError(t, db.Create(&models.BlogPost{
		TitleTR: "Vakti Geldi", Slug: "vakti-geldi",
		Status: models.BlogStatusScheduled, ScheduledFor: &due,
	}).Error)
	require.NoError(t, db.Create(&models.BlogPost{
		TitleTR: "Daha Değil", Slug: "daha-degil",
		Status: models.BlogStatusScheduled, ScheduledFor: &notYet,
	}).Error)
	require.NoError(t, db.Create(&models.BlogPost{
		TitleTR: "Taslak", Slug: "taslak",
		Status: models.BlogStatusDraft,
	}).Error)

	count, err := PublishDuePosts(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var published models.BlogPost
	require.NoError(t, db.First(&published, "slug = ?", "vakti-geldi").Error)
	assert.Equal(t, models.BlogStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	var waiting models.BlogPost
	require.NoError(t, db.First(&waiting, "slug = ?", "daha-degil").Error)
	assert.Equal(t, models.BlogStatusScheduled, waiting.Status)

	// idempotent on the next tick
	count, err = PublishDuePosts(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCommentModerationVisibility(t *testing.T) {
	db := testDB(t)

	post, err := CreatePost(db, postInput{TitleTR: "Yorumlu Yazı", Publish: true})
	require.NoError(t, err)

	pending := models.BlogComment{PostID: post.ID, AuthorName: "Ayşe", Content: "Harika!", Status: models.CommentStatusPending}
	approved := models.BlogComment{PostID: post.ID, AuthorName: "Fatma", Content: "Bayıldım", Status: models.CommentStatusApproved}
	rejected := models.BlogComment{PostID: post.ID, AuthorName: "Spam", Content: "buy now", Status: models.CommentStatusRejected}
	require.NoError(t, db.Create(&pending).Error)
	require.NoError(t, db.Create(&approved).Error)
	require.NoError(t, db.Create(&rejected).Error)

	var visible []models.BlogComment
	require.NoError(t, db.Where("post_id = ? AND status = ?", post.ID, models.CommentStatusApproved).
		Find(&visible).Error)
	require.Len(t, visible, 1)
	assert.Equal(t, "Fatma", visible[0].AuthorName)

	// approving the pending comment makes it public
	require.NoError(t, db.Model(&models.BlogComment{}).
		Where("id = ?", pending.ID).
		Update("status", models.CommentStatusApproved).Error)
	require.NoError(t, db.Where("post_id = ? AND status = ?", post.ID, models.CommentStatusApproved).
		Find(&visible).Error)
	assert.Len(t, visible, 2)
}
