package models

import (
	"time"

	"gorm.io/gorm"
)

type BlogStatus string
type CommentStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusScheduled BlogStatus = "scheduled"
	BlogStatusPublished BlogStatus = "published"

	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
)

type BlogPost struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TitleTR      string     `gorm:"not null" json:"title_tr"`
	TitleEN      string     `json:"title_en"`
	ExcerptTR    string     `json:"excerpt_tr"`
	ExcerptEN    string     `json:"excerpt_en"`
	ContentTR    string     `gorm:"type:text" json:"content_tr"`
	ContentEN    string     `gorm:"type:text" json:"content_en"`
	Slug         string     `gorm:"uniqueIndex;not null" json:"slug"` // derived from TitleTR at creation, immutable
	CategoryID   *uint      `json:"category_id"`
	CoverImage   string     `json:"cover_image"`
	Status       BlogStatus `gorm:"type:VARCHAR(12);default:'draft';index" json:"status"`
	PublishedAt  *time.Time `json:"published_at"`
	ScheduledFor *time.Time `gorm:"index" json:"scheduled_for"`
	Views        int64      `json:"views"`
	ReadTime     int        `json:"read_time"` // minutes, ceil(words/200)
	Featured     bool       `json:"featured"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type BlogCategory struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	NameTR string `gorm:"unique;not null" json:"name_tr"`
	NameEN string `json:"name_en"`
	Slug   string `gorm:"uniqueIndex" json:"slug"`
}

type BlogComment struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	PostID          uint          `gorm:"index" json:"post_id"`
	AuthorName      string        `gorm:"not null" json:"author_name"`
	AuthorEmail     string        `json:"author_email"`
	Content         string        `gorm:"type:text;not null" json:"content"`
	ParentCommentID *uint         `json:"parent_comment_id"` // single-level threading
	Status          CommentStatus `gorm:"type:VARCHAR(10);default:'pending';index" json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}
