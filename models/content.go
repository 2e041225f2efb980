package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContentType string

const (
	ContentTypeArticle     ContentType = "ARTICLE"
	ContentTypeBlogPost    ContentType = "BLOG_POST"
	ContentTypeSocialMedia ContentType = "SOCIAL_MEDIA"
	ContentTypeNewsletter  ContentType = "NEWSLETTER"
	ContentTypeWhitepaper  ContentType = "WHITEPAPER"
	ContentTypeCaseStudy   ContentType = "CASE_STUDY"
)

// ContentTypes lists every supported content type in display order.
var ContentTypes = []ContentType{
	ContentTypeArticle,
	ContentTypeBlogPost,
	ContentTypeSocialMedia,
	ContentTypeNewsletter,
	ContentTypeWhitepaper,
	ContentTypeCaseStudy,
}

func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "DRAFT"
	ContentStatusReview    ContentStatus = "REVIEW"
	ContentStatusPublished ContentStatus = "PUBLISHED"
	ContentStatusArchived  ContentStatus = "ARCHIVED"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusReview, ContentStatusPublished, ContentStatusArchived:
		return true
	}
	return false
}

// SEOData is the search metadata attached to generated content.
type SEOData struct {
	MetaTitle       string   `bson:"meta_title" json:"metaTitle"`
	MetaDescription string   `bson:"meta_description" json:"metaDescription"`
	Keywords        []string `bson:"keywords" json:"keywords"`
}

// Content is a generated article/post/newsletter derived from a transcript.
// Collection: contents
type Content struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title        string              `bson:"title" json:"title"`
	Body         string              `bson:"content" json:"content"`
	Summary      string              `bson:"summary" json:"summary"`
	KeyTakeaways []string            `bson:"key_takeaways" json:"keyTakeaways"`
	Type         ContentType         `bson:"type" json:"type"`
	Category     string              `bson:"category" json:"category"`
	Tags         []string            `bson:"tags" json:"tags"`
	SEOData      SEOData             `bson:"seo_data" json:"seoData"`
	Status       ContentStatus       `bson:"status" json:"status"`
	ViewCount    int64               `bson:"view_count" json:"views"`
	PublishedAt  *time.Time          `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
	UserID       primitive.ObjectID  `bson:"user_id" json:"userId"`
	MeetingID    *primitive.ObjectID `bson:"meeting_id,omitempty" json:"meetingId,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updatedAt"`
}
