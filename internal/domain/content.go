package domain

import "context"

// Content kinds.
const (
	KindDocument     = "document"
	KindLink         = "link"
	KindAnnouncement = "announcement"
)

// Collection groups related contents.
type Collection struct {
	BaseModel
	Name        string `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	OwnerID     uint   `gorm:"index;not null" json:"owner_id"`
}

// Content is a browsable document, link, or announcement. Body holds sanitized HTML.
type Content struct {
	BaseModel
	CollectionID uint   `gorm:"index;not null" json:"collection_id"`
	AuthorID     uint   `gorm:"index;not null" json:"author_id"`
	Kind         string `gorm:"size:20;index;not null" json:"kind"`
	Title        string `gorm:"size:200;not null" json:"title"`
	Body         string `gorm:"type:text" json:"body"`
	URL          string `gorm:"size:500" json:"url,omitempty"`
}

// ContentInput carries the fields a user supplies when creating content.
type ContentInput struct {
	CollectionID uint
	Kind         string
	Title        string
	Body         string
	URL          string
}

// CollectionRepository defines the data access interface for collections.
type CollectionRepository interface {
	Create(ctx context.Context, c *Collection) error
	GetByID(ctx context.Context, id uint) (*Collection, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Collection], error)
}

// ContentRepository defines the data access interface for contents.
type ContentRepository interface {
	Create(ctx context.Context, c *Content) error
	GetByID(ctx context.Context, id uint) (*Content, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Content], error)
	Delete(ctx context.Context, id uint) error
}

// ContentService defines the business logic interface for collections and contents.
type ContentService interface {
	CreateCollection(ctx context.Context, ownerID uint, name, description string) (*Collection, error)
	GetCollection(ctx context.Context, id uint) (*Collection, error)
	ListCollections(ctx context.Context, req PageRequest) (*PageResult[Collection], error)
	CreateContent(ctx context.Context, authorID uint, in ContentInput) (*Content, error)
	GetContent(ctx context.Context, id uint) (*Content, error)
	ListContents(ctx context.Context, req PageRequest) (*PageResult[Content], error)
	DeleteContent(ctx context.Context, actorID, id uint) error
}
