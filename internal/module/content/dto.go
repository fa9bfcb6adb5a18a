package content

// CreateCollectionRequest represents the input for creating a collection.
type CreateCollectionRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"max=500"`
}

// CreateContentRequest represents the input for creating a content.
type CreateContentRequest struct {
	CollectionID uint   `json:"collection_id" binding:"required"`
	Kind         string `json:"kind" binding:"omitempty,oneof=document link announcement"`
	Title        string `json:"title" binding:"required,max=200"`
	Body         string `json:"body" binding:"max=200000"`
	URL          string `json:"url" binding:"omitempty,url,max=500"`
}
