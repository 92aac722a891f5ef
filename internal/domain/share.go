package domain

import "time"

// ShareLink maps an opaque hash to either one content item or, when ContentID
// is empty, to the owner's whole collection. Anyone holding the hash can read
// what it points to.
type ShareLink struct {
	Hash      string    `json:"hash"`
	Owner     string    `json:"owner"`
	ContentID string    `json:"contentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsCollection reports whether the link shares the owner's whole collection.
func (l ShareLink) IsCollection() bool {
	return l.ContentID == ""
}

// CollectionView is what a collection share link resolves to.
type CollectionView struct {
	Username string    `json:"username"`
	Content  []Content `json:"content"`
	Count    int       `json:"count"`
}
