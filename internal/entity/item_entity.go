package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ItemTypeNote   = "note"
	ItemTypeFolder = "folder"
)

// Item is either a note or a folder. Folders reference their contents
// through the children's ParentId; a nil ParentId means root level.
type Item struct {
	Id          uint64
	Title       string
	Description string
	Type        string
	ParentId    *uint64
	OwnerId     uuid.UUID
	Order       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (i *Item) IsFolder() bool {
	return i.Type == ItemTypeFolder
}
