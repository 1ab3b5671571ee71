package mapper

import (
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/model"
)

type ItemMapper struct{}

func NewItemMapper() *ItemMapper {
	return &ItemMapper{}
}

func (m *ItemMapper) ToEntity(i *model.Item) *entity.Item {
	if i == nil {
		return nil
	}

	return &entity.Item{
		Id:          i.Id,
		Title:       i.Title,
		Description: i.Description,
		Type:        i.Type,
		ParentId:    i.ParentId,
		OwnerId:     i.OwnerId,
		Order:       i.SortOrder,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func (m *ItemMapper) ToModel(i *entity.Item) *model.Item {
	if i == nil {
		return nil
	}

	return &model.Item{
		Id:          i.Id,
		Title:       i.Title,
		Description: i.Description,
		Type:        i.Type,
		ParentId:    i.ParentId,
		OwnerId:     i.OwnerId,
		SortOrder:   i.Order,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func (m *ItemMapper) ToEntities(items []*model.Item) []*entity.Item {
	entities := make([]*entity.Item, len(items))
	for i, it := range items {
		entities[i] = m.ToEntity(it)
	}
	return entities
}
