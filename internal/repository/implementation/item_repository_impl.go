package implementation

import (
	"context"
	"errors"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/mapper"
	"notekeeper-be/internal/model"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ItemMapper
}

func NewItemRepository(db *gorm.DB) contract.ItemRepository {
	return &ItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewItemMapper(),
	}
}

func (r *ItemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ItemRepositoryImpl) ListRoots(ctx context.Context, ownerId uuid.UUID) ([]*entity.Item, error) {
	var models []*model.Item
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.OwnedBy{OwnerID: ownerId},
		specification.ByParentID{ParentID: nil},
		specification.OrderBy{Field: "id", Desc: true},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, entity.NewStorageError("error during list notes", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ItemRepositoryImpl) Create(ctx context.Context, item *entity.Item) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entity.NewStorageError("error during store note", err)
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *ItemRepositoryImpl) GetOwned(ctx context.Context, id uint64, ownerId uuid.UUID) (*entity.Item, error) {
	var m model.Item
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absent and foreign-owned look the same on purpose.
			return nil, entity.ErrNotFound
		}
		return nil, entity.NewStorageError("error during get a note", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ItemRepositoryImpl) Update(ctx context.Context, item *entity.Item) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return entity.NewStorageError("error during update a note", err)
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *ItemRepositoryImpl) DeleteOne(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&model.Item{}, id).Error; err != nil {
		return entity.NewStorageError("error during remove a note", err)
	}
	return nil
}

func (r *ItemRepositoryImpl) DeleteChildren(ctx context.Context, parentId uint64, ownerId uuid.UUID) error {
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByParentID{ParentID: &parentId},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err := query.Delete(&model.Item{}).Error; err != nil {
		return entity.NewStorageError("error during remove folder's notes", err)
	}
	return nil
}

func (r *ItemRepositoryImpl) FindChildren(ctx context.Context, parentId uint64, ownerId uuid.UUID) ([]*entity.Item, error) {
	var models []*model.Item
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByParentID{ParentID: &parentId},
		specification.OwnedBy{OwnerID: ownerId},
		specification.OrderBy{Field: "id", Desc: true},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, entity.NewStorageError("error during list folder's notes", err)
	}
	return r.mapper.ToEntities(models), nil
}
