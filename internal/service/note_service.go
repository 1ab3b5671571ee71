package service

import (
	"context"
	"encoding/json"
	"fmt"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"

	"github.com/google/uuid"
)

// shownTimeLayout is the fixed presentation format the single-item view
// carries pre-rendered (day-month-year hour:minute).
const shownTimeLayout = "02-01-2006 15:04"

type INoteService interface {
	ListNotes(ctx context.Context, ownerId uuid.UUID) ([]*dto.NoteResponse, error)
	CreateNote(ctx context.Context, ownerId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	GetNote(ctx context.Context, ownerId uuid.UUID, id uint64) (*dto.ShowNoteResponse, error)
	UpdateNote(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	DestroyNote(ctx context.Context, ownerId uuid.UUID, id uint64) error
	GetFolder(ctx context.Context, ownerId uuid.UUID, id uint64) (*dto.FolderResponse, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.ChangePublisher
	logger     logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.ChangePublisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func toNoteResponse(item *entity.Item) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:          item.Id,
		ParentId:    item.ParentId,
		OwnerId:     item.OwnerId,
		Type:        item.Type,
		Title:       item.Title,
		Description: item.Description,
		Order:       item.Order,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// publishChange is fire-and-forget: a listener missing an update must
// never fail the mutation that already happened.
func (c *noteService) publishChange(ctx context.Context, ownerId uuid.UUID, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("NoteService", "Failed to marshal change payload", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.publisher.Publish(ctx, events.ChannelForOwner(ownerId), data); err != nil {
		c.logger.Warn("NoteService", "Failed to publish change", map[string]interface{}{
			"owner_id": ownerId,
			"error":    err.Error(),
		})
	}
}

func (c *noteService) ListNotes(ctx context.Context, ownerId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	items, err := uow.ItemRepository().ListRoots(ctx, ownerId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NoteResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toNoteResponse(item))
	}
	return result, nil
}

func (c *noteService) CreateNote(ctx context.Context, ownerId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	item := entity.Item{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		ParentId:    req.ParentId,
		Order:       req.Order,
		// The owner always comes from the authenticated principal,
		// whatever the request body claims.
		OwnerId: ownerId,
	}

	if err := uow.ItemRepository().Create(ctx, &item); err != nil {
		return nil, err
	}

	res := toNoteResponse(&item)
	c.publishChange(ctx, ownerId, res)

	return res, nil
}

func (c *noteService) GetNote(ctx context.Context, ownerId uuid.UUID, id uint64) (*dto.ShowNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.ItemRepository().GetOwned(ctx, id, ownerId)
	if err != nil {
		return nil, err
	}

	return &dto.ShowNoteResponse{
		NoteResponse: *toNoteResponse(item),
		Created:      item.CreatedAt.Format(shownTimeLayout),
		Updated:      item.UpdatedAt.Format(shownTimeLayout),
	}, nil
}

func (c *noteService) UpdateNote(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.ItemRepository().GetOwned(ctx, req.Id, ownerId)
	if err != nil {
		return nil, err
	}

	// Update is narrow by contract: only title and description move.
	// Type, parent and owner stay whatever they were; the store stamps
	// the update time.
	item.Title = req.Title
	item.Description = req.Description

	if err := uow.ItemRepository().Update(ctx, item); err != nil {
		return nil, err
	}

	res := toNoteResponse(item)
	c.publishChange(ctx, ownerId, res)

	return res, nil
}

// DestroyNote removes an item; for a folder it also removes the
// folder's direct children in the same transaction, so either the
// folder and all its direct children disappear together or nothing
// does. Deeper descendants are never touched. The change event fires
// only after the commit succeeded.
func (c *noteService) DestroyNote(ctx context.Context, ownerId uuid.UUID, id uint64) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.ItemRepository()

	item, err := repo.GetOwned(ctx, id, ownerId)
	if err != nil {
		return fmt.Errorf("destroy note: %w", err)
	}

	if item.IsFolder() {
		children, err := repo.FindChildren(ctx, id, ownerId)
		if err != nil {
			return fmt.Errorf("destroy note: %w", err)
		}
		if len(children) > 0 {
			if err := repo.DeleteChildren(ctx, id, ownerId); err != nil {
				return fmt.Errorf("destroy note: %w", err)
			}
		}
	}

	if err := repo.DeleteOne(ctx, id); err != nil {
		return fmt.Errorf("destroy note: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("destroy note: %w", err)
	}

	// Only now is the deletion durable; listeners never hear about a
	// delete that rolled back.
	c.publishChange(ctx, ownerId, events.DeletedPayload{OwnerId: ownerId})

	return nil
}

func (c *noteService) GetFolder(ctx context.Context, ownerId uuid.UUID, id uint64) (*dto.FolderResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ItemRepository()

	item, err := repo.GetOwned(ctx, id, ownerId)
	if err != nil {
		return nil, err
	}

	children, err := repo.FindChildren(ctx, id, ownerId)
	if err != nil {
		return nil, err
	}

	res := &dto.FolderResponse{
		NoteResponse: *toNoteResponse(item),
		Notes:        make([]*dto.NoteResponse, 0, len(children)),
	}
	for _, child := range children {
		res.Notes = append(res.Notes, toNoteResponse(child))
	}
	return res, nil
}
