package room

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound   = errors.New("room not found")
	ErrNameExists = errors.New("a room with this name already exists")
)

type (
	Repository interface {
		CheckNameUniqueness(ctx context.Context, name string, excludedRooms ...Room) error
		CreateRoom(ctx context.Context, room Room) (Room, error)
		// QueryAllRooms returns all rooms ordered by the provided orderings; name ASC by default.
		QueryAllRooms(ctx context.Context, orderings ...core.DBOrdering) ([]Room, error)
		QueryActiveRooms(ctx context.Context) ([]Room, error)
		GetRoomByID(ctx context.Context, id string) (Room, error)
		UpdateRoom(ctx context.Context, room Room, isActive *bool) (Room, error)
		DeleteRoomByID(ctx context.Context, id string) error
		RoomHasSessions(ctx context.Context, id string) (bool, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, name string, exclRooms ...Room) error {
	if err := svc.repo.CheckNameUniqueness(ctx, name, exclRooms...); err != nil {
		if err == ErrNameExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nr NewRoom) (Room, error) {
	if err := svc.checkUniqueness(ctx, nr.Name); err != nil {
		return Room{}, err
	}
	now := time.Now().UTC()
	rm := Room{
		Name:      nr.Name,
		Capacity:  nr.Capacity,
		Location:  nr.Location,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateRoom(ctx, rm)
}

func (svc *Service) QueryAll(ctx context.Context, orderings ...core.DBOrdering) ([]Room, error) {
	return svc.repo.QueryAllRooms(ctx, orderings...)
}

func (svc *Service) QueryActive(ctx context.Context) ([]Room, error) {
	return svc.repo.QueryActiveRooms(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Room, error) {
	return svc.repo.GetRoomByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ur UpdateRoom) (Room, error) {
	orig, err := svc.repo.GetRoomByID(ctx, id)
	if err != nil {
		return Room{}, err
	}
	if ur.Name != "" && ur.Name != orig.Name {
		if err := svc.checkUniqueness(ctx, ur.Name, orig); err != nil {
			return Room{}, err
		}
	}
	rm := Room{
		ID:        id,
		Name:      ur.Name,
		Capacity:  ur.Capacity,
		Location:  ur.Location,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateRoom(ctx, rm, ur.IsActive)
}

// Delete removes a room. A room that still owns sessions is deactivated instead:
// sessions are preserved and outlive the room's availability views.
func (svc *Service) Delete(ctx context.Context, id string) error {
	hasSessions, err := svc.repo.RoomHasSessions(ctx, id)
	if err != nil {
		return err
	}
	if hasSessions {
		inactive := false
		_, err = svc.repo.UpdateRoom(ctx, Room{ID: id, UpdatedAt: time.Now().UTC()}, &inactive)
		return err
	}
	return svc.repo.DeleteRoomByID(ctx, id)
}
