package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/room"
)

type roomRepository struct {
	db *DB
}

var _ room.Repository = (*roomRepository)(nil)

func NewRoomRepository(db *DB) room.Repository {
	return &roomRepository{db: db}
}

func (repo *roomRepository) query() []room.Room {
	rooms := make([]room.Room, 0, len(repo.db.room.table))
	for _, rm := range repo.db.room.table {
		rooms = append(rooms, *rm)
	}
	return rooms
}

func (repo *roomRepository) CheckNameUniqueness(_ context.Context, name string, excludedRooms ...room.Room) error {
	repo.db.room.RLock()
	defer repo.db.room.RUnlock()

	for _, rm := range repo.query() {
		if rm.Name == name && !isExcluded(rm, excludedRooms) {
			return room.ErrNameExists
		}
	}
	return nil
}

func (repo *roomRepository) CreateRoom(_ context.Context, rm room.Room) (room.Room, error) {
	repo.db.room.Lock()
	defer repo.db.room.Unlock()

	rm.ID = uuid.New().String()
	repo.db.room.table[rm.ID] = &rm
	return rm, nil
}

func (repo *roomRepository) QueryAllRooms(_ context.Context, orderings ...core.DBOrdering) ([]room.Room, error) {
	repo.db.room.RLock()
	rooms := repo.query()
	repo.db.room.RUnlock()

	sortRooms(rooms, orderings)
	return rooms, nil
}

func (repo *roomRepository) QueryActiveRooms(_ context.Context) ([]room.Room, error) {
	repo.db.room.RLock()
	defer repo.db.room.RUnlock()

	rooms := make([]room.Room, 0, len(repo.db.room.table))
	for _, rm := range repo.db.room.table {
		if rm.IsActive {
			rooms = append(rooms, *rm)
		}
	}
	sortRooms(rooms, nil)
	return rooms, nil
}

func (repo *roomRepository) GetRoomByID(_ context.Context, id string) (room.Room, error) {
	repo.db.room.RLock()
	defer repo.db.room.RUnlock()

	if rm, ok := repo.db.room.table[id]; ok {
		return *rm, nil
	}
	return room.Room{}, room.ErrNotFound
}

func (repo *roomRepository) UpdateRoom(_ context.Context, rm room.Room, isActive *bool) (room.Room, error) {
	repo.db.room.Lock()
	defer repo.db.room.Unlock()

	// only save set fields
	origRm, ok := repo.db.room.table[rm.ID]
	if !ok {
		return room.Room{}, room.ErrNotFound
	}
	if rm.Name != "" {
		origRm.Name = rm.Name
	}
	if rm.Capacity != 0 {
		origRm.Capacity = rm.Capacity
	}
	if rm.Location != "" {
		origRm.Location = rm.Location
	}
	if isActive != nil {
		origRm.IsActive = *isActive
	}
	origRm.UpdatedAt = rm.UpdatedAt
	return *origRm, nil
}

func (repo *roomRepository) DeleteRoomByID(_ context.Context, id string) error {
	repo.db.room.Lock()
	defer repo.db.room.Unlock()

	delete(repo.db.room.table, id)
	return nil
}

func (repo *roomRepository) RoomHasSessions(_ context.Context, id string) (bool, error) {
	repo.db.session.RLock()
	defer repo.db.session.RUnlock()

	for _, s := range repo.db.session.table {
		if s.RoomID == id {
			return true, nil
		}
	}
	return false, nil
}

func isExcluded(rm room.Room, excludedRooms []room.Room) bool {
	for _, excl := range excludedRooms {
		if rm.ID == excl.ID {
			return true
		}
	}
	return false
}

func sortRooms(rooms []room.Room, orderings []core.DBOrdering) {
	if len(orderings) == 0 {
		sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
		return
	}
	ord := orderings[0]
	sort.Slice(rooms, func(i, j int) bool {
		var less bool
		switch ord.Field {
		case "capacity":
			less = rooms[i].Capacity < rooms[j].Capacity
		case "created_at":
			less = rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		default:
			less = rooms[i].Name < rooms[j].Name
		}
		if ord.Ascending {
			return less
		}
		return !less
	})
}
