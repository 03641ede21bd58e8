package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/schedule"
)

type sessionRepository struct {
	db *DB
}

var _ schedule.Repository = (*sessionRepository)(nil)

func NewSessionRepository(db *DB) schedule.Repository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) queryRoomRange(roomID string, from, to time.Time) []schedule.Session {
	sessions := make([]schedule.Session, 0)
	for _, s := range repo.db.session.table {
		if roomID != "" && s.RoomID != roomID {
			continue
		}
		if s.StartTime.Before(from) || s.StartTime.After(to) {
			continue
		}
		sessions = append(sessions, *s)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.Before(sessions[j].StartTime) })
	return sessions
}

// CreateSession re-checks the room's day snapshot under the table lock so that
// two racing bookings of the same slot cannot both commit.
func (repo *sessionRepository) CreateSession(_ context.Context, s schedule.Session) (schedule.Session, error) {
	repo.db.session.Lock()
	defer repo.db.session.Unlock()

	dayStart, dayEnd := schedule.DayWindow(s.StartTime)
	daySessions := repo.queryRoomRange(s.RoomID, dayStart, dayEnd)
	if res := schedule.CheckAvailability(s.Interval(), daySessions); !res.Available {
		return schedule.Session{}, &schedule.ConflictError{Conflicts: res.Conflicts}
	}

	s.ID = uuid.New().String()
	repo.db.session.table[s.ID] = &s
	return s, nil
}

func (repo *sessionRepository) GetSessionByID(_ context.Context, id string) (schedule.Session, error) {
	repo.db.session.RLock()
	defer repo.db.session.RUnlock()

	if s, ok := repo.db.session.table[id]; ok {
		return *s, nil
	}
	return schedule.Session{}, schedule.ErrNotFound
}

func (repo *sessionRepository) QueryRoomSessionsByRange(_ context.Context, roomID string, from, to time.Time) ([]schedule.Session, error) {
	repo.db.session.RLock()
	defer repo.db.session.RUnlock()
	return repo.queryRoomRange(roomID, from, to), nil
}

func (repo *sessionRepository) QuerySessionsByRange(_ context.Context, from, to time.Time) ([]schedule.Session, error) {
	repo.db.session.RLock()
	defer repo.db.session.RUnlock()
	return repo.queryRoomRange("", from, to), nil
}

func (repo *sessionRepository) DeleteSessionByID(_ context.Context, id string) error {
	repo.db.session.Lock()
	defer repo.db.session.Unlock()

	delete(repo.db.session.table, id)
	return nil
}
