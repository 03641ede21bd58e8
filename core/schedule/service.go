package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/room"
)

var (
	// errors
	ErrNotFound = errors.New("session not found")

	errEndBeforeStart = errors.New("end time must be after start time")
)

// ConflictError is returned when a session cannot be committed because its slot
// was taken; it carries the full conflict set detected at commit time.
type ConflictError struct {
	Conflicts []Session
}

func (e *ConflictError) Error() string {
	return "the requested time slot conflicts with existing sessions"
}

type (
	Repository interface {
		// CreateSession persists a session. Implementations must re-check the
		// room's day snapshot for conflicts within their own consistency
		// boundary (transaction or lock) and return *ConflictError when the
		// slot is taken: the availability endpoint's snapshot may be stale by
		// commit time.
		CreateSession(ctx context.Context, s Session) (Session, error)
		GetSessionByID(ctx context.Context, id string) (Session, error)
		// QueryRoomSessionsByRange returns the room's sessions whose start falls
		// in [from, to], ordered ascending by start time.
		QueryRoomSessionsByRange(ctx context.Context, roomID string, from, to time.Time) ([]Session, error)
		// QuerySessionsByRange is QueryRoomSessionsByRange across all rooms.
		QuerySessionsByRange(ctx context.Context, from, to time.Time) ([]Session, error)
		DeleteSessionByID(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		roomRepo room.Repository
	}
)

func NewService(repo Repository, roomRepo room.Repository) *Service {
	return &Service{repo: repo, roomRepo: roomRepo}
}

// Availability is the outcome of CheckRoomAvailability: the engine result plus
// the room and day snapshot it was computed over.
type Availability struct {
	Room        room.Room
	Result      AvailabilityResult
	DaySessions []Session
}

// CheckRoomAvailability answers "can this room take a session at [start, end)?".
// The end is optional; DefaultSessionDuration applies when absent. The check
// runs over the room's sessions for start's calendar day.
func (svc *Service) CheckRoomAvailability(ctx context.Context, roomID string, start time.Time, end *time.Time) (Availability, error) {
	rm, err := svc.roomRepo.GetRoomByID(ctx, roomID)
	if err != nil {
		return Availability{}, err
	}
	if end != nil && !end.After(start) {
		return Availability{}, core.NewValidationError(errEndBeforeStart,
			core.FieldError{Field: "end_time", Error: errEndBeforeStart.Error()})
	}

	dayStart, dayEnd := DayWindow(start)
	sessions, err := svc.repo.QueryRoomSessionsByRange(ctx, roomID, dayStart, dayEnd)
	if err != nil {
		return Availability{}, err
	}

	return Availability{
		Room:        rm,
		Result:      CheckAvailability(NewInterval(start, end), sessions),
		DaySessions: sessions,
	}, nil
}

// Overview computes the fleet-wide occupancy view for date's calendar day,
// evaluating "occupied" at `now`. Inactive rooms are excluded.
func (svc *Service) Overview(ctx context.Context, date, now time.Time) (Overview, error) {
	rooms, err := svc.roomRepo.QueryActiveRooms(ctx)
	if err != nil {
		return Overview{}, err
	}

	dayStart, dayEnd := DayWindow(date)
	sessions, err := svc.repo.QuerySessionsByRange(ctx, dayStart, dayEnd)
	if err != nil {
		return Overview{}, err
	}
	byRoom := make(map[string][]Session, len(rooms))
	for _, s := range sessions {
		byRoom[s.RoomID] = append(byRoom[s.RoomID], s)
	}

	ov := Overview{
		Date:       dayStart.Format("2006-01-02"),
		TotalRooms: len(rooms),
		Rooms:      make([]RoomOccupancy, 0, len(rooms)),
	}
	for _, rm := range rooms {
		roomSessions := byRoom[rm.ID]
		occupied := OccupiedAt(roomSessions, now)
		if occupied {
			ov.OccupiedNow++
		}
		ov.Rooms = append(ov.Rooms, RoomOccupancy{
			RoomID:        rm.ID,
			Name:          rm.Name,
			Capacity:      rm.Capacity,
			Location:      rm.Location,
			SessionsToday: len(roomSessions),
			Sessions:      SessionInfos(roomSessions),
			IsOccupied:    occupied,
		})
	}
	return ov, nil
}

// Create books a session. The repository re-validates the slot at commit time
// and returns *ConflictError when it was taken in the meantime.
func (svc *Service) Create(ctx context.Context, ns NewSession) (Session, error) {
	if _, err := svc.roomRepo.GetRoomByID(ctx, ns.RoomID); err != nil {
		return Session{}, err
	}

	now := time.Now().UTC()
	s := Session{
		RoomID:      ns.RoomID,
		StartTime:   ns.StartTime.UTC(),
		Topic:       ns.Topic,
		GroupName:   ns.GroupName,
		CourseName:  ns.CourseName,
		TeacherName: ns.TeacherName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ns.EndTime != nil {
		end := ns.EndTime.UTC()
		s.EndTime = &end
	}
	return svc.repo.CreateSession(ctx, s)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Session, error) {
	return svc.repo.GetSessionByID(ctx, id)
}

// RoomDaySessions lists a room's sessions for date's calendar day, ascending by start.
func (svc *Service) RoomDaySessions(ctx context.Context, roomID string, date time.Time) ([]Session, error) {
	if _, err := svc.roomRepo.GetRoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	dayStart, dayEnd := DayWindow(date)
	return svc.repo.QueryRoomSessionsByRange(ctx, roomID, dayStart, dayEnd)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteSessionByID(ctx, id)
}
