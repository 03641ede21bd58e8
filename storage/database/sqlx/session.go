package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/room"
	"github.com/trezcool/darasa/core/schedule"
)

type dbSession struct {
	ID          string     `db:"id"`
	RoomID      string     `db:"room_id"`
	StartTime   time.Time  `db:"start_time"`
	EndTime     *time.Time `db:"end_time"`
	Topic       string     `db:"topic"`
	GroupName   string     `db:"group_name"`
	CourseName  string     `db:"course_name"`
	TeacherName string     `db:"teacher_name"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func pack(s schedule.Session) dbSession {
	row := dbSession{
		ID:          s.ID,
		RoomID:      s.RoomID,
		StartTime:   s.StartTime.UTC(),
		Topic:       s.Topic,
		GroupName:   s.GroupName,
		CourseName:  s.CourseName,
		TeacherName: s.TeacherName,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
	if s.EndTime != nil {
		end := s.EndTime.UTC()
		row.EndTime = &end
	}
	return row
}

func (s dbSession) unpack() schedule.Session {
	return schedule.Session{
		ID:          s.ID,
		RoomID:      s.RoomID,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Topic:       s.Topic,
		GroupName:   s.GroupName,
		CourseName:  s.CourseName,
		TeacherName: s.TeacherName,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func unpackSessions(rows []dbSession) []schedule.Session {
	sessions := make([]schedule.Session, 0, len(rows))
	for _, s := range rows {
		sessions = append(sessions, s.unpack())
	}
	return sessions
}

type sessionRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *sql.DB) schedule.Repository {
	return &sessionRepository{db: sqlx.NewDb(db, "postgres")}
}

// trapNoRowsErr maps psql "no rows" err to schedule.ErrNotFound
func (repo sessionRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return schedule.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

// CreateSession re-validates the slot inside a transaction: the room row is
// locked, the day snapshot re-read and re-checked, and only then is the session
// inserted. Two racing bookings of the same slot serialize on the room lock.
func (repo sessionRepository) CreateSession(ctx context.Context, s schedule.Session) (schedule.Session, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return schedule.Session{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	var roomID string
	if err := tx.GetContext(ctx, &roomID, `SELECT id FROM room WHERE id = $1 FOR UPDATE`, s.RoomID); err != nil {
		if err == sql.ErrNoRows {
			return schedule.Session{}, room.ErrNotFound
		}
		return schedule.Session{}, errors.Wrap(err, "locking room")
	}

	dayStart, dayEnd := schedule.DayWindow(s.StartTime)
	var rows []dbSession
	err = tx.SelectContext(ctx, &rows,
		`SELECT * FROM session WHERE room_id = $1 AND start_time BETWEEN $2 AND $3 ORDER BY start_time ASC`,
		s.RoomID, dayStart.UTC(), dayEnd.UTC(),
	)
	if err != nil {
		return schedule.Session{}, errors.Wrap(err, "querying day sessions")
	}
	if res := schedule.CheckAvailability(s.Interval(), unpackSessions(rows)); !res.Available {
		return schedule.Session{}, &schedule.ConflictError{Conflicts: res.Conflicts}
	}

	s.ID = uuid.New().String()
	_, err = tx.NamedExecContext(ctx,
		`INSERT INTO session (id, room_id, start_time, end_time, topic, group_name, course_name, teacher_name, created_at, updated_at)
		 VALUES (:id, :room_id, :start_time, :end_time, :topic, :group_name, :course_name, :teacher_name, :created_at, :updated_at)`,
		pack(s),
	)
	if err != nil {
		return schedule.Session{}, errors.Wrap(err, "inserting session")
	}

	if err := tx.Commit(); err != nil {
		return schedule.Session{}, errors.Wrap(err, "committing session")
	}
	return s, nil
}

func (repo sessionRepository) GetSessionByID(ctx context.Context, id string) (schedule.Session, error) {
	var row dbSession
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM session WHERE id = $1`, id); err != nil {
		return schedule.Session{}, repo.trapNoRowsErr(err, "getting session by id")
	}
	return row.unpack(), nil
}

func (repo sessionRepository) QueryRoomSessionsByRange(ctx context.Context, roomID string, from, to time.Time) ([]schedule.Session, error) {
	var rows []dbSession
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM session WHERE room_id = $1 AND start_time BETWEEN $2 AND $3 ORDER BY start_time ASC`,
		roomID, from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying room sessions")
	}
	return unpackSessions(rows), nil
}

func (repo sessionRepository) QuerySessionsByRange(ctx context.Context, from, to time.Time) ([]schedule.Session, error) {
	var rows []dbSession
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM session WHERE start_time BETWEEN $1 AND $2 ORDER BY start_time ASC`,
		from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	return unpackSessions(rows), nil
}

func (repo sessionRepository) DeleteSessionByID(ctx context.Context, id string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM session WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return nil
}
