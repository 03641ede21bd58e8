package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/room"
)

type dbRoom struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Capacity  int       `db:"capacity"`
	Location  string    `db:"location"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r dbRoom) unpack() room.Room {
	return room.Room{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		Location:  r.Location,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func unpackRooms(rows []dbRoom) []room.Room {
	rooms := make([]room.Room, 0, len(rows))
	for _, r := range rows {
		rooms = append(rooms, r.unpack())
	}
	return rooms
}

// orderable room columns; anything else falls back to name
var roomOrderFields = map[string]string{
	"name":       "name",
	"capacity":   "capacity",
	"created_at": "created_at",
}

type roomRepository struct {
	db *sqlx.DB
}

var _ room.Repository = (*roomRepository)(nil) // interface compliance check

func NewRoomRepository(db *sql.DB) room.Repository {
	return &roomRepository{db: sqlx.NewDb(db, "postgres")}
}

// trapNoRowsErr maps psql "no rows" err to room.ErrNotFound
func (repo roomRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return room.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo roomRepository) CheckNameUniqueness(ctx context.Context, name string, excludedRooms ...room.Room) error {
	query := `SELECT EXISTS (SELECT 1 FROM room WHERE name = ?)`
	args := []interface{}{name}
	if len(excludedRooms) > 0 {
		ids := make([]string, 0, len(excludedRooms))
		for _, rm := range excludedRooms {
			ids = append(ids, rm.ID)
		}
		var err error
		query, args, err = sqlx.In(`SELECT EXISTS (SELECT 1 FROM room WHERE name = ? AND id NOT IN (?))`, name, ids)
		if err != nil {
			return errors.Wrap(err, "building exclusion clause")
		}
	}

	var exists bool
	if err := repo.db.GetContext(ctx, &exists, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "checking room name uniqueness")
	}
	if exists {
		return room.ErrNameExists
	}
	return nil
}

func (repo roomRepository) CreateRoom(ctx context.Context, rm room.Room) (room.Room, error) {
	rm.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO room (id, name, capacity, location, is_active, created_at, updated_at)
		 VALUES (:id, :name, :capacity, :location, :is_active, :created_at, :updated_at)`,
		dbRoom{
			ID:        rm.ID,
			Name:      rm.Name,
			Capacity:  rm.Capacity,
			Location:  rm.Location,
			IsActive:  rm.IsActive,
			CreatedAt: rm.CreatedAt.UTC(),
			UpdatedAt: rm.UpdatedAt.UTC(),
		},
	)
	if err != nil {
		return room.Room{}, errors.Wrap(err, "inserting room")
	}
	return rm, nil
}

func (repo roomRepository) QueryAllRooms(ctx context.Context, orderings ...core.DBOrdering) ([]room.Room, error) {
	orderBy := "name ASC"
	if len(orderings) > 0 {
		if col, ok := roomOrderFields[orderings[0].Field]; ok {
			orderBy = core.DBOrdering{Field: col, Ascending: orderings[0].Ascending}.String()
		}
	}

	var rows []dbRoom
	query := `SELECT * FROM room ORDER BY ` + orderBy
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying rooms")
	}
	return unpackRooms(rows), nil
}

func (repo roomRepository) QueryActiveRooms(ctx context.Context) ([]room.Room, error) {
	var rows []dbRoom
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM room WHERE is_active ORDER BY name ASC`); err != nil {
		return nil, errors.Wrap(err, "querying active rooms")
	}
	return unpackRooms(rows), nil
}

func (repo roomRepository) GetRoomByID(ctx context.Context, id string) (room.Room, error) {
	var row dbRoom
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM room WHERE id = $1`, id); err != nil {
		return room.Room{}, repo.trapNoRowsErr(err, "getting room by id")
	}
	return row.unpack(), nil
}

func (repo roomRepository) UpdateRoom(ctx context.Context, rm room.Room, isActive *bool) (room.Room, error) {
	// only save set fields
	sets := make([]string, 0, 5)
	args := []interface{}{rm.ID}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if rm.Name != "" {
		sets = append(sets, "name = "+arg(rm.Name))
	}
	if rm.Capacity != 0 {
		sets = append(sets, "capacity = "+arg(rm.Capacity))
	}
	if rm.Location != "" {
		sets = append(sets, "location = "+arg(rm.Location))
	}
	if isActive != nil {
		sets = append(sets, "is_active = "+arg(*isActive))
	}
	sets = append(sets, "updated_at = "+arg(rm.UpdatedAt.UTC()))

	query := `UPDATE room SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING *`
	var row dbRoom
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return room.Room{}, repo.trapNoRowsErr(err, "updating room")
	}
	return row.unpack(), nil
}

func (repo roomRepository) DeleteRoomByID(ctx context.Context, id string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM room WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting room")
	}
	return nil
}

func (repo roomRepository) RoomHasSessions(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM session WHERE room_id = $1)`, id)
	if err != nil {
		return false, errors.Wrap(err, "checking room sessions")
	}
	return exists, nil
}
