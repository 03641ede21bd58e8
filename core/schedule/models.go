package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

// Session is a scheduled lesson slot in a room. EndTime is optional; a session
// without an explicit end occupies DefaultSessionDuration from its start.
type Session struct {
	ID          string     `json:"id"`
	RoomID      string     `json:"room_id"`
	StartTime   time.Time  `json:"start_time"` // UTC
	EndTime     *time.Time `json:"end_time"`   // UTC; nil => StartTime + DefaultSessionDuration
	Topic       string     `json:"topic"`
	GroupName   string     `json:"group_name"`
	CourseName  string     `json:"course_name"`
	TeacherName string     `json:"teacher_name"`
	CreatedAt   time.Time  `json:"created_at"` // UTC
	UpdatedAt   time.Time  `json:"updated_at"` // UTC
}

// SessionInfo is the client-facing projection of a Session.
// EndTime always carries the effective end, explicit or defaulted.
type SessionInfo struct {
	ID          string    `json:"session_id"`
	SessionDate time.Time `json:"session_date"`
	EndTime     time.Time `json:"end_time"`
	Topic       string    `json:"topic"`
	GroupName   string    `json:"group_name"`
	CourseName  string    `json:"course_name"`
	TeacherName string    `json:"teacher_name"`
}

func (s Session) Info() SessionInfo {
	return SessionInfo{
		ID:          s.ID,
		SessionDate: s.StartTime,
		EndTime:     s.EffectiveEnd(),
		Topic:       s.Topic,
		GroupName:   s.GroupName,
		CourseName:  s.CourseName,
		TeacherName: s.TeacherName,
	}
}

func SessionInfos(sessions []Session) []SessionInfo {
	infos := make([]SessionInfo, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.Info())
	}
	return infos
}

type NewSession struct {
	RoomID      string     `json:"room_id" validate:"required"`
	StartTime   time.Time  `json:"start_time" validate:"required"`
	EndTime     *time.Time `json:"end_time"`
	Topic       string     `json:"topic"`
	GroupName   string     `json:"group_name"`
	CourseName  string     `json:"course_name"`
	TeacherName string     `json:"teacher_name"`
}

func (ns *NewSession) Validate(validate *validator.Validate) error {
	ns.Topic = core.CleanString(ns.Topic)
	ns.GroupName = core.CleanString(ns.GroupName)
	ns.CourseName = core.CleanString(ns.CourseName)
	ns.TeacherName = core.CleanString(ns.TeacherName)
	return validate.Struct(ns)
}

// RoomOccupancy is a room's slice of the fleet-wide schedule overview.
type RoomOccupancy struct {
	RoomID        string        `json:"room_id"`
	Name          string        `json:"name"`
	Capacity      int           `json:"capacity"`
	Location      string        `json:"location"`
	SessionsToday int           `json:"sessions_today"`
	Sessions      []SessionInfo `json:"sessions"`
	IsOccupied    bool          `json:"is_occupied"`
}

type Overview struct {
	Date        string          `json:"date"`
	TotalRooms  int             `json:"total_rooms"`
	OccupiedNow int             `json:"occupied_now"`
	Rooms       []RoomOccupancy `json:"rooms"`
}
