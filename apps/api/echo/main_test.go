package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/room"
	"github.com/trezcool/darasa/core/schedule"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database/inmem"
)

var (
	ctx = context.Background()

	// frozen "now" for occupancy checks
	testNow = time.Date(2021, time.March, 15, 9, 30, 0, 0, time.UTC)

	errRoomNotFound    = httpErr{Error: "room not found"}
	errSessionNotFound = httpErr{Error: "session not found"}
)

func setup(t *testing.T) (Server, *room.Service, *schedule.Service) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed, %v", err)
	}
	roomRepo := inmemdb.NewRoomRepository(db)
	sessionRepo := inmemdb.NewSessionRepository(db)

	roomSvc := room.NewService(roomRepo)
	scheduleSvc := schedule.NewService(sessionRepo, roomRepo)

	validate, translator := core.NewValidators()
	schedule.RegisterValidators(validate, translator)

	app := NewServer(
		&Options{
			TestMode:       true,
			DisableReqLogs: true,
			Logger:         logsvc.NewConsoleLoggerMock(),
			RoomSvc:        roomSvc,
			ScheduleSvc:    scheduleSvc,
			Validate:       validate,
			Translator:     translator,
			NowFunc:        func() time.Time { return testNow },
		},
	)
	return app, roomSvc, scheduleSvc
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func createRoom(t *testing.T, svc *room.Service, name string, capacity int) room.Room {
	t.Helper()

	rm, err := svc.Create(ctx, room.NewRoom{Name: name, Capacity: capacity})
	if err != nil {
		t.Fatalf("createRoom() failed, %v", err)
	}
	return rm
}

func createSession(t *testing.T, svc *schedule.Service, roomID string, start time.Time, end *time.Time) schedule.Session {
	t.Helper()

	s, err := svc.Create(ctx, schedule.NewSession{RoomID: roomID, StartTime: start, EndTime: end, Topic: "Algebra"})
	if err != nil {
		t.Fatalf("createSession() failed, %v", err)
	}
	return s
}

func timePtr(t time.Time) *time.Time { return &t }

func at(hour, min int) time.Time {
	return time.Date(2021, time.March, 15, hour, min, 0, 0, time.UTC)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func Test_home(t *testing.T) {
	app, _, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("code = %v; want %v", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "Welcome to Darasa API!" {
		t.Errorf("body = %s", rec.Body.String())
	}
}
