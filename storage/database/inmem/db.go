package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/room"
	"github.com/trezcool/darasa/core/schedule"
)

type (
	DB struct {
		room    *roomTable
		session *sessionTable
	}

	roomTable struct {
		sync.RWMutex
		table map[string]*room.Room
	}

	sessionTable struct {
		sync.RWMutex
		table map[string]*schedule.Session
	}
)

func Open() (*DB, error) {
	db := &DB{
		room:    &roomTable{table: make(map[string]*room.Room)},
		session: &sessionTable{table: make(map[string]*schedule.Session)},
	}
	return db, nil
}
