package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/room"
	"github.com/trezcool/darasa/storage/database"
	"github.com/trezcool/darasa/storage/database/sqlx"
)

var (
	createDBFunc = database.CreateIfNotExist // mockable
	openDBFunc   = database.Open             // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf    *core.Config
	db      *sql.DB
	roomSvc *room.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createdb                                             - create the app DB & user if they do not exist")
	fmt.Println("  migrate COMMAND [ARGS]                               - run DB migrations (up, down, status, ...)")
	fmt.Println("  addroom -name NAME [-capacity N] [-location WHERE]   - register a new room")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addRoomCmd := flag.NewFlagSet("addroom", flag.ExitOnError)
	addRoomName := addRoomCmd.String("name", "", "The room's name; must be unique.")
	addRoomCapacity := addRoomCmd.Int("capacity", 0, "The room's seating capacity.")
	addRoomLocation := addRoomCmd.String("location", "", "The room's location (building, floor...).")

	switch args[1] {
	case "createdb":
		return createDBFunc(cli.conf)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		if err := cli.ensureDB(); err != nil {
			return err
		}
		return cli.migrate(args[2:])
	case "addroom":
		if err := addRoomCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addRoomName == "" {
			addRoomCmd.Usage()
			return errHelp
		}
		if cli.roomSvc == nil {
			if err := cli.ensureDB(); err != nil {
				return err
			}
			cli.roomSvc = room.NewService(sqlxrepos.NewRoomRepository(cli.db))
		}
		return cli.addRoom(*addRoomName, *addRoomCapacity, *addRoomLocation)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) ensureDB() error {
	if cli.db != nil {
		return nil
	}
	db, err := openDBFunc(cli.conf)
	if err != nil {
		return err
	}
	if err := database.Ping(db); err != nil {
		_ = db.Close()
		return err
	}
	cli.db = db
	return nil
}
