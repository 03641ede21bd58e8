package main

import (
	"context"
	"fmt"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/room"
)

// addRoom registers a new room after running it through the app validators.
func (cli *commandLine) addRoom(name string, capacity int, location string) error {
	validate, _ := core.NewValidators()

	nr := room.NewRoom{
		Name:     name,
		Capacity: capacity,
		Location: location,
	}
	if err := nr.Validate(validate); err != nil {
		return err
	}

	rm, err := cli.roomSvc.Create(context.Background(), nr)
	if err != nil {
		return err
	}
	fmt.Printf("room %q created (id=%s)\n", rm.Name, rm.ID)
	return nil
}
