package room

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Location  string    `json:"location"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type NewRoom struct {
	Name     string `json:"name" validate:"required,alphanum_"`
	Capacity int    `json:"capacity" validate:"omitempty,gt=0"`
	Location string `json:"location"`
}

func (nr *NewRoom) Validate(validate *validator.Validate) error {
	nr.Name = core.CleanString(nr.Name)
	nr.Location = core.CleanString(nr.Location)
	return validate.Struct(nr)
}

type UpdateRoom struct {
	Name     string `json:"name" validate:"omitempty,alphanum_"`
	Capacity int    `json:"capacity" validate:"omitempty,gt=0"`
	Location string `json:"location"`
	IsActive *bool  `json:"is_active"`
}

func (ur *UpdateRoom) Validate(validate *validator.Validate) error {
	ur.Name = core.CleanString(ur.Name)
	ur.Location = core.CleanString(ur.Location)
	return validate.Struct(ur)
}
