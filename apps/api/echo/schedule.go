package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/room"
	"github.com/trezcool/darasa/core/schedule"
)

type scheduleApi struct {
	svc      *schedule.Service
	validate *validator.Validate
	nowFunc  func() time.Time
}

func registerScheduleAPI(g *echo.Group, svc *schedule.Service, validate *validator.Validate, nowFunc func() time.Time) {
	api := scheduleApi{
		svc:      svc,
		validate: validate,
		nowFunc:  nowFunc,
	}

	rg := g.Group("/rooms")
	rg.GET("/schedule/overview", api.overview)
	rg.GET("/:id/availability", api.checkAvailability)
	rg.GET("/:id/sessions", api.roomSessions)

	sg := g.Group("/sessions")
	sg.POST("", api.create)
	sg.GET("/:id", api.retrieve)
	sg.DELETE("/:id", api.destroy)
}

type availabilityResponse struct {
	Available        bool                   `json:"available"`
	Room             room.Room              `json:"room"`
	Requested        schedule.Interval      `json:"requested"`
	Conflicts        []schedule.SessionInfo `json:"conflicts"`
	AllSessionsToday []schedule.SessionInfo `json:"all_sessions_today"`
}

// Handlers

func (api *scheduleApi) checkAvailability(ctx echo.Context) error {
	start, err := parseTimestamp(ctx.QueryParam("date"), "date")
	if err != nil {
		return err
	}
	end, err := parseOptionalTimestamp(ctx.QueryParam("end_time"), "end_time")
	if err != nil {
		return err
	}

	av, err := api.svc.CheckRoomAvailability(ctx.Request().Context(), ctx.Param("id"), start, end)
	if err != nil {
		return errors.Wrap(err, "checking room availability")
	}

	return ctx.JSON(http.StatusOK, availabilityResponse{
		Available:        av.Result.Available,
		Room:             av.Room,
		Requested:        av.Result.Requested,
		Conflicts:        schedule.SessionInfos(av.Result.Conflicts),
		AllSessionsToday: schedule.SessionInfos(av.DaySessions),
	})
}

func (api *scheduleApi) overview(ctx echo.Context) error {
	now := api.nowFunc()
	date := now
	if val := ctx.QueryParam("date"); val != "" {
		var err error
		if date, err = parseTimestamp(val, "date"); err != nil {
			return err
		}
	}

	ov, err := api.svc.Overview(ctx.Request().Context(), date, now)
	if err != nil {
		return errors.Wrap(err, "computing schedule overview")
	}
	return ctx.JSON(http.StatusOK, ov)
}

func (api *scheduleApi) roomSessions(ctx echo.Context) error {
	date := api.nowFunc()
	if val := ctx.QueryParam("date"); val != "" {
		var err error
		if date, err = parseTimestamp(val, "date"); err != nil {
			return err
		}
	}

	sessions, err := api.svc.RoomDaySessions(ctx.Request().Context(), ctx.Param("id"), date)
	if err != nil {
		return errors.Wrap(err, "querying room sessions")
	}
	return ctx.JSON(http.StatusOK, schedule.SessionInfos(sessions))
}

func (api *scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		// a stale snapshot race surfaces here as *schedule.ConflictError
		return errors.Wrap(err, "creating session")
	}
	return ctx.JSON(http.StatusCreated, s.Info())
}

func (api *scheduleApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting session")
	}
	return ctx.JSON(http.StatusOK, s.Info())
}

func (api *scheduleApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return ctx.NoContent(http.StatusNoContent)
}
