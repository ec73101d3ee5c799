package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/benbeisheim/clickchess-backend/internal/middleware"
	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SessionController struct {
	sessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

type clickRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

func (sc *SessionController) CreateSession(c *fiber.Ctx) error {
	state, err := sc.sessionService.CreateSession(c.UserContext(), middleware.PlayerID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Session created",
		"session_id": state.ID,
		"state":      state,
	})
}

func (sc *SessionController) GetSessionState(c *fiber.Ctx) error {
	state, err := sc.sessionService.GetSessionState(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func (sc *SessionController) GetSelection(c *fiber.Ctx) error {
	sel, err := sc.sessionService.GetSelection(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"selection": sel})
}

func (sc *SessionController) Click(c *fiber.Ctx) error {
	var req clickRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid click body",
		})
	}
	if req.Row == nil || req.Col == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "row and col are required",
		})
	}

	sq := model.Square{Row: *req.Row, Col: *req.Col}
	outcome, state, err := sc.sessionService.Click(c.UserContext(), c.Params("sessionId"), middleware.PlayerID(c), sq)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"outcome": outcome,
		"state":   state,
	})
}

// CheckMove answers GET .../legal?from=r,c&to=r,c.
func (sc *SessionController) CheckMove(c *fiber.Ctx) error {
	from, err := parseSquare(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	to, err := parseSquare(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	legal, err := sc.sessionService.CheckMove(c.UserContext(), c.Params("sessionId"), from, to)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  from,
		"to":    to,
		"legal": legal,
	})
}

func (sc *SessionController) DeleteSession(c *fiber.Ctx) error {
	if err := sc.sessionService.DeleteSession(c.UserContext(), c.Params("sessionId"), middleware.PlayerID(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseSquare reads "row,col". Bounds are left to the validator.
func parseSquare(raw string) (model.Square, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != 2 {
		return model.Square{}, fmt.Errorf("square %q must be row,col", raw)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return model.Square{}, fmt.Errorf("square %q: bad row", raw)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return model.Square{}, fmt.Errorf("square %q: bad col", raw)
	}
	return model.Square{Row: row, Col: col}, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrMissingPlayer),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrEmptySource):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		obslog.L().Error("request_failed",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Error(err),
		)
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
