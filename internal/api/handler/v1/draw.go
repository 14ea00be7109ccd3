package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tabhub/tabhub/internal/api/handler/v1/request"
	"github.com/tabhub/tabhub/internal/api/handler/v1/response"
	"github.com/tabhub/tabhub/internal/domain"
	"github.com/tabhub/tabhub/internal/service"
)

type DrawService interface {
	Snapshot(ctx context.Context, roundIDs []uint) (domain.DrawSnapshot, error)
	FindDebate(ctx context.Context, debateID uint) (domain.Debate, error)
	MoveJudge(ctx context.Context, roundIDs []uint, judgeID uint, toDebateID *uint, role domain.JudgeRole) (domain.DrawSnapshot, error)
	MoveRoom(ctx context.Context, roundIDs []uint, roomID uint, toDebateID *uint) (domain.DrawSnapshot, error)
	SwapTeams(ctx context.Context, roundIDs []uint, teamAID, teamBID uint) (domain.DrawSnapshot, error)
	PlaceTeam(ctx context.Context, roundIDs []uint, teamID uint, toDebateID *uint, side, seq int) (domain.DrawSnapshot, error)
}

type DrawHandler struct {
	svc  DrawService
	feed *DrawFeedHandler
}

func NewDrawHandler(svc DrawService, feed *DrawFeedHandler) *DrawHandler {
	return &DrawHandler{
		svc:  svc,
		feed: feed,
	}
}

// HandleGetDraws godoc
// @Summary      Get the draw of the given rounds
// @Description  Returns the whole-state snapshot of the requested rounds
// @Tags         draws
// @Produce      json
// @Param        rounds  query  string  true  "Comma-separated round IDs"
// @Success      200  {object}  domain.DrawSnapshot
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /draws [get]
// @Security     BearerAuth
func (h *DrawHandler) HandleGetDraws(ctx *gin.Context) {
	roundIDs, respErr := parseRoundIDs(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	snapshot, err := h.svc.Snapshot(ctx.Request.Context(), roundIDs)
	if err != nil {
		if errors.Is(err, service.ErrRoundNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("round", "IDs", roundIDs))
			return
		}

		err = fmt.Errorf("HandleGetDraws -> h.svc.Snapshot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}

// HandleMoveJudge godoc
// @Summary      Move a judge
// @Description  Moves a judge onto a debate with a role, or off the draw entirely
// @Tags         draws
// @Accept       json
// @Produce      json
// @Param        input  body  request.MoveJudgeRequest  true  "Move details"
// @Success      200  {object}  domain.DrawSnapshot
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /draws/judges/move [post]
// @Security     BearerAuth
func (h *DrawHandler) HandleMoveJudge(ctx *gin.Context) {
	var input request.MoveJudgeRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	role := domain.JudgeRole(input.Role)
	if input.Role == "" {
		role = domain.RolePanelist
	}

	snapshot, err := h.svc.MoveJudge(ctx.Request.Context(), input.RoundIDs, input.JudgeID, input.ToDebateID, role)
	if err != nil {
		h.renderMoveErr(ctx, "HandleMoveJudge", err)
		return
	}

	h.feed.NotifyRounds(input.RoundIDs...)
	ctx.JSON(http.StatusOK, snapshot)
}

// HandleMoveRoom godoc
// @Summary      Move a room
// @Description  Attaches a room to a debate, or detaches it from the draw
// @Tags         draws
// @Accept       json
// @Produce      json
// @Param        input  body  request.MoveRoomRequest  true  "Move details"
// @Success      200  {object}  domain.DrawSnapshot
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /draws/rooms/move [post]
// @Security     BearerAuth
func (h *DrawHandler) HandleMoveRoom(ctx *gin.Context) {
	var input request.MoveRoomRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	snapshot, err := h.svc.MoveRoom(ctx.Request.Context(), input.RoundIDs, input.RoomID, input.ToDebateID)
	if err != nil {
		h.renderMoveErr(ctx, "HandleMoveRoom", err)
		return
	}

	h.feed.NotifyRounds(input.RoundIDs...)
	ctx.JSON(http.StatusOK, snapshot)
}

// HandleSwapTeams godoc
// @Summary      Swap two teams
// @Description  Exchanges the placements of two teams within the scoped rounds
// @Tags         draws
// @Accept       json
// @Produce      json
// @Param        input  body  request.SwapTeamsRequest  true  "Swap details"
// @Success      200  {object}  domain.DrawSnapshot
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /draws/teams/swap [post]
// @Security     BearerAuth
func (h *DrawHandler) HandleSwapTeams(ctx *gin.Context) {
	var input request.SwapTeamsRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	snapshot, err := h.svc.SwapTeams(ctx.Request.Context(), input.RoundIDs, input.TeamAID, input.TeamBID)
	if err != nil {
		h.renderMoveErr(ctx, "HandleSwapTeams", err)
		return
	}

	h.feed.NotifyRounds(input.RoundIDs...)
	ctx.JSON(http.StatusOK, snapshot)
}

// HandlePlaceTeam godoc
// @Summary      Place a team
// @Description  Places a team into a specific slot of a debate, or removes it from the draw
// @Tags         draws
// @Accept       json
// @Produce      json
// @Param        input  body  request.PlaceTeamRequest  true  "Placement details"
// @Success      200  {object}  domain.DrawSnapshot
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /draws/teams/place [post]
// @Security     BearerAuth
func (h *DrawHandler) HandlePlaceTeam(ctx *gin.Context) {
	var input request.PlaceTeamRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	snapshot, err := h.svc.PlaceTeam(ctx.Request.Context(), input.RoundIDs, input.TeamID, input.ToDebateID, input.Side, input.Seq)
	if err != nil {
		h.renderMoveErr(ctx, "HandlePlaceTeam", err)
		return
	}

	h.feed.NotifyRounds(input.RoundIDs...)
	ctx.JSON(http.StatusOK, snapshot)
}

func (h *DrawHandler) renderMoveErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrRoundNotFound),
		errors.Is(err, service.ErrDebateNotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrJudgeNotFound),
		errors.Is(err, service.ErrRoomNotFound):
		response.RenderErr(ctx, response.NewErr(http.StatusNotFound, err))
	case errors.Is(err, service.ErrChairOccupied),
		errors.Is(err, service.ErrInvalidPlacement):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrInvalidSwap),
		errors.Is(err, service.ErrCrossRound),
		errors.Is(err, service.ErrInvalidRole):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
