package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tabhub/tabhub/internal/api/handler/v1/response"
	"github.com/tabhub/tabhub/internal/domain"
	"github.com/tabhub/tabhub/internal/service"
)

type GenerationService interface {
	GenerateDraw(ctx context.Context, roundID uint, force bool) (domain.DrawSnapshot, error)
	GenerateAdjudication(ctx context.Context, roundID uint, force bool) (domain.DrawSnapshot, error)
}

type TicketService interface {
	ListByRound(ctx context.Context, roundID uint) ([]domain.Ticket, error)
}

type GenerationHandler struct {
	svc     GenerationService
	tickets TicketService
	feed    *DrawFeedHandler
}

func NewGenerationHandler(svc GenerationService, tickets TicketService, feed *DrawFeedHandler) *GenerationHandler {
	return &GenerationHandler{
		svc:     svc,
		tickets: tickets,
		feed:    feed,
	}
}

// HandleGenerateDraw godoc
// @Summary      Generate the draw of a round
// @Description  Pairs the registered teams into debates, replacing any existing draw of the round. Requires the round's generation ticket; pass force=true to supersede a stuck one.
// @Tags         draws
// @Produce      json
// @Param        roundID  path   int     true   "Round ID"
// @Param        force    query  bool    false  "Supersede an unreleased ticket"
// @Success      200  {object}  domain.DrawSnapshot
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /rounds/{roundID}/draws/generate [post]
// @Security     BearerAuth
func (h *GenerationHandler) HandleGenerateDraw(ctx *gin.Context) {
	roundID, respErr := parseUintParam(ctx, "roundID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	force, _ := strconv.ParseBool(ctx.DefaultQuery("force", "false"))

	snapshot, err := h.svc.GenerateDraw(ctx.Request.Context(), roundID, force)
	if err != nil {
		h.renderGenerationErr(ctx, "HandleGenerateDraw", roundID, err)
		return
	}

	h.feed.NotifyRounds(roundID)
	ctx.JSON(http.StatusOK, snapshot)
}

// HandleGenerateAdjudication godoc
// @Summary      Generate the adjudication of a round
// @Description  Allocates judges across the round's debates, replacing any existing allocation. Team placements are untouched.
// @Tags         draws
// @Produce      json
// @Param        roundID  path   int   true   "Round ID"
// @Param        force    query  bool  false  "Supersede an unreleased ticket"
// @Success      200  {object}  domain.DrawSnapshot
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /rounds/{roundID}/adjudication/generate [post]
// @Security     BearerAuth
func (h *GenerationHandler) HandleGenerateAdjudication(ctx *gin.Context) {
	roundID, respErr := parseUintParam(ctx, "roundID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	force, _ := strconv.ParseBool(ctx.DefaultQuery("force", "false"))

	snapshot, err := h.svc.GenerateAdjudication(ctx.Request.Context(), roundID, force)
	if err != nil {
		h.renderGenerationErr(ctx, "HandleGenerateAdjudication", roundID, err)
		return
	}

	h.feed.NotifyRounds(roundID)
	ctx.JSON(http.StatusOK, snapshot)
}

// HandleGetTickets godoc
// @Summary      Get generation tickets of a round
// @Description  Returns the full ticket log of a round, newest first, including how each finished generation ended
// @Tags         draws
// @Produce      json
// @Param        roundID  path  int  true  "Round ID"
// @Success      200  {array}   domain.Ticket
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /rounds/{roundID}/tickets [get]
// @Security     BearerAuth
func (h *GenerationHandler) HandleGetTickets(ctx *gin.Context) {
	roundID, respErr := parseUintParam(ctx, "roundID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tickets, err := h.tickets.ListByRound(ctx.Request.Context(), roundID)
	if err != nil {
		if errors.Is(err, service.ErrRoundNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("round", "ID", roundID))
			return
		}

		err = fmt.Errorf("HandleGetTickets -> h.tickets.ListByRound -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

func (h *GenerationHandler) renderGenerationErr(ctx *gin.Context, op string, roundID uint, err error) {
	switch {
	case errors.Is(err, service.ErrRoundNotFound):
		response.RenderErr(ctx, response.ErrNotFound("round", "ID", roundID))
	case errors.Is(err, service.ErrTicketActive), errors.Is(err, service.ErrTicketExpired):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrNotEnoughTeams), errors.Is(err, service.ErrNoDebates):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
