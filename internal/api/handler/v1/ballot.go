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

type BallotService interface {
	Submit(ctx context.Context, ballot domain.Ballot) (domain.Ballot, error)
	Revise(ctx context.Context, ballot domain.Ballot) (domain.Ballot, error)
	ListByDebate(ctx context.Context, debateID uint) ([]domain.Ballot, error)
	ListVersions(ctx context.Context, debateID, judgeID uint) ([]domain.Ballot, error)
	ResultOfDebate(ctx context.Context, debateID uint) (domain.DebateResult, error)
}

// DebateFinder resolves a debate to its round so ballot writes can notify
// the draw feed.
type DebateFinder interface {
	FindDebate(ctx context.Context, debateID uint) (domain.Debate, error)
}

type BallotHandler struct {
	svc     BallotService
	debates DebateFinder
	feed    *DrawFeedHandler
}

func NewBallotHandler(svc BallotService, debates DebateFinder, feed *DrawFeedHandler) *BallotHandler {
	return &BallotHandler{
		svc:     svc,
		debates: debates,
		feed:    feed,
	}
}

// HandleSubmitBallot godoc
// @Summary      Submit an original ballot
// @Description  Records a judge's original ballot for a debate and re-derives the debate's aggregated result
// @Tags         ballots
// @Accept       json
// @Produce      json
// @Param        debateID  path  int                          true  "Debate ID"
// @Param        input     body  request.SubmitBallotRequest  true  "Ballot details"
// @Success      201  {object}  domain.Ballot
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /debates/{debateID}/ballots [post]
// @Security     BearerAuth
func (h *BallotHandler) HandleSubmitBallot(ctx *gin.Context) {
	debateID, respErr := parseUintParam(ctx, "debateID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.SubmitBallotRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ballot := domain.Ballot{
		DebateID: debateID,
		JudgeID:  input.JudgeID,
		Scores:   scoresToDomain(input.Scores),
		Ranks:    ranksToDomain(input.Ranks),
	}

	created, err := h.svc.Submit(ctx.Request.Context(), ballot)
	if err != nil {
		h.renderBallotErr(ctx, "HandleSubmitBallot", debateID, err)
		return
	}

	h.notifyDebate(ctx, debateID)
	ctx.JSON(http.StatusCreated, created)
}

// HandleReviseBallot godoc
// @Summary      Revise a ballot
// @Description  Appends a new version over a judge's current ballot. The editor is taken from the bearer token; a change note is mandatory.
// @Tags         ballots
// @Accept       json
// @Produce      json
// @Param        debateID  path  int                          true  "Debate ID"
// @Param        judgeID   path  int                          true  "Judge ID"
// @Param        input     body  request.ReviseBallotRequest  true  "Revision details"
// @Success      201  {object}  domain.Ballot
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /debates/{debateID}/ballots/{judgeID} [put]
// @Security     BearerAuth
func (h *BallotHandler) HandleReviseBallot(ctx *gin.Context) {
	debateID, respErr := parseUintParam(ctx, "debateID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	judgeID, respErr := parseUintParam(ctx, "judgeID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	editorID, respErr := editorFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.ReviseBallotRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ballot := domain.Ballot{
		DebateID: debateID,
		JudgeID:  judgeID,
		Change:   &input.Change,
		EditorID: &editorID,
		Scores:   scoresToDomain(input.Scores),
		Ranks:    ranksToDomain(input.Ranks),
	}

	created, err := h.svc.Revise(ctx.Request.Context(), ballot)
	if err != nil {
		h.renderBallotErr(ctx, "HandleReviseBallot", debateID, err)
		return
	}

	h.notifyDebate(ctx, debateID)
	ctx.JSON(http.StatusCreated, created)
}

// HandleGetBallots godoc
// @Summary      Get ballots of a debate
// @Description  Returns every judge's current ballot for the debate
// @Tags         ballots
// @Produce      json
// @Param        debateID  path  int  true  "Debate ID"
// @Success      200  {array}   domain.Ballot
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /debates/{debateID}/ballots [get]
// @Security     BearerAuth
func (h *BallotHandler) HandleGetBallots(ctx *gin.Context) {
	debateID, respErr := parseUintParam(ctx, "debateID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ballots, err := h.svc.ListByDebate(ctx.Request.Context(), debateID)
	if err != nil {
		err = fmt.Errorf("HandleGetBallots -> h.svc.ListByDebate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ballots)
}

// HandleGetBallotVersions godoc
// @Summary      Get the version history of a ballot
// @Description  Returns every version of a judge's ballot for a debate, oldest first
// @Tags         ballots
// @Produce      json
// @Param        debateID  path  int  true  "Debate ID"
// @Param        judgeID   path  int  true  "Judge ID"
// @Success      200  {array}   domain.Ballot
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /debates/{debateID}/ballots/{judgeID}/versions [get]
// @Security     BearerAuth
func (h *BallotHandler) HandleGetBallotVersions(ctx *gin.Context) {
	debateID, respErr := parseUintParam(ctx, "debateID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	judgeID, respErr := parseUintParam(ctx, "judgeID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ballots, err := h.svc.ListVersions(ctx.Request.Context(), debateID, judgeID)
	if err != nil {
		if errors.Is(err, service.ErrBallotNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ballot", "judgeID", judgeID))
			return
		}

		err = fmt.Errorf("HandleGetBallotVersions -> h.svc.ListVersions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ballots)
}

// HandleGetResult godoc
// @Summary      Get the aggregated result of a debate
// @Description  Returns the agreed team standings and speaker scores. 404 while ballots are missing or in conflict.
// @Tags         ballots
// @Produce      json
// @Param        debateID  path  int  true  "Debate ID"
// @Success      200  {object}  domain.DebateResult
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /debates/{debateID}/result [get]
// @Security     BearerAuth
func (h *BallotHandler) HandleGetResult(ctx *gin.Context) {
	debateID, respErr := parseUintParam(ctx, "debateID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	result, err := h.svc.ResultOfDebate(ctx.Request.Context(), debateID)
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("result", "debateID", debateID))
			return
		}

		err = fmt.Errorf("HandleGetResult -> h.svc.ResultOfDebate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (h *BallotHandler) renderBallotErr(ctx *gin.Context, op string, debateID uint, err error) {
	switch {
	case errors.Is(err, service.ErrDebateNotFound):
		response.RenderErr(ctx, response.ErrNotFound("debate", "ID", debateID))
	case errors.Is(err, service.ErrBallotNotFound):
		response.RenderErr(ctx, response.NewErr(http.StatusNotFound, err))
	case errors.Is(err, service.ErrBallotExists),
		errors.Is(err, service.ErrRevisionConflict):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrJudgeNotInDebate),
		errors.Is(err, service.ErrChangeRequired):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// notifyDebate refreshes the draw feed of the debate's round after a ballot
// write, so viewers see status flips to confirmed or conflict right away.
func (h *BallotHandler) notifyDebate(ctx *gin.Context, debateID uint) {
	debate, err := h.debates.FindDebate(ctx.Request.Context(), debateID)
	if err != nil {
		return
	}

	h.feed.NotifyRounds(debate.RoundID)
}

func scoresToDomain(scores []request.BallotScore) []domain.SpeakerScore {
	result := make([]domain.SpeakerScore, len(scores))
	for i, s := range scores {
		result[i] = domain.SpeakerScore{
			TeamID:   s.TeamID,
			Speaker:  s.Speaker,
			Position: s.Position,
			Score:    s.Score,
		}
	}

	return result
}

func ranksToDomain(ranks []request.BallotRank) []domain.TeamRank {
	result := make([]domain.TeamRank, len(ranks))
	for i, r := range ranks {
		result[i] = domain.TeamRank{
			TeamID: r.TeamID,
			Points: r.Points,
		}
	}

	return result
}
