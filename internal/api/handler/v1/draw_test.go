package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabhub/tabhub/internal/domain"
	"github.com/tabhub/tabhub/internal/service"
)

type fakeDrawService struct {
	snapshot domain.DrawSnapshot
	err      error
	moved    bool
}

func (f *fakeDrawService) Snapshot(_ context.Context, _ []uint) (domain.DrawSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeDrawService) FindDebate(_ context.Context, debateID uint) (domain.Debate, error) {
	return domain.Debate{ID: debateID, RoundID: 1}, nil
}

func (f *fakeDrawService) MoveJudge(_ context.Context, _ []uint, _ uint, _ *uint, _ domain.JudgeRole) (domain.DrawSnapshot, error) {
	if f.err != nil {
		return domain.DrawSnapshot{}, f.err
	}
	f.moved = true
	return f.snapshot, nil
}

func (f *fakeDrawService) MoveRoom(_ context.Context, _ []uint, _ uint, _ *uint) (domain.DrawSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeDrawService) SwapTeams(_ context.Context, _ []uint, _, _ uint) (domain.DrawSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeDrawService) PlaceTeam(_ context.Context, _ []uint, _ uint, _ *uint, _, _ int) (domain.DrawSnapshot, error) {
	return f.snapshot, f.err
}

func newDrawRouter(svc DrawService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewDrawHandler(svc, NewDrawFeedHandler(svc))

	router := gin.New()
	router.GET("/draws", handler.HandleGetDraws)
	router.POST("/draws/judges/move", handler.HandleMoveJudge)
	router.POST("/draws/teams/swap", handler.HandleSwapTeams)

	return router
}

func TestHandleGetDraws(t *testing.T) {
	svc := &fakeDrawService{
		snapshot: domain.DrawSnapshot{
			Rounds: []domain.RoundDraw{
				{Round: domain.Round{ID: 1, Name: "Round 1"}, Debates: []domain.DebateView{}},
			},
			GeneratedAt: time.Now().UTC(),
		},
	}
	router := newDrawRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/draws?rounds=1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var got domain.DrawSnapshot
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got.Rounds, 1)
	assert.Equal(t, "Round 1", got.Rounds[0].Round.Name)
}

func TestHandleGetDraws_MissingRoundsParam(t *testing.T) {
	router := newDrawRouter(&fakeDrawService{})

	req := httptest.NewRequest(http.MethodGet, "/draws", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleGetDraws_UnknownRound(t *testing.T) {
	router := newDrawRouter(&fakeDrawService{err: service.ErrRoundNotFound})

	req := httptest.NewRequest(http.MethodGet, "/draws?rounds=99", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleMoveJudge(t *testing.T) {
	svc := &fakeDrawService{}
	router := newDrawRouter(svc)

	body, err := json.Marshal(map[string]any{
		"round_ids":    []uint{1},
		"judge_id":     10,
		"to_debate_id": 5,
		"role":         "C",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/draws/judges/move", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, svc.moved)
}

func TestHandleMoveJudge_InvalidRole(t *testing.T) {
	router := newDrawRouter(&fakeDrawService{})

	body, err := json.Marshal(map[string]any{
		"round_ids": []uint{1},
		"judge_id":  10,
		"role":      "X",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/draws/judges/move", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleMoveJudge_ChairOccupied(t *testing.T) {
	router := newDrawRouter(&fakeDrawService{err: service.ErrChairOccupied})

	body, err := json.Marshal(map[string]any{
		"round_ids":    []uint{1},
		"judge_id":     10,
		"to_debate_id": 5,
		"role":         "C",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/draws/judges/move", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHandleSwapTeams_CrossRound(t *testing.T) {
	router := newDrawRouter(&fakeDrawService{err: service.ErrCrossRound})

	body, err := json.Marshal(map[string]any{
		"round_ids": []uint{1},
		"team_a_id": 1,
		"team_b_id": 2,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/draws/teams/swap", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
