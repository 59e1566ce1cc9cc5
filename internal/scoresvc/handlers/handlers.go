package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/fairwaylink/golf-services/internal/comm"
	"github.com/fairwaylink/golf-services/internal/scoresvc/broker"
	"github.com/fairwaylink/golf-services/internal/scoresvc/service"
)

type Handler struct {
	tokenAuth          *jwtauth.JWTAuth
	scoreService       *service.ScoreService
	roundService       *service.RoundService
	leaderboardService *service.LeaderboardService
	broker             *broker.Broker
}

func NewHandler(scoreService *service.ScoreService, roundService *service.RoundService,
	leaderboardService *service.LeaderboardService, b *broker.Broker) *Handler {
	return &Handler{
		scoreService:       scoreService,
		roundService:       roundService,
		leaderboardService: leaderboardService,
		broker:             b,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// errorResponse maps a domain error to an HTTP status. Unrecognized errors
// are logged and replaced with a generic message so storage details never
// reach a client.
func (h *Handler) errorResponse(w http.ResponseWriter, err error) {
	code := service.ErrorCode(err)
	status := http.StatusBadRequest
	switch code {
	case "authorization":
		status = http.StatusForbidden
	case "round_closed", "incomplete_round":
		status = http.StatusConflict
	case "internal":
		status = http.StatusInternalServerError
		log.Errorf("Error internal: %s", err)
	}

	h.CreateResponse(w, Response{
		Message: code,
		Code:    status,
		Error:   service.ClientMessage(err),
	})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "score service is running at port " + os.Getenv("SCORE_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode health response: %v", err)
	}
}

// SubmitScoreHandler accepts a score submission and returns the appended
// ledger entry.
func (h *Handler) SubmitScoreHandler(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.CreateResponse(w, Response{Message: "bad round id", Code: 400, Error: err.Error()})
		return
	}

	var request comm.ScoreSubmit
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.CreateResponse(w, Response{Message: "bad request body", Code: 400, Error: "malformed score submission"})
		return
	}
	request.RoundId = roundID

	entry, err := h.scoreService.Submit(r.Context(), service.SubmitScore{
		RoundID:            request.RoundId,
		RoundParticipantID: request.RoundParticipantId,
		HoleNumber:         request.HoleNumber,
		Strokes:            request.Strokes,
		Role:               request.RecordedByRole,
		RecordedByUserID:   request.RecordedByUserId,
		SavedOffline:       request.ClientMeta.SavedOffline,
	})
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.broker.PublishRoundEvent(comm.TypeScoreEntryEvent, entry, entry.RoundID)
	h.CreateResponse(w, Response{Message: "score recorded", Code: 201, Data: entry})
}

// HistoryHandler returns the audit trail for one cell, newest first.
func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	participantID, err := pathID(r, "participantID")
	if err != nil {
		h.CreateResponse(w, Response{Message: "bad participant id", Code: 400, Error: err.Error()})
		return
	}
	hole, err := pathID(r, "hole")
	if err != nil {
		h.CreateResponse(w, Response{Message: "bad hole number", Code: 400, Error: err.Error()})
		return
	}

	history, err := h.scoreService.History(r.Context(), participantID, int(hole))
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	entries := make([]comm.HistoryEntry, 0, len(history))
	for _, e := range history {
		entries = append(entries, comm.HistoryEntry{Entry: e.Entry, RecorderName: e.RecorderName})
	}
	h.CreateResponse(w, Response{Message: "score history", Code: 200, Data: entries})
}

// RoundLeaderboardHandler recomputes the round's competition standings.
func (h *Handler) RoundLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.CreateResponse(w, Response{Message: "bad round id", Code: 400, Error: err.Error()})
		return
	}

	results, err := h.leaderboardService.ForRound(r.Context(), roundID)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "round leaderboard", Code: 200, Data: toLeaderboardData(results)})
}

// TournamentLeaderboardHandler recomputes tournament-scoped standings.
func (h *Handler) TournamentLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		h.CreateResponse(w, Response{Message: "bad tournament id", Code: 400, Error: err.Error()})
		return
	}

	results, err := h.leaderboardService.ForTournament(r.Context(), tournamentID)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "tournament leaderboard", Code: 200, Data: toLeaderboardData(results)})
}

// FinalizeRoundHandler closes a round. 409 with incomplete_round while
// holes are unscored, unless a commissioner sets override.
func (h *Handler) FinalizeRoundHandler(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathID(r, "roundID")
	if err != nil {
		h.CreateResponse(w, Response{Message: "bad round id", Code: 400, Error: err.Error()})
		return
	}

	var request struct {
		UserId   int64 `json:"user_id"`
		Override bool  `json:"override"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.CreateResponse(w, Response{Message: "bad request body", Code: 400, Error: "malformed finalize request"})
		return
	}

	round, tournamentStatus, err := h.roundService.Finalize(r.Context(), roundID, request.UserId, request.Override)
	if err != nil {
		h.errorResponse(w, err)
		return
	}

	h.broker.PublishRoundFinalized(comm.RoundFinalized{
		RoundId:          round.ID,
		TournamentId:     round.TournamentID,
		RoundStatus:      round.Status,
		TournamentStatus: tournamentStatus,
	})
	h.CreateResponse(w, Response{Message: "round finalized", Code: 200, Data: round})
}

func toLeaderboardData(results []service.CompetitionStandings) []comm.LeaderboardData {
	boards := make([]comm.LeaderboardData, 0, len(results))
	for _, r := range results {
		boards = append(boards, comm.LeaderboardData{
			CompetitionId: r.Competition.ID,
			FormatType:    r.Competition.FormatType,
			Name:          r.Competition.Name,
			Standings:     r.Standings,
		})
	}
	return boards
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
