package comm

import (
	"encoding/json"

	"github.com/fairwaylink/golf-services/internal/golf/leaderboard"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// WSMessage is the envelope shared by the websocket edge and the NATS
// bridge between socketsvc and scoresvc. SocketId addresses one client;
// RoundId addresses every socket joined to a round room.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "submit-score", "score-entry-event"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
	RoundId  int64           `json:"round_id,omitempty"`
}

// Message types carried in WSMessage.Type.
const (
	TypeJoinRound      = "join-round"
	TypeSubmitScore    = "submit-score"
	TypeRecordDecision = "record-decision"
	TypeAwardBonus     = "award-bonus"
	TypeGetLeaderboard = "get-leaderboard"
	TypeGetHistory     = "get-score-history"

	TypeScoreEntryEvent = "score-entry-event"
	TypeDecisionEvent   = "decision-event"
	TypeBonusAwardEvent = "bonus-award-event"
	TypeRoundFinalized  = "round-finalized-event"
	TypeLeaderboardData = "leaderboard-response"
	TypeHistoryData     = "score-history-response"
	TypeJoinedRound     = "join-round-response"
	TypeErrorResponse   = "error-response"
)

// ClientMeta travels with a score submission for audit purposes only.
type ClientMeta struct {
	SavedOffline bool `json:"saved_offline"`
}

// ScoreSubmit is a score-submission intent, produced online or offline.
type ScoreSubmit struct {
	RoundId            int64      `json:"round_id"`
	RoundParticipantId int64      `json:"round_participant_id"`
	HoleNumber         int        `json:"hole_number"`
	Strokes            int        `json:"strokes"`
	RecordedByRole     string     `json:"recorded_by_role"`
	RecordedByUserId   int64      `json:"recorded_by_user_id"`
	ClientMeta         ClientMeta `json:"client_meta"`
}

type DecisionSubmit struct {
	CompetitionId    int64           `json:"competition_id"`
	RoundId          int64           `json:"round_id"`
	HoleNumber       int             `json:"hole_number"`
	Payload          json.RawMessage `json:"payload"`
	RecordedByUserId int64           `json:"recorded_by_user_id"`
}

type AwardSubmit struct {
	CompetitionId      int64 `json:"competition_id"`
	RoundId            int64 `json:"round_id"`
	HoleNumber         int   `json:"hole_number"`
	RoundParticipantId int64 `json:"round_participant_id"` // 0 clears the award
	AwardedByUserId    int64 `json:"awarded_by_user_id"`
}

type JoinRound struct {
	RoundId int64 `json:"round_id"`
	UserId  int64 `json:"user_id"`
}

// JoinedRound is the authoritative join acknowledgment. The score service
// enriches it with the round's tournament and course so devices can
// persist the active round and size their scorecards.
type JoinedRound struct {
	RoundId        int64  `json:"round_id"`
	TournamentId   int64  `json:"tournament_id"`
	TournamentName string `json:"tournament_name"`
	CourseName     string `json:"course_name"`
	Holes          int    `json:"holes"`
}

type LeaderboardRequest struct {
	RoundId      int64 `json:"round_id,omitempty"`
	TournamentId int64 `json:"tournament_id,omitempty"`
}

// LeaderboardData is one competition's standings, recomputed on demand.
type LeaderboardData struct {
	CompetitionId int64                 `json:"competition_id"`
	FormatType    string                `json:"format_type"`
	Name          string                `json:"name"`
	Standings     []leaderboard.Standing `json:"standings"`
}

type HistoryRequest struct {
	RoundParticipantId int64 `json:"round_participant_id"`
	HoleNumber         int   `json:"hole_number"`
}

// HistoryEntry annotates a ledger row with the recorder name for audit
// display.
type HistoryEntry struct {
	Entry        models.ScoreEntry `json:"entry"`
	RecorderName string            `json:"recorder_name"`
}

type RoundFinalized struct {
	RoundId          int64                   `json:"round_id"`
	TournamentId     int64                   `json:"tournament_id"`
	RoundStatus      models.RoundStatus      `json:"round_status"`
	TournamentStatus models.TournamentStatus `json:"tournament_status"`
}

type ErrorData struct {
	Code    string `json:"code"` // validation | authorization | round_closed | incomplete_round | internal
	Message string `json:"message"`
}
