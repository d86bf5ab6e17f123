package scoring

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crickside/pkg/responses"
)

// ScoringController handles the live-scoring HTTP surface.
type ScoringController struct {
	service *Service
}

// NewScoringController creates a new scoring controller.
func NewScoringController(service *Service) *ScoringController {
	return &ScoringController{service: service}
}

// --- DTOs ---

// CreateMatchRequest defines the payload for scheduling a match.
type CreateMatchRequest struct {
	TeamAID      uint  `json:"team_a_id" binding:"required"`
	TeamBID      uint  `json:"team_b_id" binding:"required"`
	TournamentID *uint `json:"tournament_id,omitempty"`
	OversLimit   int   `json:"overs_limit" binding:"required,min=1,max=50"`
}

// StartMatchRequest defines the payload for the toss + opening selections.
type StartMatchRequest struct {
	TossWinnerTeamID uint         `json:"toss_winner_team_id" binding:"required"`
	TossDecision     TossDecision `json:"toss_decision" binding:"required,oneof=bat bowl"`
	StrikerID        uint         `json:"striker_id" binding:"required"`
	NonStrikerID     uint         `json:"non_striker_id" binding:"required"`
	BowlerID         uint         `json:"bowler_id" binding:"required"`
}

// RecordBallRequest defines the payload for one delivery.
type RecordBallRequest struct {
	RunsScored int       `json:"runs_scored" binding:"min=0,max=6"`
	IsWicket   bool      `json:"is_wicket"`
	Extras     int       `json:"extras" binding:"min=0"`
	ExtraType  ExtraType `json:"extra_type" binding:"omitempty,oneof=wide no_ball bye leg_bye"`
}

// SelectPlayerRequest carries a single player selection.
type SelectPlayerRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

// SelectBatsmanRequest carries a batter selection and the end they take.
// The slot defaults to striker, the usual case after a wicket.
type SelectBatsmanRequest struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	Slot     string `json:"slot" binding:"omitempty,oneof=striker non_striker"`
}

// CompleteMatchRequest records the operator's result decision.
type CompleteMatchRequest struct {
	WinningTeamID   *uint  `json:"winning_team_id,omitempty"`
	ManOfTheMatchID *uint  `json:"man_of_the_match_id,omitempty"`
	ResultSummary   string `json:"result_summary,omitempty" binding:"max=500"`
}

// UpdateSettingsRequest toggles the wide/no-ball re-bowl rule.
type UpdateSettingsRequest struct {
	RebowlWideNoBall *bool `json:"rebowl_wide_no_ball" binding:"required"`
}

// statusForError maps the scoring error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMatchNotLive),
		errors.Is(err, ErrMatchNotScheduled),
		errors.Is(err, ErrOversLimitReached),
		errors.Is(err, ErrInningsOver),
		errors.Is(err, ErrInningsNotOver),
		errors.Is(err, ErrSecondInnings),
		errors.Is(err, ErrEmptyLog):
		return http.StatusConflict
	case errors.Is(err, ErrPlayersNotSelected),
		errors.Is(err, ErrInvalidBowler),
		errors.Is(err, ErrInvalidBatsman),
		errors.Is(err, ErrDuplicateBatsman),
		errors.Is(err, ErrInvalidTossWinner),
		errors.Is(err, ErrInvalidWinner),
		errors.Is(err, ErrSameTeams):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (sc *ScoringController) fail(c *gin.Context, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "An unexpected error occurred"
	}
	responses.SendError(c, status, msg)
}

func matchIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return 0, false
	}
	return uint(id), true
}

// CreateMatch godoc
// @Summary Schedule a new match
// @Tags scoring
// @Accept json
// @Produce json
// @Param request body CreateMatchRequest true "Match details"
// @Success 201 {object} responses.SuccessResponse
// @Router /matches [post]
func (sc *ScoringController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	match, err := sc.service.CreateMatch(CreateMatchInput{
		TeamAID:      req.TeamAID,
		TeamBID:      req.TeamBID,
		TournamentID: req.TournamentID,
		OversLimit:   req.OversLimit,
	})
	if err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match scheduled", match)
}

// GetMatch godoc
// @Summary Get a match
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id} [get]
func (sc *ScoringController) GetMatch(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	match, err := sc.service.Match(matchID)
	if err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", match)
}

// GetMatches godoc
// @Summary List matches
// @Tags scoring
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} responses.PaginatedResponse
// @Router /matches [get]
func (sc *ScoringController) GetMatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	filters := map[string]interface{}{}
	if status := c.Query("status"); status != "" {
		filters["status = ?"] = status
	}
	if tournament := c.Query("tournament_id"); tournament != "" {
		filters["tournament_id = ?"] = tournament
	}

	matches, total, err := sc.service.Matches(filters, page, pageSize)
	if err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", matches, total, page, pageSize)
}

// GetState godoc
// @Summary Get live derived state for a match
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/state [get]
func (sc *ScoringController) GetState(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	match, state, err := sc.service.State(matchID)
	if err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"match": match,
		"state": state,
	})
}

// StartMatch godoc
// @Summary Start a match (toss + opening players)
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body StartMatchRequest true "Toss and openers"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/start [post]
func (sc *ScoringController) StartMatch(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	var req StartMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	match, err := sc.service.Start(matchID, StartInput{
		TossWinnerTeamID: req.TossWinnerTeamID,
		TossDecision:     req.TossDecision,
		StrikerID:        req.StrikerID,
		NonStrikerID:     req.NonStrikerID,
		BowlerID:         req.BowlerID,
	})
	if err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match is live", match)
}

// RecordBall godoc
// @Summary Record one delivery
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body RecordBallRequest true "Delivery details"
// @Success 201 {object} responses.SuccessResponse
// @Router /matches/{id}/balls [post]
func (sc *ScoringController) RecordBall(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	var req RecordBallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	event, state, err := sc.service.RecordBall(matchID, BallInput{
		RunsScored: req.RunsScored,
		IsWicket:   req.IsWicket,
		Extras:     req.Extras,
		ExtraType:  req.ExtraType,
	})
	if err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Ball recorded", gin.H{
		"event": event,
		"state": state,
	})
}

// UndoBall godoc
// @Summary Undo the most recent delivery
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/undo [post]
func (sc *ScoringController) UndoBall(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	removed, state, err := sc.service.Undo(matchID)
	if err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Last ball removed", gin.H{
		"removed": removed,
		"state":   state,
	})
}

// SelectBowler godoc
// @Summary Select the bowler for the next over
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body SelectPlayerRequest true "Bowler"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/bowler [post]
func (sc *ScoringController) SelectBowler(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	var req SelectPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	if err := sc.service.SelectBowler(matchID, req.PlayerID); err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Bowler selected", nil)
}

// SelectBatsman godoc
// @Summary Select a batsman for a vacant end
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body SelectBatsmanRequest true "Batsman and slot"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/batsman [post]
func (sc *ScoringController) SelectBatsman(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	var req SelectBatsmanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	slot := SlotStriker
	if req.Slot == string(SlotNonStriker) {
		slot = SlotNonStriker
	}
	if err := sc.service.SelectBatsman(matchID, req.PlayerID, slot); err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Batsman selected", nil)
}

// SwapStrike godoc
// @Summary Swap striker and non-striker
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/swap-strike [post]
func (sc *ScoringController) SwapStrike(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	if err := sc.service.SwapStrike(matchID); err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Strike swapped", nil)
}

// NextInnings godoc
// @Summary Start the second innings
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/innings/next [post]
func (sc *ScoringController) NextInnings(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	if err := sc.service.StartSecondInnings(matchID); err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Second innings started", nil)
}

// CompleteMatch godoc
// @Summary Complete a match with a result
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body CompleteMatchRequest true "Result"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/complete [post]
func (sc *ScoringController) CompleteMatch(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	var req CompleteMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	if err := sc.service.Complete(matchID, CompleteInput{
		WinningTeamID:   req.WinningTeamID,
		ManOfTheMatchID: req.ManOfTheMatchID,
		ResultSummary:   req.ResultSummary,
	}); err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match completed", nil)
}

// UpdateSettings godoc
// @Summary Update per-match scoring rules
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body UpdateSettingsRequest true "Settings"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/settings [put]
func (sc *ScoringController) UpdateSettings(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	settings, err := sc.service.UpdateSettings(matchID, *req.RebowlWideNoBall)
	if err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Settings updated", settings)
}

// GetEvents godoc
// @Summary List the ball-by-ball log for an innings
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Param innings query int false "Innings number (defaults to current)"
// @Success 200 {object} responses.SuccessResponse
// @Router /matches/{id}/events [get]
func (sc *ScoringController) GetEvents(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}
	match, err := sc.service.Match(matchID)
	if err != nil {
		sc.fail(c, err)
		return
	}
	innings := match.CurrentInnings
	if q := c.Query("innings"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || (n != 1 && n != 2) {
			responses.BadRequest(c, "Invalid innings number")
			return
		}
		innings = n
	}
	events, err := sc.service.Events(matchID, innings)
	if err != nil {
		sc.fail(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", events)
}
