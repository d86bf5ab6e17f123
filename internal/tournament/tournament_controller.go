package tournament

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crickside/internal/middleware"
	"github.com/DhavalSuthar-24/crickside/pkg/responses"
)

// TournamentController handles tournament HTTP requests.
type TournamentController struct {
	repo TournamentRepository
}

// NewTournamentController creates a new tournament controller.
func NewTournamentController(repo TournamentRepository) *TournamentController {
	return &TournamentController{repo: repo}
}

// CreateTournamentRequest defines the payload for creating a tournament.
type CreateTournamentRequest struct {
	Name                 string    `json:"name" binding:"required,min=3,max=200"`
	Description          string    `json:"description" binding:"max=2000"`
	StartDate            time.Time `json:"start_date" binding:"required"`
	EndDate              time.Time `json:"end_date" binding:"required"`
	RegistrationDeadline time.Time `json:"registration_deadline" binding:"required"`
	MaxTeams             int       `json:"max_teams" binding:"required,min=2"`
}

// RegisterTeamRequest carries a team registration.
type RegisterTeamRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
}

func tournamentIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid tournament ID")
		return 0, false
	}
	return uint(id), true
}

// CreateTournament godoc
// @Summary Create a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param request body CreateTournamentRequest true "Tournament details"
// @Success 201 {object} responses.SuccessResponse
// @Router /tournaments [post]
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	if !req.EndDate.After(req.StartDate) {
		responses.BadRequest(c, "End date must be after start date")
		return
	}

	tournament := Tournament{
		Name:                 req.Name,
		Description:          req.Description,
		CreatedByUserID:      userID,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RegistrationDeadline: req.RegistrationDeadline,
		MaxTeams:             req.MaxTeams,
		Status:               "registration_open",
	}
	if err := tc.repo.CreateTournament(&tournament); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Tournament created", tournament)
}

// GetTournaments godoc
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Success 200 {object} responses.PaginatedResponse
// @Router /tournaments [get]
func (tc *TournamentController) GetTournaments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	tournaments, total, err := tc.repo.GetTournaments(page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", tournaments, total, page, pageSize)
}

// GetTournament godoc
// @Summary Get a tournament
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /tournaments/{id} [get]
func (tc *TournamentController) GetTournament(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	tournament, err := tc.repo.GetTournamentByID(id)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if tournament == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", tournament)
}

// RegisterTeam godoc
// @Summary Register a team for a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param request body RegisterTeamRequest true "Team"
// @Success 200 {object} responses.SuccessResponse
// @Router /tournaments/{id}/register [post]
func (tc *TournamentController) RegisterTeam(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	var req RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	if err := tc.repo.RegisterTeam(id, req.TeamID); err != nil {
		responses.SendError(c, http.StatusConflict, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team registered", nil)
}

// UnregisterTeam godoc
// @Summary Unregister a team from a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param request body RegisterTeamRequest true "Team"
// @Success 200 {object} responses.SuccessResponse
// @Router /tournaments/{id}/unregister [post]
func (tc *TournamentController) UnregisterTeam(c *gin.Context) {
	id, ok := tournamentIDParam(c)
	if !ok {
		return
	}
	var req RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}
	if err := tc.repo.UnregisterTeam(id, req.TeamID); err != nil {
		responses.SendError(c, http.StatusConflict, err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team unregistered", nil)
}
