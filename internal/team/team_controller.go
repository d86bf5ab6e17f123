package team

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crickside/internal/middleware"
	"github.com/DhavalSuthar-24/crickside/pkg/responses"
)

const (
	RolePlayer  = "player"
	RoleCaptain = "captain"
)

// TeamController handles team-related HTTP requests.
type TeamController struct {
	repo TeamRepository
}

// NewTeamController creates a new team controller.
func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

// --- DTOs for requests ---

type CreateTeamRequest struct {
	Name         string `json:"name" binding:"required,min=3,max=100"`
	Description  string `json:"description" binding:"max=1000"`
	Logo         string `json:"logo"`
	TournamentID *uint  `json:"tournament_id,omitempty"`
}

type UpdateTeamRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=3,max=100"`
	Description  *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Logo         *string `json:"logo,omitempty"`
	TournamentID *uint   `json:"tournament_id,omitempty"`
}

type AddMemberRequest struct {
	UserID       uint   `json:"user_id" binding:"required"`
	Role         string `json:"role" binding:"omitempty,oneof=player captain"`
	IsCaptain    bool   `json:"is_captain"`
	BattingOrder int    `json:"batting_order" binding:"omitempty,min=1,max=11"`
}

func teamIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return 0, false
	}
	return uint(id), true
}

// CreateTeam godoc
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Param request body CreateTeamRequest true "Team details"
// @Success 201 {object} responses.SuccessResponse
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	existing, err := tc.repo.GetTeamByName(req.Name)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "A team with this name already exists")
		return
	}

	team := Team{
		Name:         req.Name,
		Description:  req.Description,
		Logo:         req.Logo,
		CreatedByID:  userID,
		TournamentID: req.TournamentID,
	}
	if err := tc.repo.CreateTeam(&team); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created", team)
}

// GetTeams godoc
// @Summary List teams
// @Tags teams
// @Produce json
// @Success 200 {object} responses.PaginatedResponse
// @Router /teams [get]
func (tc *TeamController) GetTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filters := map[string]interface{}{}
	if tournament := c.Query("tournament_id"); tournament != "" {
		filters["tournament_id = ?"] = tournament
	}

	teams, total, err := tc.repo.GetAllTeams(page, limit, filters)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", teams, total, page, limit)
}

// GetTeam godoc
// @Summary Get a team
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{id} [get]
func (tc *TeamController) GetTeam(c *gin.Context) {
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}
	team, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", team)
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	isCreator, err := tc.repo.IsUserTeamCreator(teamID, userID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if !isCreator {
		responses.Forbidden(c, "Only the team creator can update the team")
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	team, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.Logo != nil {
		team.Logo = *req.Logo
	}
	if req.TournamentID != nil {
		team.TournamentID = req.TournamentID
	}
	if err := tc.repo.UpdateTeam(team); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated", team)
}

// GetRoster godoc
// @Summary List the active roster of a team
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{id}/members [get]
func (tc *TeamController) GetRoster(c *gin.Context) {
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}
	members, err := tc.repo.GetTeamMembers(teamID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", members)
}

// AddMember godoc
// @Summary Add a player to a team roster
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body AddMemberRequest true "Member details"
// @Success 201 {object} responses.SuccessResponse
// @Router /teams/{id}/members [post]
func (tc *TeamController) AddMember(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}

	isCreator, err := tc.repo.IsUserTeamCreator(teamID, userID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if !isCreator {
		responses.Forbidden(c, "Only the team creator can manage the roster")
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	existing, err := tc.repo.GetTeamMember(teamID, req.UserID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "Player is already on this roster")
		return
	}

	role := req.Role
	if role == "" {
		role = RolePlayer
	}
	member := TeamMember{
		TeamID:       teamID,
		UserID:       req.UserID,
		Role:         role,
		JoinedAt:     time.Now(),
		IsActive:     true,
		IsCaptain:    req.IsCaptain,
		BattingOrder: req.BattingOrder,
	}
	if err := tc.repo.AddTeamMember(&member); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Player added to roster", member)
}

// RemoveMember godoc
// @Summary Remove a player from a team roster
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Param userId path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{id}/members/{userId} [delete]
func (tc *TeamController) RemoveMember(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	teamID, ok := teamIDParam(c)
	if !ok {
		return
	}
	memberID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	isCreator, err := tc.repo.IsUserTeamCreator(teamID, userID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if !isCreator {
		responses.Forbidden(c, "Only the team creator can manage the roster")
		return
	}

	if err := tc.repo.RemoveTeamMember(teamID, uint(memberID)); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player removed from roster", nil)
}
