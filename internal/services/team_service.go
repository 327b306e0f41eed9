package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/constants"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrTeamNotFound      = notFoundError("team not found")
	ErrTeamNameRequired  = validationError("team name cannot be empty")
	ErrTeamNameTooLong   = validationError("team name is too long")
	ErrNoMembersSelected = validationError("select at least one team member")
	ErrUnknownMember     = validationError("one or more selected users do not exist")
)

// TeamService provides business logic for teams and their membership.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	log      *zap.SugaredLogger
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, log *zap.SugaredLogger) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		log:      log,
	}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	Name      string
	MemberIDs []uint64
}

// CreateTeam creates a team together with its first members.
func (s *TeamService) CreateTeam(ctx context.Context, actor Actor, input CreateTeamInput) (*models.Team, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if utf8.RuneCountInString(name) > constants.MaxTeamNameLength {
		return nil, ErrTeamNameTooLong
	}

	memberIDs, err := s.validateMemberIDs(ctx, input.MemberIDs)
	if err != nil {
		return nil, err
	}

	team := &models.Team{Name: name}
	if err := s.teamRepo.CreateWithMembers(ctx, team, memberIDs); err != nil {
		return nil, persistenceError(s.log, "create team", err)
	}

	s.log.Infow("team created", "team_id", team.ID, "members", len(memberIDs), "actor_id", actor.UserID)
	return team, nil
}

// AddTeamMembers links more users to an existing team. Users that are
// already members are skipped.
func (s *TeamService) AddTeamMembers(ctx context.Context, actor Actor, teamID uint64, userIDs []uint64) (*models.Team, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, ErrNoMembersSelected
	}

	team, err := s.findTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.validateMemberIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	if err := s.teamRepo.AddMembers(ctx, team.ID, memberIDs); err != nil {
		return nil, persistenceError(s.log, "add team members", err)
	}

	s.log.Infow("team members added", "team_id", team.ID, "members", len(memberIDs), "actor_id", actor.UserID)
	return team, nil
}

// ListTeams returns every team.
func (s *TeamService) ListTeams(ctx context.Context, actor Actor) ([]models.Team, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, persistenceError(s.log, "list teams", err)
	}
	return teams, nil
}

// TeamMembers returns the users currently in a team.
func (s *TeamService) TeamMembers(ctx context.Context, actor Actor, teamID uint64) ([]models.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if _, err := s.findTeam(ctx, teamID); err != nil {
		return nil, err
	}

	users, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, persistenceError(s.log, "list team members", err)
	}
	return users, nil
}

// NonTeamMembers returns the users that could still be added to a team.
func (s *TeamService) NonTeamMembers(ctx context.Context, actor Actor, teamID uint64) ([]models.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if _, err := s.findTeam(ctx, teamID); err != nil {
		return nil, err
	}

	users, err := s.teamRepo.ListNonMembers(ctx, teamID)
	if err != nil {
		return nil, persistenceError(s.log, "list non members", err)
	}
	return users, nil
}

func (s *TeamService) findTeam(ctx context.Context, teamID uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, lookupError(s.log, "find team", err, ErrTeamNotFound)
	}
	return team, nil
}

// validateMemberIDs dedupes the selection and checks every id names a user.
func (s *TeamService) validateMemberIDs(ctx context.Context, userIDs []uint64) ([]uint64, error) {
	if len(userIDs) == 0 {
		return nil, ErrNoMembersSelected
	}

	ids := uniqueUint64(userIDs)

	count, err := s.userRepo.CountByIDs(ctx, ids)
	if err != nil {
		return nil, persistenceError(s.log, "verify users", err)
	}
	if int(count) != len(ids) {
		return nil, ErrUnknownMember
	}

	return ids, nil
}
