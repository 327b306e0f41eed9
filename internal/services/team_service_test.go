package services

import (
	"testing"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/stretchr/testify/suite"
)

type TeamServiceTestSuite struct {
	serviceSuite
}

func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}

func userIDs(users []models.User) []uint64 {
	ids := make([]uint64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func (s *TeamServiceTestSuite) TestCreateTeamListsMembersAndNonMembers() {
	alice, _ := s.register("alice")
	bob, _ := s.register("bob")
	carol, _ := s.register("carol")
	admin := s.admin()

	team, err := s.teams.CreateTeam(s.ctx, admin, CreateTeamInput{
		Name:      "  Backend ",
		MemberIDs: []uint64{alice.ID, bob.ID, alice.ID},
	})
	s.Require().NoError(err)
	s.Equal("Backend", team.Name)

	members, err := s.teams.TeamMembers(s.ctx, admin, team.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]uint64{alice.ID, bob.ID}, userIDs(members))

	nonMembers, err := s.teams.NonTeamMembers(s.ctx, admin, team.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]uint64{carol.ID, admin.UserID}, userIDs(nonMembers))
}

func (s *TeamServiceTestSuite) TestCreateTeamValidation() {
	alice, _ := s.register("alice")
	admin := s.admin()

	_, err := s.teams.CreateTeam(s.ctx, admin, CreateTeamInput{Name: "Backend"})
	s.ErrorIs(err, ErrNoMembersSelected)
	s.ErrorIs(err, ErrValidationFailed)

	_, err = s.teams.CreateTeam(s.ctx, admin, CreateTeamInput{Name: " ", MemberIDs: []uint64{alice.ID}})
	s.ErrorIs(err, ErrTeamNameRequired)

	_, err = s.teams.CreateTeam(s.ctx, admin, CreateTeamInput{Name: "Backend", MemberIDs: []uint64{alice.ID, 9999}})
	s.ErrorIs(err, ErrUnknownMember)

	var count int64
	s.Require().NoError(s.db.Model(&models.Team{}).Count(&count).Error)
	s.Zero(count)
}

func (s *TeamServiceTestSuite) TestTeamManagementRequiresAdmin() {
	alice, member := s.register("alice")

	_, err := s.teams.CreateTeam(s.ctx, member, CreateTeamInput{Name: "Backend", MemberIDs: []uint64{alice.ID}})
	s.ErrorIs(err, ErrForbidden)

	team := s.team("Backend", alice)
	_, err = s.teams.AddTeamMembers(s.ctx, member, team.ID, []uint64{alice.ID})
	s.ErrorIs(err, ErrForbidden)

	_, err = s.teams.ListTeams(s.ctx, Actor{})
	s.ErrorIs(err, ErrUnauthenticated)
}

func (s *TeamServiceTestSuite) TestAddTeamMembersIsIdempotent() {
	alice, _ := s.register("alice")
	bob, _ := s.register("bob")
	carol, _ := s.register("carol")
	admin := s.admin()
	team := s.team("Backend", alice)

	for i := 0; i < 2; i++ {
		_, err := s.teams.AddTeamMembers(s.ctx, admin, team.ID, []uint64{bob.ID, carol.ID, bob.ID, alice.ID})
		s.Require().NoError(err)
	}

	var rows int64
	s.Require().NoError(s.db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&rows).Error)
	s.EqualValues(3, rows)

	members, err := s.teams.TeamMembers(s.ctx, admin, team.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]uint64{alice.ID, bob.ID, carol.ID}, userIDs(members))
}

func (s *TeamServiceTestSuite) TestAddTeamMembersErrors() {
	alice, _ := s.register("alice")
	admin := s.admin()
	team := s.team("Backend", alice)

	_, err := s.teams.AddTeamMembers(s.ctx, admin, team.ID, nil)
	s.ErrorIs(err, ErrNoMembersSelected)

	_, err = s.teams.AddTeamMembers(s.ctx, admin, 9999, []uint64{alice.ID})
	s.ErrorIs(err, ErrTeamNotFound)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.teams.AddTeamMembers(s.ctx, admin, team.ID, []uint64{9999})
	s.ErrorIs(err, ErrUnknownMember)

	_, err = s.teams.TeamMembers(s.ctx, admin, 9999)
	s.ErrorIs(err, ErrTeamNotFound)
}

func (s *TeamServiceTestSuite) TestListTeams() {
	alice, member := s.register("alice")
	s.team("Ops", alice)
	s.team("Backend", alice)

	teams, err := s.teams.ListTeams(s.ctx, member)
	s.Require().NoError(err)
	s.Require().Len(teams, 2)
	s.Equal("Backend", teams[0].Name)
	s.Equal("Ops", teams[1].Name)
}
