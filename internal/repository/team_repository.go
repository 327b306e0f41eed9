package repository

import (
	"context"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *GormTeamRepository) CreateWithMembers(ctx context.Context, team *models.Team, userIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		return insertMembers(tx, team.ID, userIDs)
	})
}

func (r *GormTeamRepository) FindByID(ctx context.Context, id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *GormTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *GormTeamRepository) ListMembers(ctx context.Context, teamID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.user_id = users.id").
		Where("team_members.team_id = ?", teamID).
		Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormTeamRepository) ListNonMembers(ctx context.Context, teamID uint64) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	memberIDs := db.Model(&models.TeamMember{}).Select("user_id").Where("team_id = ?", teamID)

	var users []models.User
	if err := db.Where("id NOT IN (?)", memberIDs).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormTeamRepository) AddMembers(ctx context.Context, teamID uint64, userIDs []uint64) error {
	return insertMembers(r.db.WithContext(ctx), teamID, userIDs)
}

func (r *GormTeamRepository) SharesTeam(ctx context.Context, userID, otherUserID uint64) (bool, error) {
	db := r.db.WithContext(ctx)
	teamIDs := db.Model(&models.TeamMember{}).Select("team_id").Where("user_id = ?", userID)

	var count int64
	err := db.Model(&models.TeamMember{}).
		Where("user_id = ? AND team_id IN (?)", otherUserID, teamIDs).
		Count(&count).Error
	return count > 0, err
}

// insertMembers relies on the unique (team_id, user_id) index so repeated
// calls with the same ids leave the membership set unchanged.
func insertMembers(db *gorm.DB, teamID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	members := make([]models.TeamMember, len(userIDs))
	for i, userID := range userIDs {
		members[i] = models.TeamMember{
			TeamID: teamID,
			UserID: userID,
		}
	}

	return db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&members).Error
}
