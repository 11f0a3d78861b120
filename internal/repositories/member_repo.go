package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByUserAndOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.Member, error)
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Member, error)
	// GetLatestByUser returns the user's most recent membership; when a user
	// belongs to several organizations the newest one wins as the default
	// active organization.
	GetLatestByUser(ctx context.Context, userID uuid.UUID) (*models.Member, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.Member, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Member, error)
	UpdateRole(ctx context.Context, organizationID, id uuid.UUID, role string) error
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	CountByRole(ctx context.Context, organizationID uuid.UUID, role string) (int, error)
}

type memberRepo struct {
	db Database
}

func NewMemberRepository(db Database) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO members (id, user_id, organization_id, role, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, member.ID, member.UserID, member.OrganizationID, member.Role)
	return err
}

func (r *memberRepo) GetByUserAndOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.Member, error) {
	member := &models.Member{}
	query := `
		SELECT id, user_id, organization_id, role, created_at
		FROM members
		WHERE user_id = $1 AND organization_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, userID, organizationID).Scan(&member.ID, &member.UserID, &member.OrganizationID, &member.Role, &member.CreatedAt)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *memberRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Member, error) {
	member := &models.Member{}
	query := `
		SELECT id, user_id, organization_id, role, created_at
		FROM members
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(&member.ID, &member.UserID, &member.OrganizationID, &member.Role, &member.CreatedAt)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *memberRepo) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*models.Member, error) {
	member := &models.Member{}
	query := `
		SELECT id, user_id, organization_id, role, created_at
		FROM members
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&member.ID, &member.UserID, &member.OrganizationID, &member.Role, &member.CreatedAt)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *memberRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.Member, error) {
	query := `
		SELECT id, user_id, organization_id, role, created_at
		FROM members
		WHERE organization_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		if err := rows.Scan(&member.ID, &member.UserID, &member.OrganizationID, &member.Role, &member.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *memberRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Member, error) {
	query := `
		SELECT id, user_id, organization_id, role, created_at
		FROM members
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		if err := rows.Scan(&member.ID, &member.UserID, &member.OrganizationID, &member.Role, &member.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *memberRepo) UpdateRole(ctx context.Context, organizationID, id uuid.UUID, role string) error {
	query := `UPDATE members SET role = $1 WHERE organization_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, role, organizationID, id)
	return err
}

func (r *memberRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM members WHERE organization_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, organizationID, id)
	return err
}

func (r *memberRepo) CountByRole(ctx context.Context, organizationID uuid.UUID, role string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM members WHERE organization_id = $1 AND role = $2`
	err := r.db.QueryRow(ctx, query, organizationID, role).Scan(&count)
	return count, err
}
