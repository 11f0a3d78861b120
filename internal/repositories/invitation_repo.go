package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.Invitation, error)
	GetPendingByEmailAndOrganization(ctx context.Context, email string, organizationID uuid.UUID) (*models.Invitation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type invitationRepo struct {
	db Database
}

func NewInvitationRepository(db Database) InvitationRepository {
	return &invitationRepo{db: db}
}

func (r *invitationRepo) Create(ctx context.Context, invitation *models.Invitation) error {
	query := `
		INSERT INTO invitations (id, organization_id, email, role, status, inviter_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, invitation.ID, invitation.OrganizationID, invitation.Email, invitation.Role, invitation.Status, invitation.InviterID, invitation.ExpiresAt)
	return err
}

func (r *invitationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	invitation := &models.Invitation{}
	query := `
		SELECT id, organization_id, email, role, status, inviter_id, expires_at, created_at
		FROM invitations
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&invitation.ID, &invitation.OrganizationID, &invitation.Email, &invitation.Role, &invitation.Status, &invitation.InviterID, &invitation.ExpiresAt, &invitation.CreatedAt)
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

func (r *invitationRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.Invitation, error) {
	query := `
		SELECT id, organization_id, email, role, status, inviter_id, expires_at, created_at
		FROM invitations
		WHERE organization_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		invitation := &models.Invitation{}
		if err := rows.Scan(&invitation.ID, &invitation.OrganizationID, &invitation.Email, &invitation.Role, &invitation.Status, &invitation.InviterID, &invitation.ExpiresAt, &invitation.CreatedAt); err != nil {
			return nil, err
		}
		invitations = append(invitations, invitation)
	}
	return invitations, rows.Err()
}

func (r *invitationRepo) GetPendingByEmailAndOrganization(ctx context.Context, email string, organizationID uuid.UUID) (*models.Invitation, error) {
	invitation := &models.Invitation{}
	query := `
		SELECT id, organization_id, email, role, status, inviter_id, expires_at, created_at
		FROM invitations
		WHERE email = $1 AND organization_id = $2 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, email, organizationID).Scan(&invitation.ID, &invitation.OrganizationID, &invitation.Email, &invitation.Role, &invitation.Status, &invitation.InviterID, &invitation.ExpiresAt, &invitation.CreatedAt)
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

func (r *invitationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE invitations SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}
