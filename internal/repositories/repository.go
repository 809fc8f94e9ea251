package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by all repositories when a document does not
// exist. Implementations translate their driver-specific error into this
// sentinel so callers can use errors.Is.
var ErrNotFound = errors.New("document not found")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// BusinessRepository defines the interface for business data operations
type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Business, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Business, error)
	Update(ctx context.Context, business *models.Business) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// LeadRepository defines the interface for lead data operations
type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	CreateMany(ctx context.Context, leads []*models.Lead) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lead, error)
	FindByPhone(ctx context.Context, businessID primitive.ObjectID, phone string) (*models.Lead, error)
	FindByBusiness(ctx context.Context, businessID primitive.ObjectID, page, limit int) ([]*models.Lead, error)
	FindBySegments(ctx context.Context, businessID primitive.ObjectID, segments []string) ([]*models.Lead, error)
	CountBySegment(ctx context.Context, businessID primitive.ObjectID, segment string) (int64, error)
	Update(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TemplateRepository defines the interface for template data operations
type TemplateRepository interface {
	Create(ctx context.Context, template *models.Template) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Template, error)
	FindByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Template, error)
	FindByType(ctx context.Context, businessID primitive.ObjectID, templateType string) ([]*models.Template, error)
	Update(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	FindByBusiness(ctx context.Context, businessID primitive.ObjectID, page, limit int) ([]models.Campaign, error)
	FindDueScheduled(ctx context.Context, now time.Time) ([]*models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	IncrementCounters(ctx context.Context, id primitive.ObjectID, sent, failed, recipients int) error
	Count(ctx context.Context, businessID primitive.ObjectID) (int64, error)
}

// ConversationRepository defines the interface for conversation data operations
type ConversationRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error)
	FindByBusiness(ctx context.Context, businessID primitive.ObjectID, page, limit int) ([]*models.Conversation, error)
	FindOrCreate(ctx context.Context, businessID, leadID primitive.ObjectID, phone string) (*models.Conversation, error)
	AppendMessage(ctx context.Context, message *models.ConversationMessage) error
	FindMessages(ctx context.Context, conversationID primitive.ObjectID, page, limit int) ([]*models.ConversationMessage, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
}

// OptOutRepository defines the interface for the suppression list
type OptOutRepository interface {
	Add(ctx context.Context, phone, reason string) error
	Remove(ctx context.Context, phone string) error
	IsOptedOut(ctx context.Context, phone string) (bool, error)
	FindAll(ctx context.Context) ([]*models.OptOutEntry, error)
}

// SettingsRepository defines the interface for messaging settings
type SettingsRepository interface {
	Get(ctx context.Context) (*models.MessagingSettings, error)
	Update(ctx context.Context, settings *models.MessagingSettings) error
}
