package services

import (
	"context"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests.

type fakeCampaignRepo struct {
	campaigns map[primitive.ObjectID]*models.Campaign
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: map[primitive.ObjectID]*models.Campaign{}}
}

func (r *fakeCampaignRepo) Create(_ context.Context, campaign *models.Campaign) error {
	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	campaign.CreatedAt = time.Now()
	r.campaigns[campaign.ID] = campaign
	return nil
}

func (r *fakeCampaignRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	campaign, ok := r.campaigns[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	// Hand out a copy the way a real store decodes a fresh document, so
	// callers cannot mutate the stored state in place.
	c := *campaign
	return &c, nil
}

func (r *fakeCampaignRepo) FindByBusiness(_ context.Context, businessID primitive.ObjectID, _, _ int) ([]models.Campaign, error) {
	var out []models.Campaign
	for _, c := range r.campaigns {
		if c.BusinessID == businessID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCampaignRepo) FindDueScheduled(_ context.Context, now time.Time) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, c := range r.campaigns {
		if c.Status == models.CampaignStatusScheduled && !c.ScheduledAt.After(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCampaignRepo) Update(_ context.Context, campaign *models.Campaign) error {
	if _, ok := r.campaigns[campaign.ID]; !ok {
		return repositories.ErrNotFound
	}
	c := *campaign
	r.campaigns[campaign.ID] = &c
	return nil
}

func (r *fakeCampaignRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	campaign, ok := r.campaigns[id]
	if !ok {
		return repositories.ErrNotFound
	}
	campaign.Status = status
	return nil
}

func (r *fakeCampaignRepo) IncrementCounters(_ context.Context, id primitive.ObjectID, sent, failed, recipients int) error {
	campaign, ok := r.campaigns[id]
	if !ok {
		return repositories.ErrNotFound
	}
	campaign.SentCount += sent
	campaign.FailedCount += failed
	campaign.TotalRecipients += recipients
	return nil
}

func (r *fakeCampaignRepo) Count(_ context.Context, businessID primitive.ObjectID) (int64, error) {
	var n int64
	for _, c := range r.campaigns {
		if c.BusinessID == businessID {
			n++
		}
	}
	return n, nil
}

type fakeTemplateRepo struct {
	templates map[primitive.ObjectID]*models.Template
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[primitive.ObjectID]*models.Template{}}
}

func (r *fakeTemplateRepo) Create(_ context.Context, template *models.Template) error {
	if template.ID.IsZero() {
		template.ID = primitive.NewObjectID()
	}
	r.templates[template.ID] = template
	return nil
}

func (r *fakeTemplateRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Template, error) {
	template, ok := r.templates[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return template, nil
}

func (r *fakeTemplateRepo) FindByBusiness(_ context.Context, businessID primitive.ObjectID) ([]*models.Template, error) {
	var out []*models.Template
	for _, t := range r.templates {
		if t.BusinessID == businessID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) FindByType(_ context.Context, businessID primitive.ObjectID, templateType string) ([]*models.Template, error) {
	var out []*models.Template
	for _, t := range r.templates {
		if t.BusinessID == businessID && t.Type == templateType {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, template *models.Template) error {
	r.templates[template.ID] = template
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.templates, id)
	return nil
}

type fakeLeadRepo struct {
	leads []*models.Lead
}

func (r *fakeLeadRepo) Create(_ context.Context, lead *models.Lead) error {
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	r.leads = append(r.leads, lead)
	return nil
}

func (r *fakeLeadRepo) CreateMany(ctx context.Context, leads []*models.Lead) error {
	for _, lead := range leads {
		if err := r.Create(ctx, lead); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeLeadRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Lead, error) {
	for _, lead := range r.leads {
		if lead.ID == id {
			return lead, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeLeadRepo) FindByPhone(_ context.Context, businessID primitive.ObjectID, phone string) (*models.Lead, error) {
	for _, lead := range r.leads {
		if lead.BusinessID == businessID && lead.Phone == phone {
			return lead, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeLeadRepo) FindByBusiness(_ context.Context, businessID primitive.ObjectID, _, _ int) ([]*models.Lead, error) {
	var out []*models.Lead
	for _, lead := range r.leads {
		if lead.BusinessID == businessID {
			out = append(out, lead)
		}
	}
	return out, nil
}

func (r *fakeLeadRepo) FindBySegments(_ context.Context, businessID primitive.ObjectID, segments []string) ([]*models.Lead, error) {
	wanted := map[string]bool{}
	for _, s := range segments {
		wanted[s] = true
	}
	var out []*models.Lead
	for _, lead := range r.leads {
		if lead.BusinessID == businessID && wanted[lead.Segment] {
			out = append(out, lead)
		}
	}
	return out, nil
}

func (r *fakeLeadRepo) CountBySegment(_ context.Context, businessID primitive.ObjectID, segment string) (int64, error) {
	var n int64
	for _, lead := range r.leads {
		if lead.BusinessID == businessID && lead.Segment == segment {
			n++
		}
	}
	return n, nil
}

func (r *fakeLeadRepo) Update(_ context.Context, _ *models.Lead) error { return nil }

func (r *fakeLeadRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, lead := range r.leads {
		if lead.ID == id {
			r.leads = append(r.leads[:i], r.leads[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeOptOutRepo struct {
	optedOut map[string]string // phone -> reason
}

func newFakeOptOutRepo() *fakeOptOutRepo {
	return &fakeOptOutRepo{optedOut: map[string]string{}}
}

func (r *fakeOptOutRepo) Add(_ context.Context, phone, reason string) error {
	r.optedOut[phone] = reason
	return nil
}

func (r *fakeOptOutRepo) Remove(_ context.Context, phone string) error {
	delete(r.optedOut, phone)
	return nil
}

func (r *fakeOptOutRepo) IsOptedOut(_ context.Context, phone string) (bool, error) {
	_, ok := r.optedOut[phone]
	return ok, nil
}

func (r *fakeOptOutRepo) FindAll(_ context.Context) ([]*models.OptOutEntry, error) {
	var out []*models.OptOutEntry
	for phone, reason := range r.optedOut {
		out = append(out, &models.OptOutEntry{Phone: phone, Reason: reason})
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings models.MessagingSettings
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*models.MessagingSettings, error) {
	s := r.settings
	return &s, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, settings *models.MessagingSettings) error {
	r.settings = *settings
	return nil
}

type fakeConversationRepo struct {
	conversations map[primitive.ObjectID]*models.Conversation
	messages      []*models.ConversationMessage
	readCount     map[primitive.ObjectID]int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: map[primitive.ObjectID]*models.Conversation{},
		readCount:     map[primitive.ObjectID]int{},
	}
}

func (r *fakeConversationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return conversation, nil
}

func (r *fakeConversationRepo) FindByBusiness(_ context.Context, businessID primitive.ObjectID, _, _ int) ([]*models.Conversation, error) {
	var out []*models.Conversation
	for _, c := range r.conversations {
		if c.BusinessID == businessID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) FindOrCreate(_ context.Context, businessID, leadID primitive.ObjectID, phone string) (*models.Conversation, error) {
	for _, c := range r.conversations {
		if c.BusinessID == businessID && c.Phone == phone {
			return c, nil
		}
	}
	conversation := &models.Conversation{
		ID:         primitive.NewObjectID(),
		BusinessID: businessID,
		LeadID:     leadID,
		Phone:      phone,
	}
	r.conversations[conversation.ID] = conversation
	return conversation, nil
}

func (r *fakeConversationRepo) AppendMessage(_ context.Context, message *models.ConversationMessage) error {
	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeConversationRepo) FindMessages(_ context.Context, conversationID primitive.ObjectID, _, _ int) ([]*models.ConversationMessage, error) {
	var out []*models.ConversationMessage
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) MarkRead(_ context.Context, id primitive.ObjectID) error {
	r.readCount[id]++
	return nil
}
