package services

import (
	"context"
	"testing"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"no variables", "Flat message", []string{}},
		{"single", "Hi {{name}}!", []string{"name"}},
		{"multiple in order", "Hi {{name}}, call {{phone}}", []string{"name", "phone"}},
		{"duplicates collapsed", "{{name}} and {{name}} again", []string{"name"}},
		{"whitespace inside braces", "Hi {{ name }}", []string{"name"}},
		{"underscore names", "{{first_name}}", []string{"first_name"}},
		{"malformed braces ignored", "Hi {name} and {{ 9bad }}", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVariables(tt.content))
		})
	}
}

func TestTemplateService_GetByType(t *testing.T) {
	repo := newFakeTemplateRepo()
	svc := NewTemplateService(repo)
	ctx := context.Background()
	businessID := primitive.NewObjectID()

	_, err := svc.Create(ctx, &models.Template{Name: "Promo", Content: "Sale is on!", Type: "promotional"}, businessID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Template{Name: "Reminder", Content: "See you soon"}, businessID)
	require.NoError(t, err)

	promos, err := svc.GetByType(ctx, businessID, "promotional")
	require.NoError(t, err)
	require.Len(t, promos, 1)
	assert.Equal(t, "Promo", promos[0].Name)

	// untyped templates default to generic on create
	generic, err := svc.GetByType(ctx, businessID, "generic")
	require.NoError(t, err)
	require.Len(t, generic, 1)
	assert.Equal(t, "Reminder", generic[0].Name)
}

func TestRender(t *testing.T) {
	lead := &models.Lead{
		Name:    "Ada",
		Phone:   "2348010000001",
		Email:   "ada@example.com",
		Segment: models.SegmentHot,
	}

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"substitutes fields", "Hi {{name}} ({{segment}})", "Hi Ada (hot)"},
		{"case-insensitive names", "Hi {{Name}}", "Hi Ada"},
		{"unknown placeholder left in place", "Your code: {{code}}", "Your code: {{code}}"},
		{"plain text untouched", "No placeholders here", "No placeholders here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.content, lead))
		})
	}
}

func TestRender_NilLead(t *testing.T) {
	assert.Equal(t, "Hi {{name}}", Render("Hi {{name}}", nil))
}

func TestRender_EmptyFieldLeftInPlace(t *testing.T) {
	lead := &models.Lead{Name: "Ada"} // no email
	assert.Equal(t, "Mail: {{email}}", Render("Mail: {{email}}", lead))
}
