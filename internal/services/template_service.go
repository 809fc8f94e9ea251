package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var templateVarPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// TemplateService handles message template operations
type TemplateService struct {
	templateRepo repositories.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo repositories.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// Create creates a template, extracting its {{variable}} placeholders
func (s *TemplateService) Create(ctx context.Context, template *models.Template, businessID primitive.ObjectID) (*models.Template, error) {
	template.BusinessID = businessID
	template.Variables = ExtractVariables(template.Content)
	if template.Type == "" {
		template.Type = "generic"
	}
	template.IsActive = true
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// GetByID retrieves a template by ID
func (s *TemplateService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Template, error) {
	return s.templateRepo.FindByID(ctx, id)
}

// GetByBusiness lists templates for a business
func (s *TemplateService) GetByBusiness(ctx context.Context, businessID primitive.ObjectID) ([]*models.Template, error) {
	return s.templateRepo.FindByBusiness(ctx, businessID)
}

// GetByType lists a business's templates of a single type
func (s *TemplateService) GetByType(ctx context.Context, businessID primitive.ObjectID, templateType string) ([]*models.Template, error) {
	return s.templateRepo.FindByType(ctx, businessID, templateType)
}

// Update updates a template and re-extracts its variables
func (s *TemplateService) Update(ctx context.Context, template *models.Template) error {
	template.Variables = ExtractVariables(template.Content)
	return s.templateRepo.Update(ctx, template)
}

// Delete deletes a template
func (s *TemplateService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.templateRepo.Delete(ctx, id)
}

// ExtractVariables returns the distinct {{variable}} names in content, in
// order of first appearance
func ExtractVariables(content string) []string {
	matches := templateVarPattern.FindAllStringSubmatch(content, -1)
	seen := map[string]bool{}
	variables := []string{}
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			variables = append(variables, m[1])
		}
	}
	return variables
}

// Render substitutes a lead's fields into a template. Placeholders with no
// matching value are left in place so a preview makes the gap visible.
func Render(content string, lead *models.Lead) string {
	if lead == nil {
		return content
	}
	values := map[string]string{
		"name":    lead.Name,
		"phone":   lead.Phone,
		"email":   lead.Email,
		"segment": lead.Segment,
	}
	return templateVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := templateVarPattern.FindStringSubmatch(match)[1]
		if value, ok := values[strings.ToLower(name)]; ok && value != "" {
			return value
		}
		return match
	})
}
