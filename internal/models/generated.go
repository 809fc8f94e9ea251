package models

// GeneratedCampaign is the strategy structure produced by the AI campaign
// generator. It is read-only input: the service reduces it to a single
// CreateCampaignRequest and never stores it as-is.
type GeneratedCampaign struct {
	Strategy  CampaignStrategy    `json:"strategy"`
	Templates []GeneratedTemplate `json:"templates"`
	Schedule  []SendSchedule      `json:"schedule"`
	Insights  CampaignInsights    `json:"insights"`
}

// CampaignStrategy describes the AI's overall targeting plan
type CampaignStrategy struct {
	TargetSegments        []string          `json:"target_segments"`
	CampaignType          string            `json:"campaign_type"`
	KeyMessage            string            `json:"key_message"`
	Reasoning             string            `json:"reasoning"`
	ExpectedResponseRates map[string]string `json:"expected_response_rates"`
}

// GeneratedTemplate is one proposed message variant
type GeneratedTemplate struct {
	Message             string   `json:"message"`
	TemplateType        string   `json:"template_type"`
	PersonalizationTips []string `json:"personalization_tips"`
}

// SendSchedule is one proposed send slot for a segment
type SendSchedule struct {
	Segment      string `json:"segment"`
	SendDatetime string `json:"send_datetime"` // ISO-8601
	Priority     int    `json:"priority"`
	Reasoning    string `json:"reasoning"`
}

// CampaignInsights carries free-form advice returned alongside the strategy
type CampaignInsights struct {
	BestPractices  []string `json:"best_practices"`
	SuccessMetrics []string `json:"success_metrics"`
	FollowUpTips   []string `json:"follow_up_tips"`
}
