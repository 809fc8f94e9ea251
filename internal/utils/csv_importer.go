package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/campaignhq/campaign-backend/internal/models"
)

// LeadImportResult summarises a CSV import run
type LeadImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ParseLeadsCSV reads leads from a CSV stream. The header row must contain
// at least "name" and "phone"; "email", "segment", "source" and "notes" are
// optional. Rows with a missing phone or an unknown segment are skipped and
// reported, not fatal: a single bad row should not abort a 10k-row import.
func ParseLeadsCSV(r io.Reader) ([]*models.Lead, *LeadImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["phone"]; !ok {
		return nil, nil, fmt.Errorf("CSV header must contain a phone column")
	}

	result := &LeadImportResult{}
	var leads []*models.Lead
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		lead := &models.Lead{
			Name:    field(record, cols, "name"),
			Phone:   normalizePhone(field(record, cols, "phone")),
			Email:   field(record, cols, "email"),
			Segment: strings.ToLower(field(record, cols, "segment")),
			Source:  field(record, cols, "source"),
			Notes:   field(record, cols, "notes"),
		}
		if lead.Segment == "" {
			lead.Segment = models.SegmentCold
		}

		if lead.Phone == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: missing phone", line))
			continue
		}
		if !models.ValidSegment(lead.Segment) {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: unknown segment %q", line, lead.Segment))
			continue
		}

		leads = append(leads, lead)
		result.Imported++
	}

	return leads, result, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")
	return strings.ReplaceAll(phone, " ", "")
}
