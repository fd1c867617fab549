package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/hr-console/internal/domain"
	apperrors "github.com/spec-kit/hr-console/pkg/util"
)

const maxBioLength = 300

// CompletionGateway submits the forms that unlock the gated console.
type CompletionGateway interface {
	CompleteSetup(ctx context.Context, setup domain.SetupModel) error
	CompleteOnboarding(ctx context.Context, submission domain.OnboardingSubmission) error
}

// ConsoleService validates and submits administrator setup and employee onboarding.
type ConsoleService struct {
	gateway CompletionGateway
}

// NewConsoleService builds the service.
func NewConsoleService(gateway CompletionGateway) *ConsoleService {
	return &ConsoleService{gateway: gateway}
}

// CompleteSetup submits the initial organisation setup.
func (s *ConsoleService) CompleteSetup(ctx context.Context, setup domain.SetupModel) error {
	if err := ValidateSetup(setup); err != nil {
		return err
	}
	return upstreamError(s.gateway.CompleteSetup(ctx, setup))
}

// CompleteOnboarding submits the employee onboarding record.
func (s *ConsoleService) CompleteOnboarding(ctx context.Context, submission domain.OnboardingSubmission) error {
	if err := ValidateOnboarding(submission); err != nil {
		return err
	}
	return upstreamError(s.gateway.CompleteOnboarding(ctx, submission))
}

// ValidateSetup requires at least one named department and well-formed taxes.
func ValidateSetup(setup domain.SetupModel) error {
	fields := map[string]string{}
	if len(setup.Departments) == 0 {
		fields["departments"] = "There must be at least one department"
	}
	for i, d := range setup.Departments {
		if blank(d.Name) {
			fields[fmt.Sprintf("departments[%d].name", i)] = "Department name is required"
		}
	}
	for i, t := range setup.Taxes {
		if blank(t.TaxName) {
			fields[fmt.Sprintf("taxes[%d].taxName", i)] = "Tax name is required"
		}
		if t.TaxPercentage < 0 || t.TaxPercentage > 100 {
			fields[fmt.Sprintf("taxes[%d].taxPercentage", i)] = "Tax percentage must be between 0 and 100"
		}
	}
	return fieldErrors("invalid setup", fields)
}

// ValidateOnboarding checks the personal, next-of-kin and guarantor sections.
func ValidateOnboarding(sub domain.OnboardingSubmission) error {
	fields := map[string]string{}
	if utf8.RuneCountInString(sub.Bio) > maxBioLength {
		fields["bio"] = "Bio can't be longer than 300 characters"
	}
	required := []struct {
		field, value, message string
	}{
		{"stateOfOrigin", sub.StateOfOrigin, "State of origin is required"},
		{"lga", sub.LGA, "LGA is required"},
		{"nationality", sub.Nationality, "Nationality is required"},
		{"nextOfKin.fullName", sub.NextOfKin.FullName, "Next of Kin full name is required"},
		{"nextOfKin.relationship", sub.NextOfKin.Relationship, "Relationship is required"},
		{"nextOfKin.phoneNumber", sub.NextOfKin.PhoneNumber, "Phone number is required"},
	}
	for _, r := range required {
		if blank(r.value) {
			fields[r.field] = r.message
		}
	}
	for i, g := range sub.Guarantors {
		if blank(g.FullName) {
			fields[fmt.Sprintf("guarantors[%d].fullName", i)] = "Guarantor name is required"
		}
		if blank(g.Relationship) {
			fields[fmt.Sprintf("guarantors[%d].relationship", i)] = "Relationship is required"
		}
		if blank(g.PhoneNumber) {
			fields[fmt.Sprintf("guarantors[%d].phoneNumber", i)] = "Phone number is required"
		}
	}
	return fieldErrors("invalid onboarding submission", fields)
}

func fieldErrors(message string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return apperrors.NewValidationError(message, map[string]any{"fields": fields})
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
