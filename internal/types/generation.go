package types

import (
	"github.com/go-playground/validator/v10"
)

// Tone selects the writing style directive passed to the completion service.
type Tone string

// Supported tones.
const (
	ToneFormal       Tone = "formal"
	ToneProfessional Tone = "professional"
	ToneTechnical    Tone = "technical"
)

// Length selects the target character-count band for generated content.
type Length string

// Supported lengths. Short maps to roughly 50-100 characters, medium to
// 100-300, long to 300-500.
const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// FieldSpec declares one slot of a target application document. Supplied by
// the caller and treated as read-only.
type FieldSpec struct {
	ID          string `json:"id" validate:"required"`
	Label       string `json:"label" validate:"required"`
	Type        string `json:"type,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// FieldContent is the generated text for one FieldSpec. It is created once
// per field per generation run and never mutated afterwards.
type FieldContent struct {
	FieldID    string  `json:"fieldId"`
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
	WordCount  int     `json:"wordCount"`
}

// CompanyInfo carries the applicant company's registered profile.
type CompanyInfo struct {
	CompanyName      string `json:"companyName" validate:"required"`
	CEOName          string `json:"ceoName,omitempty"`
	BusinessNumber   string `json:"businessNumber,omitempty"`
	Industry         string `json:"industry,omitempty"`
	MainProducts     string `json:"mainProducts,omitempty"`
	CoreTechnologies string `json:"coreTechnologies,omitempty"`
	AnnualSales      string `json:"annualSales,omitempty"`
	EmployeeCount    string `json:"employeeCount,omitempty"`
	MajorClients     string `json:"majorClients,omitempty"`
}

// ApplicationPeriod is the open/close window of a support program.
type ApplicationPeriod struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// ProgramInfo describes the government support program being applied for.
type ProgramInfo struct {
	Name              string            `json:"name" validate:"required"`
	Organization      string            `json:"organization,omitempty"`
	Category          string            `json:"category,omitempty"`
	SupportAmount     string            `json:"supportAmount,omitempty"`
	ApplicationPeriod ApplicationPeriod `json:"applicationPeriod,omitempty"`
}

// GenerationOptions are optional style directives for content generation.
type GenerationOptions struct {
	Tone   Tone     `json:"tone,omitempty" validate:"omitempty,oneof=formal professional technical"`
	Length Length   `json:"length,omitempty" validate:"omitempty,oneof=short medium long"`
	Focus  []string `json:"focus,omitempty"`
}

// GenerationRequest is the transient input to a content generation run.
// Persistence of requests is a caller concern.
type GenerationRequest struct {
	Fields      []FieldSpec        `json:"fields" validate:"required,min=1,dive"`
	CompanyInfo CompanyInfo        `json:"companyInfo" validate:"required"`
	ProgramInfo ProgramInfo        `json:"programInfo" validate:"required"`
	Options     *GenerationOptions `json:"options,omitempty" validate:"omitempty"`
}

// Validate validates the GenerationRequest using the validator.
func (r *GenerationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ResolvedTone returns the requested tone, defaulting to professional.
func (r *GenerationRequest) ResolvedTone() Tone {
	if r.Options != nil && r.Options.Tone != "" {
		return r.Options.Tone
	}
	return ToneProfessional
}

// ResolvedLength returns the requested length band, defaulting to medium.
func (r *GenerationRequest) ResolvedLength() Length {
	if r.Options != nil && r.Options.Length != "" {
		return r.Options.Length
	}
	return LengthMedium
}
