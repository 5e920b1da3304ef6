// Package types provides type definitions for structured data used throughout the brand content generator.
package types

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Tone is the voice the generated copy should carry.
type Tone string

// Supported tones.
const (
	ToneFormal     Tone = "formal"
	ToneSemiformal Tone = "semiformal"
	ToneCasual     Tone = "casual"
	TonePlayful    Tone = "playful"
)

// DesignStyle is the visual direction for the generated site.
type DesignStyle string

// Supported design styles.
const (
	StyleModern       DesignStyle = "modern"
	StyleMinimalistic DesignStyle = "minimalistic"
	StyleCorporate    DesignStyle = "corporate"
	StyleArtistic     DesignStyle = "artistic"
)

// BrandRequest represents the branding parameters for one generation run.
// Normalize must be called before Validate so that enum values and the hex
// color are in canonical form.
type BrandRequest struct {
	CompanyName   string `json:"company_name" validate:"required"`
	BrandIdentity string `json:"brand_identity" validate:"required"`
	Tone          string `json:"tone" validate:"required,oneof=formal semiformal casual playful"`
	DesignStyle   string `json:"design_style" validate:"required,oneof=modern minimalistic corporate artistic"`
	PrimaryColor  string `json:"primary_color" validate:"required,brandcolor"`
}

// brandColorPattern accepts #RGB and #RRGGBB only. The stock hexcolor tag
// also admits 4- and 8-digit alpha forms, which the request contract excludes.
var brandColorPattern = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("brandcolor", func(fl validator.FieldLevel) bool {
		return brandColorPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register brandcolor validation: %v", err))
	}
	return v
}

// Normalize trims whitespace and canonicalizes case: enums are lowercased,
// the hex color is uppercased. Company name and identity keep their casing.
func (r *BrandRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.BrandIdentity = strings.TrimSpace(r.BrandIdentity)
	r.Tone = strings.ToLower(strings.TrimSpace(r.Tone))
	r.DesignStyle = strings.ToLower(strings.TrimSpace(r.DesignStyle))
	r.PrimaryColor = strings.ToUpper(strings.TrimSpace(r.PrimaryColor))
}

// Validate validates the BrandRequest using the validator, accumulating all
// field violations into a single ValidationError.
func (r *BrandRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Fields: []FieldError{{Field: "request", Message: err.Error()}}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   jsonFieldName(fe.StructField()),
			Message: constraintMessage(fe),
		})
	}
	return &ValidationError{Fields: fields}
}

// FieldError names a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every violated constraint of a BrandRequest.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// jsonFieldName maps struct field names to their JSON wire names.
func jsonFieldName(structField string) string {
	switch structField {
	case "CompanyName":
		return "company_name"
	case "BrandIdentity":
		return "brand_identity"
	case "Tone":
		return "tone"
	case "DesignStyle":
		return "design_style"
	case "PrimaryColor":
		return "primary_color"
	}
	return strings.ToLower(structField)
}

// constraintMessage renders a human-readable message for a violated tag.
func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required and must not be empty"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "brandcolor":
		return "must be a HEX color in #RGB or #RRGGBB form (e.g., #F57 or #FF5733)"
	}
	return fmt.Sprintf("failed constraint %q", fe.Tag())
}

// StoredFile describes a locally persisted artifact.
type StoredFile struct {
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
	Size     int64  `json:"size"`
}

// PublishedObject describes an artifact uploaded to the object store,
// including its time-limited presigned access URL.
type PublishedObject struct {
	Bucket    string    `json:"bucket"`
	Key       string    `json:"s3_key"`
	Region    string    `json:"region"`
	URL       string    `json:"url"`
	URLExpiry time.Time `json:"url_expires_at"`
}

// ObjectSummary is one entry in an object-store listing.
type ObjectSummary struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	URL          string    `json:"url,omitempty"`
}

// ConfigStatus reports the result of the object-store configuration probe.
type ConfigStatus struct {
	BucketReachable bool   `json:"bucket_reachable"`
	Bucket          string `json:"bucket_name"`
	Region          string `json:"region"`
}

// Envelope statuses.
const (
	StatusComplete = "complete"
	StatusPartial  = "partial"
)

// ResultEnvelope aggregates the outcome of one full pipeline run. A publish
// failure after a successful local write is reported as a partial success:
// Success is false, Status is "partial", and S3Error carries the cause while
// LocalFile remains set so the artifact stays retrievable via /download.
type ResultEnvelope struct {
	Success     bool             `json:"success"`
	Status      string           `json:"status"`
	RunID       string           `json:"run_id"`
	CompanyName string           `json:"company_name"`
	GeneratedAt time.Time        `json:"generated_at"`
	LocalFile   *StoredFile      `json:"local_file,omitempty"`
	S3          *PublishedObject `json:"s3,omitempty"`
	S3Error     string           `json:"s3_error,omitempty"`
}
