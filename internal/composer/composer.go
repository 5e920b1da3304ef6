// Package composer builds the generation instruction from validated branding
// parameters. The tone and design-style guidance phrases are part of the
// system's domain knowledge and ship as static lookup tables keyed by the
// enum values, not as branching logic.
package composer

import (
	"fmt"

	"github.com/jonathan/brand-content-generator/internal/prompts"
	"github.com/jonathan/brand-content-generator/internal/types"
)

// toneVoice maps each tone to the voice guidance embedded into the prompt.
var toneVoice = map[types.Tone]string{
	types.ToneFormal:     "precise, authoritative language with complete sentences and no contractions; address the reader with professional distance",
	types.ToneSemiformal: "clear, approachable business language; contractions are fine, slang is not",
	types.ToneCasual:     "relaxed, conversational copy that speaks directly to the reader in second person",
	types.TonePlayful:    "light-hearted, energetic copy with wordplay and short punchy sentences",
}

// styleVisual maps each design style to the visual-pattern guidance.
var styleVisual = map[types.DesignStyle]string{
	types.StyleModern:       "bold gradients, glassmorphism cards, generous whitespace, smooth scroll animations",
	types.StyleMinimalistic: "flat surfaces, a restrained palette, thin typography, and as few decorative elements as possible",
	types.StyleCorporate:    "structured grid layout, professional typography, clear section hierarchy, subtle accent usage",
	types.StyleArtistic:     "expressive typography, asymmetric layout, hand-drawn or organic shapes, saturated color accents",
}

// Compose renders the website-generation prompt for a validated request.
// It is a pure function of the request plus the static tables.
func Compose(req *types.BrandRequest) (string, error) {
	tone, ok := toneVoice[types.Tone(req.Tone)]
	if !ok {
		return "", fmt.Errorf("no voice guidance for tone %q", req.Tone)
	}
	style, ok := styleVisual[types.DesignStyle(req.DesignStyle)]
	if !ok {
		return "", fmt.Errorf("no visual guidance for design style %q", req.DesignStyle)
	}

	template, err := prompts.Get("brand.json", "generate_website")
	if err != nil {
		return "", err
	}

	return prompts.Format(template, map[string]string{
		"CompanyName":   req.CompanyName,
		"BrandIdentity": req.BrandIdentity,
		"ToneGuidance":  tone,
		"StyleGuidance": style,
		"PrimaryColor":  req.PrimaryColor,
	}), nil
}
