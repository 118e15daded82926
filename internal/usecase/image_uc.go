package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
	"twinpersona/internal/domain/ports/adapter"
	"twinpersona/internal/infra/metrics"

	"github.com/rs/zerolog"
)

const (
	ImageSourceAI          = "ai"
	ImageSourcePlaceholder = "placeholder"
)

// ImageRequest describes the character artwork to generate.
type ImageRequest struct {
	MBTIType      string                    `json:"mbti_type"`
	CharacterCode string                    `json:"character_code"`
	Gender        string                    `json:"gender,omitempty"`
	Occupation    string                    `json:"occupation,omitempty"`
	Scores        model.EntertainmentScores `json:"scores,omitempty"`
}

// ImageResult carries the artwork URL (or inline data URI) and provenance.
// Success is false when the placeholder stood in for the provider.
type ImageResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Source  string `json:"source"`
}

// ImageUseCase proxies the image provider for character artwork and serves
// a deterministic inline placeholder when the provider is unavailable.
type ImageUseCase struct {
	image       adapter.ImageGenerator
	placeholder func(mbtiType, characterCode string) string
	logger      *zerolog.Logger
}

func NewImageUseCase(
	image adapter.ImageGenerator,
	placeholder func(mbtiType, characterCode string) string,
	logger *zerolog.Logger,
) *ImageUseCase {
	return &ImageUseCase{
		image:       image,
		placeholder: placeholder,
		logger:      logger,
	}
}

// Generate produces the character artwork for one quiz result.
func (uc *ImageUseCase) Generate(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	if len(req.MBTIType) != 4 || len(req.CharacterCode) != 4 {
		return nil, fmt.Errorf("%w: malformed type codes", domain.ErrInvalidArgument)
	}

	prompt := buildImagePrompt(req)
	start := time.Now()
	url, err := uc.image.Generate(ctx, prompt)
	metrics.ObserveAICall(uc.image.Name(), "image", int(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		uc.logger.Warn().Err(err).Msg("image generation failed")
		metrics.IncAIFallback("image", ImageSourcePlaceholder)
		return &ImageResult{
			Success: false,
			URL:     uc.placeholder(req.MBTIType, req.CharacterCode),
			Source:  ImageSourcePlaceholder,
		}, nil
	}
	return &ImageResult{Success: true, URL: url, Source: ImageSourceAI}, nil
}

// subjectFor maps the optional self-description onto a closed prompt
// vocabulary. Unknown values fall through to a neutral subject so user
// input never reaches the provider verbatim.
func subjectFor(gender, occupation string) string {
	var who string
	switch strings.ToLower(gender) {
	case "male":
		who = "young man"
	case "female":
		who = "young woman"
	default:
		who = "person"
	}

	var job string
	switch strings.ToLower(occupation) {
	case "student":
		job = "university student"
	case "engineer":
		job = "software engineer"
	case "designer":
		job = "graphic designer"
	case "teacher":
		job = "school teacher"
	case "doctor":
		job = "medical doctor"
	case "artist":
		job = "artist"
	case "office_worker":
		job = "office worker"
	default:
		job = "professional"
	}
	return who + " working as a " + job
}

var mbtiTraits = map[byte]string{
	'E': "outgoing and expressive",
	'I': "calm and thoughtful",
	'S': "practical and grounded",
	'N': "imaginative and visionary",
	'T': "logical and composed",
	'F': "warm and empathetic",
	'J': "organized and poised",
	'P': "spontaneous and relaxed",
}

var characterStyles = map[byte]string{
	'H': "bright, energetic color palette",
	'C': "soft, muted color palette",
	'O': "dreamlike, whimsical background",
	'M': "clean, minimal background",
	'L': "sharp, confident expression",
	'E': "gentle, kind expression",
	'S': "dynamic, playful pose",
	'F': "serene, composed pose",
}

func buildImagePrompt(req ImageRequest) string {
	var traits []string
	for i := 0; i < len(req.MBTIType); i++ {
		if t, ok := mbtiTraits[req.MBTIType[i]]; ok {
			traits = append(traits, t)
		}
	}
	var styles []string
	for i := 0; i < len(req.CharacterCode); i++ {
		if s, ok := characterStyles[req.CharacterCode[i]]; ok {
			styles = append(styles, s)
		}
	}

	var b strings.Builder
	b.WriteString("Anime-style character portrait of a ")
	b.WriteString(subjectFor(req.Gender, req.Occupation))
	b.WriteString(". Personality: ")
	b.WriteString(strings.Join(traits, ", "))
	b.WriteString(". Art direction: ")
	b.WriteString(strings.Join(styles, ", "))
	if q := intensityFor(req.Scores); q != "" {
		b.WriteString(", ")
		b.WriteString(q)
	}
	b.WriteString(". High quality digital illustration, centered composition, no text.")
	return b.String()
}

// intensityFor turns the entertainment meters into at most two prompt
// qualifiers; middling scores add nothing.
func intensityFor(s model.EntertainmentScores) string {
	var quals []string
	if s.Charisma >= 80 {
		quals = append(quals, "commanding presence")
	}
	if s.Energy >= 80 {
		quals = append(quals, "vivid dynamic lighting")
	} else if s.Mystery >= 80 {
		quals = append(quals, "subdued moody lighting")
	}
	if len(quals) > 2 {
		quals = quals[:2]
	}
	return strings.Join(quals, ", ")
}
