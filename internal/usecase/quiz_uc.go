package usecase

import (
	"context"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
	"twinpersona/internal/scoring"

	"github.com/rs/zerolog"
)

// QuizUseCase serves the questionnaires and computes results. Scoring is
// pure and deterministic; this layer only adds validation and logging.
type QuizUseCase struct {
	logger *zerolog.Logger
}

func NewQuizUseCase(logger *zerolog.Logger) *QuizUseCase {
	return &QuizUseCase{logger: logger}
}

// Questions returns the question set for the given quiz kind.
func (uc *QuizUseCase) Questions(kind model.QuizKind) ([]model.Question, error) {
	qs := scoring.Questions(kind)
	if qs == nil {
		return nil, domain.ErrInvalidArgument
	}
	return qs, nil
}

// Score computes the full quiz result from both answer sets.
func (uc *QuizUseCase) Score(ctx context.Context, mbtiAnswers, characterAnswers []model.Answer) (*model.QuizResult, error) {
	result, err := scoring.Score(mbtiAnswers, characterAnswers)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug().
		Str("mbti", result.MBTIType).
		Str("character_code", result.CharacterCode).
		Int("gap_level", result.GapLevel).
		Msg("quiz scored")
	return result, nil
}
