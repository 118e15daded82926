// Package scoring computes quiz results from questionnaire answers.
// It is a pure data transform: no I/O, no state, deterministic for
// identical input.
package scoring

import (
	"fmt"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
)

// Score maps the two answer sets to a full quiz result.
//
// Per axis the majority letter wins; an exact tie resolves to the
// first-listed letter of the axis (E/S/T/J and H/O/L/S), so two runs over
// identical answers always produce the identical result.
func Score(mbtiAnswers, characterAnswers []model.Answer) (*model.QuizResult, error) {
	mbtiVotes, err := tally(mbtiAnswers, model.QuizKindMBTI)
	if err != nil {
		return nil, err
	}
	charVotes, err := tally(characterAnswers, model.QuizKindCharacter)
	if err != nil {
		return nil, err
	}

	mbti := resolve(mbtiVotes, mbtiAxes)
	code := resolve(charVotes, characterAxes)

	gap := gapLevel(mbti, code)

	title, ok := characterTitles[code]
	if !ok {
		title = defaultTitle
	}

	return &model.QuizResult{
		MBTIType:      mbti,
		CharacterCode: code,
		Title:         title,
		GapLevel:      gap,
		GapLabel:      gapLabels[gap],
		Compatibility: compatibilityTable[mbti],
		Advice:        adviceFor(mbti),
		Scores:        entertainmentScores(mbtiVotes, charVotes),
	}, nil
}

// voteCount tracks per-axis votes for the first and second letter.
type voteCount struct {
	first  [4]int
	second [4]int
}

func tally(answers []model.Answer, kind model.QuizKind) (voteCount, error) {
	var v voteCount
	if len(answers) == 0 {
		return v, fmt.Errorf("%w: no %s answers", domain.ErrInvalidArgument, kind)
	}
	for _, a := range answers {
		q, ok := questionIndex[a.QuestionID]
		if !ok || q.Kind != kind {
			return v, fmt.Errorf("%w: unknown %s question %d", domain.ErrInvalidArgument, kind, a.QuestionID)
		}
		switch a.Choice {
		case "A":
			v.first[q.Axis]++
		case "B":
			v.second[q.Axis]++
		default:
			return v, fmt.Errorf("%w: choice %q for question %d", domain.ErrInvalidArgument, a.Choice, a.QuestionID)
		}
	}
	return v, nil
}

func resolve(v voteCount, axes [4][2]byte) string {
	out := make([]byte, 4)
	for i := 0; i < 4; i++ {
		// ties fall through to the first-listed letter
		if v.second[i] > v.first[i] {
			out[i] = axes[i][1]
		} else {
			out[i] = axes[i][0]
		}
	}
	return string(out)
}

// gapLevel counts the axes where the outward impression contradicts the
// inner type: E↔H, N↔O, T↔L, J↔S.
func gapLevel(mbti, code string) int {
	gap := 0
	if (mbti[0] == 'E') != (code[0] == 'H') {
		gap++
	}
	if (mbti[1] == 'N') != (code[1] == 'O') {
		gap++
	}
	if (mbti[2] == 'T') != (code[2] == 'L') {
		gap++
	}
	if (mbti[3] == 'J') != (code[3] == 'S') {
		gap++
	}
	return gap
}

func adviceFor(mbti string) []string {
	out := make([]string, 0, 4)
	for i := 0; i < len(mbti); i++ {
		if line, ok := adviceLines[mbti[i]]; ok {
			out = append(out, line)
		}
	}
	return out
}

// entertainmentScores derives the playful 0-100 meters from the vote
// distribution. ratio() keeps every meter inside 40..95 so nobody gets a
// crushing result.
func entertainmentScores(mbti, char voteCount) model.EntertainmentScores {
	return model.EntertainmentScores{
		Charisma: meter(ratio(mbti.first[0], mbti.second[0]), ratio(char.first[0], char.second[0])),
		Empathy:  meter(ratio(mbti.second[2], mbti.first[2]), ratio(char.second[2], char.first[2])),
		Mystery:  meter(ratio(mbti.second[0], mbti.first[0]), ratio(char.second[1], char.first[1])),
		Energy:   meter(ratio(mbti.first[0], mbti.second[0]), ratio(char.second[3], char.first[3])),
	}
}

// ratio returns a/(a+b) in [0,1]; an empty axis counts as balanced.
func ratio(a, b int) float64 {
	if a+b == 0 {
		return 0.5
	}
	return float64(a) / float64(a+b)
}

func meter(r1, r2 float64) int {
	avg := (r1 + r2) / 2
	return 40 + int(avg*55+0.5)
}
