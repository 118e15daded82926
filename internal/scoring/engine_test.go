package scoring

import (
	"errors"
	"reflect"
	"testing"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
)

// answerAll builds a full answer sheet picking the same option everywhere.
func answerAll(kind model.QuizKind, choice string) []model.Answer {
	qs := Questions(kind)
	out := make([]model.Answer, 0, len(qs))
	for _, q := range qs {
		out = append(out, model.Answer{QuestionID: q.ID, Choice: choice})
	}
	return out
}

func TestScore_AllFirstOptions(t *testing.T) {
	t.Parallel()

	res, err := Score(answerAll(model.QuizKindMBTI, "A"), answerAll(model.QuizKindCharacter, "A"))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.MBTIType != "ESTJ" {
		t.Fatalf("expected ESTJ, got %s", res.MBTIType)
	}
	if res.CharacterCode != "HOLS" {
		t.Fatalf("expected HOLS, got %s", res.CharacterCode)
	}
	if res.Title != characterTitles["HOLS"] {
		t.Fatalf("unexpected title %q", res.Title)
	}
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	mbti := answerAll(model.QuizKindMBTI, "B")
	char := answerAll(model.QuizKindCharacter, "B")

	first, err := Score(mbti, char)
	if err != nil {
		t.Fatalf("first Score: %v", err)
	}
	second, err := Score(mbti, char)
	if err != nil {
		t.Fatalf("second Score: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical answers produced different results:\n%+v\n%+v", first, second)
	}
}

func TestScore_TieBreaksToFirstListedLetter(t *testing.T) {
	t.Parallel()

	// Split every axis exactly in half: 2 questions per MBTI axis answer A,
	// 2 answer B. Ties must resolve to E/S/T/J and H/O/L/S every run.
	var mbti []model.Answer
	for i, q := range Questions(model.QuizKindMBTI) {
		choice := "A"
		if i%2 == 1 {
			choice = "B"
		}
		mbti = append(mbti, model.Answer{QuestionID: q.ID, Choice: choice})
	}
	var char []model.Answer
	for i, q := range Questions(model.QuizKindCharacter) {
		choice := "A"
		if i%2 == 1 {
			choice = "B"
		}
		char = append(char, model.Answer{QuestionID: q.ID, Choice: choice})
	}

	for run := 0; run < 10; run++ {
		res, err := Score(mbti, char)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if res.MBTIType != "ESTJ" {
			t.Fatalf("run %d: tie resolved to %s, want ESTJ", run, res.MBTIType)
		}
		if res.CharacterCode != "HOLS" {
			t.Fatalf("run %d: tie resolved to %s, want HOLS", run, res.CharacterCode)
		}
	}
}

func TestScore_MajorityWinsPerAxis(t *testing.T) {
	t.Parallel()

	// 3 of 4 EI questions answered B -> I; everything else A.
	mbti := answerAll(model.QuizKindMBTI, "A")
	for i := range mbti {
		q := questionIndex[mbti[i].QuestionID]
		if q.Axis == 0 && i > 0 {
			mbti[i].Choice = "B"
		}
	}
	res, err := Score(mbti, answerAll(model.QuizKindCharacter, "A"))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.MBTIType != "ISTJ" {
		t.Fatalf("expected ISTJ, got %s", res.MBTIType)
	}
}

func TestScore_GapLevel(t *testing.T) {
	t.Parallel()

	// All-A answers: ESTJ vs HOLS. E↔H match, T↔L match, J↔S match, but
	// S (sensing) vs O (open) counts as a mismatch on the N↔O pairing.
	res, err := Score(answerAll(model.QuizKindMBTI, "A"), answerAll(model.QuizKindCharacter, "A"))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.GapLevel != 1 {
		t.Fatalf("expected gap 1, got %d", res.GapLevel)
	}
	if res.GapLabel != gapLabels[1] {
		t.Fatalf("unexpected gap label %q", res.GapLabel)
	}
}

func TestScore_InvalidInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		mbti []model.Answer
		char []model.Answer
	}{
		{"empty mbti", nil, answerAll(model.QuizKindCharacter, "A")},
		{"unknown question", []model.Answer{{QuestionID: 999, Choice: "A"}}, answerAll(model.QuizKindCharacter, "A")},
		{"wrong kind", []model.Answer{{QuestionID: 101, Choice: "A"}}, answerAll(model.QuizKindCharacter, "A")},
		{"bad choice", []model.Answer{{QuestionID: 1, Choice: "C"}}, answerAll(model.QuizKindCharacter, "A")},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Score(tc.mbti, tc.char)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestScore_ScoresWithinRange(t *testing.T) {
	t.Parallel()

	res, err := Score(answerAll(model.QuizKindMBTI, "B"), answerAll(model.QuizKindCharacter, "B"))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for name, v := range map[string]int{
		"charisma": res.Scores.Charisma,
		"empathy":  res.Scores.Empathy,
		"mystery":  res.Scores.Mystery,
		"energy":   res.Scores.Energy,
	} {
		if v < 40 || v > 95 {
			t.Fatalf("%s score %d out of range", name, v)
		}
	}
}

func TestCompatibilityTableCoversAllTypes(t *testing.T) {
	t.Parallel()

	letters := [4][2]byte{{'E', 'I'}, {'S', 'N'}, {'T', 'F'}, {'J', 'P'}}
	for _, a := range letters[0] {
		for _, b := range letters[1] {
			for _, c := range letters[2] {
				for _, d := range letters[3] {
					typ := string([]byte{a, b, c, d})
					compat, ok := compatibilityTable[typ]
					if !ok {
						t.Fatalf("missing compatibility entry for %s", typ)
					}
					if len(compat.Best) == 0 || len(compat.Good) == 0 || len(compat.Challenging) == 0 {
						t.Fatalf("incomplete compatibility entry for %s", typ)
					}
				}
			}
		}
	}
}
