package model

// QuizKind distinguishes the two questionnaires the app serves.
type QuizKind string

const (
	QuizKindMBTI      QuizKind = "mbti"
	QuizKindCharacter QuizKind = "character"
)

// Answer is one picked option for a question. Choice is "A" or "B".
type Answer struct {
	QuestionID int    `json:"question_id"`
	Choice     string `json:"choice"`
}

// Question is a fixed questionnaire entry. Each question votes for exactly
// one letter of its axis depending on the chosen option.
type Question struct {
	ID      int
	Kind    QuizKind
	Axis    int // index into the axis table for the kind
	Text    string
	OptionA string
	OptionB string
	// LetterA / LetterB are the axis letters the options vote for.
	LetterA byte
	LetterB byte
}

// Compatibility lists partner MBTI types by affinity bucket.
type Compatibility struct {
	Best        []string `json:"best"`
	Good        []string `json:"good"`
	Challenging []string `json:"challenging"`
}

// EntertainmentScores are the playful 0-100 meters shown on the result page.
// They are derived deterministically from the answer distribution.
type EntertainmentScores struct {
	Charisma int `json:"charisma"`
	Empathy  int `json:"empathy"`
	Mystery  int `json:"mystery"`
	Energy   int `json:"energy"`
}

// QuizResult is the full computed result for one completed questionnaire.
type QuizResult struct {
	MBTIType      string              `json:"mbti_type"`
	CharacterCode string              `json:"character_code"`
	Title         string              `json:"title"`
	GapLevel      int                 `json:"gap_level"`
	GapLabel      string              `json:"gap_label"`
	Compatibility Compatibility       `json:"compatibility"`
	Advice        []string            `json:"advice"`
	Scores        EntertainmentScores `json:"scores"`
}
