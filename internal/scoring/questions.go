package scoring

import "twinpersona/internal/domain/model"

// MBTI axes in presentation order. The first-listed letter of each pair wins
// an exact tie, so identical answer sets always resolve identically.
var mbtiAxes = [4][2]byte{
	{'E', 'I'},
	{'S', 'N'},
	{'T', 'F'},
	{'J', 'P'},
}

// Character Code axes: the outward-impression counterpart to MBTI.
//
//	Hot/Cool:          first-impression energy
//	Open/Mysterious:   approachability
//	Logical/Emotional: conversational style
//	Steady/Free:       vibe stability
var characterAxes = [4][2]byte{
	{'H', 'C'},
	{'O', 'M'},
	{'L', 'E'},
	{'S', 'F'},
}

// mbtiQuestions is the fixed 16-question MBTI questionnaire (4 per axis).
var mbtiQuestions = []model.Question{
	{ID: 1, Kind: model.QuizKindMBTI, Axis: 0, Text: "初対面の集まりでは", OptionA: "自分から話しかける", OptionB: "話しかけられるのを待つ", LetterA: 'E', LetterB: 'I'},
	{ID: 2, Kind: model.QuizKindMBTI, Axis: 0, Text: "休日の理想は", OptionA: "友達と出かける", OptionB: "家でゆっくり過ごす", LetterA: 'E', LetterB: 'I'},
	{ID: 3, Kind: model.QuizKindMBTI, Axis: 0, Text: "考えをまとめるときは", OptionA: "話しながら整理する", OptionB: "ひとりで考えてから話す", LetterA: 'E', LetterB: 'I'},
	{ID: 4, Kind: model.QuizKindMBTI, Axis: 0, Text: "大人数のパーティーは", OptionA: "エネルギーをもらえる", OptionB: "疲れてしまう", LetterA: 'E', LetterB: 'I'},
	{ID: 5, Kind: model.QuizKindMBTI, Axis: 1, Text: "物事を捉えるときは", OptionA: "具体的な事実から", OptionB: "全体のイメージから", LetterA: 'S', LetterB: 'N'},
	{ID: 6, Kind: model.QuizKindMBTI, Axis: 1, Text: "説明するなら", OptionA: "順を追って詳しく", OptionB: "たとえ話でざっくり", LetterA: 'S', LetterB: 'N'},
	{ID: 7, Kind: model.QuizKindMBTI, Axis: 1, Text: "興味があるのは", OptionA: "今ここにある現実", OptionB: "これからの可能性", LetterA: 'S', LetterB: 'N'},
	{ID: 8, Kind: model.QuizKindMBTI, Axis: 1, Text: "仕事のやり方は", OptionA: "実績のある方法で", OptionB: "新しいやり方を試す", LetterA: 'S', LetterB: 'N'},
	{ID: 9, Kind: model.QuizKindMBTI, Axis: 2, Text: "決断するときは", OptionA: "筋が通っているか", OptionB: "みんなが納得するか", LetterA: 'T', LetterB: 'F'},
	{ID: 10, Kind: model.QuizKindMBTI, Axis: 2, Text: "相談されたら", OptionA: "解決策を一緒に考える", OptionB: "まず気持ちに寄り添う", LetterA: 'T', LetterB: 'F'},
	{ID: 11, Kind: model.QuizKindMBTI, Axis: 2, Text: "議論では", OptionA: "正しさを優先する", OptionB: "和を優先する", LetterA: 'T', LetterB: 'F'},
	{ID: 12, Kind: model.QuizKindMBTI, Axis: 2, Text: "褒められて嬉しいのは", OptionA: "有能だと言われる", OptionB: "優しいと言われる", LetterA: 'T', LetterB: 'F'},
	{ID: 13, Kind: model.QuizKindMBTI, Axis: 3, Text: "旅行の計画は", OptionA: "事前にしっかり立てる", OptionB: "行き当たりばったり", LetterA: 'J', LetterB: 'P'},
	{ID: 14, Kind: model.QuizKindMBTI, Axis: 3, Text: "締め切りがあると", OptionA: "早めに終わらせる", OptionB: "直前に集中する", LetterA: 'J', LetterB: 'P'},
	{ID: 15, Kind: model.QuizKindMBTI, Axis: 3, Text: "部屋や机は", OptionA: "整理されている方が落ち着く", OptionB: "多少散らかっていても平気", LetterA: 'J', LetterB: 'P'},
	{ID: 16, Kind: model.QuizKindMBTI, Axis: 3, Text: "予定変更は", OptionA: "できれば避けたい", OptionB: "むしろ楽しい", LetterA: 'J', LetterB: 'P'},
}

// characterQuestions asks how others see you (2 per axis).
var characterQuestions = []model.Question{
	{ID: 101, Kind: model.QuizKindCharacter, Axis: 0, Text: "周囲からの第一印象は", OptionA: "明るくて元気", OptionB: "落ち着いていてクール", LetterA: 'H', LetterB: 'C'},
	{ID: 102, Kind: model.QuizKindCharacter, Axis: 0, Text: "初対面の人に言われるのは", OptionA: "話しやすいね", OptionB: "ちょっと近寄りがたい", LetterA: 'H', LetterB: 'C'},
	{ID: 103, Kind: model.QuizKindCharacter, Axis: 1, Text: "自分のことを", OptionA: "よく話す方だ", OptionB: "あまり明かさない方だ", LetterA: 'O', LetterB: 'M'},
	{ID: 104, Kind: model.QuizKindCharacter, Axis: 1, Text: "周囲からは", OptionA: "わかりやすい人と言われる", OptionB: "ミステリアスと言われる", LetterA: 'O', LetterB: 'M'},
	{ID: 105, Kind: model.QuizKindCharacter, Axis: 2, Text: "会話のスタイルは", OptionA: "理屈っぽいと言われる", OptionB: "感情豊かと言われる", LetterA: 'L', LetterB: 'E'},
	{ID: 106, Kind: model.QuizKindCharacter, Axis: 2, Text: "アドバイスするときは", OptionA: "データや根拠を示す", OptionB: "共感の言葉をかける", LetterA: 'L', LetterB: 'E'},
	{ID: 107, Kind: model.QuizKindCharacter, Axis: 3, Text: "周囲から見た印象は", OptionA: "安定していて頼れる", OptionB: "自由で読めない", LetterA: 'S', LetterB: 'F'},
	{ID: 108, Kind: model.QuizKindCharacter, Axis: 3, Text: "グループの中では", OptionA: "まとめ役になりがち", OptionB: "ムードメーカーになりがち", LetterA: 'S', LetterB: 'F'},
}

var questionIndex = buildQuestionIndex()

func buildQuestionIndex() map[int]model.Question {
	idx := make(map[int]model.Question, len(mbtiQuestions)+len(characterQuestions))
	for _, q := range mbtiQuestions {
		idx[q.ID] = q
	}
	for _, q := range characterQuestions {
		idx[q.ID] = q
	}
	return idx
}

// Questions returns the fixed questionnaire for a kind, in presentation order.
func Questions(kind model.QuizKind) []model.Question {
	if kind == model.QuizKindCharacter {
		out := make([]model.Question, len(characterQuestions))
		copy(out, characterQuestions)
		return out
	}
	out := make([]model.Question, len(mbtiQuestions))
	copy(out, mbtiQuestions)
	return out
}
