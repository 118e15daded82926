package scoring

import "twinpersona/internal/domain/model"

// characterTitles maps every Character Code to its result-page title.
var characterTitles = map[string]string{
	"HOLS": "太陽の参謀",
	"HOLF": "ひらめきの冒険家",
	"HOES": "みんなの応援団長",
	"HOEF": "お祭りクリエイター",
	"HMLS": "静かな戦略家",
	"HMLF": "気まぐれな天才",
	"HMES": "隠れた世話焼き",
	"HMEF": "自由な芸術家",
	"COLS": "頼れる司令塔",
	"COLF": "知的な流れ星",
	"COES": "やさしい案内人",
	"COEF": "ふんわり自由人",
	"CMLS": "孤高の賢者",
	"CMLF": "謎めいた発明家",
	"CMES": "物静かな共感者",
	"CMEF": "夜型の詩人",
}

const defaultTitle = "不思議な魅力の持ち主"

// compatibilityTable lists partner MBTI types per type. Entertainment
// content, not psychology; pairs follow the classic cognitive-function
// pairings the original app shipped with.
var compatibilityTable = map[string]model.Compatibility{
	"INTJ": {Best: []string{"ENFP", "ENTP"}, Good: []string{"INFJ", "INTP"}, Challenging: []string{"ESFJ", "ESFP"}},
	"INTP": {Best: []string{"ENTJ", "ESTJ"}, Good: []string{"INTJ", "ENTP"}, Challenging: []string{"ESFJ", "ENFJ"}},
	"ENTJ": {Best: []string{"INTP", "INFP"}, Good: []string{"ENTP", "INTJ"}, Challenging: []string{"ISFP", "ISFJ"}},
	"ENTP": {Best: []string{"INFJ", "INTJ"}, Good: []string{"ENFP", "INTP"}, Challenging: []string{"ISTJ", "ISFJ"}},
	"INFJ": {Best: []string{"ENTP", "ENFP"}, Good: []string{"INFP", "INTJ"}, Challenging: []string{"ESTP", "ESTJ"}},
	"INFP": {Best: []string{"ENTJ", "ENFJ"}, Good: []string{"INFJ", "ENFP"}, Challenging: []string{"ESTJ", "ESTP"}},
	"ENFJ": {Best: []string{"INFP", "ISFP"}, Good: []string{"ENFP", "INFJ"}, Challenging: []string{"ISTP", "INTP"}},
	"ENFP": {Best: []string{"INTJ", "INFJ"}, Good: []string{"ENFJ", "ENTP"}, Challenging: []string{"ISTJ", "ESTJ"}},
	"ISTJ": {Best: []string{"ESFP", "ESTP"}, Good: []string{"ISFJ", "ESTJ"}, Challenging: []string{"ENFP", "ENTP"}},
	"ISFJ": {Best: []string{"ESFP", "ESTP"}, Good: []string{"ISTJ", "ESFJ"}, Challenging: []string{"ENTP", "ENTJ"}},
	"ESTJ": {Best: []string{"ISTP", "INTP"}, Good: []string{"ISTJ", "ESFJ"}, Challenging: []string{"INFP", "ENFP"}},
	"ESFJ": {Best: []string{"ISFP", "ISTP"}, Good: []string{"ESTJ", "ISFJ"}, Challenging: []string{"INTP", "INTJ"}},
	"ISTP": {Best: []string{"ESTJ", "ESFJ"}, Good: []string{"ISTJ", "ESTP"}, Challenging: []string{"ENFJ", "ENFP"}},
	"ISFP": {Best: []string{"ENFJ", "ESFJ"}, Good: []string{"ISFJ", "ESFP"}, Challenging: []string{"ENTJ", "ESTJ"}},
	"ESTP": {Best: []string{"ISTJ", "ISFJ"}, Good: []string{"ESFP", "ISTP"}, Challenging: []string{"INFJ", "INFP"}},
	"ESFP": {Best: []string{"ISTJ", "ISFJ"}, Good: []string{"ESTP", "ISFP"}, Challenging: []string{"INTJ", "INFJ"}},
}

// adviceLines carries one static advice line per MBTI letter. The engine
// assembles a 4-line bundle, one line per resolved axis letter.
var adviceLines = map[byte]string{
	'E': "人と会う予定が元気の源。迷ったら外に出てみましょう。",
	'I': "ひとり時間が充電タイム。予定を詰め込みすぎないのがコツです。",
	'S': "目の前の積み重ねが得意。小さな達成を記録すると続きます。",
	'N': "ひらめきが武器。思いついたらメモに残す習慣を。",
	'T': "冷静な分析力が持ち味。ときには気持ちを言葉にしてみて。",
	'F': "共感力が最大の強み。自分の気持ちも同じだけ大切に。",
	'J': "計画性が頼られる理由。たまの寄り道も悪くありません。",
	'P': "柔軟さが魅力。締め切りだけは先に決めておくと安心です。",
}

// gapLabels names the 0-4 gap between inner type and outward impression.
var gapLabels = [5]string{
	"シンクロタイプ",
	"ほぼ素のまま",
	"ほどよい二面性",
	"かなりのギャップ",
	"ギャップMAX",
}
