package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/ports/adapter"
	"twinpersona/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// AdviceSource reports which layer produced the advice payload.
const (
	AdviceSourceAI       = "ai"
	AdviceSourceFallback = "fallback"
	AdviceSourceDefault  = "default"
)

// AdviceRequest carries the quiz result the advice is generated for.
type AdviceRequest struct {
	MBTIType      string `json:"mbti_type"`
	CharacterCode string `json:"character_code"`
	Title         string `json:"title,omitempty"`
	GapLevel      int    `json:"gap_level"`
}

// Advice is the six-category premium advice payload.
type Advice struct {
	Career        []string `json:"career"`
	Relationships []string `json:"relationships"`
	Romance       []string `json:"romance"`
	Growth        []string `json:"growth"`
	Lifestyle     []string `json:"lifestyle"`
	Stress        []string `json:"stress"`
}

// AdviceResult pairs the advice with its provenance so the client can show
// a notice when the AI layer was unavailable.
type AdviceResult struct {
	Advice Advice `json:"advice"`
	Source string `json:"source"`
}

// AdviceUseCase proxies the LLM call for premium advice. It degrades in
// three steps: structured JSON from the model, a line-split salvage of
// free-form model output, and finally a static default. It never returns an
// error for provider failures; the caller always gets usable advice.
type AdviceUseCase struct {
	text        adapter.TextGenerator
	modelName   string
	maxTokens   int
	countTokens func(model, text string) int
	logger      *zerolog.Logger
}

func NewAdviceUseCase(
	text adapter.TextGenerator,
	modelName string,
	maxTokens int,
	countTokens func(model, text string) int,
	logger *zerolog.Logger,
) *AdviceUseCase {
	return &AdviceUseCase{
		text:        text,
		modelName:   modelName,
		maxTokens:   maxTokens,
		countTokens: countTokens,
		logger:      logger,
	}
}

// Advise generates the six-category advice for one quiz result.
func (uc *AdviceUseCase) Advise(ctx context.Context, req AdviceRequest) (*AdviceResult, error) {
	if len(req.MBTIType) != 4 || len(req.CharacterCode) != 4 {
		return nil, fmt.Errorf("%w: malformed type codes", domain.ErrInvalidArgument)
	}

	messages := uc.buildPrompt(req)
	prompt := messages[0].Content + messages[1].Content
	tokens := uc.countTokens(uc.modelName, prompt)
	metrics.ObservePromptTokens("advice", tokens)
	if tokens > uc.maxTokens {
		uc.logger.Warn().Int("tokens", tokens).Int("max", uc.maxTokens).Msg("advice prompt over budget")
		metrics.IncAIFallback("advice", AdviceSourceDefault)
		return &AdviceResult{Advice: defaultAdvice(req), Source: AdviceSourceDefault}, nil
	}

	start := time.Now()
	out, err := uc.text.Generate(ctx, messages)
	metrics.ObserveAICall(uc.text.Name(), "advice", int(time.Since(start).Milliseconds()), err == nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		uc.logger.Warn().Err(err).Msg("advice generation failed")
		metrics.IncAIFallback("advice", AdviceSourceDefault)
		return &AdviceResult{Advice: defaultAdvice(req), Source: AdviceSourceDefault}, nil
	}

	if advice, ok := parseAdviceJSON(out); ok {
		return &AdviceResult{Advice: advice, Source: AdviceSourceAI}, nil
	}
	if advice, ok := splitAdviceLines(out); ok {
		metrics.IncAIFallback("advice", AdviceSourceFallback)
		return &AdviceResult{Advice: advice, Source: AdviceSourceFallback}, nil
	}

	uc.logger.Warn().Msg("advice output unparseable")
	metrics.IncAIFallback("advice", AdviceSourceDefault)
	return &AdviceResult{Advice: defaultAdvice(req), Source: AdviceSourceDefault}, nil
}

func (uc *AdviceUseCase) buildPrompt(req AdviceRequest) []adapter.Message {
	system := "あなたは性格診断の専門家です。MBTIタイプと隠れキャラタイプの組み合わせから、" +
		"実用的なアドバイスを日本語で作成してください。出力は次のキーを持つJSONのみ: " +
		`career, relationships, romance, growth, lifestyle, stress。` +
		"各キーは3項目の文字列配列です。JSON以外の文章は出力しないでください。"
	user := fmt.Sprintf(
		"表のタイプ: %s\n裏のタイプ: %s\nタイトル: %s\nギャップレベル: %d/4\nこの人物へのアドバイスを作成してください。",
		req.MBTIType, req.CharacterCode, req.Title, req.GapLevel,
	)
	return []adapter.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

// parseAdviceJSON extracts the first JSON object from the model output and
// accepts it only when every category is populated.
func parseAdviceJSON(out string) (Advice, bool) {
	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start < 0 || end <= start {
		return Advice{}, false
	}
	var advice Advice
	if err := json.Unmarshal([]byte(out[start:end+1]), &advice); err != nil {
		return Advice{}, false
	}
	for _, cat := range [][]string{
		advice.Career, advice.Relationships, advice.Romance,
		advice.Growth, advice.Lifestyle, advice.Stress,
	} {
		if len(cat) == 0 {
			return Advice{}, false
		}
	}
	return advice, true
}

// splitAdviceLines salvages free-form output: the first 18 non-empty lines
// map three apiece onto the six categories in order.
func splitAdviceLines(out string) (Advice, bool) {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*・0123456789. )")
		line = strings.TrimSpace(line)
		if line == "" || line == "{" || line == "}" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 18 {
		return Advice{}, false
	}
	return Advice{
		Career:        lines[0:3],
		Relationships: lines[3:6],
		Romance:       lines[6:9],
		Growth:        lines[9:12],
		Lifestyle:     lines[12:15],
		Stress:        lines[15:18],
	}, true
}

func defaultAdvice(req AdviceRequest) Advice {
	pair := req.MBTIType + "×" + req.CharacterCode
	return Advice{
		Career: []string{
			"自分の強みを活かせる場面を意識して増やしましょう",
			"表の顔と裏の顔、どちらの働き方も認めてあげましょう",
			"無理に周囲へ合わせず、自分のペースを大切に",
		},
		Relationships: []string{
			pair + "のあなたは、二面性そのものが魅力です",
			"信頼できる相手には裏の顔も少しずつ見せてみましょう",
			"距離感の違いを恐れず、素直な会話を心がけて",
		},
		Romance: []string{
			"ギャップは恋愛において強力な武器になります",
			"相手のペースにも目を向けると関係が深まります",
			"素の自分を見せられる相手を大切にしましょう",
		},
		Growth: []string{
			"表と裏のバランスを取ることが成長の鍵です",
			"新しい環境では裏の顔の強みが活きることもあります",
			"小さな挑戦を積み重ねて自信を育てましょう",
		},
		Lifestyle: []string{
			"一人の時間と人と過ごす時間の配分を見直しましょう",
			"裏の顔がくつろげる習慣をひとつ持ちましょう",
			"睡眠と休息はどちらの顔にも必要です",
		},
		Stress: []string{
			"演じ疲れを感じたら意識的に素に戻る時間を",
			"ストレスのサインを書き出して早めに気づきましょう",
			"深呼吸と軽い運動で切り替えを作りましょう",
		},
	}
}
