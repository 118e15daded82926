package notify

import (
	"context"
	"errors"
	"fmt"

	"twinpersona/internal/domain/ports/adapter"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

var _ adapter.Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier pushes operational events to the campaign operator's
// chat. Failures are logged and swallowed: notifications never fail a
// user-facing request.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zerolog.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zerolog.Logger) (*TelegramNotifier, error) {
	if token == "" {
		return nil, errors.New("telegram token empty")
	}
	if chatID == 0 {
		return nil, errors.New("telegram chat id empty")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, log: logger}, nil
}

func (n *TelegramNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.log.Warn().Err(err).Msg("telegram notification failed")
	}
}

func (n *TelegramNotifier) CampaignExhausted(ctx context.Context) {
	n.send("🎉 キャンペーンが定員に達しました。全スロット消化済みです。")
}

func (n *TelegramNotifier) RefundIssued(ctx context.Context, paymentIntentID string, amount int64) {
	n.send(fmt.Sprintf("💸 返金を実行しました: %s (¥%d)", paymentIntentID, amount))
}

func (n *TelegramNotifier) WebhookRejected(ctx context.Context, reason string) {
	n.send(fmt.Sprintf("⚠️ Webhook拒否: %s", reason))
}
