package telegram

import (
	"fmt"
	"strings"

	"meal-planner/internal/config"
	"meal-planner/internal/logger"
	"meal-planner/internal/planner"
	"meal-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of the Telegram API the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends finished plans to a single Telegram chat.
type Notifier struct {
	api    Sender
	chatID int64
}

// NewNotifier authorizes against the Bot API with the configured token.
func NewNotifier(cfg *config.Config) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("Authorized on Telegram", zap.String("account", bot.Self.UserName))
	return NewNotifierWithSender(bot, cfg.TelegramChatID), nil
}

// NewNotifierWithSender builds a notifier on an existing sender.
func NewNotifierWithSender(api Sender, chatID int64) *Notifier {
	return &Notifier{api: api, chatID: chatID}
}

// SendPlan posts the plan and the shopping list as two Markdown messages.
func (n *Notifier) SendPlan(plan planner.WeekPlan, summary shopping.Summary) error {
	planText, shoppingText := formatPlanMarkdownParts(plan, summary)

	for _, text := range []string{planText, shoppingText} {
		msg := tgbotapi.NewMessage(n.chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := n.api.Send(msg); err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
	}

	logger.Info("Plan sent to Telegram", zap.Int64("chat_id", n.chatID))
	return nil
}

// markdownEscaper escapes the characters legacy Markdown treats as markup.
var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func formatPlanMarkdownParts(plan planner.WeekPlan, summary shopping.Summary) (string, string) {
	var pb strings.Builder
	pb.WriteString("📅 *Weekly Meal Plan*\n\n")

	total := 0
	for _, day := range planner.Week {
		dp, ok := plan[day]
		if !ok {
			continue
		}
		fmt.Fprintf(&pb, "*%s*: %s\n", day, markdownEscaper.Replace(dp.Description))
		if main := dp.Main(); main != nil {
			total += main.CookingTimeMin
			if main.RecipeLink != nil {
				fmt.Fprintf(&pb, "[recipe](%s)\n", *main.RecipeLink)
			}
		}
	}
	fmt.Fprintf(&pb, "\n⏱ *Total Cooking:* %d mins", total)

	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, item := range summary.Items() {
		fmt.Fprintf(&sb, "• %s\n", markdownEscaper.Replace(item.String()))
	}
	if len(summary.Warnings) > 0 {
		sb.WriteString("\n⚠️ _Mixed units, check by hand:_\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&sb, "• %s\n", markdownEscaper.Replace(w.String()))
		}
	}

	return pb.String(), sb.String()
}
