package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/evindia/evbot/internal/catalog"
	"github.com/evindia/evbot/internal/conversation"
	"github.com/evindia/evbot/internal/dialogue"
	"github.com/evindia/evbot/pkg/logging"
)

// maxMessageLength is Telegram's hard cap for one message body.
const maxMessageLength = 4096

const (
	feedbackUpData   = "feedback:up"
	feedbackDownData = "feedback:down"
)

// sender is the slice of the Telegram API the handlers need. *tgbotapi.BotAPI
// satisfies it; tests substitute a recorder.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Config wires the bot's collaborators.
type Config struct {
	Token        string
	AdminUserID  int64
	Orchestrator *dialogue.Orchestrator
	Catalog      *catalog.Service
	Store        conversation.Store
	Logger       *logging.Logger
}

// Bot is the Telegram transport. It translates updates into orchestrator
// calls and renders replies as Markdown messages.
type Bot struct {
	api          *tgbotapi.BotAPI
	client       sender
	orchestrator *dialogue.Orchestrator
	catalog      *catalog.Service
	store        conversation.Store
	logger       *logging.Logger
	adminUserID  int64
}

// NewBot authenticates against the Telegram API and returns the transport.
func NewBot(cfg Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to create bot: %w", err)
	}
	b := newBotWithClient(cfg, api)
	b.api = api
	return b, nil
}

func newBotWithClient(cfg Config, client sender) *Bot {
	if cfg.Orchestrator == nil {
		panic("telegram: orchestrator cannot be nil")
	}
	if cfg.Catalog == nil {
		panic("telegram: catalog service cannot be nil")
	}
	if cfg.Store == nil {
		panic("telegram: conversation store cannot be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Bot{
		client:       client,
		orchestrator: cfg.Orchestrator,
		catalog:      cfg.Catalog,
		store:        cfg.Store,
		logger:       cfg.Logger,
		adminUserID:  cfg.AdminUserID,
	}
}

// Run long-polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("telegram bot started", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot stopping")
			return ctx.Err()
		case update := <-updates:
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
				continue
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if b.handleButton(ctx, msg) {
		return
	}

	b.sendTyping(msg.Chat.ID)

	out := b.orchestrator.Handle(ctx, inboundFromMessage(msg))
	reply := tgbotapi.NewMessage(msg.Chat.ID, out.Text)
	reply.ParseMode = tgbotapi.ModeMarkdown
	if len(out.Keyboard) > 0 {
		reply.ReplyMarkup = replyKeyboard(out.Keyboard)
	} else if out.OfferFeedback {
		reply.ReplyMarkup = feedbackKeyboard()
	}
	b.send(reply)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		reply := tgbotapi.NewMessage(msg.Chat.ID, dialogue.WelcomeText())
		reply.ReplyMarkup = replyKeyboard(dialogue.KeyboardButtons())
		b.send(reply)
	case "help":
		reply := tgbotapi.NewMessage(msg.Chat.ID, dialogue.HelpText())
		reply.ParseMode = tgbotapi.ModeMarkdown
		reply.ReplyMarkup = replyKeyboard(dialogue.KeyboardButtons())
		b.send(reply)
	case "getinteractions":
		b.handleGetInteractions(ctx, msg)
	default:
		b.sendText(msg.Chat.ID, "Unknown command. Type /help to see what I can do.")
	}
}

// handleButton short-circuits the reply-keyboard labels before the message
// reaches extraction.
func (b *Bot) handleButton(ctx context.Context, msg *tgbotapi.Message) bool {
	switch msg.Text {
	case dialogue.ButtonCompare:
		b.sendText(msg.Chat.ID, dialogue.ComparePrompt)
	case dialogue.ButtonPincode:
		b.sendText(msg.Chat.ID, dialogue.PincodePrompt)
	case dialogue.ButtonAllScooters:
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		specs, err := b.catalog.AllScooters(cctx)
		if err != nil {
			b.logger.Error("catalog listing failed", "chat_id", msg.Chat.ID, "error", err)
			b.sendText(msg.Chat.ID, "Error fetching scooter details. Please try again.")
			return true
		}
		b.sendMarkdown(msg.Chat.ID, dialogue.AllScootersList(specs))
	default:
		return false
	}
	return true
}

// handleGetInteractions dumps every stored conversation. Admin only.
func (b *Bot) handleGetInteractions(ctx context.Context, msg *tgbotapi.Message) {
	if b.adminUserID == 0 || msg.From.ID != b.adminUserID {
		b.sendText(msg.Chat.ID, "Sorry, this command is restricted.")
		return
	}

	records, err := b.store.All(ctx)
	if err != nil {
		b.logger.Error("interaction dump failed", "error", err)
		b.sendText(msg.Chat.ID, "Error fetching interactions. Please try again.")
		return
	}
	if len(records) == 0 {
		b.sendText(msg.Chat.ID, "No interactions recorded yet.")
		return
	}
	b.sendMarkdown(msg.Chat.ID, formatInteractionDump(records))
}

func formatInteractionDump(records []conversation.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Stored conversations: %d*\n\n", len(records))
	for _, rec := range records {
		name := rec.Details.FirstName
		if rec.Details.Username != "" {
			name = "@" + rec.Details.Username
		}
		fmt.Fprintf(&sb, "*User %d* (%s), %d interaction(s):\n", rec.UserID, name, len(rec.Interactions))
		for i, in := range rec.Interactions {
			fmt.Fprintf(&sb, "%d. Q: %s\n   A: %s\n", i+1, truncate(in.UserMessage, 100), truncate(in.BotMessage, 100))
		}
		sb.WriteString("\n")
	}
	dump := sb.String()
	if len(dump) > maxMessageLength {
		dump = dump[:maxMessageLength-3] + "..."
	}
	return dump
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Stop the client-side spinner regardless of outcome.
	if _, err := b.client.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.logger.Warn("callback ack failed", "error", err)
	}

	var rating int
	switch cq.Data {
	case feedbackUpData:
		rating = 5
	case feedbackDownData:
		rating = 1
	default:
		return
	}

	fb := conversation.FeedbackRecord{
		UserID:    cq.From.ID,
		MessageID: callbackMessageID(cq),
		Rating:    rating,
	}
	if err := b.store.SaveFeedback(ctx, fb); err != nil {
		b.logger.Error("failed to save feedback", "user_id", cq.From.ID, "error", err)
	}

	if cq.Message != nil {
		if rating >= 3 {
			b.sendText(cq.Message.Chat.ID, "Thanks for the feedback!")
		} else {
			b.sendText(cq.Message.Chat.ID, "Thanks for letting me know. I'll try to do better.")
		}
	}
}

func callbackMessageID(cq *tgbotapi.CallbackQuery) int {
	if cq.Message == nil {
		return 0
	}
	return cq.Message.MessageID
}

func inboundFromMessage(msg *tgbotapi.Message) dialogue.Inbound {
	in := dialogue.Inbound{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Date:      int64(msg.Date),
		Text:      msg.Text,
	}
	if msg.From != nil {
		in.UserID = msg.From.ID
		in.User = conversation.UserDetails{
			ChatID:       msg.Chat.ID,
			FirstName:    msg.From.FirstName,
			LastName:     msg.From.LastName,
			Username:     msg.From.UserName,
			LanguageCode: msg.From.LanguageCode,
			IsBot:        msg.From.IsBot,
		}
	}
	return in
}

// replyKeyboard lays the labels out two per row.
func replyKeyboard(labels []string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(labels); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(labels[i])}
		if i+1 < len(labels) {
			row = append(row, tgbotapi.NewKeyboardButton(labels[i+1]))
		}
		rows = append(rows, row)
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func feedbackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👍", feedbackUpData),
			tgbotapi.NewInlineKeyboardButtonData("👎", feedbackDownData),
		),
	)
}

func (b *Bot) sendTyping(chatID int64) {
	if _, err := b.client.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Warn("typing action failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	b.send(msg)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.client.Send(c); err != nil {
		b.logger.Error("failed to send message", "error", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
