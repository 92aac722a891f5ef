package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"secondbrain/internal/domain"
	"secondbrain/internal/service"
)

const (
	welcomeMessage = "Welcome to secondbrain! Send me a link and I'll save it, with a summary when I can make one.\n\n" +
		"/list [page] shows what you saved\n/share publishes your collection\n/unshare revokes it"
	helpMessage       = "Send me a link to save, or use /list, /share or /unshare."
	maxSummaryPreview = 600
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

// replyFunc computes the text answer for one incoming message.
type replyFunc func(ctx context.Context, msg *models.Message) string

// Handler holds dependencies for the Telegram bot handlers.
type Handler struct {
	bot     *tgbot.Bot
	users   *service.UserService
	content *service.ContentService
	shares  *service.ShareGateway
	log     logrus.FieldLogger
}

// NewHandler creates a new bot handler instance.
func NewHandler(token string, users *service.UserService, content *service.ContentService, shares *service.ShareGateway, logger logrus.FieldLogger) (*Handler, error) {
	log := logger.WithField("component", "bot_handler")

	h := &Handler{
		users:   users,
		content: content,
		shares:  shares,
		log:     log,
	}

	b, err := tgbot.New(token, tgbot.WithDefaultHandler(h.wrap("link", h.saveReply)))
	if err != nil {
		log.WithError(err).Error("Failed to create Telegram bot instance")
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	h.bot = b

	h.registerHandlers()

	log.Info("Telegram bot handler initialized")
	return h, nil
}

// registerHandlers sets up the command handlers. Anything else falls through
// to the default handler, which saves links.
func (h *Handler) registerHandlers() {
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, h.wrap("/start", h.startReply))
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/list", tgbot.MatchTypePrefix, h.wrap("/list", h.listReply))
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/share", tgbot.MatchTypeExact, h.wrap("/share", h.shareReply))
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/unshare", tgbot.MatchTypeExact, h.wrap("/unshare", h.unshareReply))
	h.log.Info("Registered command handlers")
}

// Start begins polling for updates from Telegram.
// This function blocks until the context is cancelled.
func (h *Handler) Start(ctx context.Context) {
	h.log.Info("Starting Telegram bot polling...")
	h.bot.Start(ctx)
	h.log.Info("Telegram bot polling stopped.")
}

func (h *Handler) wrap(command string, reply replyFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.From == nil {
			return
		}
		log := h.log.WithFields(logrus.Fields{
			"user_id": update.Message.From.ID,
			"command": command,
		})
		log.Debug("Received message")

		text := reply(ctx, update.Message)
		if text == "" {
			return
		}
		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   text,
		})
		if err != nil {
			log.WithError(err).Error("Failed to send reply")
		}
	}
}

func (h *Handler) account(ctx context.Context, msg *models.Message) (domain.User, error) {
	return h.users.EnsureTelegramUser(ctx, msg.From.ID)
}

func (h *Handler) startReply(ctx context.Context, msg *models.Message) string {
	if _, err := h.account(ctx, msg); err != nil {
		h.log.WithError(err).Error("Failed to create account for Telegram user")
		return "Something went wrong, please try again later."
	}
	return welcomeMessage
}

func (h *Handler) listReply(ctx context.Context, msg *models.Message) string {
	user, err := h.account(ctx, msg)
	if err != nil {
		h.log.WithError(err).Error("Failed to load account for Telegram user")
		return "Something went wrong, please try again later."
	}

	page := domain.Page{Number: pageArg(msg.Text), Size: domain.DefaultPageSize}.Normalize()
	items, count, err := h.content.ListForOwner(ctx, user.ID, page, "")
	if err != nil {
		h.log.WithError(err).Error("Failed to list content")
		return "Could not load your links right now."
	}
	return FormatList(items, count, page)
}

func (h *Handler) shareReply(ctx context.Context, msg *models.Message) string {
	user, err := h.account(ctx, msg)
	if err != nil {
		h.log.WithError(err).Error("Failed to load account for Telegram user")
		return "Something went wrong, please try again later."
	}
	url, err := h.shares.EnableShare(ctx, user.ID)
	if err != nil {
		h.log.WithError(err).Error("Failed to enable collection share")
		return "Could not share your collection right now."
	}
	return "Anyone with this link can browse your collection:\n" + url
}

func (h *Handler) unshareReply(ctx context.Context, msg *models.Message) string {
	user, err := h.account(ctx, msg)
	if err != nil {
		h.log.WithError(err).Error("Failed to load account for Telegram user")
		return "Something went wrong, please try again later."
	}
	if err := h.shares.DisableShare(ctx, user.ID); err != nil {
		h.log.WithError(err).Error("Failed to disable collection share")
		return "Could not revoke your share link right now."
	}
	return "Your collection is no longer shared."
}

// saveReply stores the first link in the message. Text around the link
// becomes the title.
func (h *Handler) saveReply(ctx context.Context, msg *models.Message) string {
	link := ExtractURL(msg.Text)
	if link == "" {
		return helpMessage
	}

	user, err := h.account(ctx, msg)
	if err != nil {
		h.log.WithError(err).Error("Failed to load account for Telegram user")
		return "Something went wrong, please try again later."
	}

	source := domain.DetectSource(link)
	c, err := h.content.Create(ctx, service.CreateContentInput{
		Owner:  user.ID,
		Link:   link,
		Type:   domain.TypeForSource(source),
		Title:  TitleFor(msg.Text, link),
		Source: source,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicateForOwner):
		return fmt.Sprintf("You already saved this as %q.", c.Title)
	case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrValidation):
		return "That link could not be saved: " + err.Error()
	case err != nil:
		h.log.WithError(err).WithField("url", link).Error("Failed to save link")
		return "Could not save that link right now."
	}

	reply := fmt.Sprintf("Saved %q.", c.Title)
	if c.Summary != "" {
		reply += "\n\n" + truncate(c.Summary, maxSummaryPreview)
	}
	return reply
}

// ExtractURL returns the first http(s) URL in text, or "".
func ExtractURL(text string) string {
	link := urlPattern.FindString(text)
	return strings.TrimRight(link, ".,;:!?)]}'")
}

// TitleFor uses the message text without the link as the title, falling back
// to the link itself when too little is left.
func TitleFor(text, link string) string {
	title := strings.Join(strings.Fields(strings.Replace(text, link, "", 1)), " ")
	if utf8.RuneCountInString(title) < 3 {
		return link
	}
	return truncate(title, 200)
}

// FormatList renders one page of saved content as a numbered list.
func FormatList(items []domain.Content, count int, page domain.Page) string {
	if count == 0 {
		return "You have not saved any links yet."
	}
	if len(items) == 0 {
		return fmt.Sprintf("Page %d is empty. You have %d saved links.", page.Number, count)
	}

	var sb strings.Builder
	pages := (count + page.Size - 1) / page.Size
	fmt.Fprintf(&sb, "Your links (page %d of %d, %d total):\n", page.Number, pages, count)
	for i, c := range items {
		fmt.Fprintf(&sb, "\n%d. %s\n%s", page.Offset()+i+1, c.Title, c.Link)
	}
	if page.Number < pages {
		fmt.Fprintf(&sb, "\n\n/list %d for more", page.Number+1)
	}
	return sb.String()
}

func pageArg(text string) int {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return 0
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return n
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + "…"
}
