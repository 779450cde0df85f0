package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/service"
	apperrors "github.com/FFMGAMER/FFM-Gen-Bot/pkg/util/errorutil"
)

const (
	colorSuccess = 0x00ff00
	colorDanger  = 0xff0000
)

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("interaction handler panic", zap.Any("panic", r))
			b.replyText(s, i, "Something went wrong while running that command.", true)
		}
	}()

	ctx := context.Background()
	data := i.ApplicationCommandData()

	switch data.Name {
	case "stock":
		b.handleStock(ctx, s, i)
	case "restock":
		b.handleRestock(ctx, s, i)
	case "free", "premium", "booster", "vip":
		b.handleClaim(ctx, s, i, domain.Category(data.Name))
	case "addaccess":
		b.handleAddAccess(ctx, s, i)
	case "cooldown":
		b.handleCooldown(ctx, s, i)
	case "clearstock":
		b.handleClearStock(ctx, s, i)
	}
}

func (b *Bot) handleStock(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	counts, err := b.accounts.StockCounts(ctx)
	if err != nil {
		b.replyError(s, i, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "📦 Account Stock",
		Color: colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🆓 Free", Value: fmt.Sprintf("%d accounts", counts[domain.CategoryFree]), Inline: true},
			{Name: "💎 Premium", Value: fmt.Sprintf("%d accounts", counts[domain.CategoryPremium]), Inline: true},
			{Name: "🚀 Booster", Value: fmt.Sprintf("%d accounts", counts[domain.CategoryBooster]), Inline: true},
			{Name: "👑 VIP", Value: fmt.Sprintf("%d accounts", counts[domain.CategoryVIP]), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	b.replyEmbed(s, i, embed, false)
}

func (b *Bot) handleClaim(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, category domain.Category) {
	opts := optionMap(i)
	svc := stringOption(opts, "service")
	userID := callerID(i)

	eligible := true
	if category == domain.CategoryFree {
		eligible = b.freeEligible(s, i, userID)
		if !eligible {
			b.replyText(s, i, fmt.Sprintf("❌ Put %q in your Discord status to use the free command!", b.marker), true)
			return
		}
	}

	credential, err := b.accounts.Claim(ctx, service.ClaimInput{
		UserID:       userID,
		Category:     category,
		Service:      svc,
		FreeEligible: eligible,
	})
	if err != nil {
		b.replyError(s, i, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎉 %s %s Account", strings.ToUpper(string(category)), strings.ToUpper(svc)),
		Description: fmt.Sprintf("```%s```", credential),
		Color:       colorSuccess,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	// Prefer DM delivery; fall back to an ephemeral reply when DMs are closed.
	if channel, err := s.UserChannelCreate(userID); err == nil {
		if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err == nil {
			b.replyText(s, i, "✅ The account was sent to your DMs!", true)
			return
		}
	}
	b.replyText(s, i, fmt.Sprintf("✅ Here is your %s %s account:\n```%s```",
		strings.ToUpper(string(category)), strings.ToUpper(svc), credential), true)
}

func (b *Bot) handleRestock(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	category := domain.Category(stringOption(opts, "category"))
	svc := stringOption(opts, "service")

	attachment := b.resolveAttachment(i, opts)
	if attachment == nil {
		b.replyText(s, i, "❌ An account file is required!", true)
		return
	}

	lines, err := b.fetchAttachment(ctx, attachment)
	if err != nil {
		b.replyError(s, i, err)
		return
	}

	stored, err := b.accounts.Restock(ctx, b.actor(i), category, svc, lines)
	if err != nil {
		b.replyError(s, i, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "✅ Restock Successful",
		Color: colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Category", Value: strings.ToUpper(string(category)), Inline: true},
			{Name: "Service", Value: strings.ToUpper(svc), Inline: true},
			{Name: "Accounts Added", Value: fmt.Sprintf("%d", stored), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	b.replyEmbed(s, i, embed, false)
}

func (b *Bot) handleAddAccess(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	target := userOption(opts, "user", s)
	if target == nil {
		b.replyText(s, i, "❌ A target user is required!", true)
		return
	}
	category := domain.Category(stringOption(opts, "category"))
	quantity := intOption(opts, "time")
	unit := service.TimeUnit(stringOption(opts, "unit"))

	if err := b.accounts.Grant(ctx, b.actor(i), target.ID, category, quantity, unit); err != nil {
		b.replyError(s, i, err)
		return
	}

	if quantity <= 0 {
		b.replyText(s, i, fmt.Sprintf("✅ %s now has permanent %s access!",
			target.Username, strings.ToUpper(string(category))), false)
		return
	}
	b.replyText(s, i, fmt.Sprintf("✅ %s now has %s access for %d %s!",
		target.Username, strings.ToUpper(string(category)), quantity, unit), false)
}

func (b *Bot) handleCooldown(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	category := domain.Category(stringOption(opts, "category"))
	quantity := intOption(opts, "time")
	unit := service.TimeUnit(stringOption(opts, "unit"))

	if _, err := b.accounts.SetCooldown(ctx, b.actor(i), category, quantity, unit); err != nil {
		b.replyError(s, i, err)
		return
	}
	b.replyText(s, i, fmt.Sprintf("✅ %s cooldown set to %d %s!",
		strings.ToUpper(string(category)), quantity, unit), false)
}

func (b *Bot) handleClearStock(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	category := domain.Category(stringOption(opts, "category"))
	svc := stringOption(opts, "service")

	deleted, err := b.accounts.ClearStock(ctx, b.actor(i), category, svc)
	if err != nil {
		b.replyError(s, i, err)
		return
	}

	serviceField := "ALL"
	if svc != "" {
		serviceField = strings.ToUpper(svc)
	}
	embed := &discordgo.MessageEmbed{
		Title: "🗑️ Stock Cleared",
		Color: colorDanger,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Category", Value: strings.ToUpper(string(category)), Inline: true},
			{Name: "Service", Value: serviceField, Inline: true},
			{Name: "Files Deleted", Value: fmt.Sprintf("%d", deleted), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	b.replyEmbed(s, i, embed, false)
}

// freeEligible checks the caller's custom status for the configured invite
// marker. Missing presence data counts as not eligible.
func (b *Bot) freeEligible(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) bool {
	if i.GuildID == "" {
		return false
	}
	presence, err := s.State.Presence(i.GuildID, userID)
	if err != nil || presence == nil {
		return false
	}
	for _, activity := range presence.Activities {
		if activity.Type == discordgo.ActivityTypeCustom && strings.Contains(activity.State, b.marker) {
			return true
		}
	}
	return false
}

// actor maps the interaction caller onto the service-level identity. The
// administrator permission bit is the platform's role claim.
func (b *Bot) actor(i *discordgo.InteractionCreate) service.Actor {
	isAdmin := i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
	return service.Actor{ID: callerID(i), IsAdmin: isAdmin}
}

func callerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	result := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		result[opt.Name] = opt
	}
	return result
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int64 {
	if opt, ok := opts[name]; ok {
		return opt.IntValue()
	}
	return 0
}

func userOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string, s *discordgo.Session) *discordgo.User {
	if opt, ok := opts[name]; ok {
		return opt.UserValue(s)
	}
	return nil
}

// replyError converts a domain error into a user-facing denial message.
func (b *Bot) replyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	domainErr := apperrors.ToDomainError(err)

	var message string
	switch domainErr.Code {
	case "ACCESS_DENIED":
		message = "❌ You don't have access to this category!"
	case "COOLDOWN_ACTIVE":
		seconds := (apperrors.RemainingMillis(err) + 999) / 1000
		message = fmt.Sprintf("⏰ Cooldown active! Wait %d seconds.", seconds)
	case "OUT_OF_STOCK":
		message = "❌ No accounts in stock for this service!"
	case "FORBIDDEN", "UNAUTHORIZED":
		message = "❌ Only administrators can use this command!"
	case "VALIDATION_FAILED":
		message = fmt.Sprintf("❌ %s", domainErr.Message)
	default:
		b.logger.Error("command failed", zap.Error(err))
		message = "❌ Something went wrong while running that command!"
	}
	b.replyText(s, i, message, true)
}

func (b *Bot) replyText(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	b.respond(s, i, data)
}

func (b *Bot) replyEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	b.respond(s, i, data)
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.logger.Warn("interaction respond failed", zap.Error(err))
	}
}
