package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	apperrors "github.com/FFMGAMER/FFM-Gen-Bot/pkg/util/errorutil"
)

// resolveAttachment looks up the uploaded file behind the "file" option.
func (b *Bot) resolveAttachment(i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) *discordgo.MessageAttachment {
	opt, ok := opts["file"]
	if !ok {
		return nil
	}
	id, ok := opt.Value.(string)
	if !ok {
		return nil
	}
	resolved := i.ApplicationCommandData().Resolved
	if resolved == nil {
		return nil
	}
	return resolved.Attachments[id]
}

// fetchAttachment validates and downloads a restock file, returning its raw
// lines. Type and size are rejected before any bytes are fetched.
func (b *Bot) fetchAttachment(ctx context.Context, attachment *discordgo.MessageAttachment) ([]string, error) {
	if !strings.HasSuffix(strings.ToLower(attachment.Filename), ".txt") {
		return nil, apperrors.NewValidationError("only .txt files are accepted", nil)
	}
	if b.maxBytes > 0 && int64(attachment.Size) > b.maxBytes {
		return nil, apperrors.NewValidationError("file too large", map[string]any{
			"max_bytes": b.maxBytes,
		})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, attachment.URL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewStorageUnavailable(fmt.Errorf("attachment fetch returned %d", resp.StatusCode))
	}

	reader := io.Reader(resp.Body)
	if b.maxBytes > 0 {
		reader = io.LimitReader(resp.Body, b.maxBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	if b.maxBytes > 0 && int64(len(body)) > b.maxBytes {
		return nil, apperrors.NewValidationError("file too large", map[string]any{
			"max_bytes": b.maxBytes,
		})
	}

	normalized := strings.ReplaceAll(string(body), "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Split(normalized, "\n"), nil
}
