// Package discord serves lookups as Discord slash commands.
package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/lox/d2wiki/internal/config"
	"github.com/lox/d2wiki/internal/d2"
	"github.com/lox/d2wiki/internal/embed"
	"github.com/lox/d2wiki/internal/lookup"
)

const (
	CommandPerk         = "특성"
	CommandWell         = "원소샘"
	CommandExoticWeapon = "경이무기"
	CommandExoticArmor  = "경이방어구"
	CommandInfo         = "info"
	CommandLink         = "link"

	optionQuery  = "query"
	optionColumn = "column"

	interactionTimeout = 30 * time.Second
)

// session is the part of *discordgo.Session used to answer interactions.
type session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Bot struct {
	cfg     config.Config
	svc     *lookup.Service
	logger  *zap.Logger
	session *discordgo.Session
}

func New(cfg config.Config, svc *lookup.Service, logger *zap.Logger) (*Bot, error) {
	if strings.TrimSpace(cfg.Discord.Token) == "" {
		return nil, errors.New("discord token is not configured (set discord.token or D2WIKI_DISCORD_TOKEN)")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{cfg: cfg, svc: svc, logger: logger.Named("discord"), session: s}, nil
}

// Run connects to the gateway, registers commands and serves interactions
// until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	remove := b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handle(ctx, s, i)
	})
	defer remove()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.logger.Warn("closing discord session", zap.Error(err))
		}
	}()

	if err := b.register(); err != nil {
		return err
	}
	b.logger.Info("bot ready", zap.String("user", b.session.State.User.Username))

	<-ctx.Done()
	return nil
}

func (b *Bot) register() error {
	appID := b.session.State.User.ID
	cmds := Commands(b.cfg.Commands)

	guilds := b.cfg.Discord.GuildIDs
	if len(guilds) == 0 {
		guilds = []string{""}
	}
	for _, guild := range guilds {
		if _, err := b.session.ApplicationCommandBulkOverwrite(appID, guild, cmds); err != nil {
			return fmt.Errorf("register commands (guild %q): %w", guild, err)
		}
		b.logger.Info("registered commands", zap.String("guild", guild), zap.Int("count", len(cmds)))
	}
	return nil
}

// Commands lists the slash commands for the enabled command groups.
func Commands(groups []string) []*discordgo.ApplicationCommand {
	query := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optionQuery,
			Description: desc,
			Required:    true,
		}
	}

	var cmds []*discordgo.ApplicationCommand
	for _, group := range groups {
		switch group {
		case config.CommandPerks:
			choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(d2.PerkColumns.Tags()))
			for _, col := range d2.PerkColumns.Tags() {
				choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
					Name:  col.DisplayName(),
					Value: string(col),
				})
			}
			cmds = append(cmds, &discordgo.ApplicationCommand{
				Name:        CommandPerk,
				Description: "무기 특성을 검색합니다",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optionColumn,
						Description: "특성 열",
						Required:    true,
						Choices:     choices,
					},
					query("특성 이름"),
				},
			})
		case config.CommandWells:
			cmds = append(cmds, &discordgo.ApplicationCommand{
				Name:        CommandWell,
				Description: "원소샘 개조부품을 검색합니다",
				Options:     []*discordgo.ApplicationCommandOption{query("개조부품 이름")},
			})
		case config.CommandExotics:
			cmds = append(cmds,
				&discordgo.ApplicationCommand{
					Name:        CommandExoticWeapon,
					Description: "경이 무기를 검색합니다",
					Options:     []*discordgo.ApplicationCommandOption{query("무기 이름")},
				},
				&discordgo.ApplicationCommand{
					Name:        CommandExoticArmor,
					Description: "경이 방어구를 검색합니다",
					Options:     []*discordgo.ApplicationCommandOption{query("방어구 이름")},
				},
			)
		case config.CommandInfo:
			cmds = append(cmds,
				&discordgo.ApplicationCommand{Name: CommandInfo, Description: "봇 정보"},
				&discordgo.ApplicationCommand{Name: CommandLink, Description: "데이터베이스 링크"},
			)
		}
	}
	return cmds
}

func (b *Bot) handle(ctx context.Context, s session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	opts := options(data.Options)
	logger := b.logger.With(zap.String("command", data.Name), zap.String("query", opts[optionQuery]))

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		logger.Error("deferring interaction", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, interactionTimeout)
	defer cancel()

	msg, err := b.dispatch(ctx, data.Name, opts)
	if err != nil {
		logger.Error("command failed", zap.Error(err))
	} else {
		logger.Info("command handled")
	}

	embeds := []*discordgo.MessageEmbed{ToDiscordEmbed(msg)}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds}); err != nil {
		logger.Error("editing interaction response", zap.Error(err))
	}
}

// dispatch runs a command. The returned message is always renderable, also
// when err is set.
func (b *Bot) dispatch(ctx context.Context, name string, opts map[string]string) (embed.Message, error) {
	text := opts[optionQuery]
	switch name {
	case CommandPerk:
		col, err := d2.PerkColumns.Parse(opts[optionColumn])
		if err != nil {
			return embed.Failure(text), err
		}
		return b.svc.Perk(ctx, col, text)
	case CommandWell:
		return b.svc.Well(ctx, text)
	case CommandExoticWeapon:
		return b.svc.ExoticWeapon(ctx, text)
	case CommandExoticArmor:
		return b.svc.ExoticArmor(ctx, text)
	case CommandInfo:
		return lookup.Info(b.cfg.Contributors), nil
	case CommandLink:
		return lookup.Links(), nil
	default:
		return embed.Failure(name), fmt.Errorf("unknown command %q", name)
	}
}

func options(in []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	out := make(map[string]string, len(in))
	for _, o := range in {
		if o.Type == discordgo.ApplicationCommandOptionString {
			out[o.Name] = strings.TrimSpace(o.StringValue())
		}
	}
	return out
}
