// Package lookup turns a command query into a rendered message.
package lookup

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lox/d2wiki/internal/config"
	"github.com/lox/d2wiki/internal/d2"
	"github.com/lox/d2wiki/internal/embed"
	"github.com/lox/d2wiki/internal/query"
)

const (
	RepositoryURL = "https://github.com/lox/d2wiki"
	NotionURL     = "https://www.notion.so/d2wiki"
)

type Service struct {
	Client *query.Client
	Logger *zap.Logger
}

func New(client *query.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Client: client, Logger: logger}
}

func (s *Service) Perk(ctx context.Context, column d2.PerkColumn, text string) (embed.Message, error) {
	perks, err := s.Client.Perks(ctx, column, text)
	if err != nil {
		return s.fail("perk", text, err)
	}
	if len(perks) == 0 {
		return embed.NoResults(text), nil
	}
	return perks[0].Render(), nil
}

func (s *Service) Well(ctx context.Context, text string) (embed.Message, error) {
	wells, err := s.Client.ElementalWells(ctx, text)
	if err != nil {
		return s.fail("elemental well", text, err)
	}
	if len(wells) == 0 {
		return embed.NoResults(text), nil
	}
	return wells[0].Render(), nil
}

func (s *Service) ExoticWeapon(ctx context.Context, text string) (embed.Message, error) {
	weapons, err := s.Client.ExoticWeapons(ctx, text)
	if err != nil {
		return s.fail("exotic weapon", text, err)
	}
	if len(weapons) == 0 {
		return embed.NoResults(text), nil
	}
	return weapons[0].Render(), nil
}

func (s *Service) ExoticArmor(ctx context.Context, text string) (embed.Message, error) {
	armors, err := s.Client.ExoticArmors(ctx, text)
	if err != nil {
		return s.fail("exotic armor", text, err)
	}
	if len(armors) == 0 {
		return embed.NoResults(text), nil
	}
	return armors[0].Render(), nil
}

func (s *Service) fail(kind, text string, err error) (embed.Message, error) {
	s.Logger.Error("lookup failed",
		zap.String("kind", kind),
		zap.String("query", text),
		zap.Error(err))
	return embed.Failure(text), fmt.Errorf("%s lookup %q: %w", kind, text, err)
}

// Info describes the bot and credits its contributors.
func Info(contributors []config.Contributor) embed.Message {
	m := embed.Message{
		Title:       "D2 Wiki",
		Description: "데스티니 가디언즈 정보를 노션 데이터베이스에서 찾아 드립니다.",
		URL:         strPtr(RepositoryURL),
	}
	repo := RepositoryURL
	notionURL := NotionURL
	m.AddField("GitHub", embed.Link("저장소", &repo), true).
		AddField("Notion", embed.Link("데이터베이스", &notionURL), true)

	if len(contributors) > 0 {
		lines := make([]string, 0, len(contributors))
		for _, c := range contributors {
			lines = append(lines, fmt.Sprintf("<@!%s>: %s", c.ID, c.Comment))
		}
		m.AddField("기여자", strings.Join(lines, "\n"), false)
	}
	return m
}

// Links lists where the data and code live.
func Links() embed.Message {
	repo := RepositoryURL
	notionURL := NotionURL
	m := embed.Message{Title: "링크"}
	m.AddField("Notion", embed.Link(notionURL, &notionURL), false).
		AddField("GitHub", embed.Link(repo, &repo), false)
	return m
}

func strPtr(s string) *string { return &s }
