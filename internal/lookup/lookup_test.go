package lookup

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lox/d2wiki/internal/api"
	"github.com/lox/d2wiki/internal/config"
	"github.com/lox/d2wiki/internal/d2"
	"github.com/lox/d2wiki/internal/embed"
	"github.com/lox/d2wiki/internal/notiontest"
	"github.com/lox/d2wiki/internal/query"
)

func newService(t *testing.T) (*Service, *notiontest.Server, config.Collections) {
	t.Helper()
	srv := notiontest.NewServer(t)
	cols := config.DefaultCollections()
	return New(query.New(srv.Client(t), cols, zap.NewNop()), zap.NewNop()), srv, cols
}

func TestPerkLookupEndToEnd(t *testing.T) {
	svc, srv, cols := newService(t)
	srv.SetQuery(cols.PerkRow1, notiontest.Row("p1", map[string]any{
		d2.PropName: notiontest.Title("High-Impact Frame"),
		d2.PropDesc: notiontest.RichText("Deals extra damage"),
	}))

	m, err := svc.Perk(context.Background(), d2.ColumnBarrel, "High-Impact")
	require.NoError(t, err)
	assert.Equal(t, "High-Impact Frame", m.Title)
	assert.Contains(t, m.Description, "Deals extra damage")
	require.NotNil(t, m.ThumbnailURL)
	assert.Equal(t, "https://img.example/p1.png", *m.ThumbnailURL)
}

func TestLookupRendersFirstMatchOnly(t *testing.T) {
	svc, srv, cols := newService(t)
	srv.SetQuery(cols.ExoticWeapons,
		notiontest.Row("w1", map[string]any{
			d2.PropName:       notiontest.Title("Ace of Spades"),
			d2.PropCategory:   notiontest.Select("핸드 캐논"),
			d2.PropWeaponSlot: notiontest.Select("물리/시공"),
			d2.PropExoticPerk: notiontest.RichText("Memento Mori"),
			d2.PropDesc:       notiontest.RichText("Reloading after a kill loads special rounds."),
		}),
		notiontest.Row("w2", map[string]any{
			d2.PropName:       notiontest.Title("Ace of Spades (Catalyst)"),
			d2.PropCategory:   notiontest.Select("핸드 캐논"),
			d2.PropWeaponSlot: notiontest.Select("물리/시공"),
			d2.PropExoticPerk: notiontest.RichText(""),
			d2.PropDesc:       notiontest.RichText(""),
		}),
	)

	m, err := svc.ExoticWeapon(context.Background(), "Ace")
	require.NoError(t, err)
	assert.Equal(t, "Ace of Spades", m.Title)
	assert.Equal(t, embed.ExoticColor, m.Color)
}

func TestLookupNoResults(t *testing.T) {
	svc, srv, cols := newService(t)
	srv.SetQuery(cols.ElementalWells)

	m, err := svc.Well(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Equal(t, embed.NoResults("nothing"), m)
}

func TestLookupRemoteFailureIsDistinct(t *testing.T) {
	svc, srv, _ := newService(t)
	srv.Fail("/databases/", http.StatusServiceUnavailable)

	m, err := svc.ExoticArmor(context.Background(), "Nighthawk")
	require.Error(t, err)
	assert.True(t, isAPIError(err))
	assert.Equal(t, embed.Failure("Nighthawk"), m)
	assert.NotEqual(t, embed.NoResults("Nighthawk").Title, m.Title)
}

func isAPIError(err error) bool {
	var apiErr *api.Error
	return errors.As(err, &apiErr)
}

func TestInfoMentionsContributors(t *testing.T) {
	m := Info([]config.Contributor{{ID: "1234", Comment: "데이터 정리"}, {ID: "5678", Comment: "번역"}})

	require.Len(t, m.Fields, 3)
	assert.Equal(t, "<@!1234>: 데이터 정리\n<@!5678>: 번역", m.Fields[2].Value)

	assert.Len(t, Info(nil).Fields, 2)
}

func TestLinks(t *testing.T) {
	m := Links()
	require.Len(t, m.Fields, 2)
	assert.Contains(t, m.Fields[0].Value, NotionURL)
}
