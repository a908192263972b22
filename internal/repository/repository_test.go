package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	"StockLens/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mc := cache.NewMemoryCache()
	defer mc.Close()
	s := NewThemeStore(mc, 0)

	got, err := s.GetTheme(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domrepo.ThemeDark, got, "dark until light is chosen")

	require.NoError(t, s.SetTheme(ctx, "s1", domrepo.ThemeLight))
	got, err = s.GetTheme(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domrepo.ThemeLight, got)

	other, err := s.GetTheme(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, domrepo.ThemeDark, other)

	var raw string
	require.NoError(t, mc.Get(ctx, "theme:s1", &raw))
	assert.Equal(t, "light", raw)
}

func TestThemeStore_RejectsUnknown(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	s := NewThemeStore(mc, 0)

	assert.Error(t, s.SetTheme(context.Background(), "s1", domrepo.Theme("sepia")))
}

func TestThemeStore_UnknownStoredValueIsDark(t *testing.T) {
	ctx := context.Background()
	mc := cache.NewMemoryCache()
	defer mc.Close()
	require.NoError(t, mc.Set(ctx, "theme:s1", "sepia", 0))

	got, err := NewThemeStore(mc, 0).GetTheme(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domrepo.ThemeDark, got)
}

type capturedMessage struct {
	topic string
	key   string
	value []byte
}

type fakePublisher struct {
	msgs []capturedMessage
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	if f.err != nil {
		return f.err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.msgs = append(f.msgs, capturedMessage{topic, string(key), b})
	return nil
}

func TestSnapshotPublisher_KeysBySymbol(t *testing.T) {
	fp := &fakePublisher{}
	p := NewSnapshotPublisher(fp, "stocklens.snapshots")

	vm := &models.ViewModel{Symbol: "AAPL", Price: models.Present(models.PriceQuote{Symbol: "AAPL", Current: 190.5})}
	require.NoError(t, p.Present(context.Background(), vm))

	require.Len(t, fp.msgs, 1)
	assert.Equal(t, "stocklens.snapshots", fp.msgs[0].topic)
	assert.Equal(t, "AAPL", fp.msgs[0].key)

	var decoded models.ViewModel
	require.NoError(t, json.Unmarshal(fp.msgs[0].value, &decoded))
	assert.Equal(t, 190.5, decoded.Price.Data.Current)
}

func TestSnapshotPublisher_WrapsErrors(t *testing.T) {
	sentinel := errors.New("broker down")
	p := NewSnapshotPublisher(&fakePublisher{err: sentinel}, "t")

	err := p.Present(context.Background(), &models.ViewModel{Symbol: "MSFT"})
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "MSFT")
}
