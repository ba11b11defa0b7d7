package scraper

import (
	"context"
	"errors"
	"testing"

	"AvkuWeb/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	text string
	err  error
	urls []string
}

func (f *fakeReader) ReadText(_ context.Context, pageURL string) (string, error) {
	f.urls = append(f.urls, pageURL)
	return f.text, f.err
}

func TestScraperFetchJar(t *testing.T) {
	r := &fakeReader{text: "Накопичено 100 ₴ / Ціль 5000 грн"}
	s := New(r)

	j, err := s.FetchJar(context.Background(), "abc 1")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://send.monobank.ua/jar/abc%201"}, r.urls)
	assert.Equal(t, "abc 1", j.SendID)
	assert.Equal(t, int64(100), j.Balance)
	require.NotNil(t, j.Goal)
	assert.Equal(t, int64(5000), *j.Goal)
	assert.Equal(t, models.SourceScrape, j.Source)
	assert.Equal(t, "scrape", s.Name())
}

func TestScraperFetchJarReaderError(t *testing.T) {
	s := New(&fakeReader{err: errors.New("net::ERR_NAME_NOT_RESOLVED")}, WithURLTemplate("http://jar.local/%s"))

	_, err := s.FetchJar(context.Background(), "abc")
	ue, ok := models.IsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, "scrape", ue.Service)
	assert.Contains(t, err.Error(), "ERR_NAME_NOT_RESOLVED")
}

func TestScraperNoAmountsIsZeroBalance(t *testing.T) {
	j, err := New(&fakeReader{text: "Поповнити банку"}).FetchJar(context.Background(), "abc")
	require.NoError(t, err)
	assert.Zero(t, j.Balance)
	assert.Nil(t, j.Goal)
}
