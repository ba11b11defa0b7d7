package usecase

import (
	"context"
	"strings"
	"testing"

	"AvkuWeb/internal/domain/models"
	"AvkuWeb/internal/service/telegram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMessage(t *testing.T) {
	got := FormatMessage(&models.ContactMessage{
		Name:    "Олена_К",
		Email:   "olena@example.com",
		Message: "<i>Хочу</i> допомогти *дуже*",
	})

	want := "Нове повідомлення з сайту!\n\n" +
		"*Ім'я:* Олена\\_К\n" +
		"*Email:* olena@example.com\n" +
		"*Повідомлення:*\n" +
		"<i>Хочу</i> допомогти \\*дуже\\*"
	assert.Equal(t, want, got)
}

func TestFormatMessageKeepsAngleBrackets(t *testing.T) {
	got := FormatMessage(&models.ContactMessage{
		Name:    "<b></b>",
		Email:   "a@b.c",
		Message: "use <email> please; 2 < 3 & 5 > 4",
	})
	assert.Contains(t, got, "*Ім'я:* <b></b>\n")
	assert.True(t, strings.HasSuffix(got, "\nuse <email> please; 2 < 3 & 5 > 4"), got)
}

func TestContactSend(t *testing.T) {
	n := &fakeNotifier{}
	u := NewContactForwarder(n, newMetrics(), nil)

	require.NoError(t, u.Send(context.Background(), &models.ContactMessage{Name: "A", Email: "a@b.c", Message: "hi"}))
	require.Len(t, n.texts, 1)
	assert.Contains(t, n.texts[0], "*Email:* a@b.c")
}

func TestContactSendRejectsMissingFieldsWithoutCallingNotifier(t *testing.T) {
	cases := []*models.ContactMessage{
		nil,
		{Email: "a@b.c", Message: "hi"},
		{Name: "A", Message: "hi"},
		{Name: "A", Email: "a@b.c", Message: "   "},
	}

	n := &fakeNotifier{}
	u := NewContactForwarder(n, newMetrics(), nil)
	for _, m := range cases {
		assert.ErrorIs(t, u.Send(context.Background(), m), models.ErrMissingFields)
	}
	assert.Empty(t, n.texts)
}

func TestContactSendPropagatesNotifierError(t *testing.T) {
	n := &fakeNotifier{err: &telegram.APIError{ErrorCode: 400, Description: "chat not found"}}
	u := NewContactForwarder(n, newMetrics(), nil)

	err := u.Send(context.Background(), &models.ContactMessage{Name: "A", Email: "a@b.c", Message: "hi"})
	require.Error(t, err)
	assert.True(t, telegram.IsAPIError(err))
}
