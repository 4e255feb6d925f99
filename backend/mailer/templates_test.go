package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcomeWithCredentials(t *testing.T) {
	msg, err := Welcome(WelcomeData{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "OAB123456",
		LoginURL: "https://planner.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, WelcomeSubject, msg.Subject)
	assert.Equal(t, "ana@example.com", msg.To)
	assert.Contains(t, msg.HTML, "OAB123456")
	assert.Contains(t, msg.HTML, "https://planner.example.com")
}

func TestWelcomeExistingAccount(t *testing.T) {
	msg, err := Welcome(WelcomeData{Email: "bia@example.com"})
	require.NoError(t, err)

	assert.Equal(t, ExistingAccountSubject, msg.Subject)
	assert.Contains(t, msg.HTML, "já possui uma conta")
	assert.NotContains(t, msg.HTML, "Senha temporária")
	assert.Equal(t, "aluno(a)", msg.ToName)
}

func TestWelcomeEscapesName(t *testing.T) {
	msg, err := Welcome(WelcomeData{Name: "<script>x</script>", Email: "c@example.com"})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestSMTPSenderHonoursCancelledContext(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "localhost", Port: 2525, From: "a@example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, Message{To: "b@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}
