package provision

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"

	"oabplanner/backend/mailer"
	"oabplanner/backend/models"
	"oabplanner/backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type recordingSender struct {
	sent     []mailer.Message
	err      error
	failures int
}

func (r *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	if r.err != nil {
		return r.err
	}
	if r.failures > 0 {
		r.failures--
		return errors.New("smtp timeout")
	}
	r.sent = append(r.sent, msg)
	return nil
}

func setupProvisioner(t *testing.T) (*Provisioner, *repository.Store, *recordingSender) {
	t.Helper()
	db, err := repository.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	store := repository.NewStore(db)
	sender := &recordingSender{}
	p := New(store.Accounts, store.Sales, sender, "https://planner.example.com", zap.NewNop())
	return p, store, sender
}

func checkoutEvent(email, name string) Event {
	var ev Event
	ev.ID = "evt_1"
	ev.Type = EventCheckoutCompleted
	ev.Data.Object.CustomerDetails = CustomerDetails{Email: email, Name: name}
	return ev
}

func TestGenerateTemporaryPassword(t *testing.T) {
	pattern := regexp.MustCompile(`^OAB\d{6}$`)

	for i := 0; i < 1000; i++ {
		pw, err := GenerateTemporaryPassword()
		require.NoError(t, err)
		require.Regexp(t, pattern, pw)

		n, err := strconv.Atoi(pw[3:])
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestHandleEventCreatesAccount(t *testing.T) {
	p, store, sender := setupProvisioner(t)
	p.password = func() (string, error) { return "OAB654321", nil }
	ctx := context.Background()

	res, err := p.HandleEvent(ctx, checkoutEvent("Ana@Example.com", "Ana"))
	require.NoError(t, err)
	assert.True(t, res.Handled)
	assert.False(t, res.ExistingAccount)

	account, err := store.Accounts.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", account.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("OAB654321")))

	sales, err := store.Sales.ListByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, models.SaleStatusPaid, sales[0].Status)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, mailer.WelcomeSubject, sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].HTML, "OAB654321")
}

func TestHandleEventExistingAccount(t *testing.T) {
	p, store, sender := setupProvisioner(t)
	ctx := context.Background()
	require.NoError(t, store.Accounts.Create(ctx, &models.Account{Email: "bia@example.com", PasswordHash: "old"}))

	res, err := p.HandleEvent(ctx, checkoutEvent("bia@example.com", "Bia"))
	require.NoError(t, err)
	assert.True(t, res.ExistingAccount)

	account, err := store.Accounts.FindByEmail(ctx, "bia@example.com")
	require.NoError(t, err)
	assert.Equal(t, "old", account.PasswordHash, "existing credentials untouched")

	sales, err := store.Sales.ListByEmail(ctx, "bia@example.com")
	require.NoError(t, err)
	assert.Len(t, sales, 1, "sale recorded even for existing accounts")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, mailer.ExistingAccountSubject, sender.sent[0].Subject)
	assert.NotContains(t, sender.sent[0].HTML, "OAB")
}

func TestHandleEventIgnoresOtherTypes(t *testing.T) {
	p, store, sender := setupProvisioner(t)
	ctx := context.Background()

	ev := checkoutEvent("carla@example.com", "Carla")
	ev.Type = "payment_intent.created"

	res, err := p.HandleEvent(ctx, ev)
	require.NoError(t, err)
	assert.False(t, res.Handled)

	_, err = store.Accounts.FindByEmail(ctx, "carla@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	sales, err := store.Sales.ListByEmail(ctx, "carla@example.com")
	require.NoError(t, err)
	assert.Empty(t, sales)
	assert.Empty(t, sender.sent)
}

func TestHandleEventMissingEmail(t *testing.T) {
	p, _, sender := setupProvisioner(t)

	_, err := p.HandleEvent(context.Background(), checkoutEvent("  ", "Sem Email"))
	assert.ErrorIs(t, err, ErrMissingEmail)
	assert.Empty(t, sender.sent)
}

func TestHandleEventSurfacesMailFailure(t *testing.T) {
	p, _, sender := setupProvisioner(t)
	sender.err = errors.New("smtp unavailable")

	_, err := p.HandleEvent(context.Background(), checkoutEvent("dani@example.com", "Dani"))
	assert.EqualError(t, err, "smtp unavailable")
}

func TestHandleEventMailFailureRemovesNewAccount(t *testing.T) {
	p, store, sender := setupProvisioner(t)
	sender.err = errors.New("smtp unavailable")
	ctx := context.Background()

	_, err := p.HandleEvent(ctx, checkoutEvent("dani@example.com", "Dani"))
	require.Error(t, err)

	_, err = store.Accounts.FindByEmail(ctx, "dani@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHandleEventRedeliveryAfterMailFailure(t *testing.T) {
	p, store, sender := setupProvisioner(t)
	sender.failures = 1
	ctx := context.Background()
	ev := checkoutEvent("eva@example.com", "Eva")

	_, err := p.HandleEvent(ctx, ev)
	require.EqualError(t, err, "smtp timeout")
	assert.Empty(t, sender.sent)

	res, err := p.HandleEvent(ctx, ev)
	require.NoError(t, err)
	assert.False(t, res.ExistingAccount, "redelivery provisions a fresh account")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, mailer.WelcomeSubject, sender.sent[0].Subject)
	assert.Regexp(t, regexp.MustCompile(`OAB\d{6}`), sender.sent[0].HTML)

	sales, err := store.Sales.ListByEmail(ctx, "eva@example.com")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.NotNil(t, sales[0].EventID)
	assert.Equal(t, "evt_1", *sales[0].EventID)
}

func TestHandleEventMailFailureKeepsExistingAccount(t *testing.T) {
	p, store, sender := setupProvisioner(t)
	ctx := context.Background()
	require.NoError(t, store.Accounts.Create(ctx, &models.Account{Email: "fabi@example.com", PasswordHash: "old"}))
	sender.err = errors.New("smtp unavailable")

	_, err := p.HandleEvent(ctx, checkoutEvent("fabi@example.com", "Fabi"))
	require.Error(t, err)

	account, err := store.Accounts.FindByEmail(ctx, "fabi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "old", account.PasswordHash)
}
