// Package provision turns completed purchases into accounts.
package provision

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"oabplanner/backend/mailer"
	"oabplanner/backend/metrics"
	"oabplanner/backend/models"
	"oabplanner/backend/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	EventCheckoutCompleted = "checkout.session.completed"

	passwordPrefix = "OAB"
	passwordMin    = 100000
	passwordMax    = 999999
)

var ErrMissingEmail = errors.New("event has no customer email")

// Event is the subset of the payment provider envelope we read.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			CustomerDetails CustomerDetails `json:"customer_details"`
		} `json:"object"`
	} `json:"data"`
}

type CustomerDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Accounts interface {
	Create(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id string) error
}

type Sales interface {
	Append(ctx context.Context, sale *models.SaleRecord) error
}

type Result struct {
	Handled         bool
	ExistingAccount bool
	Email           string
}

type Provisioner struct {
	accounts Accounts
	sales    Sales
	mail     mailer.Sender
	loginURL string
	logger   *zap.Logger
	password func() (string, error)
}

func New(accounts Accounts, sales Sales, mail mailer.Sender, loginURL string, logger *zap.Logger) *Provisioner {
	return &Provisioner{
		accounts: accounts,
		sales:    sales,
		mail:     mail,
		loginURL: loginURL,
		logger:   logger,
		password: GenerateTemporaryPassword,
	}
}

// GenerateTemporaryPassword returns "OAB" followed by six random digits.
func GenerateTemporaryPassword() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(passwordMax-passwordMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", passwordPrefix, n.Int64()+passwordMin), nil
}

// HandleEvent provisions the buyer of a completed checkout. Other event
// types are acknowledged without side effects. A buyer who already has an
// account gets the existing-account email instead of credentials. Every
// handled event appends a sale keyed on the event ID and sends exactly one
// email. When a later step fails, the account created for this event is
// removed so a redelivery provisions it again with fresh credentials.
func (p *Provisioner) HandleEvent(ctx context.Context, event Event) (Result, error) {
	if event.Type != EventCheckoutCompleted {
		metrics.WebhookEvents.WithLabelValues(event.Type, "ignored").Inc()
		return Result{}, nil
	}

	details := event.Data.Object.CustomerDetails
	email := repository.NormalizeEmail(details.Email)
	if email == "" {
		metrics.WebhookEvents.WithLabelValues(event.Type, "invalid").Inc()
		return Result{}, ErrMissingEmail
	}
	result := Result{Handled: true, Email: email}

	password, err := p.password()
	if err != nil {
		return result, p.fail(event, fmt.Errorf("generate password: %w", err))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return result, p.fail(event, fmt.Errorf("hash password: %w", err))
	}

	account := &models.Account{
		Email:        email,
		Name:         details.Name,
		PasswordHash: string(hash),
	}
	err = p.accounts.Create(ctx, account)
	switch {
	case errors.Is(err, repository.ErrAccountExists):
		result.ExistingAccount = true
		password = ""
		p.logger.Info("account already exists", zap.String("email", email), zap.String("event_id", event.ID))
	case err != nil:
		return result, p.fail(event, fmt.Errorf("create account: %w", err))
	}

	sale := &models.SaleRecord{
		Email:  email,
		Name:   details.Name,
		Source: models.SaleSourceStripe,
		Status: models.SaleStatusPaid,
	}
	if event.ID != "" {
		sale.EventID = &event.ID
	}
	if err := p.sales.Append(ctx, sale); err != nil {
		p.discard(ctx, event, account, result)
		return result, p.fail(event, fmt.Errorf("record sale: %w", err))
	}

	msg, err := mailer.Welcome(mailer.WelcomeData{
		Name:     details.Name,
		Email:    email,
		Password: password,
		LoginURL: p.loginURL,
	})
	if err != nil {
		p.discard(ctx, event, account, result)
		return result, p.fail(event, fmt.Errorf("render welcome email: %w", err))
	}

	template := "welcome"
	if result.ExistingAccount {
		template = "existing_account"
	}
	if err := p.mail.Send(ctx, msg); err != nil {
		metrics.EmailsSent.WithLabelValues(template, "failed").Inc()
		p.discard(ctx, event, account, result)
		return result, p.fail(event, err)
	}
	metrics.EmailsSent.WithLabelValues(template, "sent").Inc()
	metrics.WebhookEvents.WithLabelValues(event.Type, "provisioned").Inc()

	p.logger.Info("purchase provisioned",
		zap.String("email", email),
		zap.Bool("existing_account", result.ExistingAccount),
		zap.String("event_id", event.ID),
	)
	return result, nil
}

// discard deletes the account this event created. Accounts that existed
// before the event are left alone.
func (p *Provisioner) discard(ctx context.Context, event Event, account *models.Account, result Result) {
	if result.ExistingAccount || account.ID == "" {
		return
	}
	if err := p.accounts.Delete(ctx, account.ID); err != nil {
		p.logger.Error("failed to remove account after provisioning failure",
			zap.String("event_id", event.ID),
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
		return
	}
	p.logger.Info("account removed after provisioning failure", zap.String("event_id", event.ID), zap.String("email", account.Email))
}

func (p *Provisioner) fail(event Event, err error) error {
	metrics.WebhookEvents.WithLabelValues(event.Type, "failed").Inc()
	p.logger.Error("provisioning failed", zap.String("event_id", event.ID), zap.Error(err))
	return err
}
