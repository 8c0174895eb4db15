package service

import (
	"context"
	"testing"

	"github.com/YanislavD/EventApp/internal/domain"
	"github.com/YanislavD/EventApp/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) subscribedTicket(t *testing.T) (*models.User, *models.Event, *models.Ticket) {
	t.Helper()
	ctx := context.Background()

	creator := env.createUser(t, "creator")
	attendee := env.createUser(t, "attendee")
	category := env.createCategory(t, "Music")
	start, end := futureWindow()
	event := env.createEvent(t, creator, category, nil, start, end)

	_, err := env.bookings.Subscribe(ctx, event.ID, attendee)
	require.NoError(t, err)

	tickets, err := env.tickets.ForUser(ctx, attendee.ID)
	require.NoError(t, err)
	ticket := tickets[event.ID]
	return attendee, event, &ticket
}

func TestResolveByCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	attendee, event, ticket := env.subscribedTicket(t)

	resolved, err := env.tickets.ResolveByCode(ctx, ticket.Code)
	require.NoError(t, err)
	require.NotNil(t, resolved.Subscription)
	assert.Equal(t, attendee.ID, resolved.Subscription.UserID)
	assert.Equal(t, event.ID, resolved.Subscription.EventID)

	_, err = env.tickets.ResolveByCode(ctx, "no-such-code")
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestAuthorizeView_OwnerAndAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	attendee, _, ticket := env.subscribedTicket(t)
	stranger := env.createUser(t, "stranger")
	admin := env.createAdmin(t, "admin")

	_, err := env.tickets.AuthorizeView(ctx, ticket.Code, attendee)
	assert.NoError(t, err)

	_, err = env.tickets.AuthorizeView(ctx, ticket.Code, admin)
	assert.NoError(t, err)

	_, err = env.tickets.AuthorizeView(ctx, ticket.Code, stranger)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestIssue_OneTicketPerSubscription(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, ticket := env.subscribedTicket(t)

	resolved, err := env.tickets.ResolveByCode(ctx, ticket.Code)
	require.NoError(t, err)

	// a second ticket for the same subscription hits the unique index
	// until the retries run out
	sub := &models.Subscription{ID: resolved.SubscriptionID}
	_, err = env.tickets.Issue(ctx, env.db, sub)
	assert.ErrorIs(t, err, domain.ErrTicketCodeCollision)
}

func TestRevokeForSubscription_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, ticket := env.subscribedTicket(t)

	resolved, err := env.tickets.ResolveByCode(ctx, ticket.Code)
	require.NoError(t, err)

	require.NoError(t, env.tickets.RevokeForSubscription(ctx, env.db, resolved.SubscriptionID))
	require.NoError(t, env.tickets.RevokeForSubscription(ctx, env.db, resolved.SubscriptionID))

	_, err = env.tickets.ResolveByCode(ctx, ticket.Code)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestIssue_CodesAreUnique(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.createUser(t, "creator")
	category := env.createCategory(t, "Music")
	start, end := futureWindow()
	event := env.createEvent(t, creator, category, nil, start, end)

	seen := map[string]bool{}
	for _, name := range []string{"u1", "u2", "u3", "u4"} {
		user := env.createUser(t, name)
		_, err := env.bookings.Subscribe(ctx, event.ID, user)
		require.NoError(t, err)

		tickets, err := env.tickets.ForUser(ctx, user.ID)
		require.NoError(t, err)
		code := tickets[event.ID].Code
		assert.False(t, seen[code])
		seen[code] = true

		_, err = uuid.Parse(code)
		assert.NoError(t, err)
	}
}
