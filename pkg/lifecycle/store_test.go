package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dateParam   = "/ebs-cleaner/initial_date"
	ticketParam = "/ebs-cleaner/ticket_id"
)

func TestStateStore_LoadMissingIsNoCycle(t *testing.T) {
	store := NewStateStore(newFakeParams(), dateParam, ticketParam)

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Open())
}

func TestStateStore_OpenLoadClear(t *testing.T) {
	params := newFakeParams()
	store := NewStateStore(params, dateParam, ticketParam)
	ctx := context.Background()

	require.NoError(t, store.Open(ctx, "SD-42", date("2025-03-09")))
	assert.Equal(t, "2025-03-09", params.values[dateParam])
	assert.Equal(t, "SD-42", params.values[ticketParam])

	state, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, state.Open())
	assert.Equal(t, date("2025-03-09"), *state.InitialDate)
	assert.Equal(t, "SD-42", state.TicketID)

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, params.values)
	assert.Equal(t, []string{dateParam, ticketParam}, params.deletes)
}

func TestStateStore_ClearFailureLeavesNoCycle(t *testing.T) {
	params := newFakeParams()
	params.failDeleteOnce = ticketParam
	store := NewStateStore(params, dateParam, ticketParam)
	ctx := context.Background()

	require.NoError(t, store.Open(ctx, "SD-42", date("2025-03-09")))
	require.ErrorIs(t, store.Clear(ctx), errBoom)
	assert.Equal(t, map[string]string{ticketParam: "SD-42"}, params.values)

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, state.Open())
}

func TestStateStore_MalformedDate(t *testing.T) {
	params := newFakeParams()
	params.values[dateParam] = "09/03/2025"
	params.values[ticketParam] = "SD-42"
	store := NewStateStore(params, dateParam, ticketParam)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), dateParam)
}

func TestStateStore_DateWithoutTicket(t *testing.T) {
	params := newFakeParams()
	params.values[dateParam] = "2025-03-09"
	store := NewStateStore(params, dateParam, ticketParam)

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Open())
	assert.Empty(t, state.TicketID)
}

func TestStateStore_ReadError(t *testing.T) {
	params := newFakeParams()
	params.getErr = errBoom
	store := NewStateStore(params, dateParam, ticketParam)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, errBoom)
}
