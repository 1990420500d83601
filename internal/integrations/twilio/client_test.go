package twilio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

type fakeAPI struct {
	params []*openapi.CreateMessageParams
	err    error
}

func (f *fakeAPI) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	return &openapi.ApiV2010Message{Sid: ptr.Ptr("SM123")}, nil
}

func TestClient_SendSMS(t *testing.T) {
	api := &fakeAPI{}
	c := newClient(api, "+15550001111", logger.NewNop())

	require.NoError(t, c.SendSMS(context.Background(), "+919800000000", "Booking confirmed"))
	require.Len(t, api.params, 1)

	p := api.params[0]
	assert.Equal(t, "+919800000000", ptr.Value(p.To))
	assert.Equal(t, "+15550001111", ptr.Value(p.From))
	assert.Equal(t, "Booking confirmed", ptr.Value(p.Body))
}

func TestClient_SendSMS_Errors(t *testing.T) {
	c := newClient(&fakeAPI{}, "+15550001111", logger.NewNop())
	assert.ErrorIs(t, c.SendSMS(context.Background(), "9800000000", "x"), ErrInvalidRecipient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.SendSMS(ctx, "+919800000000", "x"), ErrInternal)

	c = newClient(&fakeAPI{err: errors.New("20003 auth")}, "+15550001111", logger.NewNop())
	assert.ErrorIs(t, c.SendSMS(context.Background(), "+919800000000", "x"), ErrInternal)
}
