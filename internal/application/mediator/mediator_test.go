package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koussay97/space-travel-TSP/internal/application/mediator"
)

type echoQuery struct {
	Text string
}

type echoResponse struct {
	Text string
}

func echoHandler() mediator.HandlerFunc {
	return func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return &echoResponse{Text: request.(*echoQuery).Text}, nil
	}
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*echoQuery](m, echoHandler()))

	// Act
	resp, err := m.Send(context.Background(), &echoQuery{Text: "Earth"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Earth", resp.(*echoResponse).Text)
}

func TestMediator_RejectsDuplicateAndMissingHandlers(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*echoQuery](m, echoHandler()))

	err := mediator.RegisterHandler[*echoQuery](m, echoHandler())
	assert.ErrorContains(t, err, "already registered")

	_, err = m.Send(context.Background(), &struct{}{})
	assert.ErrorContains(t, err, "no handler registered")

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)

	err = m.Register(nil, echoHandler())
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*echoQuery](m, echoHandler()))

	var calls []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+" before")
			resp, err := next(ctx, request)
			calls = append(calls, name+" after")
			return resp, err
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))

	// Act
	_, err := m.Send(context.Background(), &echoQuery{Text: "Mars"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer before", "inner before", "inner after", "outer after"}, calls)
}
