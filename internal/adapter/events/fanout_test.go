package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dealflow/internal/core/domain"
	"dealflow/internal/core/port/mocks"
)

func TestFanoutReachesEveryPublisher(t *testing.T) {
	ev := domain.ContractEvent{ContractID: "c1", To: domain.ContractSettled}
	broken := errors.New("broker down")

	first := mocks.NewMockEventPublisher(t)
	first.EXPECT().Publish(mock.Anything, ev).Return(broken).Once()
	second := mocks.NewMockEventPublisher(t)
	second.EXPECT().Publish(mock.Anything, ev).Return(nil).Once()

	err := Fanout{first, second}.Publish(context.Background(), ev)
	assert.ErrorIs(t, err, broken)
}

func TestEmptyFanout(t *testing.T) {
	assert.NoError(t, Fanout(nil).Publish(context.Background(), domain.ContractEvent{}))
}
