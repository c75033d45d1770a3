package events

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealflow/internal/core/domain"
)

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := p.Publish(context.Background(), domain.ContractEvent{
		ContractID: "c1",
		From:       domain.ContractWorkSubmitted,
		To:         domain.ContractTerminated,
		Reason:     "fraud",
		At:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "contract transition", line["msg"])
	assert.Equal(t, "c1", line["contract_id"])
	assert.Equal(t, "work_submitted", line["from"])
	assert.Equal(t, "terminated", line["to"])
	assert.Equal(t, "fraud", line["reason"])
}
