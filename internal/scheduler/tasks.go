package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskDealNoteRetry = "fub.deal_note.retry"

type DealNoteRetryPayload struct {
	DealID  int64  `json:"dealId"`
	AgentID int64  `json:"agentId,omitempty"`
	Body    string `json:"body"`
	FormID  string `json:"formId,omitempty"`
}

func NewDealNoteRetryTask(payload DealNoteRetryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDealNoteRetry, data), nil
}

func ParseDealNoteRetryPayload(task *asynq.Task) (DealNoteRetryPayload, error) {
	var payload DealNoteRetryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DealNoteRetryPayload{}, err
	}
	return payload, nil
}
