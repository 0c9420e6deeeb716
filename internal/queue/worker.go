package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// HandlePublishPostTask fires when a slot's scheduled time arrives. It moves
// the post into the task pool so a device can pick it up.
func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := j.ts.OpenForPost(ctx, payload.PostID); err != nil {
		log.Printf("Error opening task for PostID %d: %v", payload.PostID, err)
		return err
	}

	return nil
}
