package queue

import (
	"clipflow/internal/service"
)

type Queue struct {
	ts service.TaskService
}

func NewQueue(ts service.TaskService) *Queue {
	return &Queue{
		ts: ts,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
