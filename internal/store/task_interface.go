package store

import (
	"context"

	"taskManager/internal/models/task"
)

// RemoteAPI is the slice of the remote client the task store depends on.
// *api.Client satisfies it.
type RemoteAPI interface {
	Tasks(ctx context.Context) ([]task.Task, error)
	CreateTask(ctx context.Context, draft task.Draft) (task.Task, error)
	UpdateTask(ctx context.Context, id string, patch task.Patch) (task.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
