package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/Jeffail/gabs/v2"

	"github.com/manjumh021/flow-manager/internal/task"
)

const defaultStoreLocation = "sample_storage/processed_data.json"

// StoreTask simulates persisting the transformed payload and returns a
// storage receipt.
type StoreTask struct {
	location string
}

func NewStoreTask(location string) *StoreTask {
	if location == "" {
		location = defaultStoreLocation
	}
	return &StoreTask{location: location}
}

func (t *StoreTask) Execute(ctx context.Context, tc task.Context) (task.Result, error) {
	upstream, ok := tc.ResultOf(TransformTaskName)
	if !ok || upstream.Status != task.StatusSuccess {
		return task.Failure(StoreTaskName, "no processed data from task2 to store"), nil
	}

	recordCount := 0
	if data, ok := upstream.Data.(map[string]any); ok {
		recordCount = int(toFloat(data["original_count"]))
	}

	receipt := gabs.New()
	_, _ = receipt.Set(true, "stored")
	_, _ = receipt.Set(t.location, "location")
	_, _ = receipt.Set(recordCount, "record_count")
	_, _ = receipt.Set(fmt.Sprintf("STORE_%d", time.Now().Unix()), "storage_id")

	return task.Success(StoreTaskName, "data stored successfully", receipt.Data()), nil
}
