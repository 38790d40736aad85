package tasks

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/go-resty/resty/v2"

	"github.com/manjumh021/flow-manager/internal/task"
)

// FetchTask retrieves the record set a flow operates on. With a source
// URL it GETs a JSON document and reads its "records" array; without one
// it returns the built-in sample dataset.
type FetchTask struct {
	client      *resty.Client
	sourceURL   string
	failureRate float64
}

func NewFetchTask(sourceURL string, failureRate float64) *FetchTask {
	return &FetchTask{
		client:      resty.New().SetTimeout(10 * time.Second),
		sourceURL:   sourceURL,
		failureRate: failureRate,
	}
}

func (t *FetchTask) Execute(ctx context.Context, tc task.Context) (task.Result, error) {
	if t.failureRate > 0 && rand.Float64() < t.failureRate {
		return task.Failure(FetchTaskName, "failed to fetch data: injected fault"), nil
	}

	if t.sourceURL == "" {
		data := sampleDataset()
		return task.Success(FetchTaskName, "data fetched successfully", data), nil
	}

	resp, err := t.client.R().SetContext(ctx).Get(t.sourceURL)
	if err != nil {
		return task.Failure(FetchTaskName, fmt.Sprintf("failed to fetch data: %v", err)), nil
	}
	if resp.IsError() {
		return task.Failure(FetchTaskName, fmt.Sprintf("failed to fetch data: source returned %s", resp.Status())), nil
	}

	parsed, err := gabs.ParseJSON(resp.Body())
	if err != nil {
		return task.Failure(FetchTaskName, fmt.Sprintf("failed to fetch data: malformed JSON: %v", err)), nil
	}

	records, ok := parsed.Path("records").Data().([]any)
	if !ok {
		return task.Failure(FetchTaskName, "failed to fetch data: source document has no 'records' array"), nil
	}

	data := map[string]any{
		"records": records,
		"count":   len(records),
		"source":  t.sourceURL,
	}
	return task.Success(FetchTaskName,
		fmt.Sprintf("fetched %d records", len(records)), data), nil
}

func sampleDataset() map[string]any {
	return map[string]any{
		"records": []any{
			map[string]any{"id": 1, "value": 100.0},
			map[string]any{"id": 2, "value": 200.0},
			map[string]any{"id": 3, "value": 300.0},
		},
		"count":  3,
		"source": "sample_dataset",
	}
}
