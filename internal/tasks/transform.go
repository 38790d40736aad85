package tasks

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/manjumh021/flow-manager/internal/task"
)

// TransformTask aggregates the fetched records: totals, average, and a
// normalized share per record. An optional expression is evaluated over
// the aggregates and attached as "derived".
type TransformTask struct {
	expression string
}

func NewTransformTask(expression string) *TransformTask {
	return &TransformTask{expression: expression}
}

func (t *TransformTask) Execute(ctx context.Context, tc task.Context) (task.Result, error) {
	upstream, ok := tc.ResultOf(FetchTaskName)
	if !ok || upstream.Status != task.StatusSuccess {
		return task.Failure(TransformTaskName, "no data from task1 to process"), nil
	}

	data, ok := upstream.Data.(map[string]any)
	if !ok {
		return task.Failure(TransformTaskName, "task1 produced no usable payload"), nil
	}
	records, ok := data["records"].([]any)
	if !ok || len(records) == 0 {
		return task.Failure(TransformTaskName, "task1 produced no records"), nil
	}

	var total float64
	for _, rec := range records {
		if m, ok := rec.(map[string]any); ok {
			total += toFloat(m["value"])
		}
	}
	average := total / float64(len(records))

	processed := make([]any, 0, len(records))
	for _, rec := range records {
		m, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		out := make(map[string]any, len(m)+1)
		for k, v := range m {
			out[k] = v
		}
		if total != 0 {
			out["normalized"] = toFloat(m["value"]) / total
		}
		processed = append(processed, out)
	}

	result := map[string]any{
		"original_count":    len(records),
		"total_value":       total,
		"average_value":     average,
		"processed_records": processed,
	}

	if t.expression != "" {
		derived, err := t.derive(records, total, average)
		if err != nil {
			return task.Failure(TransformTaskName, fmt.Sprintf("transform expression failed: %v", err)), nil
		}
		result["derived"] = derived
	}

	return task.Success(TransformTaskName,
		fmt.Sprintf("processed %d records", len(records)), result), nil
}

func (t *TransformTask) derive(records []any, total, average float64) (any, error) {
	env := map[string]any{
		"records": records,
		"total":   total,
		"average": average,
		"count":   len(records),
	}

	program, err := expr.Compile(t.expression, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return expr.Run(program, env)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
