package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/mcncl/jsonkit/internal/tools"
	"github.com/stretchr/testify/require"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(rng *rand.Rand, depth int, width int) map[string]any {
	if depth <= 0 {
		return map[string]any{
			"leaf_value": "data",
			"phone":      fmt.Sprintf("138%08d", rng.Intn(100000000)),
			"count":      rng.Intn(100),
			"enabled":    rng.Intn(2) == 1,
			"missing":    nil,
		}
	}

	result := make(map[string]any)
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(rng, depth-1, width)
	}
	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) map[string]any {
	result := make(map[string]any)
	for i := 0; i < fieldCount; i++ {
		switch i % 5 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("float_field_%d", i)] = float64(i) + 0.5
		case 4:
			result[fmt.Sprintf("object_field_%d", i)] = map[string]any{
				"id":    i,
				"name":  fmt.Sprintf("Object %d", i),
				"value": i * 10,
			}
		}
	}
	return result
}

func marshal(b *testing.B, v any) string {
	b.Helper()
	data, err := json.Marshal(v)
	require.NoError(b, err)
	return string(data)
}

// benchmarkTools runs each tool over doc through a shared registry.
func benchmarkTools(b *testing.B, doc string, calls map[tools.ToolType]map[string]any) {
	r := tools.NewDefaultRegistry(nil)
	for tool, opts := range calls {
		b.Run(string(tool), func(b *testing.B) {
			b.SetBytes(int64(len(doc)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				res := r.ExecuteMap(tool, tools.FromText(doc), opts)
				if !res.Success {
					b.Fatalf("%s failed: %s", tool, res.Error)
				}
			}
		})
	}
}

// BenchmarkDeepNesting benchmarks the tools on deeply nested documents
func BenchmarkDeepNesting(b *testing.B) {
	for _, depth := range []int{3, 5, 7} {
		b.Run(fmt.Sprintf("Depth%d", depth), func(b *testing.B) {
			doc := marshal(b, generateNestedJSON(rand.New(rand.NewSource(42)), depth, 3))
			benchmarkTools(b, doc, map[tools.ToolType]map[string]any{
				tools.Format:     nil,
				tools.Flatten:    nil,
				tools.RemoveNull: nil,
				tools.MaskFields: nil,
				tools.ToSchema:   nil,
			})
		})
	}
}

// BenchmarkWideStructures benchmarks the tools on objects with many fields
func BenchmarkWideStructures(b *testing.B) {
	for _, fields := range []int{100, 1000, 5000} {
		b.Run(fmt.Sprintf("Fields%d", fields), func(b *testing.B) {
			doc := marshal(b, generateWideJSON(fields))
			benchmarkTools(b, doc, map[tools.ToolType]map[string]any{
				tools.SortKeys:     nil,
				tools.ToGo:         {"gofmt": true},
				tools.ToTypeScript: nil,
				tools.SearchKey:    {"keyword": "object"},
			})
		})
	}
}

// BenchmarkArrayProcessing benchmarks the tools on large arrays
func BenchmarkArrayProcessing(b *testing.B) {
	for _, items := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("Items%d", items), func(b *testing.B) {
			doc := string(generateLargeJSON(b, items))
			benchmarkTools(b, doc, map[tools.ToolType]map[string]any{
				tools.Minify:               nil,
				tools.DeepArrayDeduplicate: nil,
				tools.Diff:                 {"compareWith": doc},
				tools.JSONPath:             {"path": fmt.Sprintf("[%d].metadata.priority", items-1)},
			})
		})
	}
}
