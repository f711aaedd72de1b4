package analysis

import "context"

// MockFunc returns an AnalyzeFunc-compatible function with a fixed
// response, for tests and dry runs.
func MockFunc(response string, err error) func(ctx context.Context, images []string, instruction string) (string, error) {
	return func(ctx context.Context, images []string, instruction string) (string, error) {
		if err != nil {
			return "", err
		}
		return response, nil
	}
}
