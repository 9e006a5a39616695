package survey

import "context"

// RowAppender persists one completed answer set as an ordered row. The
// implementation owns its connection and auth lifecycle; the usecase calls
// this one operation and treats any error as failure.
type RowAppender interface {
	AppendRow(ctx context.Context, row []string) error
}
