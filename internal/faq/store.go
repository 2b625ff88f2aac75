package faq

import "context"

// Store persists FAQ entries. FindAnswer does a case-insensitive substring
// match against the question column and returns the first match in id order;
// a miss is sentinel.ErrNotFound.
type Store interface {
	Add(ctx context.Context, f *FAQ) (int64, error)
	FindAnswer(ctx context.Context, query string) (string, error)
	List(ctx context.Context) ([]*FAQ, error)
}
