package application

import "context"

// Command is a request that changes clinic state.
type Command interface {
	CommandName() string
}

// Query is a request that only reads clinic state.
type Query interface {
	QueryName() string
}

// CommandHandler handles one command type and returns its result.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// QueryHandler handles one query type.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
