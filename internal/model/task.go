package model

// Task represents a single to-do item in the tasks table. A task belongs to
// exactly one owner and is only ever read or written scoped to that owner.
type Task struct {
	ID         int64
	OwnerEmail string
	Title      string
	DueDate    string // free-form DD/MM/YYYY or DD/MM text, may be empty
	Done       bool
}
