package domain

import "errors"

// Sentinel errors used across layers. The arithmetic core never returns
// errors; these belong to persistence, import and the collaborator boundary.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnnamedRecipe   = errors.New("recipe has no name")
	ErrNoFlourSelected = errors.New("no ingredient classified as flour")
	ErrInvalidBackup   = errors.New("invalid backup data")
	ErrEmptyPlan       = errors.New("production plan is empty")
)
