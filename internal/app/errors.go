package service

import "errors"

var (
	// ErrNoRecords is returned when the input table holds no people.
	ErrNoRecords = errors.New("no records to plot")
	// ErrUnknownGraphType is returned for a graph type other than scatter, radar or all.
	ErrUnknownGraphType = errors.New("unknown graph type")
	// ErrPathCollision is returned when two charts would be written to the same file.
	ErrPathCollision = errors.New("output path collision")
)
