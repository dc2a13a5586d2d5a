package errors

import "errors"

var (
	ErrInvalidBanInput = errors.New("invalid ban input")
	ErrAlreadyBanned   = errors.New("an active ban already exists for this identity")
	ErrBanNotFound     = errors.New("no active ban found for this identity")
)
