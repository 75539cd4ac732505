// Package github pkg/github/errors.go provides errors for the github package.

package github

import "errors"

var (
	ErrRateLimited       = errors.New("rate limited by search provider")
	ErrRetriesExhausted  = errors.New("rate-limit retries exhausted")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrRequestFailed     = errors.New("request failed")
	ErrMalformedResponse = errors.New("malformed response body")
)
