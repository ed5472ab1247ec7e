// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "errors"

// Admission rejections. Handlers map these to HTTP statuses and the
// user-facing messages; everything else bubbles up as a server error.
var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrChoiceNotFound   = errors.New("choice not found")
	ErrPollExpired      = errors.New("poll has expired")
	ErrDuplicateAccount = errors.New("account has already voted on this question")
	ErrDuplicateIP      = errors.New("ip has already voted on this question")
	ErrDuplicateSession = errors.New("session has already voted on this question")
)

// IsRejection reports whether err is an admission rejection rather than an
// infrastructure failure.
func IsRejection(err error) bool {
	for _, sentinel := range []error{
		ErrPollNotFound, ErrQuestionNotFound, ErrChoiceNotFound,
		ErrPollExpired, ErrDuplicateAccount, ErrDuplicateIP, ErrDuplicateSession,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
