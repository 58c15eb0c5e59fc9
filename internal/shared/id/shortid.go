// Package id generates the short public ids of ticket comments, notes and
// attachments, e.g. "cm_4fQ9xk2LmP0a".
package id

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	// 248 is the largest multiple of 62 below 256; bytes at or above it are
	// rejected so every symbol is equally likely.
	rejectFrom = 248

	DefaultLength = 12
)

const (
	PrefixComment    = "cm"
	PrefixNote       = "nt"
	PrefixAttachment = "at"
)

// Random returns n base62 characters read from crypto/rand.
func Random(n int) (string, error) {
	if n <= 0 {
		n = DefaultLength
	}

	var sb strings.Builder
	sb.Grow(n)
	buf := make([]byte, n+n/4)
	for sb.Len() < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= rejectFrom {
				continue
			}
			sb.WriteByte(alphabet[b%62])
			if sb.Len() == n {
				break
			}
		}
	}
	return sb.String(), nil
}

func prefixed(prefix string) (string, error) {
	s, err := Random(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

func NewCommentID() (string, error)    { return prefixed(PrefixComment) }
func NewNoteID() (string, error)       { return prefixed(PrefixNote) }
func NewAttachmentID() (string, error) { return prefixed(PrefixAttachment) }
