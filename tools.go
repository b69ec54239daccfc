//go:build tools

// Package tools pins the code generators run by go generate, so that
// go.mod tracks them like any other dependency.
package direct_chat

import (
	_ "go.uber.org/mock/mockgen"
)
