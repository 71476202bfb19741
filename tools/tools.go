//go:build tools

// Package tools pins the developer tooling used by this repository:
//
//	go run github.com/golangci/golangci-lint/cmd/golangci-lint run ./...
//	go run github.com/vektra/mockery/v2
//	go run gotest.tools/gotestsum -- ./...
//	go run github.com/google/addlicense -c "walteh LLC" -l apache ./pkg ./cmd
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/google/addlicense"
	_ "github.com/vektra/mockery/v2"
	_ "gotest.tools/gotestsum"
)
