// Package testutil provides shared fixtures for tests: a small canonical
// world configuration and helpers for writing agent snapshot folders.
package testutil
