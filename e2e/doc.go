//go:build e2e

// Package e2e runs the browser UI suite against the demo application.
//
// Running:
//
//	go test -tags=e2e ./e2e/... -args -headless -alluredir=allure-results
//
// or through the runner:
//
//	go run ./cmd/uitests run --headless --alluredir allure-results
//
// Each test gets its own Chromium process from the fixture suite. Failing
// tests leave browser logs and a screenshot in the Allure results directory
// when -alluredir is set.
package e2e
