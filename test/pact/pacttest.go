//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ConsumerName = "order-service"

	UserProviderName         = "user-service"
	ProductProviderName      = "product-service"
	NotificationProviderName = "notification-service"

	StateUserExists           = "user with id 1 exists"
	StateUserMissing          = "no user with id 404"
	StateProductExists        = "product with id 10 exists with stock"
	StateProductMissing       = "no product with id 404"
	StateNotificationBaseline = "notifications baseline"
)

const (
	ExistingUserID int64 = 1
	MissingUserID  int64 = 404

	ExistingProductID int64 = 10
	MissingProductID  int64 = 404
)

const (
	ExampleProductName  = "Laptop Dell XPS"
	ExampleProductPrice = 1299.99
	ExampleProductStock = 15
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for one provider.
func PactFile(t testing.TB, provider string) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+provider+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
