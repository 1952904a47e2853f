//go:build integration

package specimen

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

// Run with: SPROUT_TEST_MONGO=mongodb://localhost:27017 go test -tags integration ./pkg/specimen
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("SPROUT_TEST_MONGO")
	if uri == "" {
		t.Skip("SPROUT_TEST_MONGO not set")
	}
	ctx := context.Background()
	db := fmt.Sprintf("sprout_test_%d", time.Now().UnixNano())
	st, err := NewMongoStore(ctx, uri, db)
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer st.Close()
	defer st.client.Database(db).Drop(ctx)

	testStore(t, st)
}
