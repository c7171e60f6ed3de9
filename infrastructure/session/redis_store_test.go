package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisStore(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	s := NewRedisStore(client, "test-session:", time.Minute)
	defer client.Del(ctx, "test-session:abc")

	if err := s.Save(ctx, "abc", DataFor(access.Employee(8))); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	d, found, err := s.Get(ctx, "abc")
	if err != nil || !found {
		t.Fatalf("Get() = %v, %v", found, err)
	}
	if id, ok := d.Identity().EmployeeID(); !ok || id != 8 {
		t.Errorf("identity = %s", d.Identity())
	}

	ttl, _ := client.TTL(ctx, "test-session:abc").Result()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("ttl = %s", ttl)
	}

	if err := s.Delete(ctx, "abc"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := s.Get(ctx, "abc"); found {
		t.Error("deleted session still readable")
	}
}

func TestRedisStoreCorruptEntry(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	client.Set(ctx, "test-session:bad", "{not json", time.Minute)

	s := NewRedisStore(client, "test-session:", time.Minute)
	if _, found, err := s.Get(ctx, "bad"); found || err != nil {
		t.Errorf("Get() = %v, %v; want not found", found, err)
	}
	if n, _ := client.Exists(ctx, "test-session:bad").Result(); n != 0 {
		t.Error("corrupt entry not removed")
	}
}
