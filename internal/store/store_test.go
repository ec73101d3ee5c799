package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
)

func sampleState(t *testing.T, id string) model.SessionState {
	t.Helper()
	s := model.NewSession(id, "owner-"+id)
	for _, sq := range []model.Square{{Row: 6, Col: 4}, {Row: 5, Col: 4}, {Row: 7, Col: 6}} {
		if _, err := s.OnSquareClicked(sq); err != nil {
			t.Fatalf("click %v: %v", sq, err)
		}
	}
	return s.State()
}

// exerciseStore runs the shared Store contract against st.
func exerciseStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := st.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load missing error = %v; want ErrNotFound", err)
	}

	state := sampleState(t, "s1")
	if err := st.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(state.Board.Rows(), got.Board.Rows()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(state.Selection, got.Selection); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(state.LastMove, got.LastMove); diff != "" {
		t.Errorf("last move mismatch (-want +got):\n%s", diff)
	}
	if got.Version != state.Version || got.OwnerID != state.OwnerID {
		t.Errorf("got version/owner %d/%q; want %d/%q", got.Version, got.OwnerID, state.Version, state.OwnerID)
	}

	restored, err := model.RestoreSession(got)
	if err != nil {
		t.Fatalf("RestoreSession: %v", err)
	}
	if _, err := restored.OnSquareClicked(model.Square{Row: 5, Col: 5}); err != nil {
		t.Fatalf("click restored: %v", err)
	}
	if err := st.Save(ctx, restored.State()); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got, err = st.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load after overwrite: %v", err)
	}
	if got.Version != state.Version+1 {
		t.Errorf("version after overwrite = %d; want %d", got.Version, state.Version+1)
	}

	if err := st.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Load(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete error = %v; want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	st, err := OpenRedisStore(context.Background(), "redis://"+mr.Addr()+"/0", time.Hour)
	if err != nil {
		t.Fatalf("OpenRedisStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	exerciseStore(t, st)
}

func TestRedisStoreExpires(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := NewRedisStore(rdb, time.Minute)
	t.Cleanup(func() { _ = st.Close() })
	ctx := context.Background()

	if err := st.Save(ctx, sampleState(t, "s2")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !mr.Exists("session:s2") {
		t.Fatalf("key session:s2 missing; keys %v", mr.Keys())
	}
	if ttl := mr.TTL(keyPrefix + "s2"); ttl != time.Minute {
		t.Errorf("TTL = %v; want 1m", ttl)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := st.Load(ctx, "s2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after expiry error = %v; want ErrNotFound", err)
	}
}

func TestOpenRedisStoreErrors(t *testing.T) {
	if _, err := OpenRedisStore(context.Background(), "", time.Minute); err == nil {
		t.Error("OpenRedisStore with empty url succeeded")
	}
	if _, err := OpenRedisStore(context.Background(), "not a url", time.Minute); err == nil {
		t.Error("OpenRedisStore with bad url succeeded")
	}
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	st, err := OpenPostgresStore(context.Background(), url)
	if err != nil {
		t.Fatalf("OpenPostgresStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	exerciseStore(t, st)
}
