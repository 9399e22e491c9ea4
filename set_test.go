package kasane

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestConfig_Set(t *testing.T) {
	t.Run("write then read identity", func(t *testing.T) {
		c := New()
		c.AddLayer("user", nil)

		values := map[string]any{
			"s":       "text",
			"n":       42,
			"b":       true,
			"nested":  map[string]any{"k": 1},
			"a.b.c.d": "deep",
		}
		for path, v := range values {
			if err := c.Set(path, v); err != nil {
				t.Fatalf("Set(%q) error = %v", path, err)
			}
			got, ok := c.GetOK(path, FromLayers("user"))
			if !ok || !reflect.DeepEqual(got, v) {
				t.Errorf("GetOK(%q) = %v, %v, want %v, true", path, got, ok, v)
			}
		}
	})

	t.Run("targets highest priority layer", func(t *testing.T) {
		c := New()
		c.AddLayer("low", nil)
		c.AddLayer("top", nil)

		if err := c.Set("key", "v"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		if !c.Has("key", FromLayers("top")) {
			t.Error("value missing from top layer")
		}
		if c.Has("key", FromLayers("low")) {
			t.Error("value leaked into low layer")
		}
	})

	t.Run("creates intermediate mappings", func(t *testing.T) {
		c := New()
		c.AddLayer("top", nil)

		if err := c.Set("g.xx.yy", true); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		if got := c.Get("g.xx.yy"); got != true {
			t.Errorf("Get(g.xx.yy) = %v, want true", got)
		}
		if _, ok := c.Get("g").(map[string]any); !ok {
			t.Errorf("Get(g) = %T, want intermediate map", c.Get("g"))
		}
		if _, ok := c.Get("g.xx").(map[string]any); !ok {
			t.Errorf("Get(g.xx) = %T, want intermediate map", c.Get("g.xx"))
		}
	})

	t.Run("empty path fails", func(t *testing.T) {
		c := New()
		c.AddLayer("top", nil)

		for _, path := range []string{"", "...", " . . "} {
			err := c.Set(path, 1)
			var emptyErr *EmptyPathError
			if !errors.As(err, &emptyErr) {
				t.Errorf("Set(%q) error = %v, want *EmptyPathError", path, err)
			}
		}
	})

	t.Run("no layers fails", func(t *testing.T) {
		c := New()
		if err := c.Set("a", 1); !errors.Is(err, ErrNoLayers) {
			t.Errorf("Set() error = %v, want ErrNoLayers", err)
		}
	})

	t.Run("stores explicit null", func(t *testing.T) {
		c := New()
		c.AddLayer("top", nil)

		if err := c.Set("a", nil); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		v, ok := c.GetOK("a")
		if !ok || v != nil {
			t.Errorf("GetOK(a) = %v, %v, want nil, true", v, ok)
		}
	})
}

func TestConfig_SetTo(t *testing.T) {
	t.Run("targets the named layer", func(t *testing.T) {
		c := New()
		c.AddLayer("one", nil)
		c.AddLayer("two", nil)

		if err := c.SetTo("one", "key", "v"); err != nil {
			t.Fatalf("SetTo() error = %v", err)
		}

		if !c.Has("key", FromLayers("one")) {
			t.Error("value missing from layer one")
		}
		if c.Has("key", FromLayers("two")) {
			t.Error("value leaked into layer two")
		}
	})

	t.Run("implicitly creates unknown layer at highest priority", func(t *testing.T) {
		c := New()
		c.AddLayer("existing", nil)

		if err := c.SetTo("brand-new", "a", 1); err != nil {
			t.Fatalf("SetTo() error = %v", err)
		}

		names := c.LayerNames()
		if len(names) != 2 || names[0] != "brand-new" {
			t.Errorf("LayerNames() = %v, want brand-new at index 0", names)
		}
		if got := c.Get("a"); got != 1 {
			t.Errorf("Get(a) = %v, want 1", got)
		}
	})

	t.Run("implicit layer name is normalized", func(t *testing.T) {
		c := New()
		if err := c.SetTo("conf/app.local", "a", 1); err != nil {
			t.Fatalf("SetTo() error = %v", err)
		}

		if got := c.LayerNames(); len(got) != 1 || got[0] != "conf_app_local" {
			t.Errorf("LayerNames() = %v, want [conf_app_local]", got)
		}
	})

	t.Run("blank name falls back to default routing", func(t *testing.T) {
		c := New()
		if err := c.SetTo("", "a", 1); !errors.Is(err, ErrNoLayers) {
			t.Errorf("SetTo(blank) error = %v, want ErrNoLayers", err)
		}

		c.AddLayer("top", nil)
		if err := c.SetTo("", "a", 1); err != nil {
			t.Fatalf("SetTo(blank) error = %v", err)
		}
		if !c.Has("a", FromLayers("top")) {
			t.Error("value missing from top layer")
		}
	})
}

// Run with -race: writes must stay under the store mutex even though
// path validation and layer resolution happen in the same call.
func TestConfig_ConcurrentWrites(t *testing.T) {
	c := New()
	c.AddLayer("shared", nil)

	const (
		writers    = 16
		iterations = 50
	)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			for j := 0; j < iterations; j++ {
				if err := c.Set(key, j); err != nil {
					t.Errorf("Set(%q) error = %v", key, err)
					return
				}
				c.Get(key)
				if j%10 == 0 {
					if err := c.Delete(key + ".ghost"); err != nil {
						t.Errorf("Delete() error = %v", err)
						return
					}
				}
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < writers; i++ {
		key := fmt.Sprintf("k%d", i)
		if got := c.Get(key); got != iterations-1 {
			t.Errorf("Get(%q) = %v, want %d", key, got, iterations-1)
		}
	}
}

func TestConfig_Delete(t *testing.T) {
	t.Run("removes node and subtree", func(t *testing.T) {
		c := New()
		c.AddLayer("top", map[string]any{
			"a": map[string]any{"b": 1, "c": 2},
		})

		if err := c.Delete("a.b"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		if c.Has("a.b") {
			t.Error("Has(a.b) = true after Delete")
		}
		if got := c.Get("a.c"); got != 2 {
			t.Errorf("Get(a.c) = %v, want sibling untouched", got)
		}
	})

	t.Run("absent node is a no-op", func(t *testing.T) {
		c := New()
		c.AddLayer("top", nil)
		if err := c.Delete("ghost.path"); err != nil {
			t.Errorf("Delete(ghost.path) error = %v, want nil", err)
		}
	})

	t.Run("validation matches Set", func(t *testing.T) {
		c := New()
		if err := c.Delete("a"); !errors.Is(err, ErrNoLayers) {
			t.Errorf("Delete() error = %v, want ErrNoLayers", err)
		}
		c.AddLayer("top", nil)
		var emptyErr *EmptyPathError
		if err := c.Delete(".."); !errors.As(err, &emptyErr) {
			t.Errorf("Delete(..) error = %v, want *EmptyPathError", err)
		}
	})

	t.Run("only affects the target layer", func(t *testing.T) {
		c := New()
		c.AddLayer("low", map[string]any{"a": "kept"})
		c.AddLayer("top", map[string]any{"a": "shadow"})

		if err := c.DeleteFrom("top", "a"); err != nil {
			t.Fatalf("DeleteFrom() error = %v", err)
		}
		if got := c.Get("a"); got != "kept" {
			t.Errorf("Get(a) = %v, want value from lower layer", got)
		}
	})
}
