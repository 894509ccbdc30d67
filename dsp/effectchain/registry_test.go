package effectchain

import (
	"errors"
	"testing"
)

func nopBinder(Params) (Operation, error) { return addOp{}, nil }

func TestCatalogRegister(t *testing.T) {
	t.Parallel()

	t.Run("registers and looks up entry", func(t *testing.T) {
		t.Parallel()

		c := NewCatalog()

		err := c.Register(Entry{ID: "echo", Bind: nopBinder})
		if err != nil {
			t.Fatalf("Register returned unexpected error: %v", err)
		}

		if _, ok := c.Lookup("echo"); !ok {
			t.Fatal("Lookup missed registered id")
		}

		if _, ok := c.Lookup("other"); ok {
			t.Fatal("Lookup found unregistered id")
		}
	})

	t.Run("rejects empty id", func(t *testing.T) {
		t.Parallel()

		if err := NewCatalog().Register(Entry{Bind: nopBinder}); err == nil {
			t.Fatal("expected error for empty id")
		}
	})

	t.Run("rejects nil binder", func(t *testing.T) {
		t.Parallel()

		if err := NewCatalog().Register(Entry{ID: "echo"}); err == nil {
			t.Fatal("expected error for nil binder")
		}
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		t.Parallel()

		c := NewCatalog()
		_ = c.Register(Entry{ID: "echo", Bind: nopBinder})

		err := c.Register(Entry{ID: "echo", Bind: nopBinder})
		if !errors.Is(err, errDuplicateFilter) {
			t.Fatalf("err = %v, want duplicate error", err)
		}
	})
}

func TestCatalogMustRegisterPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()

	c := NewCatalog()
	c.MustRegister(Entry{ID: "echo", Bind: nopBinder})
	c.MustRegister(Entry{ID: "echo", Bind: nopBinder})
}

func TestCatalogEntriesKeepOrder(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	for _, id := range []string{"c", "a", "b"} {
		c.MustRegister(Entry{ID: id, Bind: nopBinder})
	}

	got := c.IDs()
	want := []string{"c", "a", "b"}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs() = %v, want %v", got, want)
		}
	}

	if len(c.Entries()) != 3 {
		t.Fatalf("Entries() len = %d, want 3", len(c.Entries()))
	}
}

func TestEntryParamAliases(t *testing.T) {
	t.Parallel()

	e := Entry{Params: []ParamSpec{{Name: "order", Aliases: []string{"carFilterOrder"}}}}

	for _, name := range []string{"order", "carFilterOrder"} {
		if p, ok := e.Param(name); !ok || p.Name != "order" {
			t.Fatalf("Param(%q) = %+v, %v", name, p, ok)
		}
	}

	if _, ok := e.Param("Order"); ok {
		t.Fatal("parameter names are case-sensitive")
	}
}
