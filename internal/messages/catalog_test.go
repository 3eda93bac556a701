package messages

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTKnownKey(t *testing.T) {
	c := Default()
	if got := c.T("user_exists"); got != "El usuario ya existe" {
		t.Errorf("T(user_exists) = %q", got)
	}
}

func TestTUnknownKeyFallsBackToKey(t *testing.T) {
	c := Default()
	if got := c.T("no_such_key"); got != "no_such_key" {
		t.Errorf("T(no_such_key) = %q, want the key itself", got)
	}
}

func TestTInterpolation(t *testing.T) {
	c := Default()
	if got := c.T("greeting", "name", "Ana"); got != "Hola Ana" {
		t.Errorf("T(greeting, name=Ana) = %q, want %q", got, "Hola Ana")
	}

	// Odd trailing pair is ignored rather than panicking.
	if got := c.T("greeting", "name"); got != "Hola {name}" {
		t.Errorf("T(greeting, dangling pair) = %q, want template unchanged", got)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	data := "auth_ok: \"Welcome back\"\ncustom_key: \"Custom\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if got := c.T("auth_ok"); got != "Welcome back" {
		t.Errorf("overlay did not replace auth_ok: %q", got)
	}
	if got := c.T("custom_key"); got != "Custom" {
		t.Errorf("overlay did not add custom_key: %q", got)
	}
	// Keys not in the overlay still resolve from the built-in catalog.
	if got := c.T("auth_fail"); got != "Usuario o contraseña no válidos" {
		t.Errorf("builtin fallback broken: %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestMissing(t *testing.T) {
	c := Default()
	missing := c.Missing([]string{"auth_ok", "definitely_absent"})
	if len(missing) != 1 || missing[0] != "definitely_absent" {
		t.Errorf("Missing() = %v, want [definitely_absent]", missing)
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Default().Keys()
	if len(keys) == 0 {
		t.Fatal("Keys() returned nothing")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("Keys() not sorted: %q before %q", keys[i-1], keys[i])
		}
	}
}
