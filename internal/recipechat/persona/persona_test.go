package persona

import (
	"os"
	"path/filepath"
	"testing"
)

func writePersona(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writePersona(t, dir, "chef.toml", `system = "You are a pastry chef."
model = "anthropic:claude-3-5-sonnet-20241022"
`)

	p, err := Load(filepath.Join(dir, "chef.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.System != "You are a pastry chef." {
		t.Errorf("System = %q", p.System)
	}
	if p.Model == nil || *p.Model != "anthropic:claude-3-5-sonnet-20241022" {
		t.Errorf("Model = %v, want anthropic:claude-3-5-sonnet-20241022", p.Model)
	}
}

func TestLoadRejectsMissingSystem(t *testing.T) {
	dir := t.TempDir()
	writePersona(t, dir, "empty.toml", `model = "openai:gpt-4o-mini"`)

	if _, err := Load(filepath.Join(dir, "empty.toml")); err == nil {
		t.Error("Load() accepted a persona without a system instruction")
	}
}

func TestLoadRejectsInvalidModel(t *testing.T) {
	dir := t.TempDir()
	writePersona(t, dir, "bad.toml", `system = "x"
model = "gpt-4o-mini"
`)

	if _, err := Load(filepath.Join(dir, "bad.toml")); err == nil {
		t.Error("Load() accepted a persona with a model lacking a provider prefix")
	}
}

func TestResolveLaterDirectoriesWin(t *testing.T) {
	lowDir := t.TempDir()
	highDir := t.TempDir()
	writePersona(t, lowDir, "chef.toml", `system = "low priority"`)
	writePersona(t, highDir, "chef.toml", `system = "high priority"`)

	p, err := Resolve("chef", []string{lowDir, highDir})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.System != "high priority" {
		t.Errorf("Resolve() system = %q, want the later directory's persona", p.System)
	}
}

func TestResolveNotFound(t *testing.T) {
	if _, err := Resolve("missing", []string{t.TempDir()}); err == nil {
		t.Error("Resolve() succeeded for a missing persona")
	}
}

func TestList(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writePersona(t, dirA, "chef.toml", `system = "a"`)
	writePersona(t, dirA, filepath.Join("regional", "italian.toml"), `system = "b"`)
	writePersona(t, dirB, "chef.toml", `system = "c"`) // duplicate name
	writePersona(t, dirB, "baker.toml", `system = "d"`)

	names, err := List([]string{dirA, dirB, filepath.Join(dirB, "does-not-exist")})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"baker", "chef", "regional/italian"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
