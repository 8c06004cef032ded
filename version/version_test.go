package version

import "testing"

func TestRead_LdflagsWin(t *testing.T) {
	in := read("1.2.0", "abcdef0123456", "main", "2026-01-01T00:00:00Z")
	if in.Version != "1.2.0" || in.GitBranch != "main" {
		t.Errorf("unexpected info %+v", in)
	}
	if in.GitCommit != "abcdef0" {
		t.Errorf("expected commit truncated to 7, got %q", in.GitCommit)
	}
	if in.BuildTime != "2026-01-01T00:00:00Z" {
		t.Errorf("expected ldflags build time, got %q", in.BuildTime)
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", GitCommit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestIsRelease(t *testing.T) {
	if (Info{Version: "dev"}).IsRelease() {
		t.Error("dev build should not be a release")
	}
	if !(Info{Version: "1.0.0"}).IsRelease() {
		t.Error("clean versioned build should be a release")
	}
	if (Info{Version: "1.0.0", Dirty: true}).IsRelease() {
		t.Error("dirty build should not be a release")
	}
}

func TestGet_Stable(t *testing.T) {
	if Get() != Get() {
		t.Error("expected Get to be stable")
	}
}
