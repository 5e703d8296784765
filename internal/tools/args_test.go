package tools

import (
	"errors"
	"testing"

	"github.com/desertthunder/spotify-mcp/internal/shared"
)

func TestArgs(t *testing.T) {
	args := Args{
		"name":   "  Mix ",
		"blank":  "",
		"count":  float64(3),
		"frac":   2.5,
		"flag":   false,
		"ids":    []any{"a", "b"},
		"mixed":  []any{"a", 1},
		"null":   nil,
		"number": float64(7),
	}

	t.Run("String", func(t *testing.T) {
		s, ok, err := args.String("name")
		if err != nil || !ok || s != "Mix" {
			t.Errorf("expected trimmed Mix, got %q %v %v", s, ok, err)
		}
		if _, ok, _ := args.String("null"); ok {
			t.Error("expected null to be treated as missing")
		}
		if _, _, err := args.String("number"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("RequireString", func(t *testing.T) {
		if _, err := args.RequireString("blank"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if _, err := args.RequireString("absent"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("OptionalString", func(t *testing.T) {
		if p, err := args.OptionalString("absent"); p != nil || err != nil {
			t.Errorf("expected nil, got %v %v", p, err)
		}
		if p, err := args.OptionalString("blank"); p == nil || *p != "" || err != nil {
			t.Errorf("expected empty string pointer, got %v %v", p, err)
		}
	})

	t.Run("Int", func(t *testing.T) {
		if n, err := args.Int("count", 1); n != 3 || err != nil {
			t.Errorf("expected 3, got %d %v", n, err)
		}
		if n, err := args.Int("absent", 10); n != 10 || err != nil {
			t.Errorf("expected default 10, got %d %v", n, err)
		}
		if _, err := args.Int("frac", 0); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if _, err := args.Int("name", 0); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if _, err := args.RequireInt("absent"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if p, err := args.OptionalInt("absent"); p != nil || err != nil {
			t.Errorf("expected nil, got %v %v", p, err)
		}
	})

	t.Run("Bool", func(t *testing.T) {
		if b, err := args.Bool("flag", true); b || err != nil {
			t.Errorf("expected false, got %v %v", b, err)
		}
		if b, err := args.Bool("absent", true); !b || err != nil {
			t.Errorf("expected default true, got %v %v", b, err)
		}
		if _, err := args.Bool("name", true); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("StringSlice", func(t *testing.T) {
		ids, err := args.StringSlice("ids")
		if err != nil || len(ids) != 2 || ids[1] != "b" {
			t.Errorf("expected [a b], got %v %v", ids, err)
		}
		if _, err := args.StringSlice("mixed"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if ids, err := args.StringSlice("absent"); ids != nil || err != nil {
			t.Errorf("expected nil, got %v %v", ids, err)
		}
	})
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{shared.ErrMissingArgument, PrefixValidation},
		{shared.ErrNoTrackToResume, PrefixValidation},
		{shared.ErrNotAuthenticated, PrefixAuth},
		{shared.ErrReauthRequired, PrefixAuth},
		{shared.ErrNoDeviceAvailable, PrefixDevice},
		{&shared.APIError{StatusCode: 404, Message: "Not found"}, PrefixAPI},
		{errors.New("other"), PrefixUnexpected},
	}

	for _, tt := range tests {
		got := Describe(tt.err)
		if got != tt.want+tt.err.Error() {
			t.Errorf("Describe(%v) = %q, want prefix %q", tt.err, got, tt.want)
		}
	}
}
