package clock

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC)
}

func TestAliasEquivalence(t *testing.T) {
	ctx := context.Background()
	tool := New(WithNowFunc(fixedNow))
	aliased, err := tool.Run(ctx, NewInput("EST"))
	if err != nil {
		t.Fatal(err)
	}
	canonical, err := tool.Run(ctx, NewInput("US/Eastern"))
	if err != nil {
		t.Fatal(err)
	}
	// Same wall-clock instant regardless of the token spelling.
	aliasedClock := strings.TrimPrefix(aliased.Result, "Current time in EST: ")
	canonicalClock := strings.TrimPrefix(canonical.Result, "Current time in US/Eastern: ")
	if aliasedClock != canonicalClock {
		t.Errorf("alias mismatch: %q vs %q", aliasedClock, canonicalClock)
	}
	if aliased.Zone != "US/Eastern" {
		t.Errorf("expecting zone US/Eastern, but got %s", aliased.Zone)
	}
}

func TestCaseInsensitiveAlias(t *testing.T) {
	ctx := context.Background()
	tool := New(WithNowFunc(fixedNow))
	out, err := tool.Run(ctx, NewInput("jst"))
	if err != nil {
		t.Fatal(err)
	}
	if out.Zone != "Asia/Tokyo" {
		t.Errorf("expecting zone Asia/Tokyo, but got %s", out.Zone)
	}
}

func TestBlankDefaultsToUTC(t *testing.T) {
	ctx := context.Background()
	tool := New(WithNowFunc(fixedNow))
	out, err := tool.Run(ctx, NewInput("   "))
	if err != nil {
		t.Fatal(err)
	}
	expect := "Current time in UTC: 2025-03-09 12:00:00 UTC (Sunday)"
	if out.Result != expect {
		t.Errorf("expecting %q, but got %q", expect, out.Result)
	}
}

func TestUnknownTimezone(t *testing.T) {
	ctx := context.Background()
	tool := New(WithNowFunc(fixedNow))
	_, err := tool.Run(ctx, NewInput("Mars/Phobos"))
	if err == nil {
		t.Fatal("expecting error, but got none")
	}
	if !errors.Is(err, ErrUnknownTimezone) {
		t.Errorf("expecting ErrUnknownTimezone, but got %v", err)
	}
	if !strings.Contains(err.Error(), "Mars/Phobos") {
		t.Errorf("error should name the token, got %v", err)
	}
}

func TestTokyoConversion(t *testing.T) {
	ctx := context.Background()
	tool := New(WithNowFunc(fixedNow))
	out, err := tool.Run(ctx, NewInput("Asia/Tokyo"))
	if err != nil {
		t.Fatal(err)
	}
	// 12:00 UTC is 21:00 JST the same day.
	expect := "Current time in Asia/Tokyo: 2025-03-09 21:00:00 JST (Sunday)"
	if out.Result != expect {
		t.Errorf("expecting %q, but got %q", expect, out.Result)
	}
}
