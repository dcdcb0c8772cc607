// Package testutil 测试断言工具，差异输出基于 go-cmp
package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertEqual 用 cmp.Diff 比较 got 和 want
func AssertEqual(t *testing.T, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", msg, diff)
		} else {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	}
}

func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Fatalf("%s: unexpected error: %v", msg, err)
		}
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertErrorIs 要求 err 链上有 target
func AssertErrorIs(t *testing.T, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, target) {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Errorf("%s: got error %v, want %v", msg, err, target)
		} else {
			t.Errorf("got error %v, want %v", err, target)
		}
	}
}

func AssertTrue(t *testing.T, cond bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !cond {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Errorf("%s: expected true", msg)
		} else {
			t.Error("expected true")
		}
	}
}

func AssertFalse(t *testing.T, cond bool, msgAndArgs ...interface{}) {
	t.Helper()
	AssertTrue(t, !cond, msgAndArgs...)
}

// AssertContains 要求 s 包含 sub
func AssertContains(t *testing.T, s, sub string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(s, sub) {
		if msg := formatMessage(msgAndArgs...); msg != "" {
			t.Errorf("%s: %q does not contain %q", msg, s, sub)
		} else {
			t.Errorf("%q does not contain %q", s, sub)
		}
	}
}

// formatMessage 按 fmt.Sprint 拼接，需要格式化的在调用处先 Sprintf
func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	return fmt.Sprint(msgAndArgs...)
}
