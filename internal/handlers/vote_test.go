package handlers

import (
	"testing"

	"ecosort/internal/services"
)

func TestParseTarget(t *testing.T) {
	if v, ok := parseTarget("up"); !ok || v != services.VoteUp {
		t.Errorf("parseTarget(up) = %q, %v", v, ok)
	}
	if v, ok := parseTarget("down"); !ok || v != services.VoteDown {
		t.Errorf("parseTarget(down) = %q, %v", v, ok)
	}
	// 撤销不通过显式 none 触发
	for _, s := range []string{"", "none", "upvote", "UP"} {
		if _, ok := parseTarget(s); ok {
			t.Errorf("parseTarget(%q) accepted", s)
		}
	}
}

func TestVoteStateString(t *testing.T) {
	if got := voteStateString(services.VoteNone); got != "none" {
		t.Errorf("VoteNone -> %q, want none", got)
	}
	if got := voteStateString(services.VoteUp); got != "up" {
		t.Errorf("VoteUp -> %q, want up", got)
	}
	if got := voteStateString(services.VoteDown); got != "down" {
		t.Errorf("VoteDown -> %q, want down", got)
	}
}
