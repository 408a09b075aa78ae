package storage

import (
	"testing"

	"github.com/s/librekpi/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestBuildThread(t *testing.T) {
	comments := []models.Comment{
		{ID: 1, Text: "root 1"},
		{ID: 2, Text: "reply to 1", ReplyTo: uintPtr(1)},
		{ID: 3, Text: "root 2"},
		{ID: 4, Text: "reply to 2", ReplyTo: uintPtr(2)},
		{ID: 5, Text: "second reply to 1", ReplyTo: uintPtr(1)},
		{ID: 6, Text: "orphan", ReplyTo: uintPtr(99)},
	}

	roots := BuildThread(comments)
	if len(roots) != 3 {
		t.Fatalf("len(roots) = %d, want 3", len(roots))
	}

	wantRoots := []uint{1, 3, 6}
	for i, id := range wantRoots {
		if roots[i].Comment.ID != id {
			t.Errorf("roots[%d] = %d, want %d", i, roots[i].Comment.ID, id)
		}
	}

	first := roots[0]
	if len(first.Replies) != 2 || first.Replies[0].Comment.ID != 2 || first.Replies[1].Comment.ID != 5 {
		t.Errorf("replies of 1 out of order: %+v", first.Replies)
	}
	if len(first.Replies[0].Replies) != 1 || first.Replies[0].Replies[0].Comment.ID != 4 {
		t.Error("comment 4 should be nested under 2")
	}
	if first.Size() != 4 {
		t.Errorf("Size() = %d, want 4", first.Size())
	}
}

func TestBuildThread_Empty(t *testing.T) {
	if roots := BuildThread(nil); len(roots) != 0 {
		t.Errorf("BuildThread(nil) = %v", roots)
	}
}

func TestBuildThread_SelfReply(t *testing.T) {
	roots := BuildThread([]models.Comment{{ID: 7, ReplyTo: uintPtr(7)}})
	if len(roots) != 1 || roots[0].Comment.ID != 7 {
		t.Errorf("self reply should be a root: %+v", roots)
	}
}

func TestBuildThread_ReplyCycle(t *testing.T) {
	comments := []models.Comment{
		{ID: 1, Text: "a", ReplyTo: uintPtr(2)},
		{ID: 2, Text: "b", ReplyTo: uintPtr(1)},
		{ID: 3, Text: "reply to a", ReplyTo: uintPtr(1)},
		{ID: 4, Text: "c", ReplyTo: uintPtr(6)},
		{ID: 5, Text: "d", ReplyTo: uintPtr(4)},
		{ID: 6, Text: "e", ReplyTo: uintPtr(5)},
		{ID: 7, Text: "plain root"},
	}

	roots := BuildThread(comments)

	wantRoots := []uint{1, 2, 4, 5, 6, 7}
	if len(roots) != len(wantRoots) {
		t.Fatalf("len(roots) = %d, want %d", len(roots), len(wantRoots))
	}
	total := 0
	for i, id := range wantRoots {
		if roots[i].Comment.ID != id {
			t.Errorf("roots[%d] = %d, want %d", i, roots[i].Comment.ID, id)
		}
		total += roots[i].Size()
	}
	if total != len(comments) {
		t.Errorf("thread holds %d comments, want %d", total, len(comments))
	}
	if len(roots[0].Replies) != 1 || roots[0].Replies[0].Comment.ID != 3 {
		t.Errorf("comment 3 should hang under 1: %+v", roots[0].Replies)
	}
}

func TestSameCourse(t *testing.T) {
	tests := []struct {
		a, b *uint
		want bool
	}{
		{nil, nil, true},
		{uintPtr(1), uintPtr(1), true},
		{uintPtr(1), uintPtr(2), false},
		{uintPtr(1), nil, false},
		{nil, uintPtr(1), false},
	}
	for _, tt := range tests {
		if got := sameCourse(tt.a, tt.b); got != tt.want {
			t.Errorf("sameCourse(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
