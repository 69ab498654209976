package keyboard

import "testing"

func TestChunkLabelsPairs(t *testing.T) {
	rows := ChunkLabels([]string{"a", "b", "c", "d", "e"}, 2)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 2 || len(rows[2]) != 1 {
		t.Fatalf("unexpected row sizes: %v", rows)
	}
	if rows[2][0] != "e" {
		t.Fatalf("expected trailing label e, got %q", rows[2][0])
	}
}

func TestChunkLabelsSingle(t *testing.T) {
	rows := ChunkLabels([]string{"x", "y"}, 0)
	if len(rows) != 2 {
		t.Fatalf("expected one row per label, got %d rows", len(rows))
	}
}

func TestReplyButtonsLayout(t *testing.T) {
	markup := ReplyButtons([]string{"one", "two"}, []string{"three"})
	if !markup.ResizeKeyboard {
		t.Fatal("expected resizable keyboard")
	}
	if len(markup.ReplyKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(markup.ReplyKeyboard))
	}
	if len(markup.ReplyKeyboard[0]) != 2 {
		t.Fatalf("expected 2 buttons in first row, got %d", len(markup.ReplyKeyboard[0]))
	}
	if markup.ReplyKeyboard[1][0].Text != "three" {
		t.Fatalf("unexpected button text %q", markup.ReplyKeyboard[1][0].Text)
	}
}
