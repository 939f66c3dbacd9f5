package editor

import "testing"

func classesFor(e *Editor, row int) []byte {
	return e.rows[row].highlight
}

func TestKeywordClasses(t *testing.T) {
	e := newCTestEditor(t, "if (x) return y;")
	hl := classesFor(e, 0)
	for i := 0; i < 2; i++ {
		if hl[i] != hlKeyword1 {
			t.Fatalf("pos %d = %d, want keyword1", i, hl[i])
		}
	}
	for i := 7; i < 13; i++ {
		if hl[i] != hlKeyword1 {
			t.Fatalf("return pos %d = %d, want keyword1", i, hl[i])
		}
	}
	if hl[4] != hlNormal {
		t.Fatalf("x classified %d, want normal", hl[4])
	}
}

func TestTypeKeywordClass(t *testing.T) {
	e := newCTestEditor(t, "int x;")
	hl := classesFor(e, 0)
	for i := 0; i < 3; i++ {
		if hl[i] != hlKeyword2 {
			t.Fatalf("int pos %d = %d, want keyword2", i, hl[i])
		}
	}
}

func TestKeywordNeedsSeparator(t *testing.T) {
	e := newCTestEditor(t, "interface")
	hl := classesFor(e, 0)
	// "if" inside "interface" must not paint.
	if hl[0] != hlNormal {
		t.Fatalf("identifier start classified %d, want normal", hl[0])
	}
}

func TestStringAndEscape(t *testing.T) {
	e := newCTestEditor(t, `x = "a\"b";`)
	hl := classesFor(e, 0)
	for i := 4; i <= 9; i++ {
		if hl[i] != hlString {
			t.Fatalf(`string pos %d = %d, want string`, i, hl[i])
		}
	}
	if hl[10] != hlNormal {
		t.Fatalf("semicolon classified %d, want normal", hl[10])
	}
}

func TestNumberClassification(t *testing.T) {
	e := newCTestEditor(t, "a = 3.14 + x9;")
	hl := classesFor(e, 0)
	for i := 4; i < 8; i++ {
		if hl[i] != hlNumber {
			t.Fatalf("number pos %d = %d, want number", i, hl[i])
		}
	}
	// The 9 in x9 follows a non-separator, so it stays normal.
	if hl[12] != hlNormal {
		t.Fatalf("x9 digit classified %d, want normal", hl[12])
	}
}

func TestLineComment(t *testing.T) {
	e := newCTestEditor(t, "x; // trailing")
	hl := classesFor(e, 0)
	for i := 3; i < len(hl); i++ {
		if hl[i] != hlComment {
			t.Fatalf("comment pos %d = %d, want comment", i, hl[i])
		}
	}
}

func TestOpenCommentPropagation(t *testing.T) {
	e := newCTestEditor(t, "before /* open", "inside", "done */ int x;")
	if !e.rows[0].openComment {
		t.Fatalf("row 0 should end inside a comment")
	}
	if !e.rows[1].openComment {
		t.Fatalf("row 1 should stay inside the comment")
	}
	if e.rows[2].openComment {
		t.Fatalf("row 2 should close the comment")
	}
	hl := classesFor(e, 1)
	for i := range hl {
		if hl[i] != hlMLComment {
			t.Fatalf("row 1 pos %d = %d, want block comment", i, hl[i])
		}
	}
	// After */, the int keyword paints again.
	hl2 := classesFor(e, 2)
	if hl2[8] != hlKeyword2 {
		t.Fatalf("int after close = %d, want keyword2", hl2[8])
	}
}

func TestOpenCommentMatchesSequentialScan(t *testing.T) {
	e := newCTestEditor(t,
		"a /* x */ b", "c /*", "still", "done */", "/* y */", "tail")
	// The invariant: open_comment on row i equals a fresh sequential
	// scan over rows 0..i.
	flags := make([]bool, len(e.rows))
	for i := range e.rows {
		flags[i] = e.rows[i].openComment
	}
	e.rescanAllSyntax()
	for i := range e.rows {
		if e.rows[i].openComment != flags[i] {
			t.Fatalf("row %d open_comment %v inconsistent with sequential scan", i, flags[i])
		}
	}
	want := []bool{false, true, true, false, false, false}
	for i, w := range want {
		if flags[i] != w {
			t.Fatalf("row %d open_comment = %v, want %v", i, flags[i], w)
		}
	}
}

func TestEditReflowsCommentState(t *testing.T) {
	e := newCTestEditor(t, "int a;", "int b;")
	// Typing a block-comment opener on row 0 flips row 1 into the
	// comment.
	setCursor(e, 0, 6)
	e.InsertChar('/')
	e.InsertChar('*')
	if !e.rows[0].openComment {
		t.Fatalf("row 0 should end inside the new comment")
	}
	if e.rows[1].highlight[0] != hlMLComment {
		t.Fatalf("row 1 should be painted as comment continuation")
	}
}

func TestRegexPatternPaintsRowStart(t *testing.T) {
	e := newCTestEditor(t, "#include <stdio.h>")
	hl := classesFor(e, 0)
	if hl[0] != hlKeyword1 || hl[7] != hlKeyword1 {
		t.Fatalf("preprocessor directive not painted: %v", hl[:9])
	}
}

func TestBadPatternSkipped(t *testing.T) {
	e := newTestEditor(t, "text")
	e.langs.Languages[0].Patterns = append(e.langs.Languages[0].Patterns,
		patternFixture("((", "keyword1"))
	e.filename = "x.c"
	e.selectSyntax()
	// The bad pattern is skipped; good ones still compile.
	if len(e.patterns) != 1 {
		t.Fatalf("patterns = %d, want 1 (bad one skipped)", len(e.patterns))
	}
}
