package scanner

import "testing"

// ---------- TopLevelMask ----------

func TestMaskStringContents(t *testing.T) {
	src := `a + "x + y"`
	mask := TopLevelMask(src)
	if !mask[2] {
		t.Error("operator outside the string should be top-level")
	}
	if mask[7] {
		t.Error("operator inside the string should not be top-level")
	}
}

func TestMaskBracketDepth(t *testing.T) {
	src := "f(a, b), c"
	mask := TopLevelMask(src)
	if mask[3] {
		t.Error("comma inside parens should not be top-level")
	}
	if !mask[7] {
		t.Error("comma after the call should be top-level")
	}
}

func TestMaskRegexSpan(t *testing.T) {
	src := "/ab/ + 1"
	mask := TopLevelMask(src)
	if mask[1] {
		t.Error("regex body should not be top-level")
	}
	if !mask[5] {
		t.Error("operator after the regex should be top-level")
	}
}

func TestMaskDivisionAfterValue(t *testing.T) {
	mask := TopLevelMask("a / b / c")
	if !mask[2] || !mask[6] {
		t.Error("slashes after values are division, not regex spans")
	}
}

func TestMaskSlashInCharClass(t *testing.T) {
	// the / inside [...] does not close the regex
	src := "/a[/]b/ + 1"
	mask := TopLevelMask(src)
	if !mask[8] {
		t.Error("operator after the regex should be top-level")
	}
	if mask[5] {
		t.Error("regex body after the class should not be top-level")
	}
}

func TestMaskTemplateInterpolation(t *testing.T) {
	src := "`${a + b}` + c"
	mask := TopLevelMask(src)
	if mask[5] {
		t.Error("operator inside a template interpolation should not be top-level")
	}
	if !mask[11] {
		t.Error("operator after the template should be top-level")
	}
}

// ---------- Primitive reads ----------

func TestReadIdentifier(t *testing.T) {
	ident, next := ReadIdentifier("foo_1 bar", 0)
	if ident != "foo_1" || next != 5 {
		t.Errorf("got %q next %d", ident, next)
	}
	if ident, _ := ReadIdentifier("1abc", 0); ident != "" {
		t.Errorf("digits cannot start an identifier, got %q", ident)
	}
}

func TestReadStringLiteral(t *testing.T) {
	raw, next, err := ReadStringLiteral(`'a\'b' tail`, 0)
	if err != nil {
		t.Fatal(err)
	}
	if raw != `'a\'b'` || next != 6 {
		t.Errorf("got %q next %d", raw, next)
	}
	if _, _, err := ReadStringLiteral(`'open`, 0); err == nil {
		t.Error("expected unterminated error")
	}
}

func TestReadBalancedBlock(t *testing.T) {
	inner, next, err := ReadBalancedBlock("(a, (b))", 0, '(', ')')
	if err != nil {
		t.Fatal(err)
	}
	if inner != "a, (b)" || next != 8 {
		t.Errorf("got %q next %d", inner, next)
	}
}

func TestReadBalancedBlockSkipsStrings(t *testing.T) {
	inner, _, err := ReadBalancedBlock(`(a, ")")`, 0, '(', ')')
	if err != nil {
		t.Fatal(err)
	}
	if inner != `a, ")"` {
		t.Errorf("got %q", inner)
	}
}

func TestReadBalancedBlockUnterminated(t *testing.T) {
	if _, _, err := ReadBalancedBlock("(a", 0, '(', ')'); err == nil {
		t.Error("expected unterminated error")
	}
}

// ---------- StripComments ----------

func TestStripLineComment(t *testing.T) {
	if got := StripComments("a // c\nb"); got != "a \nb" {
		t.Errorf("got %q", got)
	}
}

func TestStripBlockComment(t *testing.T) {
	if got := StripComments("a /*x*/ b"); got != "a   b" {
		t.Errorf("got %q", got)
	}
}

func TestStripLeavesStringsAlone(t *testing.T) {
	src := `'// not a comment' // gone`
	if got := StripComments(src); got != `'// not a comment' ` {
		t.Errorf("got %q", got)
	}
}

// ---------- Splitting ----------

func TestSplitTop(t *testing.T) {
	parts := SplitTop("a, f(b, c), d", ',')
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d: %v", len(parts), parts)
	}
	if parts[1] != " f(b, c)" {
		t.Errorf("got %q", parts[1])
	}
}

func TestIndexTop(t *testing.T) {
	if got := IndexTop("'=>' =>", "=>"); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := IndexTop("(a=>b)", "=>"); got != -1 {
		t.Errorf("expected -1 inside brackets, got %d", got)
	}
}
